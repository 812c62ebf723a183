package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ferdyn/votacion/internal/api/handler/v1/request"
	"github.com/ferdyn/votacion/internal/api/handler/v1/response"
	"github.com/ferdyn/votacion/internal/service"
)

type AuthService interface {
	Login(password string) (string, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleLogin godoc
// @Summary      Authenticate as the anfitrión
// @Description  Exchanges the shared administration password for a JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      request.LoginRequest  true  "Administration password"
// @Success      200    {object}  response.LoginResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var input request.LoginRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, err := h.svc.Login(input.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		err = fmt.Errorf("HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{Token: token})
}
