package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ferdyn/votacion/internal/api/handler/v1/request"
	"github.com/ferdyn/votacion/internal/api/handler/v1/response"
	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/service"
)

type CodigoService interface {
	GenerateCodigos(ctx context.Context, cantidad int, grupoID string) ([]domain.CodigoAcceso, error)
	GetCodigos(ctx context.Context) ([]domain.CodigoAcceso, error)
	ActivateCodigos(ctx context.Context, codigos []string) (int64, error)
	DeactivateCodigos(ctx context.Context, codigos []string) (int64, error)
	DeleteCodigos(ctx context.Context, codigos []string) (int64, error)
	ValidateCodigo(ctx context.Context, codigo, grupoID string) (domain.Grupo, error)
}

type CodigoHandler struct {
	svc CodigoService
}

func NewCodigoHandler(svc CodigoService) *CodigoHandler {
	return &CodigoHandler{
		svc: svc,
	}
}

// HandleGenerateCodigos godoc
// @Summary      Generate access codes
// @Description  Creates a batch of fresh 6-character codes for a grupo, all in estado pendiente
// @Tags         codigos
// @Accept       json
// @Produce      json
// @Param        input  body      request.GenerateCodigosRequest  true  "Batch size and grupo"
// @Success      201    {array}   domain.CodigoAcceso
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /codigos [post]
// @Security     BearerAuth
func (h *CodigoHandler) HandleGenerateCodigos(ctx *gin.Context) {
	var input request.GenerateCodigosRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	codigos, err := h.svc.GenerateCodigos(ctx.Request.Context(), input.Cantidad, input.GrupoID)
	if err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", input.GrupoID))
			return
		}

		err = fmt.Errorf("HandleGenerateCodigos -> h.svc.GenerateCodigos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, codigos)
}

// HandleGetCodigos godoc
// @Summary      List access codes
// @Tags         codigos
// @Produce      json
// @Success      200  {array}   domain.CodigoAcceso
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /codigos [get]
// @Security     BearerAuth
func (h *CodigoHandler) HandleGetCodigos(ctx *gin.Context) {
	codigos, err := h.svc.GetCodigos(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetCodigos -> h.svc.GetCodigos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, codigos)
}

// HandleActivateCodigos godoc
// @Summary      Activate access codes
// @Description  Marks the selected codes activo. Codes already utilizados are never touched.
// @Tags         codigos
// @Accept       json
// @Produce      json
// @Param        input  body      request.CodigosSelectionRequest  true  "Codes to activate"
// @Success      200    {object}  response.CodigosAffectedResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /codigos/activar [post]
// @Security     BearerAuth
func (h *CodigoHandler) HandleActivateCodigos(ctx *gin.Context) {
	var input request.CodigosSelectionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	affected, err := h.svc.ActivateCodigos(ctx.Request.Context(), input.Codigos)
	if err != nil {
		err = fmt.Errorf("HandleActivateCodigos -> h.svc.ActivateCodigos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CodigosAffectedResponse{Affected: affected})
}

// HandleDeactivateCodigos godoc
// @Summary      Deactivate access codes
// @Tags         codigos
// @Accept       json
// @Produce      json
// @Param        input  body      request.CodigosSelectionRequest  true  "Codes to deactivate"
// @Success      200    {object}  response.CodigosAffectedResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /codigos/desactivar [post]
// @Security     BearerAuth
func (h *CodigoHandler) HandleDeactivateCodigos(ctx *gin.Context) {
	var input request.CodigosSelectionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	affected, err := h.svc.DeactivateCodigos(ctx.Request.Context(), input.Codigos)
	if err != nil {
		err = fmt.Errorf("HandleDeactivateCodigos -> h.svc.DeactivateCodigos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CodigosAffectedResponse{Affected: affected})
}

// HandleDeleteCodigos godoc
// @Summary      Delete access codes
// @Tags         codigos
// @Accept       json
// @Produce      json
// @Param        input  body      request.CodigosSelectionRequest  true  "Codes to delete"
// @Success      200    {object}  response.CodigosAffectedResponse
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /codigos [delete]
// @Security     BearerAuth
func (h *CodigoHandler) HandleDeleteCodigos(ctx *gin.Context) {
	var input request.CodigosSelectionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	affected, err := h.svc.DeleteCodigos(ctx.Request.Context(), input.Codigos)
	if err != nil {
		err = fmt.Errorf("HandleDeleteCodigos -> h.svc.DeleteCodigos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CodigosAffectedResponse{Affected: affected})
}

// HandleValidateCodigo godoc
// @Summary      Validate an access code
// @Description  The voter's entry gate. Checks the code exists, belongs to the grupo, is activo, and the grupo is live. Does not consume the code.
// @Tags         codigos
// @Accept       json
// @Produce      json
// @Param        input  body      request.ValidateCodigoRequest  true  "Code and grupo"
// @Success      200    {object}  domain.Grupo
// @Failure      400    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /codigos/validar [post]
func (h *CodigoHandler) HandleValidateCodigo(ctx *gin.Context) {
	var input request.ValidateCodigoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grupo, err := h.svc.ValidateCodigo(ctx.Request.Context(), input.Codigo, input.GrupoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodigoInvalido),
			errors.Is(err, service.ErrCodigoNoActivo),
			errors.Is(err, service.ErrGrupoInactivo):
			response.RenderErr(ctx, response.ErrState(err))
		default:
			err = fmt.Errorf("HandleValidateCodigo -> h.svc.ValidateCodigo -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, grupo)
}
