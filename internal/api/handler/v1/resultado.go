package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ferdyn/votacion/internal/api/handler/v1/response"
	"github.com/ferdyn/votacion/internal/domain"
)

type VotoService interface {
	RegistrarVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error
	GetResultados(ctx context.Context) ([]domain.ResultadoVotacion, error)
	GetResultadosByDepartamento(ctx context.Context, departamentoID string) (domain.ResultadoVotacion, error)
}

type ResultadoHandler struct {
	svc VotoService
}

func NewResultadoHandler(svc VotoService) *ResultadoHandler {
	return &ResultadoHandler{
		svc: svc,
	}
}

// HandleGetResultados godoc
// @Summary      Get vote tallies
// @Description  Retrieves the per-candidato tallies for every departamento, ordered by votes
// @Tags         resultados
// @Produce      json
// @Success      200  {array}   domain.ResultadoVotacion
// @Failure      500  {object}  response.Err
// @Router       /resultados [get]
func (h *ResultadoHandler) HandleGetResultados(ctx *gin.Context) {
	resultados, err := h.svc.GetResultados(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetResultados -> h.svc.GetResultados -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, resultados)
}

// HandleGetResultadosByDepartamento godoc
// @Summary      Get vote tallies for one departamento
// @Tags         resultados
// @Produce      json
// @Param        departamentoID  path      string  true  "Departamento ID"
// @Success      200             {object}  domain.ResultadoVotacion
// @Failure      500             {object}  response.Err
// @Router       /resultados/{departamentoID} [get]
func (h *ResultadoHandler) HandleGetResultadosByDepartamento(ctx *gin.Context) {
	departamentoID := ctx.Param("departamentoID")

	resultado, err := h.svc.GetResultadosByDepartamento(ctx.Request.Context(), departamentoID)
	if err != nil {
		err = fmt.Errorf("HandleGetResultadosByDepartamento -> h.svc.GetResultadosByDepartamento -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, resultado)
}
