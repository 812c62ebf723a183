package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ferdyn/votacion/internal/api/handler/v1/request"
	"github.com/ferdyn/votacion/internal/api/handler/v1/response"
	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/service"
)

type VotacionService interface {
	IniciarVotacion(ctx context.Context, departamento, codigo string) (domain.Votacion, error)
	EnviarVoto(ctx context.Context, departamento, codigo, candidato string) error
	TerminarVotacion(ctx context.Context, departamento string) (int64, error)
}

// VotacionHandler serves the legacy voting endpoints. They predate the
// v1 surface and keep their original paths and {success: bool} envelope
// so deployed voter screens keep working.
type VotacionHandler struct {
	svc     VotacionService
	votoSvc VotoService
}

func NewVotacionHandler(svc VotacionService, votoSvc VotoService) *VotacionHandler {
	return &VotacionHandler{
		svc:     svc,
		votoSvc: votoSvc,
	}
}

// HandleRegistrarVoto godoc
// @Summary      Register a vote
// @Description  Consumes the access code and counts the vote in one atomic transaction. A code votes at most once.
// @Tags         votos
// @Accept       json
// @Produce      json
// @Param        input  body      request.RegistrarVotoRequest  true  "Vote details"
// @Success      200    {object}  response.Envelope
// @Failure      400    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /registrar-voto [post]
func (h *VotacionHandler) HandleRegistrarVoto(ctx *gin.Context) {
	var input request.RegistrarVotoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	err := h.votoSvc.RegistrarVoto(ctx.Request.Context(), input.DepartamentoID, input.CandidatoID, input.Codigo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCodigoNoActivo):
			response.RenderFailure(ctx, http.StatusBadRequest, "Código inválido o ya utilizado")
		case errors.Is(err, service.ErrDepartamentoInactivo):
			response.RenderFailure(ctx, http.StatusBadRequest, "La votación no está activa")
		case errors.Is(err, service.ErrVotacionExpirada):
			response.RenderFailure(ctx, http.StatusBadRequest, "El tiempo de votación ha terminado")
		case errors.Is(err, service.ErrCandidatoNotFound):
			response.RenderFailure(ctx, http.StatusBadRequest, "Candidato no encontrado")
		default:
			err = fmt.Errorf("HandleRegistrarVoto -> h.votoSvc.RegistrarVoto -> %w", err)
			zap.L().Error("vote registration failed", zap.Error(err))
			response.RenderFailure(ctx, http.StatusInternalServerError, "Error al registrar el voto")
		}
		return
	}

	response.RenderSuccess(ctx, http.StatusOK, "Voto registrado", nil)
}

// HandleIniciarVotacion godoc
// @Summary      Start a voting session
// @Tags         votaciones
// @Accept       json
// @Produce      json
// @Param        input  body      request.IniciarVotacionRequest  true  "Session details"
// @Success      200    {object}  response.Envelope
// @Failure      400    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /iniciar-votacion [post]
func (h *VotacionHandler) HandleIniciarVotacion(ctx *gin.Context) {
	var input request.IniciarVotacionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	votacion, err := h.svc.IniciarVotacion(ctx.Request.Context(), input.Departamento, input.Codigo)
	if err != nil {
		err = fmt.Errorf("HandleIniciarVotacion -> h.svc.IniciarVotacion -> %w", err)
		zap.L().Error("voting session start failed", zap.Error(err))
		response.RenderFailure(ctx, http.StatusInternalServerError, "Error al iniciar la votación")
		return
	}

	response.RenderSuccess(ctx, http.StatusOK, "Votación iniciada", votacion)
}

// HandleEnviarVoto godoc
// @Summary      Submit a vote within a session
// @Description  Requires a matching active session; the vote is counted through the shared atomic increment
// @Tags         votaciones
// @Accept       json
// @Produce      json
// @Param        input  body      request.EnviarVotoRequest  true  "Vote details"
// @Success      200    {object}  response.Envelope
// @Failure      400    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /enviar-voto [post]
func (h *VotacionHandler) HandleEnviarVoto(ctx *gin.Context) {
	var input request.EnviarVotoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	err := h.svc.EnviarVoto(ctx.Request.Context(), input.Departamento, input.Codigo, input.Candidato)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVotacionNotFound):
			response.RenderFailure(ctx, http.StatusBadRequest, "No hay una votación activa para este código")
		case errors.Is(err, service.ErrCandidatoNotFound):
			response.RenderFailure(ctx, http.StatusBadRequest, "Candidato no encontrado")
		default:
			err = fmt.Errorf("HandleEnviarVoto -> h.svc.EnviarVoto -> %w", err)
			zap.L().Error("vote submission failed", zap.Error(err))
			response.RenderFailure(ctx, http.StatusInternalServerError, "Error al enviar el voto")
		}
		return
	}

	response.RenderSuccess(ctx, http.StatusOK, "Voto enviado", nil)
}

// HandleTerminarVotacion godoc
// @Summary      End the voting sessions of a departamento
// @Tags         votaciones
// @Accept       json
// @Produce      json
// @Param        input  body      request.TerminarVotacionRequest  true  "Departamento"
// @Success      200    {object}  response.Envelope
// @Failure      400    {object}  response.Envelope
// @Failure      500    {object}  response.Envelope
// @Router       /terminar-votacion [post]
func (h *VotacionHandler) HandleTerminarVotacion(ctx *gin.Context) {
	var input request.TerminarVotacionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderFailure(ctx, http.StatusBadRequest, err.Error())
		return
	}

	deactivated, err := h.svc.TerminarVotacion(ctx.Request.Context(), input.Departamento)
	if err != nil {
		err = fmt.Errorf("HandleTerminarVotacion -> h.svc.TerminarVotacion -> %w", err)
		zap.L().Error("voting session end failed", zap.Error(err))
		response.RenderFailure(ctx, http.StatusInternalServerError, "Error al terminar la votación")
		return
	}

	response.RenderSuccess(ctx, http.StatusOK, "Votación terminada", gin.H{"terminadas": deactivated})
}
