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

type GrupoService interface {
	CreateGrupo(ctx context.Context, nombre string) (domain.Grupo, error)
	GetGrupos(ctx context.Context) ([]domain.Grupo, error)
	GetGrupoByID(ctx context.Context, id string) (domain.Grupo, error)
	GetGrupoActivo(ctx context.Context) (domain.Grupo, error)
	RenameGrupo(ctx context.Context, id, nombre string) (domain.Grupo, error)
	ActivateGrupo(ctx context.Context, id string) error
	DeactivateGrupo(ctx context.Context, id string) error
	DeleteGrupo(ctx context.Context, id string) error
	CreateDepartamento(ctx context.Context, grupoID, nombre string, tiempoVotacion int) (domain.Departamento, error)
	AddCandidato(ctx context.Context, departamentoID, nombre string) (domain.Candidato, error)
	AddCargo(ctx context.Context, departamentoID, nombre string) (domain.Cargo, error)
	ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error
	FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error
}

type GrupoHandler struct {
	svc GrupoService
}

func NewGrupoHandler(svc GrupoService) *GrupoHandler {
	return &GrupoHandler{
		svc: svc,
	}
}

// HandleCreateGrupo godoc
// @Summary      Create a voting group
// @Description  Creates a new grupo de votación, initially inactive
// @Tags         grupos
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateGrupoRequest  true  "Grupo details"
// @Success      201    {object}  domain.Grupo
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /grupos [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleCreateGrupo(ctx *gin.Context) {
	var input request.CreateGrupoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grupo, err := h.svc.CreateGrupo(ctx.Request.Context(), input.Nombre)
	if err != nil {
		err = fmt.Errorf("HandleCreateGrupo -> h.svc.CreateGrupo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, grupo)
}

// HandleGetGrupos godoc
// @Summary      List voting groups
// @Description  Retrieves every grupo with its departamentos, cargos and candidatos
// @Tags         grupos
// @Produce      json
// @Success      200  {array}   domain.Grupo
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos [get]
// @Security     BearerAuth
func (h *GrupoHandler) HandleGetGrupos(ctx *gin.Context) {
	grupos, err := h.svc.GetGrupos(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleGetGrupos -> h.svc.GetGrupos -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grupos)
}

// HandleGetGrupoActivo godoc
// @Summary      Get the active voting group
// @Description  Retrieves the single currently active grupo, used by voter and projection screens
// @Tags         grupos
// @Produce      json
// @Success      200  {object}  domain.Grupo
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/activo [get]
func (h *GrupoHandler) HandleGetGrupoActivo(ctx *gin.Context) {
	grupo, err := h.svc.GetGrupoActivo(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "activo", true))
			return
		}

		err = fmt.Errorf("HandleGetGrupoActivo -> h.svc.GetGrupoActivo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grupo)
}

// HandleGetGrupo godoc
// @Summary      Get a voting group
// @Description  Retrieves one grupo by ID with its full tree
// @Tags         grupos
// @Produce      json
// @Param        grupoID  path      string  true  "Grupo ID"
// @Success      200      {object}  domain.Grupo
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /grupos/{grupoID} [get]
// @Security     BearerAuth
func (h *GrupoHandler) HandleGetGrupo(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	grupo, err := h.svc.GetGrupoByID(ctx.Request.Context(), grupoID)
	if err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleGetGrupo -> h.svc.GetGrupoByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grupo)
}

// HandleUpdateGrupo godoc
// @Summary      Rename a voting group
// @Tags         grupos
// @Accept       json
// @Produce      json
// @Param        grupoID  path      string                      true  "Grupo ID"
// @Param        input    body      request.UpdateGrupoRequest  true  "New name"
// @Success      200      {object}  domain.Grupo
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /grupos/{grupoID} [put]
// @Security     BearerAuth
func (h *GrupoHandler) HandleUpdateGrupo(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	var input request.UpdateGrupoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	grupo, err := h.svc.RenameGrupo(ctx.Request.Context(), grupoID, input.Nombre)
	if err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleUpdateGrupo -> h.svc.RenameGrupo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, grupo)
}

// HandleActivateGrupo godoc
// @Summary      Activate a voting group
// @Description  Makes the grupo the single active one; every other grupo is deactivated in the same transaction
// @Tags         grupos
// @Produce      json
// @Param        grupoID  path  string  true  "Grupo ID"
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/{grupoID}/activar [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleActivateGrupo(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	if err := h.svc.ActivateGrupo(ctx.Request.Context(), grupoID); err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleActivateGrupo -> h.svc.ActivateGrupo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "grupo activated"})
}

// HandleDeactivateGrupo godoc
// @Summary      Deactivate a voting group
// @Description  Turns the grupo off along with every departamento in it
// @Tags         grupos
// @Produce      json
// @Param        grupoID  path  string  true  "Grupo ID"
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/{grupoID}/desactivar [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleDeactivateGrupo(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	if err := h.svc.DeactivateGrupo(ctx.Request.Context(), grupoID); err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleDeactivateGrupo -> h.svc.DeactivateGrupo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "grupo deactivated"})
}

// HandleDeleteGrupo godoc
// @Summary      Delete a voting group
// @Description  Removes the grupo and everything hanging off it, codes and results included
// @Tags         grupos
// @Produce      json
// @Param        grupoID  path  string  true  "Grupo ID"
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/{grupoID} [delete]
// @Security     BearerAuth
func (h *GrupoHandler) HandleDeleteGrupo(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	if err := h.svc.DeleteGrupo(ctx.Request.Context(), grupoID); err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleDeleteGrupo -> h.svc.DeleteGrupo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "grupo deleted"})
}

// HandleCreateDepartamento godoc
// @Summary      Add a departamento to a group
// @Tags         grupos,departamentos
// @Accept       json
// @Produce      json
// @Param        grupoID  path      string                             true  "Grupo ID"
// @Param        input    body      request.CreateDepartamentoRequest  true  "Departamento details"
// @Success      201      {object}  domain.Departamento
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /grupos/{grupoID}/departamentos [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleCreateDepartamento(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")

	var input request.CreateDepartamentoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	departamento, err := h.svc.CreateDepartamento(ctx.Request.Context(), grupoID, input.Nombre, input.TiempoVotacion)
	if err != nil {
		if errors.Is(err, service.ErrGrupoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
			return
		}

		err = fmt.Errorf("HandleCreateDepartamento -> h.svc.CreateDepartamento -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, departamento)
}

// HandleAddCandidato godoc
// @Summary      Add a candidato to a departamento
// @Tags         grupos,departamentos
// @Accept       json
// @Produce      json
// @Param        grupoID         path      string                       true  "Grupo ID"
// @Param        departamentoID  path      string                       true  "Departamento ID"
// @Param        input           body      request.AddCandidatoRequest  true  "Candidato details"
// @Success      201             {object}  domain.Candidato
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /grupos/{grupoID}/departamentos/{departamentoID}/candidatos [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleAddCandidato(ctx *gin.Context) {
	departamentoID := ctx.Param("departamentoID")

	var input request.AddCandidatoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	candidato, err := h.svc.AddCandidato(ctx.Request.Context(), departamentoID, input.Nombre)
	if err != nil {
		if errors.Is(err, service.ErrDepartamentoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("departamento", "ID", departamentoID))
			return
		}

		err = fmt.Errorf("HandleAddCandidato -> h.svc.AddCandidato -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, candidato)
}

// HandleAddCargo godoc
// @Summary      Add a cargo to a departamento
// @Description  Appends a cargo to the departamento; its orden is assigned from the current count
// @Tags         grupos,departamentos
// @Accept       json
// @Produce      json
// @Param        grupoID         path      string                   true  "Grupo ID"
// @Param        departamentoID  path      string                   true  "Departamento ID"
// @Param        input           body      request.AddCargoRequest  true  "Cargo details"
// @Success      201             {object}  domain.Cargo
// @Failure      400             {object}  response.Err
// @Failure      401             {object}  response.Err
// @Failure      404             {object}  response.Err
// @Failure      500             {object}  response.Err
// @Router       /grupos/{grupoID}/departamentos/{departamentoID}/cargos [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleAddCargo(ctx *gin.Context) {
	departamentoID := ctx.Param("departamentoID")

	var input request.AddCargoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	cargo, err := h.svc.AddCargo(ctx.Request.Context(), departamentoID, input.Nombre)
	if err != nil {
		if errors.Is(err, service.ErrDepartamentoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("departamento", "ID", departamentoID))
			return
		}

		err = fmt.Errorf("HandleAddCargo -> h.svc.AddCargo -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, cargo)
}

// HandleActivateDepartamento godoc
// @Summary      Open voting for a departamento
// @Description  Activates the departamento and closes its siblings in the same transaction. The grupo must be active.
// @Tags         grupos,departamentos
// @Produce      json
// @Param        grupoID         path  string  true  "Grupo ID"
// @Param        departamentoID  path  string  true  "Departamento ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/{grupoID}/departamentos/{departamentoID}/activar [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleActivateDepartamento(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")
	departamentoID := ctx.Param("departamentoID")

	err := h.svc.ActivateDepartamento(ctx.Request.Context(), grupoID, departamentoID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDepartamentoNotFound):
			response.RenderErr(ctx, response.ErrNotFound("departamento", "ID", departamentoID))
		case errors.Is(err, service.ErrGrupoNotFound):
			response.RenderErr(ctx, response.ErrNotFound("grupo", "ID", grupoID))
		case errors.Is(err, service.ErrGrupoInactivo):
			response.RenderErr(ctx, response.ErrState(err))
		default:
			err = fmt.Errorf("HandleActivateDepartamento -> h.svc.ActivateDepartamento -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "departamento activated"})
}

// HandleFinalizeDepartamento godoc
// @Summary      Close voting for a departamento
// @Tags         grupos,departamentos
// @Produce      json
// @Param        grupoID         path  string  true  "Grupo ID"
// @Param        departamentoID  path  string  true  "Departamento ID"
// @Success      200
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /grupos/{grupoID}/departamentos/{departamentoID}/finalizar [post]
// @Security     BearerAuth
func (h *GrupoHandler) HandleFinalizeDepartamento(ctx *gin.Context) {
	grupoID := ctx.Param("grupoID")
	departamentoID := ctx.Param("departamentoID")

	err := h.svc.FinalizeDepartamento(ctx.Request.Context(), grupoID, departamentoID)
	if err != nil {
		if errors.Is(err, service.ErrDepartamentoNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("departamento", "ID", departamentoID))
			return
		}

		err = fmt.Errorf("HandleFinalizeDepartamento -> h.svc.FinalizeDepartamento -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "departamento finalized"})
}
