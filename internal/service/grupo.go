package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
)

var (
	ErrGrupoNotFound        = repository.ErrGrupoNotFound
	ErrDepartamentoNotFound = repository.ErrDepartamentoNotFound
	ErrGrupoInactivo        = repository.ErrGrupoInactivo
)

type GrupoRepository interface {
	Create(ctx context.Context, grupo domain.Grupo) (domain.Grupo, error)
	GetAll(ctx context.Context) ([]domain.Grupo, error)
	GetByID(ctx context.Context, id string) (domain.Grupo, error)
	GetActive(ctx context.Context) (domain.Grupo, error)
	Rename(ctx context.Context, id, nombre string) error
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	CreateDepartamento(ctx context.Context, departamento domain.Departamento) (domain.Departamento, error)
	GetDepartamentoByID(ctx context.Context, id string) (domain.Departamento, error)
	AddCandidato(ctx context.Context, candidato domain.Candidato) (domain.Candidato, error)
	AddCargo(ctx context.Context, cargo domain.Cargo) (domain.Cargo, error)
	ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error
	FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error
}

// GrupoService owns the grupo/departamento lifecycle, including the
// activation machine. Every mutation is announced on the relay hub so
// voter and projection screens refresh without polling.
type GrupoService struct {
	repo GrupoRepository
	hub  *relay.Hub
}

func NewGrupoService(repo GrupoRepository, hub *relay.Hub) *GrupoService {
	return &GrupoService{
		repo: repo,
		hub:  hub,
	}
}

func (s *GrupoService) publish(accion string, payload interface{}) {
	s.hub.Publish(relay.Event{
		Tabla:   relay.TablaGrupos,
		Accion:  accion,
		Payload: payload,
	})
}

func (s *GrupoService) CreateGrupo(ctx context.Context, nombre string) (domain.Grupo, error) {
	grupo := domain.Grupo{
		ID:     uuid.NewString(),
		Nombre: nombre,
		Activo: false,
	}

	created, err := s.repo.Create(ctx, grupo)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.publish(relay.AccionInsert, created)

	return created, nil
}

func (s *GrupoService) GetGrupos(ctx context.Context) ([]domain.Grupo, error) {
	grupos, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return grupos, nil
}

func (s *GrupoService) GetGrupoByID(ctx context.Context, id string) (domain.Grupo, error) {
	grupo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	return grupo, nil
}

// GetGrupoActivo returns the currently live grupo, used by the
// projection screen on load.
func (s *GrupoService) GetGrupoActivo(ctx context.Context) (domain.Grupo, error) {
	grupo, err := s.repo.GetActive(ctx)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("s.repo.GetActive -> %w", err)
	}

	return grupo, nil
}

func (s *GrupoService) RenameGrupo(ctx context.Context, id, nombre string) (domain.Grupo, error) {
	if err := s.repo.Rename(ctx, id, nombre); err != nil {
		return domain.Grupo{}, fmt.Errorf("s.repo.Rename -> %w", err)
	}

	grupo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("s.repo.GetByID -> %w", err)
	}

	s.publish(relay.AccionUpdate, grupo)

	return grupo, nil
}

// ActivateGrupo makes the grupo the single live one; all other grupos
// are deactivated in the same store transaction.
func (s *GrupoService) ActivateGrupo(ctx context.Context, id string) error {
	if err := s.repo.Activate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Activate -> %w", err)
	}

	s.publish(relay.AccionUpdate, map[string]string{"id": id})

	return nil
}

// DeactivateGrupo turns the grupo off along with every departamento in
// it.
func (s *GrupoService) DeactivateGrupo(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Deactivate -> %w", err)
	}

	s.publish(relay.AccionUpdate, map[string]string{"id": id})

	return nil
}

// DeleteGrupo cascade-deletes codes and results before the grupo row
// itself; the ordering lives in the dao transaction.
func (s *GrupoService) DeleteGrupo(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.publish(relay.AccionDelete, map[string]string{"id": id})
	s.hub.Publish(relay.Event{Tabla: relay.TablaCodigos, Accion: relay.AccionDelete})
	s.hub.Publish(relay.Event{Tabla: relay.TablaResultados, Accion: relay.AccionDelete})

	return nil
}

func (s *GrupoService) CreateDepartamento(ctx context.Context, grupoID, nombre string, tiempoVotacion int) (domain.Departamento, error) {
	departamento := domain.Departamento{
		ID:             uuid.NewString(),
		GrupoID:        grupoID,
		Nombre:         nombre,
		TiempoVotacion: tiempoVotacion,
		Activo:         false,
	}

	created, err := s.repo.CreateDepartamento(ctx, departamento)
	if err != nil {
		return domain.Departamento{}, fmt.Errorf("s.repo.CreateDepartamento -> %w", err)
	}

	s.publish(relay.AccionUpdate, created)

	return created, nil
}

func (s *GrupoService) AddCandidato(ctx context.Context, departamentoID, nombre string) (domain.Candidato, error) {
	candidato := domain.Candidato{
		ID:             uuid.NewString(),
		DepartamentoID: departamentoID,
		Nombre:         nombre,
	}

	created, err := s.repo.AddCandidato(ctx, candidato)
	if err != nil {
		return domain.Candidato{}, fmt.Errorf("s.repo.AddCandidato -> %w", err)
	}

	s.publish(relay.AccionUpdate, created)

	return created, nil
}

func (s *GrupoService) AddCargo(ctx context.Context, departamentoID, nombre string) (domain.Cargo, error) {
	cargo := domain.Cargo{
		ID:             uuid.NewString(),
		DepartamentoID: departamentoID,
		Nombre:         nombre,
	}

	created, err := s.repo.AddCargo(ctx, cargo)
	if err != nil {
		return domain.Cargo{}, fmt.Errorf("s.repo.AddCargo -> %w", err)
	}

	s.publish(relay.AccionUpdate, created)

	return created, nil
}

// ActivateDepartamento opens voting for one departamento; its siblings
// are closed in the same store transaction.
func (s *GrupoService) ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	if err := s.repo.ActivateDepartamento(ctx, grupoID, departamentoID); err != nil {
		return fmt.Errorf("s.repo.ActivateDepartamento -> %w", err)
	}

	s.publish(relay.AccionUpdate, map[string]string{"grupoId": grupoID, "departamentoId": departamentoID})

	return nil
}

func (s *GrupoService) FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	if err := s.repo.FinalizeDepartamento(ctx, grupoID, departamentoID); err != nil {
		return fmt.Errorf("s.repo.FinalizeDepartamento -> %w", err)
	}

	s.publish(relay.AccionUpdate, map[string]string{"grupoId": grupoID, "departamentoId": departamentoID})

	return nil
}
