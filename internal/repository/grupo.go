package repository

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/repository/dao"
)

var (
	ErrGrupoNotFound        = dao.ErrGrupoNotFound
	ErrDepartamentoNotFound = dao.ErrDepartamentoNotFound
	ErrGrupoInactivo        = dao.ErrGrupoInactivo
)

type GrupoDAO interface {
	Insert(ctx context.Context, grupo dao.Grupo) (dao.Grupo, error)
	FindAll(ctx context.Context) ([]dao.Grupo, error)
	FindByID(ctx context.Context, id string) (dao.Grupo, error)
	FindActive(ctx context.Context) (dao.Grupo, error)
	UpdateNombre(ctx context.Context, id, nombre string) error
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	InsertDepartamento(ctx context.Context, departamento dao.Departamento) (dao.Departamento, error)
	FindDepartamentoByID(ctx context.Context, id string) (dao.Departamento, error)
	InsertCandidato(ctx context.Context, candidato dao.Candidato) (dao.Candidato, error)
	InsertCargo(ctx context.Context, cargo dao.Cargo) (dao.Cargo, error)
	ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error
	FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error
}

type GrupoRepository struct {
	dao GrupoDAO
}

func NewGrupoRepository(dao GrupoDAO) *GrupoRepository {
	return &GrupoRepository{
		dao: dao,
	}
}

func (r *GrupoRepository) cargoDAOToDomain(c dao.Cargo) domain.Cargo {
	return domain.Cargo{
		ID:             c.ID,
		DepartamentoID: c.DepartamentoID,
		Nombre:         c.Nombre,
		Orden:          c.Orden,
	}
}

func (r *GrupoRepository) candidatoDAOToDomain(c dao.Candidato) domain.Candidato {
	return domain.Candidato{
		ID:             c.ID,
		DepartamentoID: c.DepartamentoID,
		Nombre:         c.Nombre,
		Votos:          c.Votos,
		CargoAsignado:  c.CargoAsignado,
	}
}

func (r *GrupoRepository) departamentoDAOToDomain(d dao.Departamento) domain.Departamento {
	cargos := make([]domain.Cargo, len(d.Cargos))
	for i, c := range d.Cargos {
		cargos[i] = r.cargoDAOToDomain(c)
	}

	candidatos := make([]domain.Candidato, len(d.Candidatos))
	for i, c := range d.Candidatos {
		candidatos[i] = r.candidatoDAOToDomain(c)
	}

	return domain.Departamento{
		ID:             d.ID,
		GrupoID:        d.GrupoID,
		Nombre:         d.Nombre,
		Cargos:         cargos,
		Candidatos:     candidatos,
		TiempoVotacion: d.TiempoVotacion,
		Activo:         d.Activo,
		ActivadoEn:     d.ActivadoEn,
	}
}

func (r *GrupoRepository) daoToDomain(g dao.Grupo) domain.Grupo {
	departamentos := make([]domain.Departamento, len(g.Departamentos))
	for i, d := range g.Departamentos {
		departamentos[i] = r.departamentoDAOToDomain(d)
	}

	return domain.Grupo{
		ID:            g.ID,
		Nombre:        g.Nombre,
		Departamentos: departamentos,
		Activo:        g.Activo,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

func (r *GrupoRepository) Create(ctx context.Context, grupo domain.Grupo) (domain.Grupo, error) {
	created, err := r.dao.Insert(ctx, dao.Grupo{
		ID:     grupo.ID,
		Nombre: grupo.Nombre,
		Activo: grupo.Activo,
	})
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *GrupoRepository) GetAll(ctx context.Context) ([]domain.Grupo, error) {
	grupos, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.Grupo, len(grupos))
	for i, g := range grupos {
		result[i] = r.daoToDomain(g)
	}

	return result, nil
}

func (r *GrupoRepository) GetByID(ctx context.Context, id string) (domain.Grupo, error) {
	grupo, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(grupo), nil
}

func (r *GrupoRepository) GetActive(ctx context.Context) (domain.Grupo, error) {
	grupo, err := r.dao.FindActive(ctx)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.daoToDomain(grupo), nil
}

func (r *GrupoRepository) Rename(ctx context.Context, id, nombre string) error {
	if err := r.dao.UpdateNombre(ctx, id, nombre); err != nil {
		return fmt.Errorf("r.dao.UpdateNombre -> %w", err)
	}

	return nil
}

func (r *GrupoRepository) Activate(ctx context.Context, id string) error {
	if err := r.dao.Activate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Activate -> %w", err)
	}

	return nil
}

func (r *GrupoRepository) Deactivate(ctx context.Context, id string) error {
	if err := r.dao.Deactivate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Deactivate -> %w", err)
	}

	return nil
}

func (r *GrupoRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *GrupoRepository) CreateDepartamento(ctx context.Context, departamento domain.Departamento) (domain.Departamento, error) {
	created, err := r.dao.InsertDepartamento(ctx, dao.Departamento{
		ID:             departamento.ID,
		GrupoID:        departamento.GrupoID,
		Nombre:         departamento.Nombre,
		TiempoVotacion: departamento.TiempoVotacion,
		Activo:         departamento.Activo,
	})
	if err != nil {
		return domain.Departamento{}, fmt.Errorf("r.dao.InsertDepartamento -> %w", err)
	}

	return r.departamentoDAOToDomain(created), nil
}

func (r *GrupoRepository) GetDepartamentoByID(ctx context.Context, id string) (domain.Departamento, error) {
	departamento, err := r.dao.FindDepartamentoByID(ctx, id)
	if err != nil {
		return domain.Departamento{}, fmt.Errorf("r.dao.FindDepartamentoByID -> %w", err)
	}

	return r.departamentoDAOToDomain(departamento), nil
}

func (r *GrupoRepository) AddCandidato(ctx context.Context, candidato domain.Candidato) (domain.Candidato, error) {
	created, err := r.dao.InsertCandidato(ctx, dao.Candidato{
		ID:             candidato.ID,
		DepartamentoID: candidato.DepartamentoID,
		Nombre:         candidato.Nombre,
	})
	if err != nil {
		return domain.Candidato{}, fmt.Errorf("r.dao.InsertCandidato -> %w", err)
	}

	return r.candidatoDAOToDomain(created), nil
}

func (r *GrupoRepository) AddCargo(ctx context.Context, cargo domain.Cargo) (domain.Cargo, error) {
	created, err := r.dao.InsertCargo(ctx, dao.Cargo{
		ID:             cargo.ID,
		DepartamentoID: cargo.DepartamentoID,
		Nombre:         cargo.Nombre,
	})
	if err != nil {
		return domain.Cargo{}, fmt.Errorf("r.dao.InsertCargo -> %w", err)
	}

	return r.cargoDAOToDomain(created), nil
}

func (r *GrupoRepository) ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	if err := r.dao.ActivateDepartamento(ctx, grupoID, departamentoID); err != nil {
		return fmt.Errorf("r.dao.ActivateDepartamento -> %w", err)
	}

	return nil
}

func (r *GrupoRepository) FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	if err := r.dao.FinalizeDepartamento(ctx, grupoID, departamentoID); err != nil {
		return fmt.Errorf("r.dao.FinalizeDepartamento -> %w", err)
	}

	return nil
}
