package repository

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/repository/dao"
)

var ErrVotacionNotFound = dao.ErrVotacionNotFound

type VotacionDAO interface {
	Insert(ctx context.Context, votacion dao.Votacion) (dao.Votacion, error)
	FindActive(ctx context.Context, departamento, codigo string) (dao.Votacion, error)
	DeactivateByDepartamento(ctx context.Context, departamento string) (int64, error)
}

type VotacionRepository struct {
	dao VotacionDAO
}

func NewVotacionRepository(dao VotacionDAO) *VotacionRepository {
	return &VotacionRepository{
		dao: dao,
	}
}

func (r *VotacionRepository) daoToDomain(v dao.Votacion) domain.Votacion {
	return domain.Votacion{
		ID:           v.ID,
		Departamento: v.Departamento,
		Codigo:       v.Codigo,
		Activa:       v.Activa,
		Votos:        v.Votos,
		CreatedAt:    v.CreatedAt,
	}
}

func (r *VotacionRepository) Create(ctx context.Context, votacion domain.Votacion) (domain.Votacion, error) {
	created, err := r.dao.Insert(ctx, dao.Votacion{
		Departamento: votacion.Departamento,
		Codigo:       votacion.Codigo,
		Activa:       votacion.Activa,
		Votos:        votacion.Votos,
	})
	if err != nil {
		return domain.Votacion{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *VotacionRepository) GetActive(ctx context.Context, departamento, codigo string) (domain.Votacion, error) {
	votacion, err := r.dao.FindActive(ctx, departamento, codigo)
	if err != nil {
		return domain.Votacion{}, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.daoToDomain(votacion), nil
}

func (r *VotacionRepository) DeactivateByDepartamento(ctx context.Context, departamento string) (int64, error) {
	deactivated, err := r.dao.DeactivateByDepartamento(ctx, departamento)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeactivateByDepartamento -> %w", err)
	}

	return deactivated, nil
}
