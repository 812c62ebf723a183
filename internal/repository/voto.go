package repository

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/repository/dao"
)

var (
	ErrCodigoNoActivo       = dao.ErrCodigoNoActivo
	ErrCandidatoNotFound    = dao.ErrCandidatoNotFound
	ErrDepartamentoInactivo = dao.ErrDepartamentoInactivo
	ErrVotacionExpirada     = dao.ErrVotacionExpirada
)

type VotoDAO interface {
	RegisterVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error
	IncrementarVoto(ctx context.Context, departamentoID, candidatoID string) error
}

type VotoRepository struct {
	dao VotoDAO
}

func NewVotoRepository(dao VotoDAO) *VotoRepository {
	return &VotoRepository{
		dao: dao,
	}
}

func (r *VotoRepository) RegisterVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error {
	if err := r.dao.RegisterVoto(ctx, departamentoID, candidatoID, codigo); err != nil {
		return fmt.Errorf("r.dao.RegisterVoto -> %w", err)
	}

	return nil
}

func (r *VotoRepository) IncrementarVoto(ctx context.Context, departamentoID, candidatoID string) error {
	if err := r.dao.IncrementarVoto(ctx, departamentoID, candidatoID); err != nil {
		return fmt.Errorf("r.dao.IncrementarVoto -> %w", err)
	}

	return nil
}
