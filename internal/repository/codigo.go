package repository

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/repository/dao"
)

var (
	ErrCodigoNotFound  = dao.ErrCodigoNotFound
	ErrCodigoDuplicado = dao.ErrCodigoDuplicado
)

type CodigoDAO interface {
	InsertBatch(ctx context.Context, codigos []dao.CodigoAcceso) error
	FindAll(ctx context.Context) ([]dao.CodigoAcceso, error)
	FindByCodigo(ctx context.Context, codigo string) (dao.CodigoAcceso, error)
	UpdateEstadoBulk(ctx context.Context, codigos []string, estado string) (int64, error)
	DeleteBulk(ctx context.Context, codigos []string) (int64, error)
}

type CodigoRepository struct {
	dao CodigoDAO
}

func NewCodigoRepository(dao CodigoDAO) *CodigoRepository {
	return &CodigoRepository{
		dao: dao,
	}
}

func (r *CodigoRepository) daoToDomain(c dao.CodigoAcceso) domain.CodigoAcceso {
	return domain.CodigoAcceso{
		Codigo:  c.Codigo,
		Estado:  c.Estado,
		GrupoID: c.GrupoID,
	}
}

func (r *CodigoRepository) CreateBatch(ctx context.Context, codigos []domain.CodigoAcceso) error {
	daoCodigos := make([]dao.CodigoAcceso, len(codigos))
	for i, c := range codigos {
		daoCodigos[i] = dao.CodigoAcceso{
			Codigo:  c.Codigo,
			Estado:  c.Estado,
			GrupoID: c.GrupoID,
		}
	}

	if err := r.dao.InsertBatch(ctx, daoCodigos); err != nil {
		return fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return nil
}

func (r *CodigoRepository) GetAll(ctx context.Context) ([]domain.CodigoAcceso, error) {
	codigos, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	result := make([]domain.CodigoAcceso, len(codigos))
	for i, c := range codigos {
		result[i] = r.daoToDomain(c)
	}

	return result, nil
}

func (r *CodigoRepository) GetByCodigo(ctx context.Context, codigo string) (domain.CodigoAcceso, error) {
	c, err := r.dao.FindByCodigo(ctx, codigo)
	if err != nil {
		return domain.CodigoAcceso{}, fmt.Errorf("r.dao.FindByCodigo -> %w", err)
	}

	return r.daoToDomain(c), nil
}

func (r *CodigoRepository) UpdateEstadoBulk(ctx context.Context, codigos []string, estado string) (int64, error) {
	updated, err := r.dao.UpdateEstadoBulk(ctx, codigos, estado)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateEstadoBulk -> %w", err)
	}

	return updated, nil
}

func (r *CodigoRepository) DeleteBulk(ctx context.Context, codigos []string) (int64, error) {
	deleted, err := r.dao.DeleteBulk(ctx, codigos)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteBulk -> %w", err)
	}

	return deleted, nil
}
