package repository

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/repository/dao"
)

type ResultadoDAO interface {
	FindAll(ctx context.Context) ([]dao.Resultado, error)
	FindByDepartamento(ctx context.Context, departamentoID string) ([]dao.Resultado, error)
}

type ResultadoRepository struct {
	dao ResultadoDAO
}

func NewResultadoRepository(dao ResultadoDAO) *ResultadoRepository {
	return &ResultadoRepository{
		dao: dao,
	}
}

// group folds flat tally rows into one ResultadoVotacion per
// departamento, preserving the row order from the store (departamento,
// then votes descending).
func (r *ResultadoRepository) group(rows []dao.Resultado) []domain.ResultadoVotacion {
	var resultados []domain.ResultadoVotacion
	byDepartamento := make(map[string]int)

	for _, row := range rows {
		candidato := domain.CandidatoResultado{
			ID:            row.CandidatoID,
			Nombre:        row.Nombre,
			Votos:         row.Votos,
			CargoAsignado: row.CargoAsignado,
		}

		idx, ok := byDepartamento[row.DepartamentoID]
		if !ok {
			resultados = append(resultados, domain.ResultadoVotacion{
				DepartamentoID: row.DepartamentoID,
			})
			idx = len(resultados) - 1
			byDepartamento[row.DepartamentoID] = idx
		}
		resultados[idx].Candidatos = append(resultados[idx].Candidatos, candidato)
	}

	return resultados
}

func (r *ResultadoRepository) GetAll(ctx context.Context) ([]domain.ResultadoVotacion, error) {
	rows, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.group(rows), nil
}

func (r *ResultadoRepository) GetByDepartamento(ctx context.Context, departamentoID string) (domain.ResultadoVotacion, error) {
	rows, err := r.dao.FindByDepartamento(ctx, departamentoID)
	if err != nil {
		return domain.ResultadoVotacion{}, fmt.Errorf("r.dao.FindByDepartamento -> %w", err)
	}

	resultado := domain.ResultadoVotacion{DepartamentoID: departamentoID}
	for _, row := range rows {
		resultado.Candidatos = append(resultado.Candidatos, domain.CandidatoResultado{
			ID:            row.CandidatoID,
			Nombre:        row.Nombre,
			Votos:         row.Votos,
			CargoAsignado: row.CargoAsignado,
		})
	}

	return resultado, nil
}
