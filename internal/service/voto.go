package service

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
)

var (
	ErrCandidatoNotFound    = repository.ErrCandidatoNotFound
	ErrDepartamentoInactivo = repository.ErrDepartamentoInactivo
	ErrVotacionExpirada     = repository.ErrVotacionExpirada
)

type VotoRepository interface {
	RegisterVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error
	IncrementarVoto(ctx context.Context, departamentoID, candidatoID string) error
}

type ResultadoRepository interface {
	GetAll(ctx context.Context) ([]domain.ResultadoVotacion, error)
	GetByDepartamento(ctx context.Context, departamentoID string) (domain.ResultadoVotacion, error)
}

// VotoService is the vote submission flow: one call, one atomic store
// transaction that consumes the code and counts the vote.
type VotoService struct {
	repo          VotoRepository
	resultadoRepo ResultadoRepository
	hub           *relay.Hub
}

func NewVotoService(repo VotoRepository, resultadoRepo ResultadoRepository, hub *relay.Hub) *VotoService {
	return &VotoService{
		repo:          repo,
		resultadoRepo: resultadoRepo,
		hub:           hub,
	}
}

func (s *VotoService) RegistrarVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error {
	if err := s.repo.RegisterVoto(ctx, departamentoID, candidatoID, codigo); err != nil {
		return fmt.Errorf("s.repo.RegisterVoto -> %w", err)
	}

	s.hub.Publish(relay.Event{
		Tabla:   relay.TablaResultados,
		Accion:  relay.AccionUpdate,
		Payload: map[string]string{"departamentoId": departamentoID},
	})

	return nil
}

// IncrementarVoto counts a vote without an access code; the legacy
// session path gates on its votaciones row instead.
func (s *VotoService) IncrementarVoto(ctx context.Context, departamentoID, candidatoID string) error {
	if err := s.repo.IncrementarVoto(ctx, departamentoID, candidatoID); err != nil {
		return fmt.Errorf("s.repo.IncrementarVoto -> %w", err)
	}

	s.hub.Publish(relay.Event{
		Tabla:   relay.TablaResultados,
		Accion:  relay.AccionUpdate,
		Payload: map[string]string{"departamentoId": departamentoID},
	})

	return nil
}

func (s *VotoService) GetResultados(ctx context.Context) ([]domain.ResultadoVotacion, error) {
	resultados, err := s.resultadoRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.resultadoRepo.GetAll -> %w", err)
	}

	return resultados, nil
}

func (s *VotoService) GetResultadosByDepartamento(ctx context.Context, departamentoID string) (domain.ResultadoVotacion, error) {
	resultado, err := s.resultadoRepo.GetByDepartamento(ctx, departamentoID)
	if err != nil {
		return domain.ResultadoVotacion{}, fmt.Errorf("s.resultadoRepo.GetByDepartamento -> %w", err)
	}

	return resultado, nil
}
