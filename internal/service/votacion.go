package service

import (
	"context"
	"fmt"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
)

var ErrVotacionNotFound = repository.ErrVotacionNotFound

type VotacionRepository interface {
	Create(ctx context.Context, votacion domain.Votacion) (domain.Votacion, error)
	GetActive(ctx context.Context, departamento, codigo string) (domain.Votacion, error)
	DeactivateByDepartamento(ctx context.Context, departamento string) (int64, error)
}

// VotacionService backs the legacy session endpoints. Sessions gate the
// /api/enviar-voto path; the tally itself goes through VotoRepository so
// grupos/resultados stay the single authoritative count.
type VotacionService struct {
	repo     VotacionRepository
	votoRepo VotoRepository
	hub      *relay.Hub
}

func NewVotacionService(repo VotacionRepository, votoRepo VotoRepository, hub *relay.Hub) *VotacionService {
	return &VotacionService{
		repo:     repo,
		votoRepo: votoRepo,
		hub:      hub,
	}
}

func (s *VotacionService) publish(accion string) {
	s.hub.Publish(relay.Event{
		Tabla:  relay.TablaVotaciones,
		Accion: accion,
	})
}

func (s *VotacionService) IniciarVotacion(ctx context.Context, departamento, codigo string) (domain.Votacion, error) {
	votacion, err := s.repo.Create(ctx, domain.Votacion{
		Departamento: departamento,
		Codigo:       codigo,
		Activa:       true,
		Votos:        map[string]int{},
	})
	if err != nil {
		return domain.Votacion{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.publish(relay.AccionInsert)

	return votacion, nil
}

// EnviarVoto requires a matching active session, then counts the vote
// through the shared atomic increment.
func (s *VotacionService) EnviarVoto(ctx context.Context, departamento, codigo, candidato string) error {
	votacion, err := s.repo.GetActive(ctx, departamento, codigo)
	if err != nil {
		return fmt.Errorf("s.repo.GetActive -> %w", err)
	}

	if err := s.votoRepo.IncrementarVoto(ctx, votacion.Departamento, candidato); err != nil {
		return fmt.Errorf("s.votoRepo.IncrementarVoto -> %w", err)
	}

	s.hub.Publish(relay.Event{
		Tabla:   relay.TablaResultados,
		Accion:  relay.AccionUpdate,
		Payload: map[string]string{"departamentoId": votacion.Departamento},
	})

	return nil
}

func (s *VotacionService) TerminarVotacion(ctx context.Context, departamento string) (int64, error) {
	deactivated, err := s.repo.DeactivateByDepartamento(ctx, departamento)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeactivateByDepartamento -> %w", err)
	}

	s.publish(relay.AccionUpdate)

	return deactivated, nil
}
