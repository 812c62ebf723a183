package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/ferdyn/votacion/internal/domain"
	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
)

var (
	ErrCodigoNotFound = repository.ErrCodigoNotFound
	ErrCodigoInvalido = errors.New("codigo is invalid for this grupo")
	ErrCodigoNoActivo = repository.ErrCodigoNoActivo
)

const (
	codigoCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codigoLength  = 6

	// Regenerating on collision is cheap; with 36^6 possible codes a
	// handful of attempts always suffices at this scale.
	maxGenerateAttempts = 5
)

type CodigoRepository interface {
	CreateBatch(ctx context.Context, codigos []domain.CodigoAcceso) error
	GetAll(ctx context.Context) ([]domain.CodigoAcceso, error)
	GetByCodigo(ctx context.Context, codigo string) (domain.CodigoAcceso, error)
	UpdateEstadoBulk(ctx context.Context, codigos []string, estado string) (int64, error)
	DeleteBulk(ctx context.Context, codigos []string) (int64, error)
}

// CodigoService generates, manages and validates access codes — the
// gate every voter passes through.
type CodigoService struct {
	repo      CodigoRepository
	grupoRepo GrupoRepository
	hub       *relay.Hub
}

func NewCodigoService(repo CodigoRepository, grupoRepo GrupoRepository, hub *relay.Hub) *CodigoService {
	return &CodigoService{
		repo:      repo,
		grupoRepo: grupoRepo,
		hub:       hub,
	}
}

func (s *CodigoService) publish(accion string) {
	s.hub.Publish(relay.Event{
		Tabla:  relay.TablaCodigos,
		Accion: accion,
	})
}

func randomCodigo() (string, error) {
	b := make([]byte, codigoLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codigoCharset))))
		if err != nil {
			return "", fmt.Errorf("rand.Int -> %w", err)
		}
		b[i] = codigoCharset[n.Int64()]
	}

	return string(b), nil
}

// GenerateCodigos creates cantidad fresh codes for the grupo, all in
// estado pendiente. On a (rare) collision with existing codes the whole
// batch is regenerated and retried.
func (s *CodigoService) GenerateCodigos(ctx context.Context, cantidad int, grupoID string) ([]domain.CodigoAcceso, error) {
	if _, err := s.grupoRepo.GetByID(ctx, grupoID); err != nil {
		return nil, fmt.Errorf("s.grupoRepo.GetByID -> %w", err)
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		codigos := make([]domain.CodigoAcceso, cantidad)
		seen := make(map[string]struct{}, cantidad)
		for i := range codigos {
			codigo, err := randomCodigo()
			if err != nil {
				return nil, err
			}
			if _, dup := seen[codigo]; dup {
				codigo, err = randomCodigo()
				if err != nil {
					return nil, err
				}
			}
			seen[codigo] = struct{}{}
			codigos[i] = domain.CodigoAcceso{
				Codigo:  codigo,
				Estado:  domain.EstadoPendiente,
				GrupoID: grupoID,
			}
		}

		err := s.repo.CreateBatch(ctx, codigos)
		if err == nil {
			s.publish(relay.AccionInsert)
			return codigos, nil
		}
		if !errors.Is(err, repository.ErrCodigoDuplicado) {
			return nil, fmt.Errorf("s.repo.CreateBatch -> %w", err)
		}
	}

	return nil, fmt.Errorf("could not generate %d unique codes after %d attempts", cantidad, maxGenerateAttempts)
}

func (s *CodigoService) GetCodigos(ctx context.Context) ([]domain.CodigoAcceso, error) {
	codigos, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return codigos, nil
}

func (s *CodigoService) ActivateCodigos(ctx context.Context, codigos []string) (int64, error) {
	updated, err := s.repo.UpdateEstadoBulk(ctx, codigos, domain.EstadoActivo)
	if err != nil {
		return 0, fmt.Errorf("s.repo.UpdateEstadoBulk -> %w", err)
	}

	s.publish(relay.AccionUpdate)

	return updated, nil
}

func (s *CodigoService) DeactivateCodigos(ctx context.Context, codigos []string) (int64, error) {
	updated, err := s.repo.UpdateEstadoBulk(ctx, codigos, domain.EstadoDesactivado)
	if err != nil {
		return 0, fmt.Errorf("s.repo.UpdateEstadoBulk -> %w", err)
	}

	s.publish(relay.AccionUpdate)

	return updated, nil
}

func (s *CodigoService) DeleteCodigos(ctx context.Context, codigos []string) (int64, error) {
	deleted, err := s.repo.DeleteBulk(ctx, codigos)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteBulk -> %w", err)
	}

	s.publish(relay.AccionDelete)

	return deleted, nil
}

// ValidateCodigo is the access-code gate. It is a pure read: the code
// must exist, belong to the grupo, be activo, and the grupo itself must
// be live. On success the caller gets the grupo so the voter screen can
// render it.
func (s *CodigoService) ValidateCodigo(ctx context.Context, codigo, grupoID string) (domain.Grupo, error) {
	c, err := s.repo.GetByCodigo(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrCodigoNotFound) {
			return domain.Grupo{}, ErrCodigoInvalido
		}
		return domain.Grupo{}, fmt.Errorf("s.repo.GetByCodigo -> %w", err)
	}

	if c.GrupoID != grupoID {
		return domain.Grupo{}, ErrCodigoInvalido
	}

	if c.Estado != domain.EstadoActivo {
		return domain.Grupo{}, ErrCodigoNoActivo
	}

	grupo, err := s.grupoRepo.GetByID(ctx, grupoID)
	if err != nil {
		return domain.Grupo{}, fmt.Errorf("s.grupoRepo.GetByID -> %w", err)
	}

	if !grupo.Activo {
		return domain.Grupo{}, ErrGrupoInactivo
	}

	return grupo, nil
}
