package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrVotacionNotFound = errors.New("votacion not found")

// Votacion is the legacy session row behind /api/iniciar-votacion and
// /api/enviar-voto. The authoritative tally lives in candidatos and
// resultados_votacion; Votos only preserves the old wire shape.
type Votacion struct {
	ID           uint           `gorm:"primaryKey"`
	Departamento string         `gorm:"index;not null"`
	Codigo       string         `gorm:"not null"`
	Activa       bool           `gorm:"not null;default:true"`
	Votos        map[string]int `gorm:"serializer:json"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Votacion) TableName() string {
	return "votaciones"
}

type VotacionDAO struct {
	db *gorm.DB
}

func NewVotacionDAO(db *gorm.DB) *VotacionDAO {
	return &VotacionDAO{
		db: db,
	}
}

func (d *VotacionDAO) Insert(ctx context.Context, votacion Votacion) (Votacion, error) {
	result := d.db.WithContext(ctx).Create(&votacion)
	if result.Error != nil {
		return Votacion{}, result.Error
	}

	return votacion, nil
}

// FindActive looks up the active session matching both the departamento
// and the submitted code.
func (d *VotacionDAO) FindActive(ctx context.Context, departamento, codigo string) (Votacion, error) {
	var votacion Votacion

	result := d.db.WithContext(ctx).
		First(&votacion, "departamento = ? AND codigo = ? AND activa = ?", departamento, codigo, true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Votacion{}, ErrVotacionNotFound
		}

		return Votacion{}, result.Error
	}

	return votacion, nil
}

// DeactivateByDepartamento ends every active session for a departamento.
func (d *VotacionDAO) DeactivateByDepartamento(ctx context.Context, departamento string) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Votacion{}).
		Where("departamento = ? AND activa = ?", departamento, true).
		Update("activa", false)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
