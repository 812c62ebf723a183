package dao

import (
	"context"

	"gorm.io/gorm"
)

// Resultado is one denormalized tally row, keyed by departamento and
// candidato. Rows are created and updated only by the vote transaction.
type Resultado struct {
	DepartamentoID string `gorm:"primaryKey"`
	CandidatoID    string `gorm:"primaryKey"`
	Nombre         string `gorm:"not null"`
	Votos          int    `gorm:"not null;default:0"`
	CargoAsignado  *string
}

func (Resultado) TableName() string {
	return "resultados_votacion"
}

type ResultadoDAO struct {
	db *gorm.DB
}

func NewResultadoDAO(db *gorm.DB) *ResultadoDAO {
	return &ResultadoDAO{
		db: db,
	}
}

func (d *ResultadoDAO) FindAll(ctx context.Context) ([]Resultado, error) {
	var resultados []Resultado

	result := d.db.WithContext(ctx).
		Order("departamento_id ASC, votos DESC").
		Find(&resultados)
	if result.Error != nil {
		return nil, result.Error
	}

	return resultados, nil
}

func (d *ResultadoDAO) FindByDepartamento(ctx context.Context, departamentoID string) ([]Resultado, error) {
	var resultados []Resultado

	result := d.db.WithContext(ctx).
		Where("departamento_id = ?", departamentoID).
		Order("votos DESC").
		Find(&resultados)
	if result.Error != nil {
		return nil, result.Error
	}

	return resultados, nil
}
