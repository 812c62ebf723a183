package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrCodigoNoActivo       = errors.New("codigo is not active")
	ErrCandidatoNotFound    = errors.New("candidato not found")
	ErrDepartamentoInactivo = errors.New("departamento is not active")
	ErrVotacionExpirada     = errors.New("voting window has elapsed")
)

// VotoDAO owns the one vote-write path of the system. Everything that
// used to be the remote incrementar_voto procedure plus the separate
// mark-code-used update is a single transaction here, so a vote and the
// consumption of its code either both happen or neither does.
type VotoDAO struct {
	db *gorm.DB
}

func NewVotoDAO(db *gorm.DB) *VotoDAO {
	return &VotoDAO{
		db: db,
	}
}

// RegisterVoto consumes the code and counts the vote atomically.
//
// The code consumption is a guarded update (estado = activo required),
// so two concurrent submissions with the same code cannot both pass: the
// loser's update matches zero rows and its transaction rolls back with
// ErrCodigoNoActivo.
func (d *VotoDAO) RegisterVoto(ctx context.Context, departamentoID, candidatoID, codigo string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&CodigoAcceso{}).
			Where("codigo = ? AND estado = ?", codigo, "activo").
			Update("estado", "utilizado")
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCodigoNoActivo
		}

		var departamento Departamento
		if err := tx.First(&departamento, "id = ?", departamentoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartamentoNotFound
			}
			return err
		}
		if !departamento.Activo {
			return ErrDepartamentoInactivo
		}
		if departamento.ActivadoEn != nil {
			deadline := departamento.ActivadoEn.Add(time.Duration(departamento.TiempoVotacion) * time.Minute)
			if time.Now().After(deadline) {
				return ErrVotacionExpirada
			}
		}

		return incrementarVoto(tx, departamentoID, candidatoID)
	})
}

// IncrementarVoto counts a vote without touching any access code. It
// backs the legacy /api/enviar-voto session path, which gates on a
// votaciones row instead.
func (d *VotoDAO) IncrementarVoto(ctx context.Context, departamentoID, candidatoID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return incrementarVoto(tx, departamentoID, candidatoID)
	})
}

// incrementarVoto bumps the candidate counter and mirrors the new count
// into resultados_votacion within the caller's transaction.
func incrementarVoto(tx *gorm.DB, departamentoID, candidatoID string) error {
	result := tx.Model(&Candidato{}).
		Where("id = ? AND departamento_id = ?", candidatoID, departamentoID).
		UpdateColumn("votos", gorm.Expr("votos + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCandidatoNotFound
	}

	var candidato Candidato
	if err := tx.First(&candidato, "id = ?", candidatoID).Error; err != nil {
		return err
	}

	var resultado Resultado
	err := tx.Where("departamento_id = ? AND candidato_id = ?", departamentoID, candidatoID).
		First(&resultado).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		resultado = Resultado{
			DepartamentoID: departamentoID,
			CandidatoID:    candidatoID,
			Nombre:         candidato.Nombre,
			Votos:          candidato.Votos,
			CargoAsignado:  candidato.CargoAsignado,
		}
		return tx.Create(&resultado).Error
	case err != nil:
		return err
	default:
		return tx.Model(&Resultado{}).
			Where("departamento_id = ? AND candidato_id = ?", departamentoID, candidatoID).
			Updates(map[string]interface{}{
				"nombre": candidato.Nombre,
				"votos":  candidato.Votos,
			}).Error
	}
}
