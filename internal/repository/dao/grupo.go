package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrGrupoNotFound        = errors.New("grupo not found")
	ErrDepartamentoNotFound = errors.New("departamento not found")
	ErrGrupoInactivo        = errors.New("grupo is not active")
)

type Grupo struct {
	ID            string         `gorm:"primaryKey"`
	Nombre        string         `gorm:"not null"`
	Activo        bool           `gorm:"not null;default:false"`
	Departamentos []Departamento `gorm:"foreignKey:GrupoID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Grupo) TableName() string {
	return "grupos_votacion"
}

type Departamento struct {
	ID             string `gorm:"primaryKey"`
	GrupoID        string `gorm:"index;not null"`
	Nombre         string `gorm:"not null"`
	TiempoVotacion int    `gorm:"not null;default:5"` // minutes
	Activo         bool   `gorm:"not null;default:false"`
	ActivadoEn     *time.Time
	Cargos         []Cargo     `gorm:"foreignKey:DepartamentoID"`
	Candidatos     []Candidato `gorm:"foreignKey:DepartamentoID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Departamento) TableName() string {
	return "departamentos"
}

type Cargo struct {
	ID             string `gorm:"primaryKey"`
	DepartamentoID string `gorm:"index;not null"`
	Nombre         string `gorm:"not null"`
	Orden          int    `gorm:"not null"`
}

func (Cargo) TableName() string {
	return "cargos"
}

type Candidato struct {
	ID             string `gorm:"primaryKey"`
	DepartamentoID string `gorm:"index;not null"`
	Nombre         string `gorm:"not null"`
	Votos          int    `gorm:"not null;default:0"`
	CargoAsignado  *string
}

func (Candidato) TableName() string {
	return "candidatos"
}

type GrupoDAO struct {
	db *gorm.DB
}

func NewGrupoDAO(db *gorm.DB) *GrupoDAO {
	return &GrupoDAO{
		db: db,
	}
}

func (d *GrupoDAO) Insert(ctx context.Context, grupo Grupo) (Grupo, error) {
	result := d.db.WithContext(ctx).Create(&grupo)
	if result.Error != nil {
		return Grupo{}, result.Error
	}

	return grupo, nil
}

func (d *GrupoDAO) FindAll(ctx context.Context) ([]Grupo, error) {
	var grupos []Grupo

	result := d.db.WithContext(ctx).
		Preload("Departamentos.Cargos").
		Preload("Departamentos.Candidatos").
		Preload("Departamentos").
		Order("created_at DESC").
		Find(&grupos)
	if result.Error != nil {
		return nil, result.Error
	}

	return grupos, nil
}

func (d *GrupoDAO) FindByID(ctx context.Context, id string) (Grupo, error) {
	var grupo Grupo

	result := d.db.WithContext(ctx).
		Preload("Departamentos.Cargos").
		Preload("Departamentos.Candidatos").
		Preload("Departamentos").
		First(&grupo, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Grupo{}, ErrGrupoNotFound
		}

		return Grupo{}, result.Error
	}

	return grupo, nil
}

// FindActive returns the single grupo with activo = true.
func (d *GrupoDAO) FindActive(ctx context.Context) (Grupo, error) {
	var grupo Grupo

	result := d.db.WithContext(ctx).
		Preload("Departamentos.Cargos").
		Preload("Departamentos.Candidatos").
		Preload("Departamentos").
		First(&grupo, "activo = ?", true)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Grupo{}, ErrGrupoNotFound
		}

		return Grupo{}, result.Error
	}

	return grupo, nil
}

func (d *GrupoDAO) UpdateNombre(ctx context.Context, id, nombre string) error {
	result := d.db.WithContext(ctx).
		Model(&Grupo{}).
		Where("id = ?", id).
		Update("nombre", nombre)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGrupoNotFound
	}

	return nil
}

// Activate flips the grupo on and every other grupo off in one
// transaction, so no reader ever observes two active grupos.
func (d *GrupoDAO) Activate(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Grupo{}).
			Where("id <> ?", id).
			Update("activo", false).Error; err != nil {
			return err
		}

		result := tx.Model(&Grupo{}).
			Where("id = ?", id).
			Update("activo", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGrupoNotFound
		}

		return nil
	})
}

// Deactivate turns the grupo off and forces all of its departamentos
// inactive in the same transaction.
func (d *GrupoDAO) Deactivate(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Grupo{}).
			Where("id = ?", id).
			Update("activo", false)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrGrupoNotFound
		}

		return tx.Model(&Departamento{}).
			Where("grupo_id = ?", id).
			Updates(map[string]interface{}{"activo": false, "activado_en": nil}).Error
	})
}

func (d *GrupoDAO) InsertDepartamento(ctx context.Context, departamento Departamento) (Departamento, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Grupo{}).Where("id = ?", departamento.GrupoID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrGrupoNotFound
		}

		return tx.Create(&departamento).Error
	})
	if err != nil {
		return Departamento{}, err
	}

	return departamento, nil
}

func (d *GrupoDAO) FindDepartamentoByID(ctx context.Context, id string) (Departamento, error) {
	var departamento Departamento

	result := d.db.WithContext(ctx).
		Preload("Cargos").
		Preload("Candidatos").
		First(&departamento, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Departamento{}, ErrDepartamentoNotFound
		}

		return Departamento{}, result.Error
	}

	return departamento, nil
}

func (d *GrupoDAO) InsertCandidato(ctx context.Context, candidato Candidato) (Candidato, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Departamento{}).Where("id = ?", candidato.DepartamentoID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrDepartamentoNotFound
		}

		return tx.Create(&candidato).Error
	})
	if err != nil {
		return Candidato{}, err
	}

	return candidato, nil
}

// InsertCargo assigns orden at append time: one more than the number of
// cargos the departamento already has.
func (d *GrupoDAO) InsertCargo(ctx context.Context, cargo Cargo) (Cargo, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Departamento{}).Where("id = ?", cargo.DepartamentoID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrDepartamentoNotFound
		}

		var existing int64
		if err := tx.Model(&Cargo{}).Where("departamento_id = ?", cargo.DepartamentoID).Count(&existing).Error; err != nil {
			return err
		}
		cargo.Orden = int(existing) + 1

		return tx.Create(&cargo).Error
	})
	if err != nil {
		return Cargo{}, err
	}

	return cargo, nil
}

// ActivateDepartamento enables one departamento and disables all its
// siblings in one transaction. The owning grupo must itself be active.
func (d *GrupoDAO) ActivateDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var grupo Grupo
		if err := tx.First(&grupo, "id = ?", grupoID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGrupoNotFound
			}
			return err
		}
		if !grupo.Activo {
			return ErrGrupoInactivo
		}

		if err := tx.Model(&Departamento{}).
			Where("grupo_id = ? AND id <> ?", grupoID, departamentoID).
			Updates(map[string]interface{}{"activo": false, "activado_en": nil}).Error; err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&Departamento{}).
			Where("id = ? AND grupo_id = ?", departamentoID, grupoID).
			Updates(map[string]interface{}{"activo": true, "activado_en": now})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrDepartamentoNotFound
		}

		return nil
	})
}

// FinalizeDepartamento turns a single departamento off, leaving its
// siblings untouched.
func (d *GrupoDAO) FinalizeDepartamento(ctx context.Context, grupoID, departamentoID string) error {
	result := d.db.WithContext(ctx).Model(&Departamento{}).
		Where("id = ? AND grupo_id = ?", departamentoID, grupoID).
		Updates(map[string]interface{}{"activo": false, "activado_en": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDepartamentoNotFound
	}

	return nil
}

// Delete removes the grupo and everything keyed by it, in dependency
// order: codigos and resultados first, then candidatos/cargos,
// departamentos and finally the grupo row. One transaction, so a failed
// step leaves nothing orphaned.
func (d *GrupoDAO) Delete(ctx context.Context, id string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var grupo Grupo
		if err := tx.Preload("Departamentos").First(&grupo, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGrupoNotFound
			}
			return err
		}

		if err := tx.Where("grupo_id = ?", id).Delete(&CodigoAcceso{}).Error; err != nil {
			return err
		}

		departamentoIDs := make([]string, len(grupo.Departamentos))
		for i, dep := range grupo.Departamentos {
			departamentoIDs[i] = dep.ID
		}

		if len(departamentoIDs) > 0 {
			if err := tx.Where("departamento_id IN ?", departamentoIDs).Delete(&Resultado{}).Error; err != nil {
				return err
			}
			if err := tx.Where("departamento_id IN ?", departamentoIDs).Delete(&Candidato{}).Error; err != nil {
				return err
			}
			if err := tx.Where("departamento_id IN ?", departamentoIDs).Delete(&Cargo{}).Error; err != nil {
				return err
			}
			if err := tx.Where("grupo_id = ?", id).Delete(&Departamento{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&Grupo{}, "id = ?", id).Error
	})
}
