package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrCodigoNotFound  = errors.New("codigo not found")
	ErrCodigoDuplicado = errors.New("codigo already exists")
)

type CodigoAcceso struct {
	Codigo    string `gorm:"primaryKey;size:6"`
	Estado    string `gorm:"not null;default:pendiente"`
	GrupoID   string `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CodigoAcceso) TableName() string {
	return "codigos_acceso"
}

type CodigoDAO struct {
	db *gorm.DB
}

func NewCodigoDAO(db *gorm.DB) *CodigoDAO {
	return &CodigoDAO{
		db: db,
	}
}

// InsertBatch creates the generated codes in one statement. A collision
// with an existing code surfaces as ErrCodigoDuplicado so the caller
// can regenerate and retry.
func (d *CodigoDAO) InsertBatch(ctx context.Context, codigos []CodigoAcceso) error {
	result := d.db.WithContext(ctx).Create(&codigos)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrCodigoDuplicado
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrCodigoDuplicado
		}

		return result.Error
	}

	return nil
}

func (d *CodigoDAO) FindAll(ctx context.Context) ([]CodigoAcceso, error) {
	var codigos []CodigoAcceso

	result := d.db.WithContext(ctx).Order("codigo ASC").Find(&codigos)
	if result.Error != nil {
		return nil, result.Error
	}

	return codigos, nil
}

func (d *CodigoDAO) FindByCodigo(ctx context.Context, codigo string) (CodigoAcceso, error) {
	var c CodigoAcceso

	result := d.db.WithContext(ctx).First(&c, "codigo = ?", codigo)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CodigoAcceso{}, ErrCodigoNotFound
		}

		return CodigoAcceso{}, result.Error
	}

	return c, nil
}

// UpdateEstadoBulk moves the selected codes to estado. Codes already
// utilizado are excluded from the update: a consumed code never becomes
// usable again.
func (d *CodigoDAO) UpdateEstadoBulk(ctx context.Context, codigos []string, estado string) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&CodigoAcceso{}).
		Where("codigo IN ? AND estado <> ?", codigos, "utilizado").
		Update("estado", estado)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *CodigoDAO) DeleteBulk(ctx context.Context, codigos []string) (int64, error) {
	result := d.db.WithContext(ctx).
		Where("codigo IN ?", codigos).
		Delete(&CodigoAcceso{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
