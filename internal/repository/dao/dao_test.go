package dao_test

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ferdyn/votacion/internal/repository/dao"
)

// openTestDB gives each test its own in-memory database with the full
// schema migrated. TranslateError makes sqlite duplicate-key failures
// surface as gorm.ErrDuplicatedKey, matching what the postgres driver
// reports in production.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, dao.InitTables(db))

	return db
}

func seedGrupo(t *testing.T, db *gorm.DB, id string, activo bool) {
	t.Helper()

	require.NoError(t, db.Create(&dao.Grupo{
		ID:     id,
		Nombre: "Grupo " + id,
		Activo: activo,
	}).Error)
}

func seedDepartamento(t *testing.T, db *gorm.DB, id, grupoID string, activo bool, activadoEn *time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&dao.Departamento{
		ID:             id,
		GrupoID:        grupoID,
		Nombre:         "Departamento " + id,
		TiempoVotacion: 5,
		Activo:         activo,
		ActivadoEn:     activadoEn,
	}).Error)
}

func seedCandidato(t *testing.T, db *gorm.DB, id, departamentoID string) {
	t.Helper()

	require.NoError(t, db.Create(&dao.Candidato{
		ID:             id,
		DepartamentoID: departamentoID,
		Nombre:         "Candidato " + id,
	}).Error)
}

func seedCodigo(t *testing.T, db *gorm.DB, codigo, grupoID, estado string) {
	t.Helper()

	require.NoError(t, db.Create(&dao.CodigoAcceso{
		Codigo:  codigo,
		Estado:  estado,
		GrupoID: grupoID,
	}).Error)
}
