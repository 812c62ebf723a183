package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ferdyn/votacion/internal/relay"
	"github.com/ferdyn/votacion/internal/repository"
	"github.com/ferdyn/votacion/internal/repository/dao"
	"github.com/ferdyn/votacion/internal/service"
)

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

func newCodigoService(t *testing.T, db *gorm.DB, hub *relay.Hub) *service.CodigoService {
	t.Helper()

	repo := repository.NewCodigoRepository(dao.NewCodigoDAO(db))
	grupoRepo := repository.NewGrupoRepository(dao.NewGrupoDAO(db))

	return service.NewCodigoService(repo, grupoRepo, hub)
}

func TestCodigoService_GenerateCodigos(t *testing.T) {
	db := openTestDB(t)
	hub := relay.NewHub()
	svc := newCodigoService(t, db, hub)
	ctx := context.Background()

	require.NoError(t, db.Create(&dao.Grupo{ID: "g1", Nombre: "Grupo 2026"}).Error)

	sub := hub.Subscribe(relay.TablaCodigos)
	defer hub.Unsubscribe(sub)

	codigos, err := svc.GenerateCodigos(ctx, 25, "g1")
	require.NoError(t, err)
	require.Len(t, codigos, 25)

	seen := make(map[string]struct{})
	for _, c := range codigos {
		assert.Len(t, c.Codigo, 6)
		for _, r := range c.Codigo {
			assert.Truef(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
				"unexpected character %q in codigo %v", r, c.Codigo)
		}
		assert.Equal(t, "pendiente", c.Estado)
		assert.Equal(t, "g1", c.GrupoID)

		_, dup := seen[c.Codigo]
		assert.Falsef(t, dup, "codigo %v generated twice", c.Codigo)
		seen[c.Codigo] = struct{}{}
	}

	event := <-sub.C
	assert.Equal(t, relay.TablaCodigos, event.Tabla)
	assert.Equal(t, relay.AccionInsert, event.Accion)
}

func TestCodigoService_GenerateCodigosUnknownGrupo(t *testing.T) {
	db := openTestDB(t)
	svc := newCodigoService(t, db, relay.NewHub())

	_, err := svc.GenerateCodigos(context.Background(), 5, "missing")
	require.ErrorIs(t, err, service.ErrGrupoNotFound)
}

func TestCodigoService_ValidateCodigo(t *testing.T) {
	db := openTestDB(t)
	svc := newCodigoService(t, db, relay.NewHub())
	ctx := context.Background()

	require.NoError(t, db.Create(&dao.Grupo{ID: "g1", Nombre: "Grupo 2026", Activo: true}).Error)
	require.NoError(t, db.Create(&dao.Grupo{ID: "g2", Nombre: "Grupo viejo", Activo: false}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "AAA111", Estado: "activo", GrupoID: "g1"}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "BBB222", Estado: "pendiente", GrupoID: "g1"}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "CCC333", Estado: "utilizado", GrupoID: "g1"}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "DDD444", Estado: "activo", GrupoID: "g2"}).Error)

	tests := []struct {
		name    string
		codigo  string
		grupoID string
		wantErr error
	}{
		{"valid code", "AAA111", "g1", nil},
		{"unknown code", "ZZZ999", "g1", service.ErrCodigoInvalido},
		{"code from another grupo", "DDD444", "g1", service.ErrCodigoInvalido},
		{"pendiente code", "BBB222", "g1", service.ErrCodigoNoActivo},
		{"consumed code", "CCC333", "g1", service.ErrCodigoNoActivo},
		{"inactive grupo", "DDD444", "g2", service.ErrGrupoInactivo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grupo, err := svc.ValidateCodigo(ctx, tt.codigo, tt.grupoID)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.grupoID, grupo.ID)
			assert.True(t, grupo.Activo)
		})
	}

	// Validation is a pure read; the code must still be activo.
	var c dao.CodigoAcceso
	require.NoError(t, db.First(&c, "codigo = ?", "AAA111").Error)
	assert.Equal(t, "activo", c.Estado)
}

func TestCodigoService_ActivateDeactivateDelete(t *testing.T) {
	db := openTestDB(t)
	hub := relay.NewHub()
	svc := newCodigoService(t, db, hub)
	ctx := context.Background()

	require.NoError(t, db.Create(&dao.Grupo{ID: "g1", Nombre: "Grupo 2026"}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "AAA111", Estado: "pendiente", GrupoID: "g1"}).Error)
	require.NoError(t, db.Create(&dao.CodigoAcceso{Codigo: "BBB222", Estado: "pendiente", GrupoID: "g1"}).Error)

	affected, err := svc.ActivateCodigos(ctx, []string{"AAA111", "BBB222"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	affected, err = svc.DeactivateCodigos(ctx, []string{"BBB222"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	affected, err = svc.DeleteCodigos(ctx, []string{"AAA111", "BBB222"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	codigos, err := svc.GetCodigos(ctx)
	require.NoError(t, err)
	assert.Empty(t, codigos)
}
