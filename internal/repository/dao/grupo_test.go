package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferdyn/votacion/internal/repository/dao"
)

func TestGrupoDAO_Activate(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	seedGrupo(t, db, "g1", true)
	seedGrupo(t, db, "g2", false)
	seedGrupo(t, db, "g3", false)

	require.NoError(t, d.Activate(ctx, "g2"))

	grupos, err := d.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, grupos, 3)

	activos := 0
	for _, g := range grupos {
		if g.Activo {
			activos++
			assert.Equal(t, "g2", g.ID)
		}
	}
	assert.Equal(t, 1, activos, "exactly one grupo must be active")
}

func TestGrupoDAO_ActivateNotFound(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)

	seedGrupo(t, db, "g1", true)

	err := d.Activate(context.Background(), "missing")
	require.ErrorIs(t, err, dao.ErrGrupoNotFound)

	// The rollback must leave g1 untouched.
	grupo, err := d.FindByID(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, grupo.Activo)
}

func TestGrupoDAO_DeactivateCascadesToDepartamentos(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	now := time.Now()
	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", true, &now)
	seedDepartamento(t, db, "d2", "g1", false, nil)

	require.NoError(t, d.Deactivate(ctx, "g1"))

	grupo, err := d.FindByID(ctx, "g1")
	require.NoError(t, err)
	assert.False(t, grupo.Activo)
	for _, dep := range grupo.Departamentos {
		assert.False(t, dep.Activo)
		assert.Nil(t, dep.ActivadoEn)
	}
}

func TestGrupoDAO_InsertDepartamentoRequiresGrupo(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)

	_, err := d.InsertDepartamento(context.Background(), dao.Departamento{
		ID:      "d1",
		GrupoID: "missing",
		Nombre:  "Jóvenes",
	})
	require.ErrorIs(t, err, dao.ErrGrupoNotFound)
}

func TestGrupoDAO_InsertCargoAssignsOrden(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	seedGrupo(t, db, "g1", false)
	seedDepartamento(t, db, "d1", "g1", false, nil)

	first, err := d.InsertCargo(ctx, dao.Cargo{ID: "c1", DepartamentoID: "d1", Nombre: "Presidente"})
	require.NoError(t, err)
	second, err := d.InsertCargo(ctx, dao.Cargo{ID: "c2", DepartamentoID: "d1", Nombre: "Secretario"})
	require.NoError(t, err)
	third, err := d.InsertCargo(ctx, dao.Cargo{ID: "c3", DepartamentoID: "d1", Nombre: "Tesorero"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.Orden)
	assert.Equal(t, 2, second.Orden)
	assert.Equal(t, 3, third.Orden)
}

func TestGrupoDAO_ActivateDepartamento(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	now := time.Now()
	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", true, &now)
	seedDepartamento(t, db, "d2", "g1", false, nil)

	require.NoError(t, d.ActivateDepartamento(ctx, "g1", "d2"))

	grupo, err := d.FindByID(ctx, "g1")
	require.NoError(t, err)
	for _, dep := range grupo.Departamentos {
		switch dep.ID {
		case "d2":
			assert.True(t, dep.Activo)
			require.NotNil(t, dep.ActivadoEn)
		default:
			assert.False(t, dep.Activo, "sibling %v must be deactivated", dep.ID)
			assert.Nil(t, dep.ActivadoEn)
		}
	}
}

func TestGrupoDAO_ActivateDepartamentoRequiresActiveGrupo(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)

	seedGrupo(t, db, "g1", false)
	seedDepartamento(t, db, "d1", "g1", false, nil)

	err := d.ActivateDepartamento(context.Background(), "g1", "d1")
	require.ErrorIs(t, err, dao.ErrGrupoInactivo)
}

func TestGrupoDAO_FinalizeDepartamento(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	now := time.Now()
	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", true, &now)

	require.NoError(t, d.FinalizeDepartamento(ctx, "g1", "d1"))

	dep, err := d.FindDepartamentoByID(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, dep.Activo)
	assert.Nil(t, dep.ActivadoEn)

	err = d.FinalizeDepartamento(ctx, "g1", "missing")
	require.ErrorIs(t, err, dao.ErrDepartamentoNotFound)
}

func TestGrupoDAO_DeleteCascades(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	seedGrupo(t, db, "g1", false)
	seedDepartamento(t, db, "d1", "g1", false, nil)
	seedCandidato(t, db, "c1", "d1")
	seedCodigo(t, db, "AAA111", "g1", "pendiente")
	require.NoError(t, db.Create(&dao.Cargo{ID: "ca1", DepartamentoID: "d1", Nombre: "Presidente", Orden: 1}).Error)
	require.NoError(t, db.Create(&dao.Resultado{
		DepartamentoID: "d1",
		CandidatoID:    "c1",
		Nombre:         "Candidato c1",
		Votos:          2,
	}).Error)

	// A second grupo must survive untouched.
	seedGrupo(t, db, "g2", false)
	seedCodigo(t, db, "BBB222", "g2", "pendiente")

	require.NoError(t, d.Delete(ctx, "g1"))

	_, err := d.FindByID(ctx, "g1")
	require.ErrorIs(t, err, dao.ErrGrupoNotFound)

	for _, probe := range []struct {
		model interface{}
		where string
		args  []interface{}
	}{
		{&dao.Departamento{}, "grupo_id = ?", []interface{}{"g1"}},
		{&dao.Candidato{}, "departamento_id = ?", []interface{}{"d1"}},
		{&dao.Cargo{}, "departamento_id = ?", []interface{}{"d1"}},
		{&dao.CodigoAcceso{}, "grupo_id = ?", []interface{}{"g1"}},
		{&dao.Resultado{}, "departamento_id = ?", []interface{}{"d1"}},
	} {
		var count int64
		require.NoError(t, db.Model(probe.model).Where(probe.where, probe.args...).Count(&count).Error)
		assert.Zero(t, count)
	}

	var survivors int64
	require.NoError(t, db.Model(&dao.CodigoAcceso{}).Where("grupo_id = ?", "g2").Count(&survivors).Error)
	assert.EqualValues(t, 1, survivors)
}

func TestGrupoDAO_FindActive(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewGrupoDAO(db)
	ctx := context.Background()

	_, err := d.FindActive(ctx)
	require.ErrorIs(t, err, dao.ErrGrupoNotFound)

	seedGrupo(t, db, "g1", false)
	seedGrupo(t, db, "g2", true)

	grupo, err := d.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, "g2", grupo.ID)
}
