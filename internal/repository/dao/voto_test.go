package dao_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ferdyn/votacion/internal/repository/dao"
)

// seedVotingScene sets up an active grupo with an active departamento,
// two candidatos and one activo access code.
func seedVotingScene(t *testing.T, db *gorm.DB) {
	t.Helper()

	now := time.Now()
	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", true, &now)
	seedCandidato(t, db, "c1", "d1")
	seedCandidato(t, db, "c2", "d1")
	seedCodigo(t, db, "AAA111", "g1", "activo")
}

func TestVotoDAO_RegisterVoto(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedVotingScene(t, db)

	require.NoError(t, d.RegisterVoto(ctx, "d1", "c1", "AAA111"))

	// The code is consumed and the tally is visible in both candidatos
	// and resultados_votacion.
	c, err := dao.NewCodigoDAO(db).FindByCodigo(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "utilizado", c.Estado)

	var candidato dao.Candidato
	require.NoError(t, db.First(&candidato, "id = ?", "c1").Error)
	assert.Equal(t, 1, candidato.Votos)

	resultados, err := dao.NewResultadoDAO(db).FindByDepartamento(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, resultados, 1)
	assert.Equal(t, "c1", resultados[0].CandidatoID)
	assert.Equal(t, 1, resultados[0].Votos)
}

func TestVotoDAO_RegisterVotoCodeVotesOnce(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedVotingScene(t, db)

	require.NoError(t, d.RegisterVoto(ctx, "d1", "c1", "AAA111"))

	err := d.RegisterVoto(ctx, "d1", "c2", "AAA111")
	require.ErrorIs(t, err, dao.ErrCodigoNoActivo)

	// The failed attempt must not have counted anything.
	var candidato dao.Candidato
	require.NoError(t, db.First(&candidato, "id = ?", "c2").Error)
	assert.Zero(t, candidato.Votos)
}

func TestVotoDAO_RegisterVotoRejectsNonActiveCode(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedVotingScene(t, db)
	seedCodigo(t, db, "PPP000", "g1", "pendiente")
	seedCodigo(t, db, "DDD000", "g1", "desactivado")

	for _, codigo := range []string{"PPP000", "DDD000", "ZZZ999"} {
		err := d.RegisterVoto(ctx, "d1", "c1", codigo)
		require.ErrorIs(t, err, dao.ErrCodigoNoActivo, "codigo %v", codigo)
	}

	var candidato dao.Candidato
	require.NoError(t, db.First(&candidato, "id = ?", "c1").Error)
	assert.Zero(t, candidato.Votos)
}

func TestVotoDAO_RegisterVotoInactiveDepartamentoKeepsCode(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", false, nil)
	seedCandidato(t, db, "c1", "d1")
	seedCodigo(t, db, "AAA111", "g1", "activo")

	err := d.RegisterVoto(ctx, "d1", "c1", "AAA111")
	require.ErrorIs(t, err, dao.ErrDepartamentoInactivo)

	// The whole transaction rolled back: the code is still usable.
	c, err := dao.NewCodigoDAO(db).FindByCodigo(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "activo", c.Estado)
}

func TestVotoDAO_RegisterVotoExpiredWindow(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	past := time.Now().Add(-10 * time.Minute) // tiempo_votacion is 5
	seedGrupo(t, db, "g1", true)
	seedDepartamento(t, db, "d1", "g1", true, &past)
	seedCandidato(t, db, "c1", "d1")
	seedCodigo(t, db, "AAA111", "g1", "activo")

	err := d.RegisterVoto(ctx, "d1", "c1", "AAA111")
	require.ErrorIs(t, err, dao.ErrVotacionExpirada)

	c, err := dao.NewCodigoDAO(db).FindByCodigo(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "activo", c.Estado)
}

func TestVotoDAO_RegisterVotoUnknownCandidato(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedVotingScene(t, db)

	err := d.RegisterVoto(ctx, "d1", "missing", "AAA111")
	require.ErrorIs(t, err, dao.ErrCandidatoNotFound)

	c, err := dao.NewCodigoDAO(db).FindByCodigo(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "activo", c.Estado)
}

func TestVotoDAO_IncrementarVoto(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotoDAO(db)
	ctx := context.Background()

	seedVotingScene(t, db)

	require.NoError(t, d.IncrementarVoto(ctx, "d1", "c1"))
	require.NoError(t, d.IncrementarVoto(ctx, "d1", "c1"))
	require.NoError(t, d.IncrementarVoto(ctx, "d1", "c2"))

	resultados, err := dao.NewResultadoDAO(db).FindByDepartamento(ctx, "d1")
	require.NoError(t, err)
	require.Len(t, resultados, 2)

	// Ordered by votes descending.
	assert.Equal(t, "c1", resultados[0].CandidatoID)
	assert.Equal(t, 2, resultados[0].Votos)
	assert.Equal(t, "c2", resultados[1].CandidatoID)
	assert.Equal(t, 1, resultados[1].Votos)

	// No access code was involved.
	c, err := dao.NewCodigoDAO(db).FindByCodigo(ctx, "AAA111")
	require.NoError(t, err)
	assert.Equal(t, "activo", c.Estado)
}
