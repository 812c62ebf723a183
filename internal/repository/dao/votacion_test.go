package dao_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferdyn/votacion/internal/repository/dao"
)

func TestVotacionDAO_FindActive(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotacionDAO(db)
	ctx := context.Background()

	_, err := d.FindActive(ctx, "Jóvenes", "AAA111")
	require.ErrorIs(t, err, dao.ErrVotacionNotFound)

	created, err := d.Insert(ctx, dao.Votacion{
		Departamento: "Jóvenes",
		Codigo:       "AAA111",
		Activa:       true,
		Votos:        map[string]int{},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := d.FindActive(ctx, "Jóvenes", "AAA111")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	// Wrong code must not match.
	_, err = d.FindActive(ctx, "Jóvenes", "BBB222")
	require.ErrorIs(t, err, dao.ErrVotacionNotFound)
}

func TestVotacionDAO_DeactivateByDepartamento(t *testing.T) {
	db := openTestDB(t)
	d := dao.NewVotacionDAO(db)
	ctx := context.Background()

	for _, codigo := range []string{"AAA111", "BBB222"} {
		_, err := d.Insert(ctx, dao.Votacion{
			Departamento: "Jóvenes",
			Codigo:       codigo,
			Activa:       true,
			Votos:        map[string]int{},
		})
		require.NoError(t, err)
	}
	_, err := d.Insert(ctx, dao.Votacion{
		Departamento: "Damas",
		Codigo:       "CCC333",
		Activa:       true,
		Votos:        map[string]int{},
	})
	require.NoError(t, err)

	deactivated, err := d.DeactivateByDepartamento(ctx, "Jóvenes")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deactivated)

	_, err = d.FindActive(ctx, "Jóvenes", "AAA111")
	require.ErrorIs(t, err, dao.ErrVotacionNotFound)

	// The other departamento's session is untouched.
	_, err = d.FindActive(ctx, "Damas", "CCC333")
	require.NoError(t, err)
}
