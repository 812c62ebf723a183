package jwthelper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferdyn/votacion/internal/pkg/jwthelper"
)

func TestCreateAndParseToken(t *testing.T) {
	token, err := jwthelper.CreateToken("test-signing-key", "anfitrion")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := jwthelper.ParseToken("test-signing-key", token)
	require.NoError(t, err)
	assert.Equal(t, "anfitrion", claims.Role)
}

func TestParseTokenWrongKey(t *testing.T) {
	token, err := jwthelper.CreateToken("test-signing-key", "anfitrion")
	require.NoError(t, err)

	_, err = jwthelper.ParseToken("another-key", token)
	require.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := jwthelper.ParseToken("test-signing-key", "not.a.token")
	require.Error(t, err)
}
