package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/cargo-analytics/pkg/jwt"
)

const (
	secret = "test-secret"
	userID = "00000000-0000-0000-0000-000000000001"
)

func TestGenerateYParse_ConRole(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "manager", "cargo-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotUser, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, "manager", gotRole)
}

func TestGenerate_SecretVacio_Error(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, "admin", "cargo-test", 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado_Error(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "cargo-test", -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_Error(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, "admin", "cargo-test", 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}
