package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/chauhanravicr7-netizen/dockside-backend/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

var identity = pkgjwt.Identity{
	UserID:    "00000000-0000-0000-0000-000000000001",
	CompanyID: "00000000-0000-0000-0000-000000000002",
	Role:      "MANAGER",
	Email:     "ops@dockside.test",
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identity, "dockside-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, claims.UserID)
	assert.Equal(t, identity.CompanyID, claims.CompanyID)
	assert.Equal(t, identity.Role, claims.Role)
	assert.Equal(t, identity.Email, claims.Email)
	assert.Equal(t, "dockside-test", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identity, "dockside-test", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, identity, "dockside-test", 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", identity, "x", 60)
	assert.ErrorIs(t, err, pkgjwt.ErrMissingSecret)
	_, err = pkgjwt.Parse("", "a.b.c")
	assert.ErrorIs(t, err, pkgjwt.ErrMissingSecret)
}

func TestParse_SinCompany(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u1"}, "x", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}
