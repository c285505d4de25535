package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenHelper(nil, "test-secret", 24, 168)

	access, refresh, err := tokens.GenerateAllTokens("jane@example.com", "Jane", "Doe", "advisor", "abc123")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := tokens.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Jane", claims.FirstName)
	assert.Equal(t, "advisor", claims.Role)
	assert.Equal(t, "abc123", claims.UserID)

	// Refresh tokens carry the identity but not the display name.
	refreshClaims, err := tokens.ValidateToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, "abc123", refreshClaims.UserID)
	assert.Empty(t, refreshClaims.FirstName)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := NewTokenHelper(nil, "secret-a", 24, 168)
	verifier := NewTokenHelper(nil, "secret-b", 24, 168)

	access, _, err := signer.GenerateAllTokens("jane@example.com", "Jane", "Doe", "user", "abc123")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenHelper(nil, "test-secret", -1, -1)

	access, _, err := tokens.GenerateAllTokens("jane@example.com", "Jane", "Doe", "user", "abc123")
	assert.NoError(t, err)

	_, err = tokens.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	tokens := NewTokenHelper(nil, "test-secret", 24, 168)

	_, err := tokens.ValidateToken("not.a.token")
	assert.Error(t, err)
}
