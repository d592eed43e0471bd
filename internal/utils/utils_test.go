package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.Contains(t, string(hash), "argon2id$v=19$")

	assert.NoError(t, VerifyPassword(string(hash), "correct horse battery staple"))
	assert.Error(t, VerifyPassword(string(hash), "wrong password"))
	assert.Error(t, VerifyPassword("not-a-hash", "anything"))

	// Salted: hashing the same password twice never repeats.
	other, err := Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, string(hash), string(other))
}

func TestGenerateAndVerifyTokens(t *testing.T) {
	AccessTokenSecret = []byte("access-test-secret")
	RefreshTokenSecret = []byte("refresh-test-secret")

	userID := uuid.New()
	access, refresh, jti, err := GenerateTokens(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, jti)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := VerifyJWT(access, AccessTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), accessClaims.Subject)
	assert.Equal(t, jti, accessClaims.ID)

	refreshClaims, err := VerifyJWT(refresh, RefreshTokenSecret)
	require.NoError(t, err)
	assert.Equal(t, jti, refreshClaims.ID)

	// Tokens are bound to their own secret.
	_, err = VerifyJWT(access, RefreshTokenSecret)
	assert.ErrorIs(t, err, jwt.ErrSignatureInvalid)

	_, err = VerifyJWT("garbage.token.value", AccessTokenSecret)
	assert.Error(t, err)
}

func TestContains(t *testing.T) {
	conditions := []string{"mint", "near_mint", "played"}
	assert.True(t, Contains(conditions, "played"))
	assert.False(t, Contains(conditions, "graded"))
	assert.False(t, Contains(nil, "mint"))
}

func TestParseUUID(t *testing.T) {
	id := uuid.New()
	parsed, err := ParseUUID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseUUID("not-a-uuid")
	assert.Error(t, err)
}
