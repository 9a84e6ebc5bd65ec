package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 42, "ana@example.com", "ana", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	claims, err := ParseToken(testSecret, tok.Token, TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok, err := NewRefreshToken(testSecret, 7, "bo@example.com", 7)
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, tok.Token, TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), claims.UserID)
	assert.Equal(t, "bo@example.com", claims.Email)
	assert.Empty(t, claims.Username)
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	access, err := NewAccessToken(testSecret, 1, "x@example.com", "x", 15)
	require.NoError(t, err)
	refresh, err := NewRefreshToken(testSecret, 1, "x@example.com", 7)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, access.Token, TokenTypeRefresh)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = ParseToken(testSecret, refresh.Token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, 1, "x@example.com", "x", 15)
	require.NoError(t, err)

	_, err = ParseToken("another-secret", tok.Token, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub":     "x@example.com",
		"user_id": 1,
		"type":    TokenTypeAccess,
		"exp":     time.Now().UTC().Add(-time.Minute).Unix(),
		"iat":     time.Now().UTC().Add(-time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(testSecret, raw, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsMissingClaims(t *testing.T) {
	claims := jwt.MapClaims{
		"type": TokenTypeAccess,
		"exp":  time.Now().UTC().Add(time.Hour).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = ParseToken(testSecret, raw, TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.jwt", TokenTypeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
