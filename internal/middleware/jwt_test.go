package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func TestAccessTokenRoundTrip(t *testing.T) {
	key := testKey(t)

	tokenStr, err := GenerateAccessToken(key, "owner-123", "owner", time.Hour)
	require.NoError(t, err)

	tok, err := ValidateToken(tokenStr, &key.PublicKey)
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims := tok.Claims.(jwt.MapClaims)
	require.Equal(t, "owner-123", claims["sub"])
	require.Equal(t, "owner", claims["role"])
	require.Equal(t, TokenIssuer, claims["iss"])
}

func TestValidateTokenExpired(t *testing.T) {
	key := testKey(t)

	tokenStr, err := GenerateAccessToken(key, "owner-123", "owner", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, &key.PublicKey)
	require.Error(t, err)
	require.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestValidateTokenWrongKey(t *testing.T) {
	signing := testKey(t)
	other := testKey(t)

	tokenStr, err := GenerateAccessToken(signing, "owner-123", "owner", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, &other.PublicKey)
	require.Error(t, err)
}

func TestValidateTokenWrongIssuer(t *testing.T) {
	key := testKey(t)

	claims := jwt.MapClaims{
		"iss": "someone-else",
		"sub": "owner-123",
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, &key.PublicKey)
	require.Error(t, err)
	require.Contains(t, err.Error(), "issuer")
}

func TestValidateTokenRejectsHMAC(t *testing.T) {
	key := testKey(t)

	claims := jwt.MapClaims{
		"iss": TokenIssuer,
		"sub": "owner-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	_, err = ValidateToken(tokenStr, &key.PublicKey)
	require.Error(t, err)
}
