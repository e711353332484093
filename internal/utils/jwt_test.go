package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken("secret", "01JCLTEST", "OWNER", 15)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	require.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), tok.Exp, 5*time.Second)

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims := parsed.Claims.(jwt.MapClaims)
	require.Equal(t, "01JCLTEST", claims["sub"])
	require.Equal(t, "OWNER", claims["role"])
}

func TestRefreshTokenHashing(t *testing.T) {
	r1, err := NewRefreshToken(7)
	require.NoError(t, err)
	r2, err := NewRefreshToken(7)
	require.NoError(t, err)

	require.NotEqual(t, r1.Raw, r2.Raw)
	require.Len(t, r1.Raw, 96)
	require.Equal(t, HashRefreshRaw(r1.Raw), HashRefreshRaw(r1.Raw))
	require.NotEqual(t, HashRefreshRaw(r1.Raw), HashRefreshRaw(r2.Raw))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	require.True(t, VerifyPassword(hash, "s3cret!"))
	require.False(t, VerifyPassword(hash, "wrong"))
}

func TestPasswordCostClamped(t *testing.T) {
	// An out-of-range cost must not error, only fall back.
	_, err := HashPassword("x", 99)
	require.NoError(t, err)
}
