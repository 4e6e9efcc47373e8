package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("segredo123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("segredo123", hash))
	assert.False(t, CheckPasswordHash("senhaerrada", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, time.Hour, JWTClaims{
		AccountID: "acc-1234",
		Email:     "motorista@example.com",
		Role:      "driver",
		DriverID:  "MOT-abcd1234",
	})
	require.NoError(t, err)

	claims, err := ParseJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1234", claims.AccountID)
	assert.Equal(t, "driver", claims.Role)
	assert.Equal(t, "MOT-abcd1234", claims.DriverID)
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("secret-a"), time.Hour, JWTClaims{AccountID: "acc-1"})
	require.NoError(t, err)

	_, err = ParseJWT([]byte("secret-b"), token)
	assert.Error(t, err)
}

func TestJWTExpired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, -time.Minute, JWTClaims{AccountID: "acc-1"})
	require.NoError(t, err)

	_, err = ParseJWT(secret, token)
	assert.Error(t, err)
}
