package backend

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTInspector_DecodesClaims(t *testing.T) {
	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("unrelated-secret"))
	require.NoError(t, err)

	info, err := JWTInspector{}.Inspect(signed)

	require.NoError(t, err)
	assert.Equal(t, "user", info.Subject)
	assert.True(t, exp.Equal(info.ExpiresAt))
}

func TestJWTInspector_OpaqueToken(t *testing.T) {
	_, err := JWTInspector{}.Inspect("abc")
	assert.Error(t, err)
}
