package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "b8a3c2267dc85f855dea9b46b452bf20"

func TestNewTokenGenerator(t *testing.T) {
	tg := NewTokenGenerator("test-secret-key", 24*time.Hour)

	assert.NotNil(t, tg)
	assert.Equal(t, "test-secret-key", tg.secret)
	assert.Equal(t, 24*time.Hour, tg.tokenExpiry)
}

func TestTokenGenerator_GenerateAndValidate(t *testing.T) {
	tg := NewTokenGenerator(testSecret, time.Hour)

	token, err := tg.GenerateToken("5f1b7a9e-3c4d-4e5f-8a9b-0c1d2e3f4a5b", "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, len(strings.Split(token, ".")))

	claims, err := tg.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "5f1b7a9e-3c4d-4e5f-8a9b-0c1d2e3f4a5b", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestTokenGenerator_ExpiresAfterConfiguredDuration(t *testing.T) {
	tg := NewTokenGenerator(testSecret, 24*time.Hour)

	token, err := tg.GenerateToken("user-1", "alice")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)
	exp, err := parsed.Claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), exp.Time, 5*time.Second)
}

func TestTokenGenerator_ValidateToken(t *testing.T) {
	tg := NewTokenGenerator(testSecret, time.Hour)

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-token" },
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				expired := NewTokenGenerator(testSecret, -time.Minute)
				s, err := expired.GenerateToken("user-1", "alice")
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				other := NewTokenGenerator("another-secret", time.Hour)
				s, err := other.GenerateToken("user-1", "alice")
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "wrong type",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"user_id": "user-1",
					"type":    "refresh",
					"exp":     time.Now().Add(time.Hour).Unix(),
				})
			},
		},
		{
			name: "missing user id",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"type": "access",
					"exp":  time.Now().Add(time.Hour).Unix(),
				})
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"user_id": "user-1",
					"type":    "access",
				})
			},
		},
		{
			name: "none algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{
					"user_id": "user-1",
					"type":    "access",
					"exp":     time.Now().Add(time.Hour).Unix(),
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tg.ValidateToken(tt.token(t))
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
