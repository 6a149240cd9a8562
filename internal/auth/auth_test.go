package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatlink_backend/internal/config"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", hash)

	assert.True(t, CheckPasswordHash("correct-horse", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("correct-horse", "garbage"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.Error(t, ValidatePassword(""))
}

func TestTokenRoundTrip(t *testing.T) {
	token, expiresAt, err := GenerateToken("user-123", "alice")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	token, _, err := GenerateToken("user-123", "alice")
	require.NoError(t, err)

	_, err = ParseToken(token + "x")
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenSignedWithCurrentSecret(t *testing.T) {
	token, _, err := GenerateToken("user-123", "alice")
	require.NoError(t, err)

	old := config.AppConfig.JWT.Secret
	config.AppConfig.JWT.Secret = "rotated"
	defer func() { config.AppConfig.JWT.Secret = old }()

	_, err = ParseToken(token)
	assert.Error(t, err, "tokens do not survive secret rotation")
}
