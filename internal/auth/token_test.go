package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evently_backend/internal/config"
)

func setTestConfig(t *testing.T) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 5
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = nil })
}

func TestTokenRoundtrip(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
}

func TestParseToken_InvalidSignature(t *testing.T) {
	setTestConfig(t)

	token, err := GenerateToken("user-42")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(t)

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
