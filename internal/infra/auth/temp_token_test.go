package auth

import (
	"testing"
	"time"

	"bazar/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{TempTokenTTL: 30 * time.Minute}

	return cfg
}

func TestTempTokenService_Generate(t *testing.T) {
	svc := NewTempTokenService(tempTokenConfig())

	cleartext, hash, expiry, err := svc.Generate()
	require.NoError(t, err)

	assert.Len(t, cleartext, 40, "20 random bytes hex encoded")
	assert.Len(t, hash, 64, "sha-256 hex encoded")
	assert.NotEqual(t, cleartext, hash)
	assert.Equal(t, hash, svc.HashOf(cleartext))
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiry, time.Minute)
}

func TestTempTokenService_GenerateUnique(t *testing.T) {
	svc := NewTempTokenService(tempTokenConfig())

	first, _, _, err := svc.Generate()
	require.NoError(t, err)
	second, _, _, err := svc.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestTempTokenService_HashOfDeterministic(t *testing.T) {
	svc := NewTempTokenService(tempTokenConfig())

	assert.Equal(t, svc.HashOf("abc"), svc.HashOf("abc"))
	assert.NotEqual(t, svc.HashOf("abc"), svc.HashOf("abd"))
}
