package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "honeypot-lab", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.InDelta(t, 0.3, cfg.Engine.DetectionThreshold, 1e-9)
	assert.Equal(t, "91", cfg.Engine.DefaultCountryCode)

	assert.InDelta(t, 0.3, cfg.Engine.Weights.UPIID, 1e-9)
	assert.InDelta(t, 0.3, cfg.Engine.Weights.PhishingLink, 1e-9)
	assert.InDelta(t, 0.2, cfg.Engine.Weights.BankAccount, 1e-9)
	assert.InDelta(t, 0.1, cfg.Engine.Weights.PhoneNumber, 1e-9)

	assert.InDelta(t, 0.8, cfg.Engine.Escalation.HighConfidence, 1e-9)
	assert.Equal(t, 3, cfg.Engine.Escalation.HighConfidenceTurns)
	assert.InDelta(t, 0.5, cfg.Engine.Escalation.ModerateConfidence, 1e-9)
	assert.Equal(t, 8, cfg.Engine.Escalation.ModerateTurns)
	assert.Equal(t, 15, cfg.Engine.Escalation.MaxTurns)

	assert.False(t, cfg.Redis.Enabled)
	assert.False(t, cfg.NATS.Enabled)
	assert.Empty(t, cfg.Callback.URL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HONEYPOT_AUTH_API_KEY", "test-key")
	t.Setenv("HONEYPOT_CALLBACK_URL", "https://reports.example.com/callback")
	t.Setenv("HONEYPOT_REDIS_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Auth.APIKey)
	assert.Equal(t, "https://reports.example.com/callback", cfg.Callback.URL)
	assert.True(t, cfg.Redis.Enabled)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "localhost", Port: 6379}
	assert.Equal(t, "localhost:6379", cfg.Addr())
}
