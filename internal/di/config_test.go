package di

import (
	"testing"
	"time"

	"ecofin-advisor/internal/application/service"
	"ecofin-advisor/internal/infrastructure/env"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEnv(t *testing.T, vars map[string]string) *env.EnvService {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
	return env.NewEnvService(t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(newEnv(t, nil))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, float32(0.2), cfg.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.True(t, cfg.JSONMode)
	assert.Equal(t, service.DecodeStrict, cfg.DecodeMode)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 0, cfg.MaxConnections)
	assert.Equal(t, int64(0), cfg.MaxBodyBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, "http://localhost:8000", cfg.AdvisorURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(newEnv(t, map[string]string{
		"LLM_PROVIDER":         "Gemini",
		"LLM_API_KEY":          "key",
		"LLM_TEMPERATURE":      "0.7",
		"DECODE_MODE":          "lenient",
		"CORS_ALLOWED_ORIGINS": "https://a.example, https://b.example,",
		"MAX_BODY_BYTES":       "4096",
		"METRICS_ENABLED":      "false",
	}))
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "key", cfg.APIKey)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-6)
	assert.Equal(t, service.DecodeLenient, cfg.DecodeMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, int64(4096), cfg.MaxBodyBytes)
	assert.False(t, cfg.MetricsEnabled)

	pc := cfg.ProviderConfig(nil)
	assert.Equal(t, "gemini", pc.Name)
	assert.Equal(t, "key", pc.APIKey)
	assert.True(t, pc.JSONMode)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := LoadConfig(newEnv(t, map[string]string{"DECODE_MODE": "loose"}))
	require.Error(t, err)

	_, err = LoadConfig(newEnv(t, map[string]string{
		"LLM_TEMPERATURE": "3",
		"MAX_CONNECTIONS": "-1",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_TEMPERATURE")
	assert.Contains(t, err.Error(), "MAX_CONNECTIONS")
}
