package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"GO_ENV", "SESSION_TTL", "QA_BACKEND_URL", "QA_BACKEND_TIMEOUT", "DB_DRIVER", "S3_ENDPOINT", "OTEL_ENABLED", "OTEL_SAMPLE_RATIO"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 30*time.Second, cfg.QA.Timeout)
	assert.Equal(t, "user_token", cfg.Session.CookieName)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("QA_BACKEND_TIMEOUT", "5s")
	t.Setenv("QA_BACKEND_URL", "http://qa:8000")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, time.Hour, cfg.Session.TTL)
	assert.Equal(t, 5*time.Second, cfg.QA.Timeout)
	assert.Equal(t, "http://qa:8000", cfg.QA.BaseURL)
	assert.True(t, cfg.Storage.UseSSL)
	assert.Equal(t, TracingConfig{Enabled: true, Endpoint: "collector:4318", SampleRatio: 0.25}, cfg.Tracing)
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	t.Setenv("SOME_DURATION", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
