package tracer

import (
	"context"
	"testing"

	"docchat-be/internal/config"
	"docchat-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitTracerDisabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown := InitTracer(context.Background(), config.TracingConfig{Enabled: false}, "test", logger.NewNopLogger())
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestInitTracerEnabled(t *testing.T) {
	cfg := config.TracingConfig{Enabled: true, Endpoint: "localhost:4318", SampleRatio: 0.5}

	shutdown := InitTracer(context.Background(), cfg, "test", logger.NewNopLogger())
	_, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, ok)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSampleRatio(t *testing.T) {
	assert.Equal(t, 1.0, sampleRatio(0))
	assert.Equal(t, 1.0, sampleRatio(3))
	assert.Equal(t, 0.25, sampleRatio(0.25))
}
