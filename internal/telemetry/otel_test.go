package telemetry

import (
	"context"
	"testing"

	"github.com/smart-forensic-ai/sketch-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetupTracing_Disabled(t *testing.T) {
	tp, err := SetupTracing(context.Background(), &config.Config{Telemetry: config.TelemetryCfg{Enabled: true}})
	require.NoError(t, err)
	assert.Nil(t, tp)
}

func TestSamplerFor(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), samplerFor(1.5).Description())
	assert.Contains(t, samplerFor(0.25).Description(), "TraceIDRatioBased")
}
