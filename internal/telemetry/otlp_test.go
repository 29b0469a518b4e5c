package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestNewOTLPExporter_DisabledWithoutEndpoint(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	e, err := NewOTLPExporter(context.Background())
	require.NoError(t, err)
	assert.Nil(t, e)
	assert.NotNil(t, e.TracerProvider())
	assert.NoError(t, e.Shutdown(context.Background()))
}

func TestNewOTLPExporter_Enabled(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	for _, endpoint := range []string{"localhost:4318", "http://localhost:4318"} {
		t.Run(endpoint, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", endpoint)
			t.Setenv("OTEL_SERVICE_NAME", "cryptodash-test")

			e, err := NewOTLPExporter(context.Background())
			require.NoError(t, err)
			require.NotNil(t, e)
			assert.Same(t, e.provider, e.TracerProvider())

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			assert.NoError(t, e.Shutdown(ctx))
		})
	}
}
