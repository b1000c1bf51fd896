package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aaravmahajanofficial/fashionhub/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestSetup_WithoutExporter(t *testing.T) {

	// Arrange
	cfg := config.Otel{ServiceName: "fashionhub-test", SamplerRatio: 1}

	shutdown, err := Setup(t.Context(), cfg)
	require.NoError(t, err)
	defer func() { assert.NoError(t, shutdown(t.Context())) }()

	var sampled bool
	handler := Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sampled = trace.SpanContextFromContext(r.Context()).IsSampled()
		w.WriteHeader(http.StatusNoContent)
	}), "test")

	// Act
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, sampled)
}

func TestSetup_WithExporterEndpoint(t *testing.T) {

	cfg := config.Otel{ServiceName: "fashionhub-test", ExporterEndpoint: "localhost:4318", SamplerRatio: 0}

	shutdown, err := Setup(t.Context(), cfg)

	require.NoError(t, err)
	assert.NoError(t, shutdown(t.Context()))
}
