package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corlevo/corlevo/internal/config"
)

func TestTrimProtocol(t *testing.T) {
	assert.Equal(t, "collector:4318", trimProtocol("http://collector:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("https://collector:4318"))
	assert.Equal(t, "collector:4318", trimProtocol("collector:4318"))
}

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{ServiceName: "test"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
