package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Configure("movies", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestConfigureWithEndpoint(t *testing.T) {
	shutdown, err := Configure("movies", "http://127.0.0.1:14268/api/traces")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
