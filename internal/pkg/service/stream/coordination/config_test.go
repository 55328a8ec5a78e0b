package coordination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination"
)

func TestConfig(t *testing.T) {
	t.Parallel()

	// defaults
	cfg := coordination.NewConfig()
	assert.Equal(t, coordination.DefaultConnectTimeout, cfg.ConnectTimeout)

	// validation
	cfg.Normalize()
	require.Error(t, cfg.Validate())

	cfg = coordination.NewConfig()
	cfg.Endpoint = " etcd:2379/ "
	cfg.Namespace = "/flowmesh/"
	cfg.Normalize()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "etcd:2379", cfg.Endpoint)
	assert.Equal(t, "flowmesh/", cfg.Namespace)

	cfg.Namespace = "/"
	require.Error(t, cfg.Validate())
}
