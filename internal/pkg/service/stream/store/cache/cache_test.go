package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/log"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/store/cache"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/etcdhelper"
)

func TestDatastreamReader(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	client := etcdhelper.ClientForTest(t)

	// pre-existing records and unrelated deeper keys
	_, err := client.Put(ctx, keybuilder.Datastream("c1", "d1"), "{}")
	require.NoError(t, err)
	_, err = client.Put(ctx, keybuilder.DatastreamNumTasks("c1", "d1"), "4")
	require.NoError(t, err)

	reader := cache.NewDatastreamReader(log.NewDebugLogger(), client, "c1")
	require.NoError(t, reader.Start(ctx))
	assert.Equal(t, []string{"d1"}, reader.GetAllDatastreamNames())

	// a created record appears
	// -----------------------------------------------------------------------------------------------------------------
	{
		_, err := client.Put(ctx, keybuilder.Datastream("c1", "d2"), "{}")
		require.NoError(t, err)
		assert.Eventually(t, func() bool {
			return len(reader.GetAllDatastreamNames()) == 2
		}, 5*time.Second, 10*time.Millisecond)
	}

	// a removed record disappears, its side nodes do not matter
	// -----------------------------------------------------------------------------------------------------------------
	{
		_, err := client.Delete(ctx, keybuilder.DatastreamNumTasks("c1", "d1"))
		require.NoError(t, err)
		_, err = client.Delete(ctx, keybuilder.Datastream("c1", "d1"))
		require.NoError(t, err)
		assert.Eventually(t, func() bool {
			names := reader.GetAllDatastreamNames()
			return len(names) == 1 && names[0] == "d2"
		}, 5*time.Second, 10*time.Millisecond)
	}
}
