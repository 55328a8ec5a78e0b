package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
)

// TestStore_NumTasksLifecycle follows one record through create, the side
// value appearing, and an update that tries to smuggle the derived value into
// the persisted record.
func TestStore_NumTasksLifecycle(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	d := newTestStore(t)

	// create with connector "c1" and no metadata, read back
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.store.CreateDatastream(ctx, "d1", &definition.Datastream{ConnectorName: "c1"}))

		datastream, err := d.store.GetDatastream(ctx, "d1")
		require.NoError(t, err)
		require.NotNil(t, datastream)
		assert.Equal(t, definition.StatusReady, datastream.Status)
		assert.NotContains(t, datastream.Metadata, definition.MetadataNumTasks)
	}

	// another actor computes the task count, the read merges it in
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.client.WriteData(ctx, keybuilder.DatastreamNumTasks(testCluster, "d1"), "4"))

		datastream, err := d.store.GetDatastream(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, "4", datastream.Metadata[definition.MetadataNumTasks])
	}

	// an update supplying numTasks=99 does not shadow the side value
	// -----------------------------------------------------------------------------------------------------------------
	{
		updated := &definition.Datastream{
			ConnectorName: "c1",
			Status:        definition.StatusReady,
			Metadata:      map[string]string{definition.MetadataNumTasks: "99"},
		}
		require.NoError(t, d.store.UpdateDatastream(ctx, "d1", updated, true))

		datastream, err := d.store.GetDatastream(ctx, "d1")
		require.NoError(t, err)
		assert.Equal(t, "4", datastream.Metadata[definition.MetadataNumTasks])
	}
}
