package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
)

func TestStore_DeleteDatastream(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	d := newTestStore(t)

	// Delete - absent record is a no-op, no notification
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.store.DeleteDatastream(ctx, "missing"))
		assert.Empty(t, d.dmsRootValue(t, ctx))
	}

	// Delete - soft delete, the record stays with the DELETING status
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.store.CreateDatastream(ctx, "d1", &definition.Datastream{ConnectorName: "mirror"}))
		require.NoError(t, d.store.DeleteDatastream(ctx, "d1"))

		datastream, err := d.store.GetDatastream(ctx, "d1")
		require.NoError(t, err)
		require.NotNil(t, datastream)
		assert.Equal(t, definition.StatusDeleting, datastream.Status)
		assert.True(t, datastream.Status.IsDeleting())

		// the leader was notified
		assert.NotEmpty(t, d.dmsRootValue(t, ctx))
	}

	// Delete - the merged numTasks value is not persisted by the soft delete
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.store.CreateDatastream(ctx, "d2", &definition.Datastream{ConnectorName: "mirror"}))
		require.NoError(t, d.client.WriteData(ctx, keybuilder.DatastreamNumTasks(testCluster, "d2"), "4"))
		require.NoError(t, d.store.DeleteDatastream(ctx, "d2"))

		blob, _, err := d.client.ReadData(ctx, keybuilder.Datastream(testCluster, "d2"))
		require.NoError(t, err)
		assert.NotContains(t, blob, definition.MetadataNumTasks)
	}
}

func TestStore_DeleteDatastreamNumTasks(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	d := newTestStore(t)

	// absent side node - warning, no-op
	// -----------------------------------------------------------------------------------------------------------------
	{
		d.store.DeleteDatastreamNumTasks(ctx, "d1")
		assert.Contains(t, d.logger.WarnMessages(), "does not exist")
	}

	// present side node - deleted, the main record and the dms root stay
	// -----------------------------------------------------------------------------------------------------------------
	{
		require.NoError(t, d.store.CreateDatastream(ctx, "d1", &definition.Datastream{ConnectorName: "mirror"}))
		path := keybuilder.DatastreamNumTasks(testCluster, "d1")
		require.NoError(t, d.client.WriteData(ctx, path, "4"))
		rootBefore := d.dmsRootValue(t, ctx)

		d.store.DeleteDatastreamNumTasks(ctx, "d1")

		exists, err := d.client.Exists(ctx, path)
		require.NoError(t, err)
		assert.False(t, exists)

		datastream, err := d.store.GetDatastream(ctx, "d1")
		require.NoError(t, err)
		assert.NotNil(t, datastream)
		assert.Equal(t, rootBefore, d.dmsRootValue(t, ctx))
	}
}

func TestStore_ForceCleanupDatastream(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	d := newTestStore(t)

	// no assignment tokens - no-op, nothing raised
	// -----------------------------------------------------------------------------------------------------------------
	{
		d.store.ForceCleanupDatastream(ctx, "d1")
		assert.Contains(t, d.logger.InfoMessages(), "nothing to delete")
	}

	// tokens subtree - removed recursively
	// -----------------------------------------------------------------------------------------------------------------
	{
		base := keybuilder.DatastreamAssignmentTokens(testCluster, "d1")
		require.NoError(t, d.client.WriteData(ctx, base, ""))
		require.NoError(t, d.client.WriteData(ctx, base+"/token-1", "x"))
		require.NoError(t, d.client.WriteData(ctx, base+"/token-2", "y"))

		d.store.ForceCleanupDatastream(ctx, "d1")

		for _, path := range []string{base, base + "/token-1", base + "/token-2"} {
			exists, err := d.client.Exists(ctx, path)
			require.NoError(t, err)
			assert.False(t, exists, path)
		}
	}
}
