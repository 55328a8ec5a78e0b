package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/flowmesh/flowmesh/internal/pkg/log"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/cluster"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/store"
)

const testCluster = "test-cluster"

type testDeps struct {
	store  *store.Store
	client coordination.Client
	logger log.DebugLogger
	clock  *clockwork.FakeClock
	names  *staticNames
}

// staticNames is a stand-in for the watch-driven name cache.
type staticNames struct {
	names []string
}

func (v *staticNames) GetAllDatastreamNames() []string {
	return v.names
}

func newTestStore(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		client: coordination.NewMemoryClient(),
		logger: log.NewDebugLogger(),
		clock:  clockwork.NewFakeClockAt(time.Date(2000, 1, 1, 1, 0, 0, 0, time.UTC)),
		names:  &staticNames{},
	}
	d.store = store.New(d.logger, d.client, d.names, testCluster, store.WithClock(d.clock))
	return d
}

// registerInstance adds a cluster member, so its hostname passes the
// assignment validation.
func (d *testDeps) registerInstance(t *testing.T, ctx context.Context, hostname string, sequence int64) {
	t.Helper()
	instance := cluster.FormatInstanceName(hostname, sequence)
	path := keybuilder.Instances(testCluster) + "/" + instance
	require.NoError(t, d.client.WriteData(ctx, path, ""))
}

// dmsRootValue reads the leader notification node.
func (d *testDeps) dmsRootValue(t *testing.T, ctx context.Context) string {
	t.Helper()
	value, _, err := d.client.ReadData(ctx, keybuilder.Datastreams(testCluster))
	require.NoError(t, err)
	return value
}
