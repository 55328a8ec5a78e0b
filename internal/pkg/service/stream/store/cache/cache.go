// Package cache maintains the eventually consistent set of all datastream
// names in the cluster.
//
// The set mirrors the children of the dms root by watching the record prefix,
// so a reader can be behind a concurrent creation elsewhere, bounded by the
// watch delivery latency.
package cache

import (
	"context"
	"strings"
	"sync"

	"go.etcd.io/etcd/api/v3/mvccpb"
	etcd "go.etcd.io/etcd/client/v3"

	"github.com/flowmesh/flowmesh/internal/pkg/log"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// DatastreamReader mirrors the datastream name set.
type DatastreamReader struct {
	logger log.Logger
	client *etcd.Client
	prefix string
	wg     sync.WaitGroup
	lock   sync.RWMutex
	names  map[string]struct{}
}

func NewDatastreamReader(logger log.Logger, client *etcd.Client, clusterName string) *DatastreamReader {
	return &DatastreamReader{
		logger: logger.AddPrefix("[datastream-cache]"),
		client: client,
		prefix: keybuilder.Datastreams(clusterName) + "/",
		names:  make(map[string]struct{}),
	}
}

// Start loads the current name set and follows changes until the context is
// canceled.
func (r *DatastreamReader) Start(ctx context.Context) error {
	revision, err := r.load(ctx)
	if err != nil {
		return errors.PrefixError(err, "cannot load datastream names")
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.watch(ctx, revision)
	}()
	return nil
}

// Wait blocks until the watch goroutine stops.
func (r *DatastreamReader) Wait() {
	r.wg.Wait()
}

// GetAllDatastreamNames returns the mirrored name set, unordered.
func (r *DatastreamReader) GetAllDatastreamNames() []string {
	r.lock.RLock()
	defer r.lock.RUnlock()
	names := make([]string, 0, len(r.names))
	for name := range r.names {
		names = append(names, name)
	}
	return names
}

func (r *DatastreamReader) load(ctx context.Context) (revision int64, err error) {
	resp, err := r.client.Get(ctx, r.prefix, etcd.WithPrefix(), etcd.WithKeysOnly())
	if err != nil {
		return 0, err
	}

	names := make(map[string]struct{})
	for _, kv := range resp.Kvs {
		if name, ok := r.recordName(string(kv.Key)); ok {
			names[name] = struct{}{}
		}
	}

	r.lock.Lock()
	r.names = names
	r.lock.Unlock()
	return resp.Header.Revision, nil
}

func (r *DatastreamReader) watch(ctx context.Context, revision int64) {
	for {
		ch := r.client.Watch(ctx, r.prefix, etcd.WithPrefix(), etcd.WithRev(revision+1))
		for resp := range ch {
			if err := resp.Err(); err != nil {
				r.logger.Warnf("watch failed: %s", err)
				break
			}
			r.apply(resp.Events)
			revision = resp.Header.Revision
		}

		if ctx.Err() != nil {
			return
		}

		// the watch stream was interrupted, resync from a fresh snapshot
		r.logger.Info("watch interrupted, reloading datastream names")
		if rev, err := r.load(ctx); err == nil {
			revision = rev
		} else if ctx.Err() != nil {
			return
		} else {
			r.logger.Errorf("cannot reload datastream names: %s", err)
		}
	}
}

func (r *DatastreamReader) apply(events []*etcd.Event) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, event := range events {
		name, ok := r.recordName(string(event.Kv.Key))
		if !ok {
			continue
		}
		switch event.Type {
		case mvccpb.PUT:
			r.names[name] = struct{}{}
		case mvccpb.DELETE:
			delete(r.names, name)
		}
	}
}

// recordName extracts the datastream name from a record key. Keys deeper in
// the subtree, numTasks and assignment tokens, are not records.
func (r *DatastreamReader) recordName(key string) (string, bool) {
	rest := strings.TrimPrefix(key, r.prefix)
	if rest == key || rest == "" || strings.ContainsRune(rest, '/') {
		return "", false
	}
	return rest, true
}
