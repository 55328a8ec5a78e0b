// Package store implements the authoritative, coordination-service-backed
// store of datastream definitions and their task assignments.
//
// The store is a stateless facade over one shared coordination client, it is
// safe for concurrent use. Every mutating operation that changes observable
// datastream state signals the elected leader by writing a fresh timestamp to
// the dms root node, the leader watches that node and rereads the datastream
// set on change.
package store

import (
	"github.com/c2h5oh/datasize"
	"github.com/jonboulle/clockwork"

	"github.com/flowmesh/flowmesh/internal/pkg/log"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/validator"
)

// blobSizeLimit is the backing store's node value ceiling, enforced
// defensively before every create and update.
const blobSizeLimit = datasize.MB

// DatastreamNames is the read-through cache of all datastream names in the
// cluster, eventually consistent with concurrent creations elsewhere.
type DatastreamNames interface {
	GetAllDatastreamNames() []string
}

type Store struct {
	logger      log.Logger
	client      coordination.Client
	cache       DatastreamNames
	validator   validator.Validator
	clock       clockwork.Clock
	clusterName string
}

type Option func(*Store)

// WithClock replaces the wall clock, for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

func New(logger log.Logger, client coordination.Client, cache DatastreamNames, clusterName string, opts ...Option) *Store {
	s := &Store{
		logger:      logger.AddPrefix("[datastream-store]"),
		client:      client,
		cache:       cache,
		validator:   validator.New(),
		clock:       clockwork.NewRealClock(),
		clusterName: clusterName,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) datastreamPath(key string) string {
	return keybuilder.Datastream(s.clusterName, key)
}

func (s *Store) dmsRootPath() string {
	return keybuilder.Datastreams(s.clusterName)
}

func (s *Store) checkBlobSize(key, encoded, action string) error {
	if size := datasize.ByteSize(len(encoded)); size > blobSizeLimit {
		return NewSizeLimitExceededError(key, size, blobSizeLimit, action)
	}
	return nil
}
