package store

import (
	"context"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
)

// ForceCleanupDatastream removes the datastream's assignment tokens subtree.
// The subtree is opaque in-flight coordination state created by other
// components. Best effort, failures are logged, not returned.
func (s *Store) ForceCleanupDatastream(ctx context.Context, key string) {
	path := keybuilder.DatastreamAssignmentTokens(s.clusterName, key)

	exists, err := s.client.Exists(ctx, path)
	if err != nil {
		s.logger.Errorf(`cannot check assignment tokens of datastream "%s": %s`, key, err)
		return
	}
	if !exists {
		s.logger.Infof(`assignment tokens path clear for datastream "%s", nothing to delete`, key)
		return
	}

	if err := s.client.DeleteRecursively(ctx, path); err != nil {
		s.logger.Errorf(`failed to cleanup assignment tokens of datastream "%s": %s`, key, err)
	}
}
