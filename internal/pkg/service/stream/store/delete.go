package store

import (
	"context"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// DeleteDatastream is a soft delete, the record stays in place with the
// DELETING status, the node itself is removed later by the leader. A missing
// record is a no-op. The leader is always notified.
func (s *Store) DeleteDatastream(ctx context.Context, key string) error {
	if key == "" {
		return NewValidationError(errors.New("key is not set"))
	}

	datastream, err := s.GetDatastream(ctx, key)
	if err != nil {
		return err
	}
	if datastream == nil {
		s.logger.Infof(`datastream "%s" does not exist, nothing to delete`, key)
		return nil
	}

	datastream.Status = definition.StatusDeleting
	delete(datastream.Metadata, definition.MetadataNumTasks)
	encoded, err := datastream.ToJSON()
	if err != nil {
		return err
	}

	// the write function ignores the previous stored value
	err = s.client.UpdateDataSerialized(ctx, s.datastreamPath(key), func(string) (string, error) {
		return encoded, nil
	})
	if err != nil {
		return err
	}

	return s.notifyLeaderOfDataChange(ctx)
}

// DeleteDatastreamNumTasks removes the numTasks side node. The main record is
// left untouched and the leader is not notified. Best effort, failures are
// logged, not returned.
func (s *Store) DeleteDatastreamNumTasks(ctx context.Context, key string) {
	path := keybuilder.DatastreamNumTasks(s.clusterName, key)

	deleted, err := s.client.Delete(ctx, path)
	if err != nil {
		s.logger.Errorf(`cannot delete numTasks node of datastream "%s": %s`, key, err)
		return
	}
	if !deleted {
		s.logger.Warnf(`numTasks node of datastream "%s" does not exist, nothing to delete`, key)
		return
	}
	s.logger.Infof(`deleted numTasks node of datastream "%s"`, key)
}
