package store

import (
	"context"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// CreateDatastream persists a new record under the key.
//
// The existence check and the final write are two round trips, so two
// concurrent creates for the same key can both pass the check, the final
// write is therefore guarded by a put-if-absent, the loser gets
// AlreadyExistsError as well.
func (s *Store) CreateDatastream(ctx context.Context, key string, datastream *definition.Datastream) error {
	if datastream == nil {
		return NewValidationError(errors.New("datastream is not set"))
	}
	if key == "" {
		return NewValidationError(errors.Errorf(`key for datastream "%s" is not set`, datastream.Name))
	}

	datastream = datastream.Clone()
	if datastream.Name == "" {
		datastream.Name = key
	}
	if datastream.Status == "" {
		datastream.Status = definition.StatusReady
	}
	delete(datastream.Metadata, definition.MetadataNumTasks)
	if err := s.validator.Validate(ctx, datastream); err != nil {
		return NewValidationError(err)
	}

	encoded, err := datastream.ToJSON()
	if err != nil {
		return err
	}
	if err := s.checkBlobSize(key, encoded, "created"); err != nil {
		return err
	}

	path := s.datastreamPath(key)
	if exists, err := s.client.Exists(ctx, path); err != nil {
		return err
	} else if exists {
		return s.alreadyExists(ctx, key, path)
	}

	if err := s.client.EnsurePath(ctx, keybuilder.Datastreams(s.clusterName)); err != nil {
		return err
	}
	if created, err := s.client.WriteDataIfAbsent(ctx, path, encoded); err != nil {
		return err
	} else if !created {
		// a concurrent create won the race between the check and the write
		return s.alreadyExists(ctx, key, path)
	}
	return nil
}

func (s *Store) alreadyExists(ctx context.Context, key, path string) error {
	content, _, err := s.client.ReadData(ctx, path)
	if err != nil {
		s.logger.Warnf(`cannot read conflicting datastream "%s": %s`, key, err)
	}
	storeErr := NewAlreadyExistsError(key, content)
	s.logger.Warn(storeErr.Error())
	return storeErr
}
