package store

import (
	"context"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// UpdateDatastream overwrites the record in place, last write wins, there is
// no version check. The numTasks metadata entry is stripped before the write,
// the value is derived and must never be persisted inside the record.
func (s *Store) UpdateDatastream(ctx context.Context, key string, datastream *definition.Datastream, notifyLeader bool) error {
	if datastream == nil {
		return NewValidationError(errors.New("datastream is not set"))
	}
	if key == "" {
		return NewValidationError(errors.Errorf(`key for datastream "%s" is not set`, datastream.Name))
	}

	if old, err := s.GetDatastream(ctx, key); err != nil {
		return err
	} else if old == nil {
		return NewNotFoundError(key)
	}

	datastream = datastream.Clone()
	if datastream.Name == "" {
		datastream.Name = key
	}
	delete(datastream.Metadata, definition.MetadataNumTasks)
	if err := s.validator.Validate(ctx, datastream); err != nil {
		return NewValidationError(err)
	}

	encoded, err := datastream.ToJSON()
	if err != nil {
		return err
	}
	if err := s.checkBlobSize(key, encoded, "updated"); err != nil {
		return err
	}

	if err := s.client.WriteData(ctx, s.datastreamPath(key), encoded); err != nil {
		return err
	}

	if notifyLeader {
		return s.notifyLeaderOfDataChange(ctx)
	}
	return nil
}
