package store

import (
	"context"
	"slices"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
)

// GetDatastream reads one record by key. A missing record is not an error,
// nil is returned. The numTasks value is merged into the metadata fresh from
// its side node on every read, it is never taken from the record itself.
func (s *Store) GetDatastream(ctx context.Context, key string) (*definition.Datastream, error) {
	if key == "" {
		return nil, nil
	}

	value, found, err := s.client.ReadData(ctx, s.datastreamPath(key))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	datastream, err := definition.FromJSON(value)
	if err != nil {
		s.logger.Warnf(`cannot decode datastream "%s": %s`, key, err)
		return nil, nil
	}

	numTasks, found, err := s.client.ReadData(ctx, keybuilder.DatastreamNumTasks(s.clusterName, key))
	if err != nil {
		return nil, err
	}
	if found {
		if datastream.Metadata == nil {
			datastream.Metadata = make(map[string]string)
		}
		datastream.Metadata[definition.MetadataNumTasks] = numTasks
	}

	return datastream, nil
}

// GetAllDatastreams returns all datastream names, sorted.
//
// The name set is served by the cache, so a datastream created concurrently
// elsewhere may be missing until the cache catches up.
func (s *Store) GetAllDatastreams() []string {
	names := slices.Clone(s.cache.GetAllDatastreamNames())
	slices.Sort(names)
	return names
}

// GetAssignedTaskInstance returns the instance the task is assigned to,
// or empty for an unknown task, datastream or assignment.
func (s *Store) GetAssignedTaskInstance(ctx context.Context, datastream, task string) (string, error) {
	if task == "" {
		return "", nil
	}

	stream, err := s.GetDatastream(ctx, datastream)
	if err != nil {
		return "", err
	}
	if stream == nil {
		return "", nil
	}

	value, _, err := s.client.ReadData(ctx, keybuilder.ConnectorTask(s.clusterName, stream.ConnectorName, task))
	if err != nil {
		return "", err
	}
	return value, nil
}
