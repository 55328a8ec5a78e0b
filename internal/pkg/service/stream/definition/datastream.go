// Package definition contains the datastream data model and its wire form.
package definition

import (
	"encoding/json"
	"maps"

	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// Metadata keys with a defined meaning, everything else in the metadata map
// is free-form.
const (
	// MetadataNumTasks is the runtime-computed task count. It is merged into
	// the record from a side node on read and must never be persisted inside
	// the record itself.
	MetadataNumTasks = "numTasks"
	// MetadataTaskPrefix overrides the task group name derived from the
	// datastream name.
	MetadataTaskPrefix = "system.taskPrefix"
)

// Datastream is a named stream-processing configuration tracked by the
// cluster. It is persisted as a single JSON blob.
type Datastream struct {
	Name          string            `json:"name" validate:"required"`
	ConnectorName string            `json:"connectorName" validate:"required"`
	Source        string            `json:"source,omitempty"`
	Destination   string            `json:"destination,omitempty"`
	Metadata      map[string]string `json:"metadata"`
	Status        Status            `json:"status" validate:"omitempty,oneof=INITIALIZING READY PAUSED STOPPED DELETING"`
}

// TaskPrefix is the task group name for the datastream's assignments.
// It defaults to the datastream name.
func (d *Datastream) TaskPrefix() string {
	if prefix, ok := d.Metadata[MetadataTaskPrefix]; ok && prefix != "" {
		return prefix
	}
	return d.Name
}

// Clone returns a deep copy, the metadata map is not shared.
func (d *Datastream) Clone() *Datastream {
	clone := *d
	clone.Metadata = maps.Clone(d.Metadata)
	return &clone
}

// ToJSON encodes the record to its wire form.
func (d *Datastream) ToJSON() (string, error) {
	bytes, err := json.Marshal(d)
	if err != nil {
		return "", errors.PrefixErrorf(err, `cannot encode datastream "%s"`, d.Name)
	}
	return string(bytes), nil
}

// FromJSON decodes a record from its wire form.
func FromJSON(value string) (*Datastream, error) {
	d := &Datastream{}
	if err := json.Unmarshal([]byte(value), d); err != nil {
		return nil, errors.PrefixError(err, "cannot decode datastream")
	}
	return d, nil
}
