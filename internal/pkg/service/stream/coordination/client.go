// Package coordination provides the hierarchical node API the store is built
// on, backed by etcd. Paths are plain etcd keys, a "child" is any key one
// segment below the path.
package coordination

import (
	"context"
)

// UpdateFn recomputes a node value from the latest observed value.
// The current value is empty if the node does not exist.
type UpdateFn func(current string) (string, error)

// Client is the coordination-service surface consumed by the store.
// Implementations must be safe for concurrent use.
type Client interface {
	// Exists reports whether the node exists.
	Exists(ctx context.Context, path string) (bool, error)
	// ReadData returns the node value, found is false if the node is absent.
	ReadData(ctx context.Context, path string) (value string, found bool, err error)
	// WriteData sets the node value, the node is created if absent.
	WriteData(ctx context.Context, path, value string) error
	// WriteDataIfAbsent creates the node with the value only if it does not
	// exist yet, it reports whether the write happened.
	WriteDataIfAbsent(ctx context.Context, path, value string) (bool, error)
	// EnsurePath creates the node and its ancestors with empty values where
	// absent. Idempotent.
	EnsurePath(ctx context.Context, path string) error
	// GetChildren lists names of the direct children of the node, sorted.
	GetChildren(ctx context.Context, path string) ([]string, error)
	// Delete removes the node, it reports whether the node existed.
	Delete(ctx context.Context, path string) (bool, error)
	// DeleteRecursively removes the node and its whole subtree.
	DeleteRecursively(ctx context.Context, path string) error
	// UpdateDataSerialized applies fn to the latest node value and writes the
	// result back, retrying on contention until the write lands on the value
	// it was computed from.
	UpdateDataSerialized(ctx context.Context, path string, fn UpdateFn) error
}
