package coordination

import (
	"context"
	"sync"
)

// memoryClient is an in-memory Client for tests and local development.
// It mirrors the etcd client's path semantics exactly.
type memoryClient struct {
	lock  sync.RWMutex
	nodes map[string]string
}

func NewMemoryClient() Client {
	return &memoryClient{nodes: make(map[string]string)}
}

func (c *memoryClient) Exists(_ context.Context, path string) (bool, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	_, ok := c.nodes[path]
	return ok, nil
}

func (c *memoryClient) ReadData(_ context.Context, path string) (string, bool, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	value, ok := c.nodes[path]
	return value, ok, nil
}

func (c *memoryClient) WriteData(_ context.Context, path, value string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.nodes[path] = value
	return nil
}

func (c *memoryClient) WriteDataIfAbsent(_ context.Context, path, value string) (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.nodes[path]; ok {
		return false, nil
	}
	c.nodes[path] = value
	return true, nil
}

func (c *memoryClient) EnsurePath(_ context.Context, path string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, node := range pathAndAncestors(path) {
		if _, ok := c.nodes[node]; !ok {
			c.nodes[node] = ""
		}
	}
	return nil
}

func (c *memoryClient) GetChildren(_ context.Context, path string) ([]string, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	prefix := path + "/"
	return childNames(prefix, func(yield func(string)) {
		for key := range c.nodes {
			yield(key)
		}
	}), nil
}

func (c *memoryClient) Delete(_ context.Context, path string) (bool, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if _, ok := c.nodes[path]; !ok {
		return false, nil
	}
	delete(c.nodes, path)
	return true, nil
}

func (c *memoryClient) DeleteRecursively(_ context.Context, path string) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.nodes, path)
	prefix := path + "/"
	for key := range c.nodes {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.nodes, key)
		}
	}
	return nil
}

func (c *memoryClient) UpdateDataSerialized(_ context.Context, path string, fn UpdateFn) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	newValue, err := fn(c.nodes[path])
	if err != nil {
		return err
	}
	c.nodes[path] = newValue
	return nil
}
