package coordination

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	etcd "go.etcd.io/etcd/client/v3"

	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// etcdClient implements Client on one shared etcd connection.
// The connection is externally owned, the client never closes it.
type etcdClient struct {
	etcd *etcd.Client
}

func NewEtcdClient(client *etcd.Client) Client {
	return &etcdClient{etcd: client}
}

func (c *etcdClient) Exists(ctx context.Context, path string) (bool, error) {
	resp, err := c.etcd.Get(ctx, path, etcd.WithCountOnly())
	if err != nil {
		return false, errors.PrefixErrorf(err, `cannot check existence of "%s"`, path)
	}
	return resp.Count > 0, nil
}

func (c *etcdClient) ReadData(ctx context.Context, path string) (string, bool, error) {
	resp, err := c.etcd.Get(ctx, path)
	if err != nil {
		return "", false, errors.PrefixErrorf(err, `cannot read "%s"`, path)
	}
	if resp.Count == 0 {
		return "", false, nil
	}
	return string(resp.Kvs[0].Value), true, nil
}

func (c *etcdClient) WriteData(ctx context.Context, path, value string) error {
	if _, err := c.etcd.Put(ctx, path, value); err != nil {
		return errors.PrefixErrorf(err, `cannot write "%s"`, path)
	}
	return nil
}

func (c *etcdClient) WriteDataIfAbsent(ctx context.Context, path, value string) (bool, error) {
	resp, err := c.etcd.Txn(ctx).
		If(etcd.Compare(etcd.Version(path), "=", 0)).
		Then(etcd.OpPut(path, value)).
		Commit()
	if err != nil {
		return false, errors.PrefixErrorf(err, `cannot create "%s"`, path)
	}
	return resp.Succeeded, nil
}

func (c *etcdClient) EnsurePath(ctx context.Context, path string) error {
	for _, node := range pathAndAncestors(path) {
		if _, err := c.WriteDataIfAbsent(ctx, node, ""); err != nil {
			return errors.PrefixErrorf(err, `cannot ensure path "%s"`, path)
		}
	}
	return nil
}

func (c *etcdClient) GetChildren(ctx context.Context, path string) ([]string, error) {
	prefix := path + "/"
	resp, err := c.etcd.Get(ctx, prefix, etcd.WithPrefix(), etcd.WithKeysOnly())
	if err != nil {
		return nil, errors.PrefixErrorf(err, `cannot list children of "%s"`, path)
	}
	return childNames(prefix, func(yield func(string)) {
		for _, kv := range resp.Kvs {
			yield(string(kv.Key))
		}
	}), nil
}

func (c *etcdClient) Delete(ctx context.Context, path string) (bool, error) {
	resp, err := c.etcd.Delete(ctx, path)
	if err != nil {
		return false, errors.PrefixErrorf(err, `cannot delete "%s"`, path)
	}
	return resp.Deleted > 0, nil
}

func (c *etcdClient) DeleteRecursively(ctx context.Context, path string) error {
	_, err := c.etcd.Txn(ctx).
		Then(etcd.OpDelete(path), etcd.OpDelete(path+"/", etcd.WithPrefix())).
		Commit()
	if err != nil {
		return errors.PrefixErrorf(err, `cannot delete subtree "%s"`, path)
	}
	return nil
}

var errUpdateConflict = errors.New("node changed during update, retrying")

func (c *etcdClient) UpdateDataSerialized(ctx context.Context, path string, fn UpdateFn) error {
	attempt := func() error {
		resp, err := c.etcd.Get(ctx, path)
		if err != nil {
			return backoff.Permanent(errors.PrefixErrorf(err, `cannot read "%s"`, path))
		}

		current, modRevision := "", int64(0)
		if resp.Count > 0 {
			current = string(resp.Kvs[0].Value)
			modRevision = resp.Kvs[0].ModRevision
		}

		newValue, err := fn(current)
		if err != nil {
			return backoff.Permanent(err)
		}

		// The write must land on the exact value the update was computed
		// from, otherwise recompute against the latest value.
		var cmp etcd.Cmp
		if modRevision == 0 {
			cmp = etcd.Compare(etcd.Version(path), "=", 0)
		} else {
			cmp = etcd.Compare(etcd.ModRevision(path), "=", modRevision)
		}
		txn, err := c.etcd.Txn(ctx).If(cmp).Then(etcd.OpPut(path, newValue)).Commit()
		if err != nil {
			return backoff.Permanent(errors.PrefixErrorf(err, `cannot write "%s"`, path))
		}
		if !txn.Succeeded {
			return errUpdateConflict
		}
		return nil
	}

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = 5 * time.Millisecond
	retry.MaxElapsedTime = 15 * time.Second
	if err := backoff.Retry(attempt, backoff.WithContext(retry, ctx)); err != nil {
		return errors.PrefixErrorf(err, `cannot update "%s"`, path)
	}
	return nil
}

// pathAndAncestors expands "/a/b/c" to ["/a", "/a/b", "/a/b/c"].
func pathAndAncestors(path string) []string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	nodes := make([]string, 0, len(segments))
	node := ""
	for _, segment := range segments {
		node += "/" + segment
		nodes = append(nodes, node)
	}
	return nodes
}

// childNames extracts sorted unique direct child names from keys under the
// prefix.
func childNames(prefix string, keys func(yield func(string))) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	keys(func(key string) {
		rest := strings.TrimPrefix(key, prefix)
		if rest == key || rest == "" {
			return
		}
		name := rest
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			name = rest[:i]
		}
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	})
	sort.Strings(names)
	return names
}
