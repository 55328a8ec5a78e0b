package store

import (
	"context"
	"strconv"
)

// notifyLeaderOfDataChange writes a fresh timestamp to the dms root node.
// Only the write matters, the value is never read back, the leader watches
// the node and rereads the datastream set on any change.
func (s *Store) notifyLeaderOfDataChange(ctx context.Context) error {
	path := s.dmsRootPath()
	return s.client.UpdateDataSerialized(ctx, path, func(string) (string, error) {
		return strconv.FormatInt(s.clock.Now().UnixMilli(), 10), nil
	})
}
