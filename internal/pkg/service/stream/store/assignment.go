package store

import (
	"context"
	"strconv"

	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/cluster"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/coordination/keybuilder"
	"github.com/flowmesh/flowmesh/internal/pkg/service/stream/definition"
	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// UpdatePartitionAssignments records a new target assignment for the
// datastream's task group.
//
// The assignment is appended to the group's history as a child keyed by the
// current millisecond timestamp, earlier submissions are never overwritten.
// Two submissions within the same millisecond collide on the child name and
// the last writer wins for that slot. With notifyLeader the connector's touch
// node is written as well, a failure of that write is an error, unlike the
// generic dms-root notification.
func (s *Store) UpdatePartitionAssignments(ctx context.Context, key string, datastream *definition.Datastream, targetAssignment *definition.HostTargetAssignment, notifyLeader bool) error {
	if datastream == nil {
		return NewValidationError(errors.New("datastream is not set"))
	}
	if key == "" {
		return NewValidationError(errors.Errorf(`key for datastream "%s" is not set`, datastream.Name))
	}
	if targetAssignment == nil {
		return NewValidationError(errors.New("target assignment is not set"))
	}
	if err := s.validator.Validate(ctx, targetAssignment); err != nil {
		return NewValidationError(err)
	}
	if err := s.verifyHostname(ctx, targetAssignment.TargetHost); err != nil {
		return err
	}

	group := datastream.TaskPrefix()
	base := keybuilder.TargetAssignments(s.clusterName, datastream.ConnectorName, group)
	if err := s.client.EnsurePath(ctx, base); err != nil {
		return err
	}

	encoded, err := targetAssignment.ToJSON()
	if err != nil {
		return err
	}
	timestamp := s.clock.Now().UnixMilli()
	if err := s.client.WriteData(ctx, keybuilder.TargetAssignment(s.clusterName, datastream.ConnectorName, group, timestamp), encoded); err != nil {
		return err
	}

	if notifyLeader {
		touch := keybuilder.TargetAssignmentBase(s.clusterName, datastream.ConnectorName)
		if err := s.client.WriteData(ctx, touch, strconv.FormatInt(s.clock.Now().UnixMilli(), 10)); err != nil {
			s.logger.Warnf("failed to touch the assignment update: %s", err)
			return errors.PrefixError(err, "cannot notify the leader about the assignment update")
		}
	}
	return nil
}

// verifyHostname checks that the hostname belongs to a currently registered,
// non-paused cluster member. A member name that cannot be parsed is skipped,
// not fatal.
func (s *Store) verifyHostname(ctx context.Context, hostname string) error {
	path := keybuilder.Instances(s.clusterName)
	if err := s.client.EnsurePath(ctx, path); err != nil {
		return errors.PrefixError(err, "cannot verify the hostname")
	}
	instances, err := s.client.GetChildren(ctx, path)
	if err != nil {
		return errors.PrefixError(err, "cannot verify the hostname")
	}

	for _, instance := range instances {
		if instance == cluster.PausedInstance {
			continue
		}
		host, err := cluster.ParseHostname(instance)
		if err != nil {
			s.logger.Errorf(`cannot parse instance name "%s": %s`, instance, err)
			continue
		}
		if host == hostname {
			return nil
		}
	}

	storeErr := NewValidationError(errors.Errorf(`hostname "%s" is not a live cluster member`, hostname))
	s.logger.Error(storeErr.Error())
	return storeErr
}
