// Package keybuilder maps logical identities to coordination-service paths.
//
// All paths are rooted under a per-cluster namespace:
//
//	/{cluster}/dms                                      datastream records, the node itself is the change-notification signal
//	/{cluster}/dms/{datastream}                         record blob
//	/{cluster}/dms/{datastream}/numTasks                runtime-computed task count
//	/{cluster}/dms/{datastream}/assignmentTokens        in-flight assignment coordination state (opaque)
//	/{cluster}/instances                                registered cluster members
//	/{cluster}/liveinstances                            live cluster members
//	/{cluster}/connectors/{connector}/{task}            task to instance assignment
//	/{cluster}/connectors/{connector}/targetAssignments               assignment touch node
//	/{cluster}/connectors/{connector}/targetAssignments/{group}       assignment history base
//	/{cluster}/connectors/{connector}/targetAssignments/{group}/{ts}  one submitted assignment
//
// The functions are pure, distinct identities never collide on one path.
package keybuilder

import (
	"fmt"
	"strconv"
)

func Cluster(cluster string) string {
	return "/" + cluster
}

// Datastreams is the dms root node, its write is the leader notification
// signal.
func Datastreams(cluster string) string {
	return fmt.Sprintf("/%s/dms", cluster)
}

func Datastream(cluster, datastream string) string {
	return fmt.Sprintf("/%s/dms/%s", cluster, datastream)
}

func DatastreamNumTasks(cluster, datastream string) string {
	return fmt.Sprintf("/%s/dms/%s/numTasks", cluster, datastream)
}

func DatastreamAssignmentTokens(cluster, datastream string) string {
	return fmt.Sprintf("/%s/dms/%s/assignmentTokens", cluster, datastream)
}

func Instances(cluster string) string {
	return fmt.Sprintf("/%s/instances", cluster)
}

func LiveInstances(cluster string) string {
	return fmt.Sprintf("/%s/liveinstances", cluster)
}

func Connector(cluster, connector string) string {
	return fmt.Sprintf("/%s/connectors/%s", cluster, connector)
}

func ConnectorTask(cluster, connector, task string) string {
	return fmt.Sprintf("/%s/connectors/%s/%s", cluster, connector, task)
}

// TargetAssignmentBase is the touch node written to signal the leader that a
// new assignment exists for the connector.
func TargetAssignmentBase(cluster, connector string) string {
	return fmt.Sprintf("/%s/connectors/%s/targetAssignments", cluster, connector)
}

// TargetAssignments is the append-only history base for one task group.
func TargetAssignments(cluster, connector, group string) string {
	return fmt.Sprintf("/%s/connectors/%s/targetAssignments/%s", cluster, connector, group)
}

// TargetAssignment is one submitted assignment, keyed by its millisecond
// timestamp.
func TargetAssignment(cluster, connector, group string, timestamp int64) string {
	return TargetAssignments(cluster, connector, group) + "/" + strconv.FormatInt(timestamp, 10)
}
