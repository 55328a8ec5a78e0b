package definition

import (
	"encoding/json"

	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// HostTargetAssignment is a desired mapping of one target host to a set of
// partitions for one connector's task group. Submitted assignments are
// appended to a timestamp-keyed history, they never overwrite each other.
type HostTargetAssignment struct {
	TargetHost string   `json:"targetHost" validate:"required"`
	Partitions []string `json:"partitions"`
}

func (a *HostTargetAssignment) ToJSON() (string, error) {
	bytes, err := json.Marshal(a)
	if err != nil {
		return "", errors.PrefixError(err, "cannot encode target assignment")
	}
	return string(bytes), nil
}

func AssignmentFromJSON(value string) (*HostTargetAssignment, error) {
	a := &HostTargetAssignment{}
	if err := json.Unmarshal([]byte(value), a); err != nil {
		return nil, errors.PrefixError(err, "cannot decode target assignment")
	}
	return a, nil
}
