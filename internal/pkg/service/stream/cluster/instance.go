// Package cluster models cluster member identity.
//
// A member registers under the instances path with a name in the form
// "{hostname}-{sequence}", the sequence is a zero-padded number issued by the
// coordination service on registration.
package cluster

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flowmesh/flowmesh/internal/pkg/utils/errors"
)

// PausedInstance is a reserved pseudo-member name, it marks globally paused
// work and never corresponds to a real host.
const PausedInstance = "PAUSED_INSTANCE"

const sequenceDigits = 10

// FormatInstanceName produces the member name for a hostname and its
// registration sequence number.
func FormatInstanceName(hostname string, sequence int64) string {
	return fmt.Sprintf("%s-%0*d", hostname, sequenceDigits, sequence)
}

// ParseHostname extracts the hostname from a member name.
func ParseHostname(instance string) (string, error) {
	i := strings.LastIndexByte(instance, '-')
	if i <= 0 {
		return "", errors.Errorf(`instance name "%s" has no sequence suffix`, instance)
	}
	if _, err := strconv.ParseInt(instance[i+1:], 10, 64); err != nil {
		return "", errors.Errorf(`instance name "%s" has a malformed sequence suffix`, instance)
	}
	return instance[:i], nil
}
