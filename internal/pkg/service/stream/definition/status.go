package definition

// Status is the datastream lifecycle state.
type Status string

const (
	StatusInitializing Status = "INITIALIZING"
	// StatusReady is the normal, active state.
	StatusReady   Status = "READY"
	StatusPaused  Status = "PAUSED"
	StatusStopped Status = "STOPPED"
	// StatusDeleting is terminal, the record is awaiting removal by the
	// leader.
	StatusDeleting Status = "DELETING"
)

func (s Status) IsDeleting() bool {
	return s == StatusDeleting
}
