package static

// State is the lifecycle of a Server. Transitions only move forward:
// NotStarted -> Listening -> Stopping -> Stopped.
type State int32

const (
	StateNotStarted State = iota
	StateListening
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NOT_STARTED"
	case StateListening:
		return "LISTENING"
	case StateStopping:
		return "STOPPING"
	case StateStopped:
		return "STOPPED"
	default:
		return "UNKNOWN"
	}
}
