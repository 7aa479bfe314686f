package executor

// State identifies the phase of an execution pass. Used for metrics and
// failure labeling; no state survives across calls.
type State uint8

const (
	StateIdle State = iota
	StateVerifying
	StateLimitChecking
	StateTransferring
	StateRefunding
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateVerifying:
		return "verifying"
	case StateLimitChecking:
		return "limit_checking"
	case StateTransferring:
		return "transferring"
	case StateRefunding:
		return "refunding"
	default:
		return "unknown"
	}
}
