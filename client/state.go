package client

// State is the protocol state machine's current state (§4.5).
type State int

const (
	StateInit State = iota
	StateHandshake
	StateOpened
	StateConnected
	StateWaitForBinary
	StateDisconnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateHandshake:
		return "handshake"
	case StateOpened:
		return "opened"
	case StateConnected:
		return "connected"
	case StateWaitForBinary:
		return "wait_for_binary"
	case StateDisconnected:
		return "disconnected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
