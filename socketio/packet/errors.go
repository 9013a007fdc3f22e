package packet

import "errors"

// Error taxonomy per the protocol's failure discriminant. The receive
// path never propagates these past the state machine boundary: it logs,
// resets the rx packet, and either drops the frame or emits an ERROR
// event (see bus.Error).
var (
	// ErrInvalidArg is returned for malformed or out-of-range input that
	// the caller controls (a frame too short to hold its type bytes, a bad
	// packet type byte).
	ErrInvalidArg = errors.New("packet: invalid argument")

	// ErrNotFound is returned when a required structural element is
	// missing: an OPEN member, the '-' after a binary count, or a
	// placeholder-count mismatch.
	ErrNotFound = errors.New("packet: required element not found")

	// ErrParse is returned when the JSON payload itself fails to parse.
	ErrParse = errors.New("packet: malformed JSON payload")
)
