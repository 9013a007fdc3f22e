package client

import "context"

// Conn is the WebSocket transport contract (§6, external collaborator).
// The core treats it as a bidirectional framed channel delivering
// discrete TEXT and BINARY messages in order; it does not know about
// dialing, TLS, or HTTP headers — those are Dialer's job.
type Conn interface {
	// SendText sends one TEXT frame. It blocks until sent or ctx is done.
	SendText(ctx context.Context, data string) error
	// SendBinary sends one BINARY frame. It blocks until sent or ctx is done.
	SendBinary(ctx context.Context, data []byte) error
	// Close closes the connection. Blocking; not bounded by ctx.
	Close() error
}

// FrameKind distinguishes the four transport event kinds delivered to
// the client facade's receive loop.
type FrameKind int

const (
	FrameText FrameKind = iota
	FrameBinary
	FrameClose
	FrameError
)

// Frame is one inbound transport event.
type Frame struct {
	Kind FrameKind
	Text string
	Bin  []byte
	Err  error
}

// Dialer opens a Conn for a URL plus the options' TLS/header/timeout
// materials, and returns a channel of inbound Frames in arrival order.
// The channel is closed when the connection is done (after a FrameClose
// or FrameError has been delivered).
type Dialer interface {
	Dial(ctx context.Context, opts OptionsInterface) (Conn, <-chan Frame, error)
}
