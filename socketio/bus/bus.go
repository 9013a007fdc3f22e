// Package bus implements the event bus described in §4.7: four event
// kinds delivered synchronously, in production order, to registered
// listeners.
package bus

import (
	"sync"

	"github.com/bubblesnake/esp-socketio-client/pkg/types"
	"github.com/bubblesnake/esp-socketio-client/socketio/packet"
)

// Kind is one of the four event kinds the bus delivers.
type Kind int

const (
	Error Kind = iota
	Opened
	NSConnected
	Data

	// Any is a sentinel that matches every kind when passed to On.
	Any
)

func (k Kind) String() string {
	switch k {
	case Error:
		return "error"
	case Opened:
		return "opened"
	case NSConnected:
		return "ns_connected"
	case Data:
		return "data"
	case Any:
		return "any"
	default:
		return "unknown"
	}
}

// Event is the stable record delivered to every listener.
type Event struct {
	WsEventID int
	WsEvent   error // non-nil for Error events from a websocket/transport failure or a CONNECT_ERROR frame; nil for liveness expiry
	Packet    *packet.Packet
	Client    any // the client.Client facade; any avoids an import cycle
}

// Listener receives a Kind and its Event, synchronously, on the
// producing goroutine. Listeners do not return values.
type Listener func(Kind, Event)

// Bus dispatches events to registered listeners (kind-specific ones
// first, then Any ones, each group in registration order),
// synchronously and in the same order they were produced — mirroring
// the source's use of a serialized event-loop run after every post.
type Bus struct {
	mu        sync.Mutex
	listeners map[Kind][]Listener
	any       []Listener
	nextID    int
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{listeners: make(map[Kind][]Listener)}
}

// On registers listener for kind. Passing Any registers it for every
// kind.
func (b *Bus) On(kind Kind, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if kind == Any {
		b.any = append(b.any, listener)
		return
	}
	b.listeners[kind] = append(b.listeners[kind], listener)
}

// Emit delivers ev to every listener registered for kind, then to every
// Any listener, each group in registration order, on the calling
// goroutine.
func (b *Bus) Emit(kind Kind, ev Event) {
	b.mu.Lock()
	ev.WsEventID = b.nextID
	b.nextID++
	specific := append([]Listener(nil), b.listeners[kind]...)
	wildcard := append([]Listener(nil), b.any...)
	b.mu.Unlock()

	for _, l := range specific {
		l(kind, ev)
	}
	for _, l := range wildcard {
		l(kind, ev)
	}
}

// ActiveKinds returns a snapshot of the event kinds that currently have
// at least one registered listener, as a msgpack/JSON-marshalable set
// suitable for a diagnostic dump.
func (b *Bus) ActiveKinds() *types.Set[string] {
	b.mu.Lock()
	defer b.mu.Unlock()

	names := make([]string, 0, len(b.listeners)+1)
	for kind, ls := range b.listeners {
		if len(ls) > 0 {
			names = append(names, kind.String())
		}
	}
	if len(b.any) > 0 {
		names = append(names, Any.String())
	}
	return types.NewSet(names...)
}
