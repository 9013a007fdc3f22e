// Package client implements the protocol state machine and public
// facade described in §4.5 and §4.8: it drives the Engine.IO handshake,
// namespace attach/detach, liveness, and binary reassembly, and wires
// transport callbacks into the event bus.
package client

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/bubblesnake/esp-socketio-client/pkg/log"
	"github.com/bubblesnake/esp-socketio-client/pkg/types"
	"github.com/bubblesnake/esp-socketio-client/socketio/bus"
	"github.com/bubblesnake/esp-socketio-client/socketio/liveness"
	"github.com/bubblesnake/esp-socketio-client/socketio/nsreg"
	"github.com/bubblesnake/esp-socketio-client/socketio/packet"
)

var client_log = log.NewLog("client")

// Client is the public facade: a nominal handle wrapping the protocol
// state machine (§9 resolves the source's opaque handles to a nominal
// Go type).
type Client struct {
	mu     sync.Mutex
	state  State
	opts   OptionsInterface
	dialer Dialer

	conn   Conn
	frames <-chan Frame

	sid          string
	pingInterval time.Duration
	pingTimeout  time.Duration
	maxPayload   int

	registry *nsreg.Registry
	watchdog *liveness.Watchdog
	bus      *bus.Bus

	rx *packet.Packet
	tx *packet.Packet

	cancel context.CancelFunc
	done   chan struct{}
}

// Init allocates the state machine, the two preallocated packets, the
// namespace registry, the event bus, and the liveness timer, and
// returns a handle in state INIT.
func Init(dialer Dialer, opts OptionsInterface) (*Client, error) {
	if dialer == nil || opts == nil {
		return nil, ErrInvalidArg
	}
	return &Client{
		state:    StateInit,
		opts:     opts,
		dialer:   dialer,
		registry: nsreg.New(),
		watchdog: liveness.New(),
		bus:      bus.New(),
		rx:       packet.New(),
		tx:       packet.New(),
	}, nil
}

// Register attaches listener for kind (bus.Any matches every kind).
func (c *Client) Register(kind bus.Kind, listener bus.Listener) {
	c.bus.On(kind, listener)
}

// State returns the current protocol state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Sid returns the Engine.IO session id assigned by the handshake, or ""
// before OPEN.
func (c *Client) Sid() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sid
}

// GetTxPacket returns the shared, preallocated send packet. The caller
// must not mutate it concurrently with a SendData call using it.
func (c *Client) GetTxPacket() *packet.Packet {
	return c.tx
}

// GetMaxPayload returns the max payload advertised by OPEN, or -1 if
// the state is not OPENED.
func (c *Client) GetMaxPayload() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateOpened {
		return -1
	}
	return c.maxPayload
}

// Start transitions INIT→HANDSHAKE and dials the transport, starting
// the receive loop that drives every subsequent transition.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateInit {
		c.mu.Unlock()
		return ErrInvalidState
	}
	c.state = StateHandshake
	c.mu.Unlock()

	conn, frames, err := c.dialer.Dial(ctx, c.opts)
	if err != nil {
		return NewTransportError("dial failed", err, ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.mu.Lock()
	c.conn = conn
	c.frames = frames
	c.cancel = cancel
	c.done = make(chan struct{})
	c.mu.Unlock()

	go c.receiveLoop(runCtx)
	return nil
}

// ConnectNsp requests attachment of nsp (default "/" when empty).
// Fails with ErrInvalidState if the transport is not connected or the
// state falls outside the inclusive range [OPENED, DISCONNECTED] in
// the §4.5 state ordering, ErrInvalidArg if nsp is already registered.
func (c *Client) ConnectNsp(ctx context.Context, nsp string) error {
	c.mu.Lock()
	if c.conn == nil || c.state < StateOpened || c.state > StateDisconnected {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if c.registry.Exists(nsp) {
		c.mu.Unlock()
		return ErrInvalidArg
	}
	conn := c.conn
	c.mu.Unlock()

	text := "40"
	if nsp != "" && nsp != "/" {
		text = "40" + nsp + ","
	}
	return conn.SendText(ctx, text)
}

// SendData encodes p and sends the text frame, then every attachment as
// a BINARY frame in order. Fails with ErrInvalidState if the transport
// is not connected, ErrInvalidArg if p's namespace is not registered.
func (c *Client) SendData(ctx context.Context, p *packet.Packet) error {
	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if !c.registry.Exists(p.Nsp()) {
		c.mu.Unlock()
		return ErrInvalidArg
	}
	conn := c.conn
	c.mu.Unlock()

	if t := c.opts.SendTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	text, err := packet.EncodeMessage(p)
	if err != nil {
		return err
	}
	if err := conn.SendText(ctx, text); err != nil {
		return err
	}
	for _, b := range p.Attachments() {
		if err := conn.SendBinary(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// Close sends the Engine.IO CLOSE byte, bounded by timeout, then closes
// the transport (which itself blocks without a timeout bound).
func (c *Client) Close(timeout time.Duration) error {
	c.mu.Lock()
	conn := c.conn
	c.state = StateClosed
	c.mu.Unlock()

	if conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_ = conn.SendText(ctx, "1")

	return conn.Close()
}

// Destroy closes the transport, stops the liveness timer, and releases
// all state. Terminal: the handle must not be reused after Destroy.
func (c *Client) Destroy() error {
	c.watchdog.Cancel()

	client_log.Debug("destroying with active listener kinds: %v", c.bus.ActiveKinds().Keys())

	c.mu.Lock()
	conn := c.conn
	cancel := c.cancel
	c.registry.Destroy()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	var err error
	if conn != nil {
		err = conn.Close()
	}
	return err
}

func (c *Client) receiveLoop(ctx context.Context) {
	defer close(c.done)
	for {
		select {
		case <-ctx.Done():
			return
		case fr, ok := <-c.frames:
			if !ok {
				return
			}
			c.handleFrame(ctx, fr)
		}
	}
}

func (c *Client) handleFrame(ctx context.Context, fr Frame) {
	switch fr.Kind {
	case FrameText:
		c.handleText(ctx, fr.Text)
	case FrameBinary:
		c.handleBinary(fr.Bin)
	case FrameClose:
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
	case FrameError:
		c.emitError(fr.Err, nil)
	}
}

func (c *Client) handleText(ctx context.Context, text string) {
	if len(text) == 0 {
		return
	}

	switch packet.EIOType(text[0]) {
	case packet.EIOOpen:
		c.handleOpen(text[1:])
	case packet.EIOPing:
		c.handlePing(ctx)
	case packet.EIOMessage:
		c.handleMessage(text)
	case packet.EIOClose:
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
	}
}

func (c *Client) handleOpen(payload string) {
	info, err := packet.DecodeOpen([]byte(payload))
	if err != nil {
		client_log.Debug("malformed OPEN frame: %s", err.Error())
		return
	}

	c.mu.Lock()
	c.sid = info.Sid
	c.pingInterval = time.Duration(info.PingInterval) * time.Millisecond
	c.pingTimeout = time.Duration(info.PingTimeout) * time.Millisecond
	c.maxPayload = info.MaxPayload
	c.state = StateOpened
	c.mu.Unlock()

	c.watchdog.Arm(c.pingInterval+c.pingTimeout, func() {
		c.emitError(nil, nil)
	})

	c.bus.Emit(bus.Opened, bus.Event{Client: c})
}

func (c *Client) handlePing(ctx context.Context) {
	c.watchdog.Cancel()

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		if err := conn.SendText(ctx, "3"); err != nil {
			c.emitError(err, nil)
		}
	}

	c.mu.Lock()
	interval, timeout := c.pingInterval, c.pingTimeout
	c.mu.Unlock()
	c.watchdog.Arm(interval+timeout, func() {
		c.emitError(nil, nil)
	})
}

func (c *Client) handleMessage(text string) {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	if state != StateOpened && state != StateConnected && state != StateWaitForBinary {
		return
	}

	if len(text) < 2 {
		return
	}
	sio := packet.SIOType(text[1])

	switch sio {
	case packet.SIOConnect:
		c.handleConnect(text)
	case packet.SIODisconnect:
		c.handleDisconnect(text)
	case packet.SIOConnectErr:
		c.handleConnectError(text)
	case packet.SIOEvent, packet.SIOAck:
		if err := packet.DecodeMessage([]byte(text), c.rx); err != nil {
			client_log.Debug("malformed EVENT/ACK frame: %s", err.Error())
			return
		}
		c.bus.Emit(bus.Data, bus.Event{Packet: c.rx, Client: c})
	case packet.SIOBinaryEvent, packet.SIOBinaryAck:
		if err := packet.DecodeMessage([]byte(text), c.rx); err != nil {
			client_log.Debug("malformed BINARY_EVENT/ACK frame: %s", err.Error())
			return
		}
		c.mu.Lock()
		c.state = StateWaitForBinary
		c.mu.Unlock()
	}
}

func (c *Client) handleConnect(text string) {
	p := packet.New()
	if err := packet.DecodeMessage([]byte(text), p); err != nil {
		client_log.Debug("malformed CONNECT frame: %s", err.Error())
		return
	}

	var sid struct {
		Sid string `json:"sid"`
	}
	_ = json.Unmarshal(p.JSON(), &sid)

	if err := c.registry.Add(p.Nsp(), sid.Sid); err != nil {
		client_log.Debug("CONNECT for already-registered namespace %q", p.Nsp())
	}

	c.mu.Lock()
	c.state = StateConnected
	c.mu.Unlock()

	c.bus.Emit(bus.NSConnected, bus.Event{Packet: p, Client: c})
}

func (c *Client) handleDisconnect(text string) {
	p := packet.New()
	if err := packet.DecodeMessage([]byte(text), p); err != nil {
		client_log.Debug("malformed DISCONNECT frame: %s", err.Error())
		return
	}

	_ = c.registry.Delete(p.Nsp())

	c.mu.Lock()
	if c.registry.Count() == 0 {
		c.state = StateDisconnected
	}
	c.mu.Unlock()
}

// handleConnectError surfaces a CONNECT_ERROR frame (rejected namespace
// attach, auth failure) as an ERROR event carrying a types.ExtendedError
// built from the frame's JSON object, rather than a protocol-level
// transition — §4.5's table gives CONNECT_ERROR no state change.
func (c *Client) handleConnectError(text string) {
	p := packet.New()
	if err := packet.DecodeMessage([]byte(text), p); err != nil {
		client_log.Debug("malformed CONNECT_ERROR frame: %s", err.Error())
		return
	}

	var body struct {
		Message string `json:"message"`
		Data    any    `json:"data"`
	}
	_ = json.Unmarshal(p.JSON(), &body)

	c.bus.Emit(bus.Error, bus.Event{
		WsEvent: types.NewExtendedError(body.Message, body.Data).Err(),
		Packet:  p,
		Client:  c,
	})
}

func (c *Client) handleBinary(data []byte) {
	c.mu.Lock()
	if c.state != StateWaitForBinary {
		c.mu.Unlock()
		return
	}
	c.rx.AddBinary(data)
	complete := c.rx.IsComplete()
	if complete {
		c.state = StateConnected
	}
	c.mu.Unlock()

	if complete {
		c.bus.Emit(bus.Data, bus.Event{Packet: c.rx, Client: c})
	}
}

func (c *Client) emitError(err error, evt *Frame) {
	c.bus.Emit(bus.Error, bus.Event{WsEvent: err, Client: c})
}
