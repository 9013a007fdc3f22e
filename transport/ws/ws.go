// Package ws is the gorilla/websocket-backed implementation of the
// client.Dialer/client.Conn contract — the one transport this module
// ships for the WebSocket-only wire protocol.
package ws

import (
	"context"
	"errors"
	"net"
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"github.com/bubblesnake/esp-socketio-client/client"
	"github.com/bubblesnake/esp-socketio-client/pkg/log"
	"github.com/bubblesnake/esp-socketio-client/pkg/utils"
)

var ws_log = log.NewLog("transport/ws")

// Dialer implements client.Dialer using gorilla/websocket.
type Dialer struct{}

// NewDialer returns a ready-to-use Dialer.
func NewDialer() *Dialer { return &Dialer{} }

// Dial opens a WebSocket connection to opts.URL(), carrying TLS
// materials and extra headers from opts, and starts the read loop
// goroutine that feeds the returned Frame channel in arrival order —
// grounded on the corpus's dial-then-goroutine-NextReader-loop pattern.
func (d *Dialer) Dial(ctx context.Context, opts client.OptionsInterface) (client.Conn, <-chan client.Frame, error) {
	parsed, err := utils.Url(opts.URL(), "")
	if err != nil {
		return nil, nil, err
	}
	ws_log.Debug("dialing %s", parsed.Id)

	dialer := &gorilla.Dialer{
		Proxy:           http.ProxyFromEnvironment,
		TLSClientConfig: opts.TLSClientConfig(),
	}
	if t := opts.DialTimeout(); t > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t)
		defer cancel()
	}

	headers := http.Header{}
	if eh := opts.ExtraHeaders(); eh != nil {
		headers = eh.Header()
	}

	conn, _, err := dialer.DialContext(ctx, opts.URL(), headers)
	if err != nil {
		return nil, nil, err
	}

	c := &wsConn{conn: conn}
	frames := make(chan client.Frame, 16)
	go c.readLoop(frames)

	return c, frames, nil
}

// wsConn implements client.Conn over a single gorilla/websocket.Conn.
type wsConn struct {
	conn *gorilla.Conn
}

func (c *wsConn) readLoop(frames chan<- client.Frame) {
	defer close(frames)
	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if gorilla.IsUnexpectedCloseError(err) || errors.Is(err, net.ErrClosed) {
				frames <- client.Frame{Kind: client.FrameClose}
			} else {
				ws_log.Debug("read error: %s", err.Error())
				frames <- client.Frame{Kind: client.FrameError, Err: err}
			}
			return
		}

		switch mt {
		case gorilla.TextMessage:
			frames <- client.Frame{Kind: client.FrameText, Text: string(data)}
		case gorilla.BinaryMessage:
			frames <- client.Frame{Kind: client.FrameBinary, Bin: data}
		case gorilla.CloseMessage:
			frames <- client.Frame{Kind: client.FrameClose}
			return
		}
	}
}

func (c *wsConn) SendText(ctx context.Context, data string) error {
	return c.send(ctx, gorilla.TextMessage, []byte(data))
}

func (c *wsConn) SendBinary(ctx context.Context, data []byte) error {
	return c.send(ctx, gorilla.BinaryMessage, data)
}

func (c *wsConn) send(ctx context.Context, mt int, data []byte) error {
	done := make(chan error, 1)
	go func() {
		w, err := c.conn.NextWriter(mt)
		if err != nil {
			done <- err
			return
		}
		if _, err := w.Write(data); err != nil {
			done <- err
			return
		}
		done <- w.Close()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
