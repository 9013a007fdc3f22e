// Command socketio-example connects to a Socket.IO server, attaches the
// default namespace, then attaches "/chat" and sends one hello event
// with two binary attachments — a port of the original component's
// Linux example application.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bubblesnake/esp-socketio-client/client"
	applog "github.com/bubblesnake/esp-socketio-client/pkg/log"
	"github.com/bubblesnake/esp-socketio-client/socketio/bus"
	"github.com/bubblesnake/esp-socketio-client/socketio/packet"
	"github.com/bubblesnake/esp-socketio-client/transport/ws"
)

func main() {
	url := flag.String("url", "ws://localhost:3000/socket.io/?EIO=4&transport=websocket", "Socket.IO server WebSocket URL")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		applog.DEBUG = true
		os.Setenv("DEBUG", "socketio-example,client,transport/ws")
	}

	opts := client.DefaultOptions()
	opts.SetURL(*url)

	c, err := client.Init(ws.NewDialer(), opts)
	if err != nil {
		log.Fatalf("init: %v", err)
	}

	appLog := applog.NewLog("socketio-example")

	c.Register(bus.Opened, func(kind bus.Kind, ev bus.Event) {
		appLog.Info("handshake complete, sid=%s", c.Sid())
		if err := c.ConnectNsp(context.Background(), "/"); err != nil {
			appLog.Error("connect_nsp(/) failed: %s", err.Error())
		}
	})

	c.Register(bus.NSConnected, func(kind bus.Kind, ev bus.Event) {
		nsp := ev.Packet.Nsp()
		if nsp == "/" {
			appLog.Info("connected to default namespace")
			if err := c.ConnectNsp(context.Background(), "/chat"); err != nil {
				appLog.Error("connect_nsp(/chat) failed: %s", err.Error())
			}
			return
		}

		appLog.Info("connected to namespace %q", nsp)
		sendHello(c, appLog, nsp)
	})

	c.Register(bus.Data, func(kind bus.Kind, ev bus.Event) {
		printPacket(appLog, ev.Packet)
	})

	c.Register(bus.Error, func(kind bus.Kind, ev bus.Event) {
		if ev.WsEvent != nil {
			appLog.Error("socket.io error: %s", ev.WsEvent.Error())
		} else {
			appLog.Error("liveness watchdog expired")
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.Start(ctx); err != nil {
		log.Fatalf("start: %v", err)
	}

	<-ctx.Done()

	_ = c.Close(2 * time.Second)
	_ = c.Destroy()
}

func sendHello(c *client.Client, appLog *applog.Log, nsp string) {
	tx := c.GetTxPacket()
	tx.Reset()
	tx.SetHeader(packet.EIOMessage, packet.SIOBinaryEvent, nsp, 0)

	payload, _ := json.Marshal([]any{
		"hello",
		1,
		true,
		3.14,
		map[string]any{"_placeholder": true, "num": 0},
		map[string]any{"_placeholder": true, "num": 1},
	})
	tx.SetJSON(payload)
	tx.AddBinary([]byte{0xDE, 0xAD})
	tx.AddBinary([]byte{0xBE, 0xEF})

	if err := c.SendData(context.Background(), tx); err != nil {
		appLog.Error("send_data failed: %s", err.Error())
	}
	tx.Reset()
}

func printPacket(appLog *applog.Log, p *packet.Packet) {
	appLog.Info("EIO: %c", byte(p.EIOType()))
	appLog.Info("SIO: %c", byte(p.SIOType()))
	appLog.Info("Namespace: %s", p.Nsp())
	appLog.Info("Event ID: %d", p.EventID())
	appLog.Info("%s", string(p.JSON()))
	for i, b := range p.Attachments() {
		appLog.Info("+ <Buffer %d %X>", i, b)
	}
}
