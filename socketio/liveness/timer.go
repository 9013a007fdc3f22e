// Package liveness implements the one-shot watchdog timer that fires
// when the server stops PINGing within ping_interval+ping_timeout.
package liveness

import (
	"sync"
	"time"

	"github.com/bubblesnake/esp-socketio-client/pkg/utils"
)

// Watchdog is a one-shot timer armed on OPEN and re-armed on every
// incoming PING. Firing does not close the transport; the caller's fn
// is expected to emit an ERROR event and let the application decide.
//
// Cancellation is synchronous: once Cancel returns, fn will not be
// invoked for the arming that was live when Cancel was called.
type Watchdog struct {
	mu    sync.Mutex
	timer *utils.Timer
}

// New returns a disarmed watchdog.
func New() *Watchdog {
	return &Watchdog{}
}

// Arm (re-)schedules fn to run after d, cancelling any prior pending
// arming first. Duration is typically (ping_interval + ping_timeout).
func (w *Watchdog) Arm(d time.Duration, fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = utils.SetTimeout(fn, d)
}

// Cancel stops any pending arming. After Cancel returns, fn from the
// most recent Arm call will not fire.
func (w *Watchdog) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
