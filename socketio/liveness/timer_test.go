package liveness

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestArmFires(t *testing.T) {
	w := New()
	var fired atomic.Bool

	w.Arm(20*time.Millisecond, func() { fired.Store(true) })

	time.Sleep(100 * time.Millisecond)
	if !fired.Load() {
		t.Fatal("watchdog did not fire")
	}
}

func TestCancelPreventsFire(t *testing.T) {
	w := New()
	var fired atomic.Bool

	w.Arm(30*time.Millisecond, func() { fired.Store(true) })
	w.Cancel()

	time.Sleep(80 * time.Millisecond)
	if fired.Load() {
		t.Fatal("watchdog fired after Cancel")
	}
}

func TestRearmResetsDeadline(t *testing.T) {
	w := New()
	var fired atomic.Bool

	w.Arm(30*time.Millisecond, func() { fired.Store(true) })
	time.Sleep(15 * time.Millisecond)
	w.Arm(30*time.Millisecond, func() { fired.Store(true) })

	time.Sleep(20 * time.Millisecond)
	if fired.Load() {
		t.Fatal("watchdog fired before the re-armed deadline")
	}

	time.Sleep(30 * time.Millisecond)
	if !fired.Load() {
		t.Fatal("watchdog did not fire after re-armed deadline")
	}
}
