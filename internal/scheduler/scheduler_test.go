package scheduler

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestStartFiresRepeatedly(t *testing.T) {
	var fired atomic.Int32
	h := Start(10*time.Millisecond, func() { fired.Add(1) })
	defer h.Stop()

	waitFor(t, func() bool { return fired.Load() >= 3 })
}

func TestStopPreventsFutureTicks(t *testing.T) {
	var fired atomic.Int32
	h := Start(10*time.Millisecond, func() { fired.Add(1) })

	waitFor(t, func() bool { return fired.Load() >= 1 })
	Stop(h)

	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("timer goroutine did not exit")
	}

	after := fired.Load()
	time.Sleep(50 * time.Millisecond)
	if got := fired.Load(); got != after {
		t.Errorf("callback fired %d times after Stop", got-after)
	}

	// Stopping twice is harmless.
	h.Stop()
	Stop(nil)
}

func TestStopDoesNotInterruptRunningTick(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool

	h := Start(5*time.Millisecond, func() {
		select {
		case entered <- struct{}{}:
		default:
			return
		}
		<-release
		finished.Store(true)
	})

	<-entered
	h.Stop()
	close(release)

	<-h.Done()
	if !finished.Load() {
		t.Error("in-flight callback was interrupted")
	}
}

func TestReset(t *testing.T) {
	var fired atomic.Int32
	h := Start(time.Hour, func() { fired.Add(1) })
	defer h.Stop()

	h.Reset(10 * time.Millisecond)
	waitFor(t, func() bool { return fired.Load() >= 2 })
}

func TestResetAfterStop(t *testing.T) {
	h := Start(time.Hour, func() {})
	h.Stop()
	<-h.Done()

	done := make(chan struct{})
	go func() {
		h.Reset(time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Reset blocked on a stopped handle")
	}
}

func TestNonPositiveIntervalUsesDefault(t *testing.T) {
	var fired atomic.Int32
	h := Start(0, func() { fired.Add(1) })
	defer h.Stop()

	time.Sleep(30 * time.Millisecond)
	if fired.Load() != 0 {
		t.Error("zero interval should fall back to DefaultInterval, not spin")
	}
}
