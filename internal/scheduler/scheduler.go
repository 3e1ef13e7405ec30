package scheduler

import (
	"sync"
	"time"
)

// DefaultInterval is how often the target brightness is reasserted.
const DefaultInterval = 60 * time.Second

// Handle is a running recurring timer.
type Handle struct {
	stop  chan struct{}
	reset chan time.Duration
	done  chan struct{}
	once  sync.Once
}

// Start calls callback every interval until the handle is stopped. Ticks are
// not queued: a slow callback delays the next tick instead of stacking them.
// A non-positive interval uses DefaultInterval.
func Start(interval time.Duration, callback func()) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}

	h := &Handle{
		stop:  make(chan struct{}),
		reset: make(chan time.Duration),
		done:  make(chan struct{}),
	}

	go h.run(interval, callback)
	return h
}

func (h *Handle) run(interval time.Duration, callback func()) {
	defer close(h.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case d := <-h.reset:
			ticker.Reset(d)
		case <-ticker.C:
			select {
			case <-h.stop:
				return
			default:
			}
			callback()
		}
	}
}

// Reset changes the period. The next tick fires one full interval from now.
func (h *Handle) Reset(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	select {
	case h.reset <- interval:
	case <-h.done:
	}
}

// Stop prevents future ticks. A callback already running is not interrupted;
// use Done to wait for it.
func (h *Handle) Stop() {
	h.once.Do(func() {
		close(h.stop)
	})
}

// Done is closed once the timer goroutine has exited.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Stop stops h. A nil handle is ignored.
func Stop(h *Handle) {
	if h != nil {
		h.Stop()
	}
}
