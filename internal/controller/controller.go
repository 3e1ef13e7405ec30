package controller

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/hoppxi/brightkeep/internal/instance"
	"github.com/hoppxi/brightkeep/internal/scheduler"
	"github.com/hoppxi/brightkeep/internal/state"
	"github.com/hoppxi/brightkeep/pkg/brightness"
	"github.com/hoppxi/brightkeep/pkg/operation"
)

// State is the controller lifecycle state.
type State int32

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// DefaultApplyTimeout bounds a single hardware call.
const DefaultApplyTimeout = 5 * time.Second

var (
	ErrNotRunning     = errors.New("controller is not running")
	ErrAlreadyStarted = errors.New("controller already started")
)

// AcquireFunc takes the single-instance lock.
type AcquireFunc func(name string) (io.Closer, error)

// DefaultAcquire uses the OS instance guard.
func DefaultAcquire(name string) (io.Closer, error) {
	g, err := instance.Acquire(name)
	if err != nil {
		return nil, err
	}
	return g, nil
}

type Options struct {
	Setter       operation.Setter
	Store        state.Store
	Acquire      AcquireFunc
	LockName     string
	Interval     time.Duration
	ApplyTimeout time.Duration
	Logger       *zap.Logger
}

type request struct {
	resolve func(current brightness.Level) (brightness.Level, error)
	reply   chan result
}

type result struct {
	level brightness.Level
	err   error
}

// Controller owns the current brightness level. All mutations and hardware
// calls run on one event loop goroutine; user requests and scheduler ticks
// are both posted to it.
type Controller struct {
	opts Options
	log  *zap.Logger

	mu     sync.Mutex
	guard  io.Closer
	sched  *scheduler.Handle
	quit   chan struct{}
	done   chan struct{}
	cancel context.CancelFunc

	obsMu     sync.RWMutex
	observers []func(brightness.Level)

	state    atomic.Int32
	level    atomic.Int32
	requests chan request
	ticks    chan struct{}
}

func New(opts Options) *Controller {
	if opts.Acquire == nil {
		opts.Acquire = DefaultAcquire
	}
	if opts.LockName == "" {
		opts.LockName = instance.DefaultName
	}
	if opts.Interval <= 0 {
		opts.Interval = scheduler.DefaultInterval
	}
	if opts.ApplyTimeout <= 0 {
		opts.ApplyTimeout = DefaultApplyTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	c := &Controller{
		opts:     opts,
		log:      opts.Logger,
		requests: make(chan request),
		ticks:    make(chan struct{}),
	}
	c.level.Store(int32(brightness.Default))
	return c
}

// Start acquires the instance guard, then loads the persisted level, applies
// it and starts the reapplication timer. If the guard is held elsewhere it
// returns instance.ErrAlreadyRunning without touching hardware or state.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() != Stopped {
		return ErrAlreadyStarted
	}

	guard, err := c.opts.Acquire(c.opts.LockName)
	if err != nil {
		return err
	}
	c.guard = guard

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	c.cancel = cancel

	level := c.opts.Store.Load()
	c.level.Store(int32(level))
	c.log.Info("loaded brightness", zap.Int("level", int(level)))
	c.apply(loopCtx, level, "startup")
	c.notify(level)

	quit := make(chan struct{})
	c.quit = quit
	c.done = make(chan struct{})
	go c.loop(loopCtx, quit, c.done)

	c.sched = scheduler.Start(c.opts.Interval, func() { c.tick(quit) })
	c.state.Store(int32(Running))
	return nil
}

func (c *Controller) loop(ctx context.Context, quit <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-quit:
			return
		case req := <-c.requests:
			level, err := req.resolve(c.CurrentLevel())
			if err == nil {
				c.change(ctx, level)
			}
			req.reply <- result{level: c.CurrentLevel(), err: err}
		case <-c.ticks:
			c.apply(ctx, c.CurrentLevel(), "reapply")
		}
	}
}

func (c *Controller) tick(quit <-chan struct{}) {
	select {
	case c.ticks <- struct{}{}:
	case <-quit:
	}
}

// change runs every step even if an earlier one failed.
func (c *Controller) change(ctx context.Context, level brightness.Level) {
	level = level.Clamp()
	c.level.Store(int32(level))

	c.apply(ctx, level, "user")

	if err := c.opts.Store.Save(level); err != nil {
		c.log.Warn("brightness not persisted", zap.Int("level", int(level)), zap.Error(err))
	}

	c.notify(level)
}

func (c *Controller) apply(ctx context.Context, level brightness.Level, reason string) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.ApplyTimeout)
	defer cancel()

	if err := c.opts.Setter.Apply(ctx, level); err != nil {
		c.log.Warn("brightness not applied",
			zap.String("reason", reason),
			zap.Int("level", int(level)),
			zap.Error(err),
		)
		return
	}
	c.log.Debug("brightness applied", zap.String("reason", reason), zap.Int("level", int(level)))
}

func (c *Controller) notify(level brightness.Level) {
	c.obsMu.RLock()
	observers := c.observers
	c.obsMu.RUnlock()

	for _, fn := range observers {
		fn(level)
	}
}

// OnLevelChanged registers fn to be called with the new level after every
// user change, and once at startup. fn runs on the event loop and must not
// call SetLevel, Adjust or Shutdown.
func (c *Controller) OnLevelChanged(fn func(brightness.Level)) {
	c.obsMu.Lock()
	defer c.obsMu.Unlock()
	c.observers = append(c.observers[:len(c.observers):len(c.observers)], fn)
}

// CurrentLevel returns the in-memory target level.
func (c *Controller) CurrentLevel() brightness.Level {
	return brightness.Level(c.level.Load())
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// SetLevel clamps l, applies it, persists it and notifies observers.
func (c *Controller) SetLevel(l int) (brightness.Level, error) {
	return c.submit(func(brightness.Level) (brightness.Level, error) {
		return brightness.Clamp(l), nil
	})
}

// Adjust applies a request in brightness.Parse syntax ("40", "+10", "-5")
// against the level current at the time the loop handles it.
func (c *Controller) Adjust(arg string) (brightness.Level, error) {
	return c.submit(func(current brightness.Level) (brightness.Level, error) {
		return brightness.Parse(current, arg)
	})
}

func (c *Controller) submit(resolve func(brightness.Level) (brightness.Level, error)) (brightness.Level, error) {
	c.mu.Lock()
	if c.State() != Running {
		c.mu.Unlock()
		return c.CurrentLevel(), ErrNotRunning
	}
	quit := c.quit
	c.mu.Unlock()

	req := request{resolve: resolve, reply: make(chan result, 1)}
	select {
	case c.requests <- req:
	case <-quit:
		return c.CurrentLevel(), ErrNotRunning
	}

	res := <-req.reply
	return res.level, res.err
}

// SetInterval changes the reapplication period of a running controller.
func (c *Controller) SetInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.opts.Interval = d
	if c.sched != nil {
		c.sched.Reset(d)
	}
}

// Shutdown stops the timer and the event loop and releases the guard. No
// final save happens; the last user change was already persisted.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.State() != Running {
		return
	}

	scheduler.Stop(c.sched)
	close(c.quit)
	<-c.done
	c.cancel()

	if c.guard != nil {
		if err := c.guard.Close(); err != nil {
			c.log.Debug("instance guard release failed", zap.Error(err))
		}
	}

	c.sched = nil
	c.guard = nil
	c.state.Store(int32(Stopped))
	c.log.Info("brightness controller stopped")
}
