package particle

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Engine couples an Animator with the Scheduler that ticks it.
// It is the only thing the session loop talks to.
type Engine struct {
	mu     sync.Mutex
	ctx    context.Context
	anim   *Animator
	sched  Scheduler
	logger *log.Logger
	closed bool
}

// NewEngine creates a stopped engine. Ticks stop when ctx is cancelled.
func NewEngine(ctx context.Context, rng *rand.Rand, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		ctx:    ctx,
		anim:   NewAnimator(rng),
		logger: logger,
	}
}

// Apply pushes new parameters into the animator and re-arms the tick task
// when the set was rebuilt or the interval changed.
func (e *Engine) Apply(p Params) Change {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ChangeNone
	}

	change := e.anim.Configure(p)
	if !p.Enabled {
		if e.sched.Running() {
			e.logger.Debug("particles disabled")
		}
		e.sched.Stop()
		return change
	}

	interval := TickInterval(p.Speed)
	if change == ChangeReinit || !e.sched.Running() || e.sched.Period() != interval {
		e.sched.Start(e.ctx, interval, e.anim.Tick)
	}
	if change != ChangeNone {
		e.logger.Debug("particles configured", "change", change, "count", e.anim.Len(), "interval", interval)
	}
	return change
}

// Descriptors returns what to draw this frame.
func (e *Engine) Descriptors() []Descriptor {
	return e.anim.Descriptors()
}

// Animator exposes the underlying animator.
func (e *Engine) Animator() *Animator {
	return e.anim
}

// Interval returns the current tick period, or 0 when stopped.
func (e *Engine) Interval() time.Duration {
	return e.sched.Period()
}

// Close stops ticking. Later Apply calls are ignored.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	e.sched.Stop()
}
