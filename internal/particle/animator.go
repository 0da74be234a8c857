package particle

import (
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"
)

// Tick cadence: 50ms at speed 1, never faster than one tick per 16ms.
const (
	baseTickInterval = 50 * time.Millisecond
	minTickInterval  = 16 * time.Millisecond
)

// TickInterval returns the period between ticks for a speed multiplier.
func TickInterval(speed float64) time.Duration {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	d := time.Duration(math.Round(float64(baseTickInterval) / speed))
	if d < minTickInterval {
		return minTickInterval
	}
	return d
}

// Change reports what Configure did to the particle set.
type Change int

const (
	ChangeNone     Change = iota // parameters unchanged
	ChangeCleared                // disabled, set is empty
	ChangeReinit                 // every particle redrawn
	ChangeRescaled               // live particles rescaled to a new speed or size
)

func (c Change) String() string {
	switch c {
	case ChangeCleared:
		return "cleared"
	case ChangeReinit:
		return "reinit"
	case ChangeRescaled:
		return "rescaled"
	default:
		return "none"
	}
}

// Animator owns the particle set and advances it one tick at a time.
// All methods are safe for concurrent use; ticks are serialized.
type Animator struct {
	mu          sync.RWMutex
	rng         *rand.Rand
	params      Params
	particles   []Particle
	initialized bool
}

// NewAnimator creates an empty, disabled animator drawing from rng.
// A nil rng gets a time-seeded source.
func NewAnimator(rng *rand.Rand) *Animator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Animator{rng: rng}
}

// Configure applies new parameters.
//
// The set is rebuilt from scratch when the count or palette changes or when
// the animator becomes enabled, and cleared when it is disabled. A change to
// speed or size alone rescales the live particles in place so they keep their
// positions.
func (a *Animator) Configure(p Params) Change {
	p = p.normalized()

	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.params
	a.params = p

	if !p.Enabled {
		a.particles = nil
		a.initialized = false
		return ChangeCleared
	}

	if !a.initialized || !prev.Enabled || prev.Count != p.Count || !slices.Equal(prev.Colors, p.Colors) {
		a.reinit()
		return ChangeReinit
	}

	if prev.Speed != p.Speed || prev.Size != p.Size {
		speedRatio := p.Speed / prev.Speed
		sizeRatio := p.Size / prev.Size
		for i := range a.particles {
			a.particles[i].Speed *= speedRatio
			a.particles[i].Size *= sizeRatio
		}
		return ChangeRescaled
	}

	return ChangeNone
}

// reinit replaces the whole set. Caller holds a.mu.
func (a *Animator) reinit() {
	particles := make([]Particle, a.params.Count)
	for i := range particles {
		particles[i] = spawn(a.rng, i, a.params)
	}
	a.particles = particles
	a.initialized = true
}

// Tick advances every particle once. Particles never read each other's state.
func (a *Animator) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.particles {
		a.step(&a.particles[i])
	}
}

// step moves one particle down by its own speed and wraps it to the top once
// it leaves the bottom edge. Rotation keeps accumulating through a wrap.
func (a *Animator) step(p *Particle) {
	y := p.Y + p.Speed
	p.Rotation = normalizeDegrees(p.Rotation + p.RotationSpeed)

	if y > RespawnY {
		placeAtTop(a.rng, p, a.params.Colors)
		return
	}
	p.Y = y
}

// Particles returns a copy of the current set, ordered by ID.
func (a *Animator) Particles() []Particle {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.particles)
}

// Descriptors returns the render projection of the current set.
// An empty result means nothing should be drawn.
func (a *Animator) Descriptors() []Descriptor {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.particles) == 0 {
		return nil
	}
	out := make([]Descriptor, len(a.particles))
	for i, p := range a.particles {
		out[i] = p.Descriptor()
	}
	return out
}

// Len returns the number of live particles.
func (a *Animator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.particles)
}

// Params returns the parameters last passed to Configure.
func (a *Animator) Params() Params {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p := a.params
	p.Colors = slices.Clone(p.Colors)
	return p
}
