// Package particle animates the decorative particles that fall across the banner.
package particle

import (
	"math"
	"math/rand"
)

// Viewport bounds in percent of the banner area. Y grows downward.
const (
	SpawnMaxX    = 100.0
	SpawnTopY    = -20.0 // exclusive
	SpawnBottomY = -10.0 // inclusive
	RespawnY     = 110.0 // particles past this line wrap back to the top
)

// Defaults applied when a caller leaves speed or size unset.
const (
	DefaultSpeed = 1.0
	DefaultSize  = 3.0
)

// Params is everything the animator reads from the configuration surface.
type Params struct {
	Enabled bool
	Count   int
	Colors  []string
	Speed   float64 // multiplier, also drives the tick interval
	Size    float64 // base particle size in pixels
}

// normalized returns a copy that is safe to store: own palette slice,
// non-negative count, positive speed and size.
func (p Params) normalized() Params {
	out := p
	out.Colors = append([]string(nil), p.Colors...)
	if out.Count < 0 {
		out.Count = 0
	}
	if out.Speed <= 0 {
		out.Speed = DefaultSpeed
	}
	if out.Size <= 0 {
		out.Size = DefaultSize
	}
	return out
}

// Particle is one animated decorative element.
// ID is only stable within one generation of particles.
type Particle struct {
	ID            int
	X, Y          float64 // percent of viewport
	Size          float64 // pixels
	Color         string
	Speed         float64 // percent of viewport height per tick
	Rotation      float64 // degrees in [0, 360)
	RotationSpeed float64 // degrees per tick in [-1, 1)
	Round         bool    // circle instead of square
	Opacity       float64 // [0.7, 1.0)
}

// Descriptor is the render-facing projection of a particle.
type Descriptor struct {
	X, Y     float64
	Size     float64
	Color    string
	Rotation float64
	Round    bool
	Opacity  float64
}

// Descriptor projects the particle into its render descriptor.
func (p Particle) Descriptor() Descriptor {
	return Descriptor{
		X:        p.X,
		Y:        p.Y,
		Size:     p.Size,
		Color:    p.Color,
		Rotation: p.Rotation,
		Round:    p.Round,
		Opacity:  p.Opacity,
	}
}

// spawn draws every attribute of a fresh particle.
func spawn(rng *rand.Rand, id int, params Params) Particle {
	p := Particle{
		ID:            id,
		Size:          params.Size * (1 + rng.Float64()),
		Speed:         params.Speed * (0.5 + rng.Float64()),
		Rotation:      rng.Float64() * 360,
		RotationSpeed: -1 + rng.Float64()*2,
	}
	placeAtTop(rng, &p, params.Colors)
	return p
}

// placeAtTop re-rolls the attributes a particle loses when it wraps:
// position, color and presentation jitter. Size, speed, rotation and
// rotation speed are kept.
func placeAtTop(rng *rand.Rand, p *Particle, colors []string) {
	p.X = rng.Float64() * SpawnMaxX
	// Float64 is in [0,1), so Y lands in (-20, -10].
	p.Y = SpawnBottomY - rng.Float64()*(SpawnBottomY-SpawnTopY)
	p.Color = pickColor(rng, colors)
	p.Round = rng.Float64() > 0.5
	p.Opacity = 0.7 + rng.Float64()*0.3
}

func pickColor(rng *rand.Rand, colors []string) string {
	if len(colors) == 0 {
		return ""
	}
	return colors[rng.Intn(len(colors))]
}

// normalizeDegrees maps any angle into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	if deg >= 360 {
		deg = 0
	}
	return deg
}
