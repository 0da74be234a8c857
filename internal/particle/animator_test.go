package particle

import (
	"math/rand"
	"slices"
	"testing"
	"time"
)

var defaultPalette = []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff"}

func newTestAnimator(seed int64) *Animator {
	return NewAnimator(rand.New(rand.NewSource(seed)))
}

func enabledParams(count int) Params {
	return Params{Enabled: true, Count: count, Colors: defaultPalette, Speed: 1, Size: 3}
}

func TestConfigureCount(t *testing.T) {
	for _, count := range []int{0, 1, 10, 50, 200} {
		a := newTestAnimator(1)
		if got := a.Configure(enabledParams(count)); got != ChangeReinit {
			t.Errorf("count=%d: expected reinit, got %v", count, got)
		}
		if a.Len() != count {
			t.Errorf("count=%d: expected %d particles, got %d", count, count, a.Len())
		}
		for i, p := range a.Particles() {
			if p.ID != i {
				t.Errorf("count=%d: particle %d has id %d", count, i, p.ID)
			}
		}
	}
}

func TestConfigureNegativeCount(t *testing.T) {
	a := newTestAnimator(1)
	a.Configure(enabledParams(-5))
	if a.Len() != 0 {
		t.Errorf("expected no particles, got %d", a.Len())
	}
}

func TestInitialScenario(t *testing.T) {
	a := newTestAnimator(42)
	a.Configure(enabledParams(50))

	particles := a.Particles()
	if len(particles) != 50 {
		t.Fatalf("expected 50 particles, got %d", len(particles))
	}
	for _, p := range particles {
		if !slices.Contains(defaultPalette, p.Color) {
			t.Errorf("particle %d has color %q outside palette", p.ID, p.Color)
		}
		if p.Y <= SpawnTopY || p.Y > SpawnBottomY {
			t.Errorf("particle %d spawned at y=%v", p.ID, p.Y)
		}
		if p.X < 0 || p.X >= SpawnMaxX {
			t.Errorf("particle %d spawned at x=%v", p.ID, p.X)
		}
		if p.Size < 3 || p.Size >= 6 {
			t.Errorf("particle %d has size %v", p.ID, p.Size)
		}
		if p.Speed < 0.5 || p.Speed >= 1.5 {
			t.Errorf("particle %d has speed %v", p.ID, p.Speed)
		}
		if p.RotationSpeed < -1 || p.RotationSpeed >= 1 {
			t.Errorf("particle %d has rotation speed %v", p.ID, p.RotationSpeed)
		}
		if p.Opacity < 0.7 || p.Opacity >= 1 {
			t.Errorf("particle %d has opacity %v", p.ID, p.Opacity)
		}
	}
}

func TestDisableClears(t *testing.T) {
	a := newTestAnimator(7)
	a.Configure(enabledParams(30))

	p := enabledParams(30)
	p.Enabled = false
	if got := a.Configure(p); got != ChangeCleared {
		t.Errorf("expected cleared, got %v", got)
	}
	if a.Len() != 0 {
		t.Errorf("expected empty set, got %d", a.Len())
	}
	if a.Descriptors() != nil {
		t.Error("expected no descriptors when disabled")
	}

	// Ticking a disabled animator is a no-op.
	a.Tick()
	if a.Len() != 0 {
		t.Errorf("tick revived particles: %d", a.Len())
	}
}

func TestToggleRedraws(t *testing.T) {
	a := newTestAnimator(3)
	a.Configure(enabledParams(20))
	before := a.Particles()

	off := enabledParams(20)
	off.Enabled = false
	a.Configure(off)

	if got := a.Configure(enabledParams(20)); got != ChangeReinit {
		t.Fatalf("expected reinit on enable, got %v", got)
	}
	after := a.Particles()
	if len(after) != len(before) {
		t.Fatalf("expected %d particles, got %d", len(before), len(after))
	}
	if slices.Equal(before, after) {
		t.Error("expected a freshly drawn set after re-enabling")
	}
}

func TestReinitTriggers(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		want   Change
	}{
		{"same", func(p *Params) {}, ChangeNone},
		{"count", func(p *Params) { p.Count = 25 }, ChangeReinit},
		{"colors", func(p *Params) { p.Colors = []string{"#ffffff"} }, ChangeReinit},
		{"color order", func(p *Params) {
			p.Colors = slices.Clone(defaultPalette)
			slices.Reverse(p.Colors)
		}, ChangeReinit},
		{"speed", func(p *Params) { p.Speed = 2 }, ChangeRescaled},
		{"size", func(p *Params) { p.Size = 6 }, ChangeRescaled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAnimator(11)
			a.Configure(enabledParams(10))
			p := enabledParams(10)
			tt.mutate(&p)
			if got := a.Configure(p); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestRescaleKeepsPositions(t *testing.T) {
	a := newTestAnimator(5)
	a.Configure(enabledParams(10))
	before := a.Particles()

	p := enabledParams(10)
	p.Speed = 2
	p.Size = 1.5
	a.Configure(p)
	after := a.Particles()

	for i := range before {
		if after[i].X != before[i].X || after[i].Y != before[i].Y || after[i].Color != before[i].Color {
			t.Errorf("particle %d moved on rescale", i)
		}
		if !approx(after[i].Speed, before[i].Speed*2) {
			t.Errorf("particle %d speed %v, expected %v", i, after[i].Speed, before[i].Speed*2)
		}
		if !approx(after[i].Size, before[i].Size*0.5) {
			t.Errorf("particle %d size %v, expected %v", i, after[i].Size, before[i].Size*0.5)
		}
	}
}

func TestConfigureCopiesPalette(t *testing.T) {
	a := newTestAnimator(1)
	colors := []string{"#111111", "#222222"}
	a.Configure(Params{Enabled: true, Count: 5, Colors: colors})
	colors[0] = "#999999"

	if got := a.Params().Colors[0]; got != "#111111" {
		t.Errorf("palette aliased caller slice: %q", got)
	}
	if got := a.Params().Speed; got != DefaultSpeed {
		t.Errorf("expected default speed, got %v", got)
	}
	if got := a.Params().Size; got != DefaultSize {
		t.Errorf("expected default size, got %v", got)
	}
}

func TestTickMovesDown(t *testing.T) {
	a := newTestAnimator(9)
	a.Configure(enabledParams(5))
	a.particles[0] = Particle{ID: 0, X: 50, Y: 10, Speed: 2, Rotation: 90, RotationSpeed: 0.5, Color: "#ff0000"}

	a.Tick()
	p := a.Particles()[0]
	if p.Y != 12 {
		t.Errorf("expected y=12, got %v", p.Y)
	}
	if p.Rotation != 90.5 {
		t.Errorf("expected rotation 90.5, got %v", p.Rotation)
	}
	if p.X != 50 || p.Color != "#ff0000" {
		t.Error("x or color changed without a wrap")
	}
}

func TestTickWraparound(t *testing.T) {
	a := newTestAnimator(13)
	a.Configure(enabledParams(3))
	orig := Particle{ID: 1, X: 42, Y: 105, Size: 4.2, Speed: 10, Rotation: 359.5, RotationSpeed: 0.75, Color: "#ff0000"}
	a.particles[1] = orig

	a.Tick()
	p := a.Particles()[1]

	if p.Y <= SpawnTopY || p.Y > SpawnBottomY {
		t.Errorf("expected respawn y in (-20,-10], got %v", p.Y)
	}
	if p.X < 0 || p.X >= SpawnMaxX {
		t.Errorf("expected respawn x in [0,100), got %v", p.X)
	}
	if !slices.Contains(defaultPalette, p.Color) {
		t.Errorf("respawn color %q not in palette", p.Color)
	}
	if p.ID != orig.ID || p.Size != orig.Size || p.Speed != orig.Speed || p.RotationSpeed != orig.RotationSpeed {
		t.Errorf("respawn changed preserved fields: %+v", p)
	}
	if !approx(p.Rotation, 0.25) {
		t.Errorf("expected rotation to continue to 0.25, got %v", p.Rotation)
	}
}

func TestTickExactlyAtBoundary(t *testing.T) {
	a := newTestAnimator(13)
	a.Configure(enabledParams(1))
	a.particles[0] = Particle{Y: 100, Speed: 10}

	a.Tick()
	if got := a.Particles()[0].Y; got != RespawnY {
		t.Errorf("y=110 is still on screen, got %v", got)
	}
}

func TestRespawnUsesCurrentPalette(t *testing.T) {
	a := newTestAnimator(17)
	a.Configure(enabledParams(1))
	a.particles[0].Color = "#abcdef"
	a.params.Colors = []string{"#123456"}
	a.particles[0].Y = 109
	a.particles[0].Speed = 5

	a.Tick()
	if got := a.Particles()[0].Color; got != "#123456" {
		t.Errorf("expected color from current palette, got %q", got)
	}
}

func TestRotationStaysInRange(t *testing.T) {
	a := newTestAnimator(21)
	a.Configure(enabledParams(1))

	for _, tt := range []struct{ rotation, speed float64 }{
		{0, -1}, {0, -0.5}, {359.9, 0.9}, {-720.5, 0.2}, {1000, -0.99}, {360, 0},
	} {
		a.particles[0] = Particle{Y: 0, Speed: 0.1, Rotation: tt.rotation, RotationSpeed: tt.speed}
		for range 3 {
			a.Tick()
			r := a.Particles()[0].Rotation
			if r < 0 || r >= 360 {
				t.Errorf("rotation %v + %v left range: %v", tt.rotation, tt.speed, r)
			}
		}
	}
}

func TestLongRunKeepsInvariants(t *testing.T) {
	a := newTestAnimator(99)
	a.Configure(enabledParams(50))

	for range 1000 {
		a.Tick()
	}
	particles := a.Particles()
	if len(particles) != 50 {
		t.Fatalf("expected 50 particles, got %d", len(particles))
	}
	for _, p := range particles {
		if p.Y <= SpawnTopY || p.Y > RespawnY {
			t.Errorf("particle %d at y=%v", p.ID, p.Y)
		}
		if p.Rotation < 0 || p.Rotation >= 360 {
			t.Errorf("particle %d rotation %v", p.ID, p.Rotation)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	a := newTestAnimator(123)
	b := newTestAnimator(123)
	a.Configure(enabledParams(20))
	b.Configure(enabledParams(20))
	for range 50 {
		a.Tick()
		b.Tick()
	}
	if !slices.Equal(a.Particles(), b.Particles()) {
		t.Error("same seed produced different particles")
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		speed float64
		want  time.Duration
	}{
		{0.1, 500 * time.Millisecond},
		{1, 50 * time.Millisecond},
		{2, 25 * time.Millisecond},
		{3, 16*time.Millisecond + 666667},
		{5, 16 * time.Millisecond},
		{100, 16 * time.Millisecond},
		{0, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := TickInterval(tt.speed); got != tt.want {
			t.Errorf("TickInterval(%v) = %v, expected %v", tt.speed, got, tt.want)
		}
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
