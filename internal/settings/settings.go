// Package settings holds everything the user can adjust about the banner.
package settings

import (
	"slices"

	"github.com/tomz197/asshbanner/internal/particle"
)

// Icon names the glyph shown above the banner text.
type Icon string

const (
	IconLaptop  Icon = "laptop"
	IconCode    Icon = "code"
	IconPalette Icon = "palette"
)

// Icons lists the selectable icons in display order.
var Icons = []Icon{IconLaptop, IconCode, IconPalette}

// TextAnimation names how the banner text appears when it changes.
type TextAnimation string

const AnimationFade TextAnimation = "fade"

// Slider ranges.
const (
	MinCount  = 10
	MaxCount  = 200
	StepCount = 5

	MinSpeed  = 0.1
	MaxSpeed  = 3.0
	StepSpeed = 0.1

	MinSize  = 1.0
	MaxSize  = 10.0
	StepSize = 0.5

	MinIconSize  = 24
	MaxIconSize  = 128
	StepIconSize = 4
)

// Defaults.
const (
	DefaultBackground  = "#0f172a"
	DefaultText        = "Web Development is Amazing!"
	DefaultTextColor   = "#ffffff"
	DefaultIcon        = IconLaptop
	DefaultIconSize    = 64
	DefaultCount       = 50
	DefaultCustomColor = "#ff9900"
)

// DefaultColors is the initial particle palette.
var DefaultColors = []string{"#ff0000", "#00ff00", "#0000ff", "#ffff00", "#ff00ff"}

// Settings is the full configuration surface. It is plain data and is safe
// to copy with Clone.
type Settings struct {
	Banner    BannerSettings   `yaml:"banner"`
	Particles ParticleSettings `yaml:"particles"`
}

// BannerSettings controls the banner itself.
type BannerSettings struct {
	Text       string        `yaml:"text"`
	Background string        `yaml:"background"`
	TextColor  string        `yaml:"text_color"`
	Icon       Icon          `yaml:"icon"`
	IconSize   int           `yaml:"icon_size"`
	ThreeD     bool          `yaml:"three_d"`
	Animation  TextAnimation `yaml:"animation"`
}

// ParticleSettings controls the falling particles.
type ParticleSettings struct {
	Enabled     bool     `yaml:"enabled"`
	Count       int      `yaml:"count"`
	Colors      []string `yaml:"colors"`
	Speed       float64  `yaml:"speed"`
	Size        float64  `yaml:"size"`
	CustomColor string   `yaml:"custom_color"`
}

// Default returns a fresh copy of the default settings.
func Default() Settings {
	return Settings{
		Banner: BannerSettings{
			Text:       DefaultText,
			Background: DefaultBackground,
			TextColor:  DefaultTextColor,
			Icon:       DefaultIcon,
			IconSize:   DefaultIconSize,
			Animation:  AnimationFade,
		},
		Particles: ParticleSettings{
			Enabled:     true,
			Count:       DefaultCount,
			Colors:      slices.Clone(DefaultColors),
			Speed:       particle.DefaultSpeed,
			Size:        particle.DefaultSize,
			CustomColor: DefaultCustomColor,
		},
	}
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	s.Particles.Colors = slices.Clone(s.Particles.Colors)
	return s
}

// Reset restores the banner and particle basics to their defaults.
// The 3D flag, speed, size and the pending custom color are left alone.
func (s *Settings) Reset() {
	d := Default()
	s.Banner.Background = d.Banner.Background
	s.Banner.Text = d.Banner.Text
	s.Banner.TextColor = d.Banner.TextColor
	s.Banner.Icon = d.Banner.Icon
	s.Banner.IconSize = d.Banner.IconSize
	s.Particles.Enabled = d.Particles.Enabled
	s.Particles.Count = d.Particles.Count
	s.Particles.Colors = d.Particles.Colors
}

// AddColor appends c to the palette unless it is already there.
func (s *Settings) AddColor(c string) {
	if c == "" || slices.Contains(s.Particles.Colors, c) {
		return
	}
	s.Particles.Colors = append(s.Particles.Colors, c)
}

// RemoveColor removes the first occurrence of c. The last color is never
// removed.
func (s *Settings) RemoveColor(c string) {
	if len(s.Particles.Colors) <= 1 {
		return
	}
	i := slices.Index(s.Particles.Colors, c)
	if i < 0 {
		return
	}
	// Build a new slice so earlier snapshots of the palette stay intact.
	s.Particles.Colors = slices.Concat(s.Particles.Colors[:i], s.Particles.Colors[i+1:])
}

// ParticleParams projects the particle settings into animator input.
func (s Settings) ParticleParams() particle.Params {
	return particle.Params{
		Enabled: s.Particles.Enabled,
		Count:   s.Particles.Count,
		Colors:  slices.Clone(s.Particles.Colors),
		Speed:   s.Particles.Speed,
		Size:    s.Particles.Size,
	}
}

// NextIcon cycles the icon by delta positions.
func (s *Settings) NextIcon(delta int) {
	i := slices.Index(Icons, s.Banner.Icon)
	if i < 0 {
		i = 0
	}
	n := len(Icons)
	s.Banner.Icon = Icons[((i+delta)%n+n)%n]
}

// StepCount moves the particle count by steps slider notches.
func (s *Settings) StepCount(steps int) {
	s.Particles.Count = clampInt(s.Particles.Count+steps*StepCount, MinCount, MaxCount)
}

// StepSpeed moves the speed multiplier by steps slider notches.
func (s *Settings) StepSpeed(steps int) {
	s.Particles.Speed = snap(clampFloat(s.Particles.Speed+float64(steps)*StepSpeed, MinSpeed, MaxSpeed), StepSpeed)
}

// StepSize moves the base particle size by steps slider notches.
func (s *Settings) StepSize(steps int) {
	s.Particles.Size = snap(clampFloat(s.Particles.Size+float64(steps)*StepSize, MinSize, MaxSize), StepSize)
}

// StepIconSize moves the icon size by steps slider notches.
func (s *Settings) StepIconSize(steps int) {
	s.Banner.IconSize = clampInt(s.Banner.IconSize+steps*StepIconSize, MinIconSize, MaxIconSize)
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
