package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML settings file and overlays it on the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML settings on top of the defaults and validates them.
func Parse(data []byte) (Settings, error) {
	s := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.normalize(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Write encodes s as YAML.
func Write(w io.Writer, s Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// normalize canonicalizes colors, deduplicates the palette and clamps
// slider values into range.
func (s *Settings) normalize() error {
	var err error
	if s.Banner.Background, err = NormalizeColor(s.Banner.Background); err != nil {
		return fmt.Errorf("banner.background: %w", err)
	}
	if s.Banner.TextColor, err = NormalizeColor(s.Banner.TextColor); err != nil {
		return fmt.Errorf("banner.text_color: %w", err)
	}
	if s.Particles.CustomColor, err = NormalizeColor(s.Particles.CustomColor); err != nil {
		return fmt.Errorf("particles.custom_color: %w", err)
	}

	palette := make([]string, 0, len(s.Particles.Colors))
	for i, c := range s.Particles.Colors {
		n, err := NormalizeColor(c)
		if err != nil {
			return fmt.Errorf("particles.colors[%d]: %w", i, err)
		}
		if !slices.Contains(palette, n) {
			palette = append(palette, n)
		}
	}
	if len(palette) == 0 {
		return errors.New("particles.colors: palette must not be empty")
	}
	s.Particles.Colors = palette

	if !slices.Contains(Icons, s.Banner.Icon) {
		s.Banner.Icon = DefaultIcon
	}
	if s.Banner.Animation == "" {
		s.Banner.Animation = AnimationFade
	}
	s.Banner.IconSize = clampInt(s.Banner.IconSize, MinIconSize, MaxIconSize)
	s.Particles.Count = clampInt(s.Particles.Count, MinCount, MaxCount)
	s.Particles.Speed = snap(clampFloat(s.Particles.Speed, MinSpeed, MaxSpeed), StepSpeed)
	s.Particles.Size = snap(clampFloat(s.Particles.Size, MinSize, MaxSize), StepSize)
	return nil
}
