package settings

import (
	"fmt"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// NormalizeColor parses "#rgb" or "#rrggbb" (the leading # is optional) and
// returns the canonical lowercase "#rrggbb" form.
func NormalizeColor(s string) (string, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) == 4 {
		s = "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c.Hex(), nil
}

// ShiftHue rotates a color's hue by deg degrees. Achromatic colors get
// enough saturation to become visible. Invalid input is returned unchanged.
func ShiftHue(hex string, deg float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, v := c.Hsv()
	if s < 0.05 {
		s = 0.8
		if v < 0.2 {
			v = 0.8
		}
	}
	h = math.Mod(h+deg, 360)
	if h < 0 {
		h += 360
	}
	return colorful.Hsv(h, s, v).Clamped().Hex()
}

// snap rounds v onto the step grid and trims float noise.
func snap(v, step float64) float64 {
	v = math.Round(v/step) * step
	return math.Round(v*1e6) / 1e6
}
