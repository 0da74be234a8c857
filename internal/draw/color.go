package draw

import (
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Black is the zero RGB.
var Black = RGB{}

// ParseHex parses "#rrggbb". ok is false for anything else.
func ParseHex(hex string) (c RGB, ok bool) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := col.RGB255()
	return RGB{r, g, b}, true
}

// MustHex parses hex or falls back to fallback.
func MustHex(hex string, fallback RGB) RGB {
	if c, ok := ParseHex(hex); ok {
		return c
	}
	return fallback
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(col colorful.Color) RGB {
	r, g, b := col.Clamped().RGB255()
	return RGB{r, g, b}
}

// Hex returns the "#rrggbb" form.
func (c RGB) Hex() string {
	return c.colorful().Hex()
}

// Over composites c with the given opacity on top of bg.
func (c RGB) Over(bg RGB, opacity float64) RGB {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return bg
	}
	return fromColorful(bg.colorful().BlendRgb(c.colorful(), opacity))
}

// Mix blends from c toward to in Lab space; t=0 is c, t=1 is to.
func (c RGB) Mix(to RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	return fromColorful(c.colorful().BlendLab(to.colorful(), t))
}

// Darken scales lightness down by factor in [0,1].
func (c RGB) Darken(factor float64) RGB {
	return c.Mix(Black, factor)
}

// ColorReset resets all SGR attributes.
const ColorReset = "\033[0m"

// appendSGR appends a truecolor foreground (38) or background (48) sequence.
func appendSGR(buf []byte, code int, c RGB) []byte {
	buf = append(buf, "\033["...)
	buf = strconv.AppendInt(buf, int64(code), 10)
	buf = append(buf, ";2;"...)
	buf = strconv.AppendInt(buf, int64(c.R), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(c.G), 10)
	buf = append(buf, ';')
	buf = strconv.AppendInt(buf, int64(c.B), 10)
	return append(buf, 'm')
}

// Fg returns the escape sequence selecting c as foreground.
func Fg(c RGB) string {
	return string(appendSGR(nil, 38, c))
}

// Bg returns the escape sequence selecting c as background.
func Bg(c RGB) string {
	return string(appendSGR(nil, 48, c))
}
