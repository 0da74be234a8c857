// Package banner composes the banner area: background, falling particles,
// icon and text.
package banner

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/tomz197/asshbanner/internal/draw"
	"github.com/tomz197/asshbanner/internal/particle"
	"github.com/tomz197/asshbanner/internal/settings"
)

// Particles live in percent-of-banner coordinates.
const (
	logicalWidth  = 100.0
	logicalHeight = 100.0
)

// pixelsPerSubPixel converts particle sizes (pixels in a browser) into
// half-block sub-pixels.
const pixelsPerSubPixel = 4.0

const (
	fadeDuration = 500 * time.Millisecond
	orbitPeriod  = 30 * time.Second // one full orbit of the 3D shadow
	extrudeDepth = 2
)

// Area is a rectangle of terminal cells. Col and Row are 1-based.
type Area struct {
	Col, Row      int
	Width, Height int
}

// Banner draws the banner for one terminal. It remembers the last text so it
// can fade new text in.
type Banner struct {
	renderer  *lipgloss.Renderer
	canvas    *draw.Canvas
	lastText  string
	textSince time.Time
	started   bool
}

// New creates a banner that styles text for output written to w.
// Output is always truecolor; the writer is usually an SSH session whose
// capabilities cannot be probed.
func New(w io.Writer) *Banner {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.TrueColor)
	return &Banner{
		renderer: r,
		canvas:   draw.NewScaledCanvas(0, 0, logicalWidth, logicalHeight),
	}
}

// Draw renders the banner into area.
func (b *Banner) Draw(cw *draw.ChunkWriter, s settings.BannerSettings, particles []particle.Descriptor, area Area, now time.Time) error {
	if area.Width <= 0 || area.Height <= 0 {
		return nil
	}

	bg := draw.MustHex(s.Background, draw.MustHex(settings.DefaultBackground, draw.Black))
	fg := draw.MustHex(s.TextColor, draw.RGB{R: 255, G: 255, B: 255})

	b.canvas.Resize(area.Width, area.Height)
	b.canvas.SetOffset(area.Col-1, area.Row-1)
	b.canvas.SetBackground(bg)
	b.canvas.Clear()
	DrawParticles(b.canvas, particles)
	if err := b.canvas.Render(cw); err != nil {
		return err
	}

	if !b.started || s.Text != b.lastText {
		b.lastText = s.Text
		b.textSince = now
		b.started = true
	}

	icon := IconLines(s.Icon, s.IconSize)
	blockHeight := len(icon) + 2
	top := area.Row + max((area.Height-blockHeight)/2, 0)
	centerCol := area.Col + area.Width/2

	for i, line := range icon {
		row := top + i
		if row >= area.Row+area.Height {
			break
		}
		line = truncate(line, area.Width)
		cw.WriteColoredAt(centerCol-lipgloss.Width(line)/2, row, fg, bg, line)
	}

	textRow := top + len(icon) + 1
	if textRow >= area.Row+area.Height {
		textRow = area.Row + area.Height - 1
	}
	text := truncate(s.Text, area.Width-2*extrudeDepth)
	if text == "" {
		return nil
	}

	textFg, rowShift := fadeIn(fg, bg, now.Sub(b.textSince))
	col := centerCol - lipgloss.Width(text)/2

	if s.ThreeD {
		b.drawExtrusion(cw, text, col, textRow, fg, bg, area, now)
	}

	row := min(textRow+rowShift, area.Row+area.Height-1)
	cw.MoveCursor(col, row)
	cw.WriteString(b.textStyle(textFg, bg).Render(text))
	return nil
}

// drawExtrusion draws darker copies of the text behind it, offset along a
// slowly orbiting direction.
func (b *Banner) drawExtrusion(cw *draw.ChunkWriter, text string, col, row int, fg, bg draw.RGB, area Area, now time.Time) {
	angle := 2 * math.Pi * float64(now.UnixNano()%int64(orbitPeriod)) / float64(orbitPeriod)
	dx, dy := extrusionStep(angle)

	for depth := extrudeDepth; depth >= 1; depth-- {
		c := col + dx*depth
		r := row + dy*depth
		if r < area.Row || r >= area.Row+area.Height {
			continue
		}
		shade := fg.Darken(0.35*float64(depth)).Mix(bg, 0.2*float64(depth))
		cw.MoveCursor(c, r)
		cw.WriteString(b.textStyle(shade, bg).Render(text))
	}
}

// extrusionStep maps an orbit angle to a cell offset. Columns move twice as
// far as rows because cells are twice as tall as they are wide.
func extrusionStep(angle float64) (dx, dy int) {
	dx = int(math.Round(2 * math.Cos(angle)))
	dy = int(math.Round(math.Sin(angle)))
	if dx == 0 && dy == 0 {
		dx = 1
	}
	return dx, dy
}

func (b *Banner) textStyle(fg, bg draw.RGB) lipgloss.Style {
	return b.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex()))
}

// fadeIn returns the text color and vertical offset for text that changed
// elapsed ago: it rises one row and blends in from the background.
func fadeIn(fg, bg draw.RGB, elapsed time.Duration) (draw.RGB, int) {
	if elapsed >= fadeDuration {
		return fg, 0
	}
	t := max(float64(elapsed)/float64(fadeDuration), 0)
	shift := 0
	if t < 0.5 {
		shift = 1
	}
	return bg.Mix(fg, t), shift
}

// DrawParticles paints particle descriptors onto c, blending each with the
// canvas background by its opacity.
func DrawParticles(c *draw.Canvas, particles []particle.Descriptor) {
	bg := c.Background()
	for _, p := range particles {
		col, ok := draw.ParseHex(p.Color)
		if !ok {
			continue
		}
		col = col.Over(bg, p.Opacity)
		radius := p.Size / pixelsPerSubPixel / 2
		if p.Round {
			c.DrawRegular(p.X, p.Y, radius, 8, p.Rotation, col)
		} else {
			// A 4-gon at +45° is an axis-aligned square at rotation 0.
			c.DrawRegular(p.X, p.Y, radius*math.Sqrt2, 4, p.Rotation+45, col)
		}
	}
}

// truncate shortens s to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}
