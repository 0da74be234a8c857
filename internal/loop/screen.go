package loop

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tomz197/asshbanner/internal/banner"
	"github.com/tomz197/asshbanner/internal/draw"
	"github.com/tomz197/asshbanner/internal/loop/config"
)

const (
	panelTitle  = "Customize the Banner"
	labelWidth  = 18
	swatchGlyph = "■"
)

const (
	helpBrowse = "↑/↓ select  ←/→ adjust  enter edit/toggle  x remove color  q quit"
	helpEdit   = "type a value  enter apply  esc cancel"
)

// panelStyles are the lipgloss styles of the control panel.
type panelStyles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	selected lipgloss.Style
	locked   lipgloss.Style
	help     lipgloss.Style
	status   lipgloss.Style
	warning  lipgloss.Style
}

func newPanelStyles(r *lipgloss.Renderer) panelStyles {
	return panelStyles{
		title:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#e2e8f0")),
		label:    r.NewStyle().Foreground(lipgloss.Color("#cbd5e1")),
		selected: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#38bdf8")),
		locked:   r.NewStyle().Faint(true),
		help:     r.NewStyle().Foreground(lipgloss.Color("#64748b")),
		status:   r.NewStyle().Foreground(lipgloss.Color("#facc15")),
		warning:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#f87171")),
	}
}

// bannerRows returns how many terminal rows the banner gets.
func bannerRows(height int) int {
	rows := int(float64(height) * config.BannerShare)
	return max(config.MinBannerRows, min(rows, config.MaxBannerRows))
}

// drawFrame draws the banner and the control panel below it.
func (s *Session) drawFrame(now time.Time) error {
	cw := s.chunkWriter

	// Switching into or out of the inactivity warning changes the footer
	// layout, so start from a clean screen.
	if s.state.isInactive != s.state.wasInactive {
		draw.ClearScreen(cw)
		s.state.wasInactive = s.state.isInactive
	}

	if s.width < config.MinTermWidth || s.height < config.MinTermHeight {
		s.drawTooSmall()
		return cw.Flush()
	}

	rows := bannerRows(s.height)
	area := banner.Area{Col: 1, Row: 1, Width: s.width, Height: rows}
	if err := s.banner.Draw(cw, s.state.Settings.Banner, s.engine.Descriptors(), area, now); err != nil {
		return err
	}

	s.drawPanel(rows + 1)

	return cw.Flush()
}

// drawTooSmall asks the user to enlarge the terminal.
func (s *Session) drawTooSmall() {
	msg := fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d",
		config.MinTermWidth, config.MinTermHeight, s.width, s.height)
	msg = ansi.Truncate(msg, max(s.width, 1), "")
	col := max(1, (s.width-lipgloss.Width(msg))/2+1)
	row := max(1, s.height/2)
	s.chunkWriter.WriteAt(col, row, msg)
}

// drawPanel draws the controls starting at row top. Fields scroll so the
// selected one is always visible; the last two rows hold help and status.
func (s *Session) drawPanel(top int) {
	st := s.state
	styles := s.styles

	s.writeLine(top, "")
	s.writeLine(top+1, styles.title.Render(panelTitle))

	first := top + 2
	helpRow := s.height - 1
	visible := max(helpRow-first, 1)
	s.scrollTo(visible)

	for i := range visible {
		row := first + i
		f := Field(s.scroll + i)
		if f >= fieldCount {
			s.writeLine(row, "")
			continue
		}
		s.writeLine(row, s.fieldLine(f))
	}

	help := helpBrowse
	if st.Editing {
		help = helpEdit
	}
	s.writeLine(helpRow, styles.help.Render(help))

	switch {
	case st.isInactive:
		left := max(s.idleTimeout-time.Since(st.lastInput), 0)
		s.writeLine(s.height, styles.warning.Render(fmt.Sprintf(
			"Inactive: disconnecting in %d seconds, press any key to stay", int(left.Seconds()))))
	case st.Status != "":
		s.writeLine(s.height, styles.status.Render(st.Status))
	default:
		s.writeLine(s.height, "")
	}
}

// scrollTo moves the panel window so the selected field is inside it.
func (s *Session) scrollTo(visible int) {
	f := int(s.state.Field)
	if f < s.scroll {
		s.scroll = f
	}
	if f >= s.scroll+visible {
		s.scroll = f - visible + 1
	}
	s.scroll = max(0, min(s.scroll, int(fieldCount)-visible))
}

// fieldLine formats one panel row.
func (s *Session) fieldLine(f Field) string {
	st := s.state
	styles := s.styles

	marker := "  "
	style := styles.label
	switch {
	case st.Field == f:
		marker = "> "
		style = styles.selected
	case st.isLocked(f):
		style = styles.locked
	}

	label := style.Render(fmt.Sprintf("%s%-*s", marker, labelWidth, f.String()))
	value := st.FieldValue(f)
	if f == FieldPalette {
		value = s.swatches() + " " + value
	} else if st.isLocked(f) {
		value = styles.locked.Render(value)
	}
	return strings.Repeat(" ", config.PanelPadding) + label + " " + value
}

// swatches draws the particle palette, bracketing the selected entry.
func (s *Session) swatches() string {
	var b strings.Builder
	for i, hex := range s.state.Settings.Particles.Colors {
		c, ok := draw.ParseHex(hex)
		if !ok {
			continue
		}
		open, end := " ", " "
		if i == s.state.PaletteIndex {
			open, end = "[", "]"
		}
		b.WriteString(open)
		b.WriteString(draw.Fg(c))
		b.WriteString(swatchGlyph)
		b.WriteString(draw.ColorReset)
		b.WriteString(end)
	}
	return b.String()
}

// writeLine writes content at the start of row and blanks the rest of it.
func (s *Session) writeLine(row int, content string) {
	content = ansi.Truncate(content, s.width, "")
	s.chunkWriter.WriteAt(1, row, content)
	if pad := s.width - lipgloss.Width(content); pad > 0 {
		s.chunkWriter.WriteString(strings.Repeat(" ", pad))
	}
}
