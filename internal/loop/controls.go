package loop

import (
	"fmt"
	"slices"
	"strings"

	"github.com/tomz197/asshbanner/internal/input"
	"github.com/tomz197/asshbanner/internal/loop/config"
	"github.com/tomz197/asshbanner/internal/settings"
)

// HandleKey applies one key press to the state.
func (st *State) HandleKey(k input.Key) {
	if k.Type == input.KeyCtrlC {
		st.Running = false
		return
	}
	if st.Editing {
		st.handleEditKey(k)
		return
	}

	st.Status = ""
	switch k.Type {
	case input.KeyUp, input.KeyBackTab:
		st.moveField(-1)
	case input.KeyDown, input.KeyTab:
		st.moveField(1)
	case input.KeyLeft:
		st.adjust(-1)
	case input.KeyRight:
		st.adjust(1)
	case input.KeyEnter:
		st.activate()
	case input.KeyBackspace:
		if st.Field == FieldPalette {
			st.removeSelectedColor()
		}
	case input.KeyRune:
		switch k.Rune {
		case 'q', 'Q':
			st.Running = false
		case 'k':
			st.moveField(-1)
		case 'j':
			st.moveField(1)
		case 'h', '-':
			st.adjust(-1)
		case 'l', '+', '=':
			st.adjust(1)
		case ' ':
			st.activate()
		case 'x', 'X':
			if st.Field == FieldPalette {
				st.removeSelectedColor()
			}
		}
	}
}

func (st *State) moveField(delta int) {
	n := int(fieldCount)
	st.Field = Field(((int(st.Field)+delta)%n + n) % n)
}

// particlesLocked reports whether a particle-only control is inactive because
// particles are switched off.
func (st *State) particlesLocked() bool {
	return !st.Settings.Particles.Enabled
}

// isLocked reports whether f is currently greyed out in the panel.
func (st *State) isLocked(f Field) bool {
	switch f {
	case FieldCount, FieldCustomColor, FieldAddColor:
		return st.particlesLocked()
	}
	return false
}

// adjust handles Left/Right on the selected field.
func (st *State) adjust(dir int) {
	s := &st.Settings
	switch st.Field {
	case FieldBackground:
		s.Banner.Background = settings.ShiftHue(s.Banner.Background, float64(dir)*config.HueStep)
	case FieldTextColor:
		s.Banner.TextColor = settings.ShiftHue(s.Banner.TextColor, float64(dir)*config.HueStep)
	case FieldIcon:
		s.NextIcon(dir)
	case FieldIconSize:
		s.StepIconSize(dir)
	case FieldThreeD:
		s.Banner.ThreeD = !s.Banner.ThreeD
	case FieldParticles:
		st.toggleParticles()
	case FieldCount:
		if !st.particlesLocked() {
			s.StepCount(dir)
			st.dirty = true
		}
	case FieldSpeed:
		s.StepSpeed(dir)
		st.dirty = true
	case FieldSize:
		s.StepSize(dir)
		st.dirty = true
	case FieldPalette:
		n := len(s.Particles.Colors)
		if n > 0 {
			st.PaletteIndex = ((st.PaletteIndex+dir)%n + n) % n
		}
	case FieldCustomColor:
		if !st.particlesLocked() {
			s.Particles.CustomColor = settings.ShiftHue(s.Particles.CustomColor, float64(dir)*config.HueStep)
		}
	}
}

// activate handles Enter/Space on the selected field.
func (st *State) activate() {
	s := &st.Settings
	switch st.Field {
	case FieldText:
		st.startEdit(s.Banner.Text)
	case FieldBackground:
		st.startEdit(s.Banner.Background)
	case FieldTextColor:
		st.startEdit(s.Banner.TextColor)
	case FieldCustomColor:
		if !st.particlesLocked() {
			st.startEdit(s.Particles.CustomColor)
		}
	case FieldIcon:
		s.NextIcon(1)
	case FieldThreeD:
		s.Banner.ThreeD = !s.Banner.ThreeD
	case FieldParticles:
		st.toggleParticles()
	case FieldAddColor:
		if !st.particlesLocked() {
			s.AddColor(s.Particles.CustomColor)
			st.dirty = true
		}
	case FieldReset:
		s.Reset()
		st.clampPalette()
		st.dirty = true
		st.Status = "Settings reset"
	}
}

func (st *State) toggleParticles() {
	st.Settings.Particles.Enabled = !st.Settings.Particles.Enabled
	st.dirty = true
}

func (st *State) removeSelectedColor() {
	colors := st.Settings.Particles.Colors
	if st.PaletteIndex < 0 || st.PaletteIndex >= len(colors) {
		return
	}
	st.Settings.RemoveColor(colors[st.PaletteIndex])
	st.clampPalette()
	st.dirty = true
}

func (st *State) clampPalette() {
	st.PaletteIndex = max(0, min(st.PaletteIndex, len(st.Settings.Particles.Colors)-1))
}

func (st *State) startEdit(value string) {
	st.Editing = true
	st.editOrig = value
	st.EditBuf = []rune(value)
	if st.Field != FieldText {
		// Color fields start empty so a hex value can be typed straight in.
		st.EditBuf = st.EditBuf[:0]
	}
}

// handleEditKey handles keys while typing. Banner text updates live; colors
// are only applied on Enter and silently rejected when invalid.
func (st *State) handleEditKey(k input.Key) {
	switch k.Type {
	case input.KeyEnter:
		st.commitEdit()
	case input.KeyEscape:
		if st.Field == FieldText {
			st.Settings.Banner.Text = st.editOrig
		}
		st.Editing = false
		st.EditBuf = nil
	case input.KeyBackspace:
		if len(st.EditBuf) > 0 {
			st.EditBuf = st.EditBuf[:len(st.EditBuf)-1]
		}
	case input.KeyRune:
		limit := config.MaxColorLength
		if st.Field == FieldText {
			limit = config.MaxTextLength
		}
		if len(st.EditBuf) < limit {
			st.EditBuf = append(st.EditBuf, k.Rune)
		}
	}
	if st.Editing && st.Field == FieldText {
		st.Settings.Banner.Text = string(st.EditBuf)
	}
}

func (st *State) commitEdit() {
	st.Editing = false
	value := string(st.EditBuf)
	st.EditBuf = nil

	if st.Field == FieldText {
		st.Settings.Banner.Text = value
		return
	}

	c, err := settings.NormalizeColor(value)
	if err != nil {
		st.Status = fmt.Sprintf("Ignored %q: not a hex color", value)
		return
	}
	switch st.Field {
	case FieldBackground:
		st.Settings.Banner.Background = c
	case FieldTextColor:
		st.Settings.Banner.TextColor = c
	case FieldCustomColor:
		st.Settings.Particles.CustomColor = c
	}
}

// FieldValue formats the current value of f for the panel. Palette swatches
// are drawn separately.
func (st *State) FieldValue(f Field) string {
	s := st.Settings
	if st.Editing && st.Field == f {
		return string(st.EditBuf) + "_"
	}
	switch f {
	case FieldText:
		return s.Banner.Text
	case FieldBackground:
		return s.Banner.Background
	case FieldTextColor:
		return s.Banner.TextColor
	case FieldIcon:
		names := make([]string, len(settings.Icons))
		for i, icon := range settings.Icons {
			names[i] = "( ) " + string(icon)
			if icon == s.Banner.Icon {
				names[i] = "(•) " + string(icon)
			}
		}
		return strings.Join(names, "  ")
	case FieldIconSize:
		return fmt.Sprintf("%dpx", s.Banner.IconSize)
	case FieldThreeD:
		return onOff(s.Banner.ThreeD)
	case FieldParticles:
		return onOff(s.Particles.Enabled)
	case FieldCount:
		return fmt.Sprintf("%d", s.Particles.Count)
	case FieldSpeed:
		return fmt.Sprintf("%gx", s.Particles.Speed)
	case FieldSize:
		return fmt.Sprintf("%gpx", s.Particles.Size)
	case FieldPalette:
		return fmt.Sprintf("%d colors", len(s.Particles.Colors))
	case FieldCustomColor:
		return s.Particles.CustomColor
	case FieldAddColor:
		if slices.Contains(s.Particles.Colors, s.Particles.CustomColor) {
			return "already in palette"
		}
		return "press Enter"
	case FieldReset:
		return "press Enter"
	}
	return ""
}

func onOff(b bool) string {
	if b {
		return "[on ]"
	}
	return "[off]"
}
