package loop

import (
	"time"

	"github.com/tomz197/asshbanner/internal/settings"
)

// Field is one row of the control panel.
type Field int

const (
	FieldText Field = iota
	FieldBackground
	FieldTextColor
	FieldIcon
	FieldIconSize
	FieldThreeD
	FieldParticles
	FieldCount
	FieldSpeed
	FieldSize
	FieldPalette
	FieldCustomColor
	FieldAddColor
	FieldReset
	fieldCount
)

var fieldLabels = [fieldCount]string{
	FieldText:        "Banner Text",
	FieldBackground:  "Background Color",
	FieldTextColor:   "Text Color",
	FieldIcon:        "Icon Type",
	FieldIconSize:    "Icon Size",
	FieldThreeD:      "3D Mode",
	FieldParticles:   "Enable Particles",
	FieldCount:       "Particle Count",
	FieldSpeed:       "Particle Speed",
	FieldSize:        "Particle Size",
	FieldPalette:     "Particle Colors",
	FieldCustomColor: "Custom Color",
	FieldAddColor:    "Add Color",
	FieldReset:       "Reset to Default",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldLabels[f]
}

// State holds everything one session can change. It has no terminal or
// timer dependencies so it can be driven directly by tests.
type State struct {
	Settings     settings.Settings
	Field        Field // Selected control
	PaletteIndex int   // Selected palette entry
	Editing      bool  // Typing into a text or color field
	EditBuf      []rune
	editOrig     string // Value restored when an edit is cancelled
	Status       string // One-line feedback under the panel
	Running      bool
	dirty        bool // Particle parameters may have changed

	isInactive  bool
	wasInactive bool
	lastInput   time.Time
}

// NewState creates a running state seeded with s.
func NewState(s settings.Settings) *State {
	return &State{
		Settings:  s.Clone(),
		Running:   true,
		dirty:     true,
		lastInput: time.Now(),
	}
}

// takeDirty reports and clears the particle-parameters-changed flag.
func (st *State) takeDirty() bool {
	d := st.dirty
	st.dirty = false
	return d
}
