// Package config centralizes the tunable session parameters.
package config

import "time"

// Client rendering
const (
	TargetFPS       = 30
	TargetFrameTime = time.Second / TargetFPS
)

// Layout
const (
	MinTermWidth  = 40 // Below this the session shows a resize hint
	MinTermHeight = 18
	MinBannerRows = 8
	MaxBannerRows = 18
	BannerShare   = 0.45 // Fraction of terminal rows given to the banner
	PanelPadding  = 2    // Columns left of the control panel
)

// Controls
const (
	HueStep        = 15.0 // Degrees per Left/Right on a color field
	MaxTextLength  = 64
	MaxColorLength = 7 // "#rrggbb"
)

// Inactivity
const (
	InactivityWarning = 30 * time.Second // Warn this long before an idle disconnect
)
