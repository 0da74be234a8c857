package banner

import "github.com/tomz197/asshbanner/internal/settings"

// Icon size thresholds in pixels, matching the settings slider.
const (
	mediumIconMin = 48
	largeIconMin  = 96
)

var iconArt = map[settings.Icon][3][]string{
	settings.IconLaptop: {
		{
			" ┌───┐ ",
			" └───┘ ",
			"▀▀▀▀▀▀▀",
		},
		{
			" ┌───────┐ ",
			" │       │ ",
			" │       │ ",
			" └───────┘ ",
			"▀▀▀▀▀▀▀▀▀▀▀",
		},
		{
			"  ┌───────────┐  ",
			"  │           │  ",
			"  │           │  ",
			"  │           │  ",
			"  └───────────┘  ",
			"▄▄█▄▄▄▄▄▄▄▄▄▄▄█▄▄",
		},
	},
	settings.IconCode: {
		{
			"</>",
		},
		{
			"  /    /  \\  ",
			" <    /    > ",
			"  \\  /    /  ",
		},
		{
			"   /      /    \\   ",
			"  /      /      \\  ",
			" <      /        > ",
			"  \\    /        /  ",
			"   \\  /        /   ",
		},
	},
	settings.IconPalette: {
		{
			"(o°o)",
		},
		{
			"  .-~~~-.  ",
			" / o   o \\ ",
			"|  o   ( )|",
			" \\ o  __./ ",
			"  '--'     ",
		},
		{
			"   .--~~~~--.   ",
			"  /  o    o  \\  ",
			" |  o      .-.| ",
			" |  o     (   ) ",
			"  \\  o    __./  ",
			"   '-.__.'      ",
		},
	},
}

// IconLines returns the art for icon at the scale closest to size pixels.
// Unknown icons fall back to the laptop.
func IconLines(icon settings.Icon, size int) []string {
	art, ok := iconArt[icon]
	if !ok {
		art = iconArt[settings.IconLaptop]
	}
	switch {
	case size >= largeIconMin:
		return art[2]
	case size >= mediumIconMin:
		return art[1]
	default:
		return art[0]
	}
}
