package theme

// Centralized styling for the mirror UI. Provides palette constants and
// InitStyles to activate a base theme and configure the overlay button styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#0f1115" // mirror backdrop
	ColorSurface   = "#1c1f26" // overlay background
	ColorBorder    = "#2c313c"
	ColorPrimary   = "#2563eb" // toggle buttons
	ColorPrimaryHi = "#1d4ed8"
	ColorDanger    = "#dc2626"
	ColorText      = "#e2e8f0"
)

// style names used with Style("toggle.TButton") etc.
const (
	StyleToggleButton = "toggle.TButton"
	StyleDangerButton = "danger.TButton"
)

// InitStyles activates the base theme and applies the overlay styles.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics

	StyleConfigure(StyleToggleButton,
		Background(ColorPrimary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(ColorDanger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
}
