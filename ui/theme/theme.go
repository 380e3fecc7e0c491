package theme

// Centralized theming for the camera UI. Provides palette constants and
// InitStyles to activate a base theme and configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#101318" // app background, dark like a camera app
	ColorSurface   = "#1a1e24"
	ColorBorder    = "#2c323b"
	ColorShutter   = "#e11d48" // shutter button
	ColorShutterHi = "#be123c"
	ColorAccent    = "#38bdf8" // mode and status accents
	ColorText      = "#e2e8f0"
	ColorTextMuted = "#7c8696"
)

// Style names used with Style("shutter.TButton") etc.
const (
	StyleShutterButton = "shutter.TButton"
	StyleModeLabel     = "mode.TLabel"
	StyleStatusLabel   = "status.TLabel"
)

// InitStyles applies the base theme and the semantic widget styles.
func InitStyles() {
	_ = ActivateTheme("azure dark") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StyleShutterButton,
		Background(ColorShutter),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleModeLabel,
		Foreground(ColorBg),
		Background(ColorAccent),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(ColorTextMuted),
		Background(ColorSurface),
		Padding("2p 1p"),
	)
}
