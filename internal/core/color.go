package core

// Color represents a foreground color for a screen cell.
// Front ends map it to ANSI codes or RGB values.
type Color uint8

// Palette used by the game renderers.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorCyan
	ColorWhite
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray
)
