package core

// Color is the foreground color of a screen cell. The platform maps each
// value to an ANSI 256-color code.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorPurple
)

// Spectrum runs red to purple. Strips and other ranked items are colored
// by their position along it.
var Spectrum = []Color{
	ColorRed,
	ColorOrange,
	ColorYellow,
	ColorGreen,
	ColorCyan,
	ColorBlue,
	ColorPurple,
}

// SpectrumAt returns the color for rank i of n.
func SpectrumAt(i, n int) Color {
	if n <= 0 || i < 0 {
		return Spectrum[0]
	}
	if i >= n {
		i = n - 1
	}
	return Spectrum[i*len(Spectrum)/n]
}
