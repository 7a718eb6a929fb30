package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a canvas pen color. The zero value is an unset pixel.
type Color uint8

const (
	Blank Color = iota
	White
	Gray
	Blue
	Red
	Yellow
	Green
	Cyan
	Magenta
)

// ANSI escape sequences for text outside the canvas.
const (
	ColorReset = "\033[0m"
)

var (
	fgCodes = [...]string{
		Blank: "\033[39m", White: "\033[97m", Gray: "\033[90m", Blue: "\033[94m",
		Red: "\033[91m", Yellow: "\033[93m", Green: "\033[92m", Cyan: "\033[96m", Magenta: "\033[95m",
	}
	bgCodes = [...]string{
		Blank: "\033[49m", White: "\033[107m", Gray: "\033[100m", Blue: "\033[104m",
		Red: "\033[101m", Yellow: "\033[103m", Green: "\033[102m", Cyan: "\033[106m", Magenta: "\033[105m",
	}
	// 16-colour palette indices, as lipgloss expects them.
	paletteCodes = [...]string{
		Blank: "7", White: "15", Gray: "8", Blue: "12",
		Red: "9", Yellow: "11", Green: "10", Cyan: "14", Magenta: "13",
	}
)

func (c Color) valid() bool { return int(c) < len(fgCodes) }

// FG returns the escape sequence selecting c as foreground color.
func (c Color) FG() string {
	if !c.valid() {
		return fgCodes[Blank]
	}
	return fgCodes[c]
}

// BG returns the escape sequence selecting c as background color.
func (c Color) BG() string {
	if !c.valid() {
		return bgCodes[Blank]
	}
	return bgCodes[c]
}

// Palette returns the ANSI palette index of c as a string.
func (c Color) Palette() string {
	if !c.valid() {
		return paletteCodes[Blank]
	}
	return paletteCodes[c]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
