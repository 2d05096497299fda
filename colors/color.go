package colors

import "github.com/fatih/color"

// COLOR is a printable terminal style. Every palette entry supports
// Print/Printf/Println and the Sprint variants.
type COLOR = *color.Color

var (
	// Basic Colors
	RED    COLOR = color.New(color.FgRed)
	GREEN  COLOR = color.New(color.FgGreen)
	YELLOW COLOR = color.New(color.FgYellow)
	BLUE   COLOR = color.New(color.FgBlue)
	PURPLE COLOR = color.New(color.FgMagenta)
	CYAN   COLOR = color.New(color.FgCyan)
	WHITE  COLOR = color.New(color.FgWhite)
	GREY   COLOR = color.New(color.FgHiBlack)

	// Bright Colors
	BRIGHT_RED   COLOR = color.New(color.FgHiRed)
	BRIGHT_GREEN COLOR = color.New(color.FgHiGreen)

	// Bold Variants
	BOLD        COLOR = color.New(color.Bold)
	BOLD_RED    COLOR = color.New(color.FgRed, color.Bold)
	BOLD_GREEN  COLOR = color.New(color.FgGreen, color.Bold)
	BOLD_PURPLE COLOR = color.New(color.FgMagenta, color.Bold)

	// Extended shades
	ORANGE     COLOR = color.New(color.FgYellow, color.Faint)
	TEAL       COLOR = color.New(color.FgCyan, color.Faint)
	LIGHT_BLUE COLOR = color.New(color.FgHiBlue)
)

// Disable turns colour output off for every palette entry, e.g. when
// writing to a file or running under test.
func Disable() {
	color.NoColor = true
}
