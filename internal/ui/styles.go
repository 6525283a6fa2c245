package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Note: Warp terminal fix is in internal/termfix package, imported first in main.go

// PlainTerminal reports whether stdout lacks color support. The interactive
// view downgrades to plain line output on such terminals.
func PlainTerminal() bool {
	return termenv.ColorProfile() == termenv.Ascii
}

var (
	ColorCyan       = lipgloss.Color("#00FFFF")
	ColorGreen      = lipgloss.Color("#00FF00")
	ColorYellow     = lipgloss.Color("#FFFF00")
	ColorRed        = lipgloss.Color("#FF0000")
	ColorMagenta    = lipgloss.Color("#FF00FF")
	ColorBlue       = lipgloss.Color("#5555FF")
	ColorPurple     = lipgloss.Color("#AA55FF")
	ColorOrange     = lipgloss.Color("#FFA500")
	ColorLightGreen = lipgloss.Color("#90EE90")
	ColorWhite      = lipgloss.Color("#FFFFFF")
	ColorDarkGray   = lipgloss.Color("8") // ANSI 8
)

// RefColor picks a color for a git ref by how close it is to production.
func RefColor(ref string) lipgloss.Color {
	switch ref {
	case "dev", "development":
		return ColorGreen
	case "staging":
		return ColorYellow
	case "main", "master":
		return ColorRed
	default:
		return ColorWhite
	}
}
