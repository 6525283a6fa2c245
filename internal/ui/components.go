package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("  ─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// ReleaseFlowDiagram creates a visual diagram showing the compare range
// Example: v1.1.0 ====> v1.2.0
func ReleaseFlowDiagram(previous, current string) string {
	prevStyle := lipgloss.NewStyle().Foreground(ColorGreen)
	prevBoldStyle := lipgloss.NewStyle().Foreground(ColorGreen).Bold(true)
	currStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	currBoldStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	arrowStyle := lipgloss.NewStyle().Foreground(ColorCyan)

	// Center the tags in the boxes (11 chars fits typical semver tags)
	prevText := centerText(previous, 11)
	currText := centerText(current, 11)

	topLeft := prevStyle.Render("  ┌─────────────┐")
	topRight := currStyle.Render("┌─────────────┐")

	middleLeft := prevStyle.Render("  │ ") + prevBoldStyle.Render(prevText) + prevStyle.Render(" │")
	arrow := arrowStyle.Render("  ====>  ")
	middleRight := currStyle.Render("│ ") + currBoldStyle.Render(currText) + currStyle.Render(" │")

	bottomLeft := prevStyle.Render("  └─────────────┘")
	bottomRight := currStyle.Render("└─────────────┘")

	line1 := topLeft + "         " + topRight
	line2 := middleLeft + arrow + middleRight
	line3 := bottomLeft + "         " + bottomRight

	return line1 + "\n" + line2 + "\n" + line3
}

// centerText centers a string within a given width
func centerText(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	leftPad := (width - len(s)) / 2
	rightPad := width - len(s) - leftPad
	return strings.Repeat(" ", leftPad) + s + strings.Repeat(" ", rightPad)
}

// YesNoButtons creates interactive Yes/No buttons
// selection: 0 for Yes, 1 for No
func YesNoButtons(selection int) string {
	var yesBorder, yesText, yesIcon lipgloss.Color
	var noBorder, noText, noIcon lipgloss.Color

	if selection == 0 {
		yesBorder = ColorGreen
		yesText = ColorGreen
		yesIcon = ColorGreen
	} else {
		yesBorder = ColorDarkGray
		yesText = ColorWhite
		yesIcon = ColorDarkGray
	}

	if selection == 1 {
		noBorder = ColorRed
		noText = ColorRed
		noIcon = ColorRed
	} else {
		noBorder = ColorDarkGray
		noText = ColorWhite
		noIcon = ColorDarkGray
	}

	yesStyle := lipgloss.NewStyle().Foreground(yesBorder)
	yesTextStyle := lipgloss.NewStyle().Foreground(yesText).Bold(true)
	yesIconStyle := lipgloss.NewStyle().Foreground(yesIcon)

	noStyle := lipgloss.NewStyle().Foreground(noBorder)
	noTextStyle := lipgloss.NewStyle().Foreground(noText).Bold(true)
	noIconStyle := lipgloss.NewStyle().Foreground(noIcon)

	var iconYes, iconNo string
	if selection == 0 {
		iconYes = ">"
	} else {
		iconYes = " "
	}
	if selection == 1 {
		iconNo = ">"
	} else {
		iconNo = " "
	}

	line1 := yesStyle.Render("  ┌────────┐") + " " + noStyle.Render("┌───────┐")
	line2 := fmt.Sprintf("%s%s%s %s%s%s",
		yesStyle.Render("  │"),
		yesTextStyle.Render(fmt.Sprintf(" %s  YES ", yesIconStyle.Render(iconYes))),
		yesStyle.Render("│"),
		noStyle.Render("│"),
		noTextStyle.Render(fmt.Sprintf(" %s  NO ", noIconStyle.Render(iconNo))),
		noStyle.Render("│"),
	)
	line3 := yesStyle.Render("  └────────┘") + " " + noStyle.Render("└───────┘")

	return line1 + "\n" + line2 + "\n" + line3
}

// Spinner frames using braille characters
var SpinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner returns the spinner character at the given frame index
func Spinner(frame int) string {
	return string(SpinnerFrames[frame%len(SpinnerFrames)])
}

// KeyBinding renders a key binding hint
func KeyBinding(key, description string, color lipgloss.Color) string {
	keyStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	return fmt.Sprintf("%s %s",
		keyStyle.Render(key),
		descStyle.Render(description),
	)
}

// StatusIcon returns the appropriate status icon and color
func StatusIcon(status string) (string, lipgloss.Color) {
	switch status {
	case "published", "success":
		return "✓", ColorGreen
	case "updated":
		return "↻", ColorBlue
	case "skipped":
		return "⊘", ColorYellow
	case "failed", "error":
		return "✗", ColorRed
	case "loading":
		return "⏳", ColorYellow
	default:
		return "·", ColorWhite
	}
}
