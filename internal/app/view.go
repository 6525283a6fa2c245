package app

import (
	"fmt"
	"strings"

	"github.com/umanai/uman-changelog/internal/ui"
	"github.com/umanai/uman-changelog/internal/update"

	"github.com/charmbracelet/lipgloss"
)

// contentWidth returns the usable content width, adapting to terminal size
func (m Model) contentWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	return w
}

// View renders the application
func (m Model) View() string {
	if m.shouldQuit {
		return ""
	}

	var sections []string

	// Banner
	sections = append(sections, ui.RenderBanner(m.dryRun))
	sections = append(sections, "")

	outerBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorPurple).
		Width(m.contentWidth()).
		Padding(1, 2)
	sections = append(sections, outerBox.Render(m.renderContent()))

	// Status bar
	sections = append(sections, "")
	sections = append(sections, m.renderStatusBar())

	content := strings.Join(sections, "\n")

	// Center horizontally in the terminal
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

func (m Model) renderContent() string {
	switch m.screen {
	case ScreenRunning:
		return m.renderRunning()
	case ScreenPreview:
		return m.renderPreview()
	case ScreenPublishing:
		return m.renderPublishing()
	case ScreenDone:
		return m.renderDone()
	case ScreenError:
		return m.renderError()
	default:
		return ""
	}
}

func (m Model) renderRunning() string {
	return m.renderProgress("Summarizing release...")
}

func (m Model) renderPublishing() string {
	return m.renderProgress("Publishing summary...")
}

func (m Model) renderProgress(status string) string {
	spinner := ui.Spinner(m.spinnerFrame)
	spinnerStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
	statusStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan).Bold(true)

	var lines []string
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("  %s %s", spinnerStyle.Render(spinner), statusStyle.Render(status)))
	lines = append(lines, "")

	if len(m.progressSteps) > 0 {
		lines = append(lines, ui.SectionHeader("PROGRESS", ui.ColorMagenta))
		lines = append(lines, "")

		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		doneStyle := lipgloss.NewStyle().Foreground(ui.ColorGreen)
		warnStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
		for i, step := range m.progressSteps {
			switch {
			case strings.HasPrefix(step, "warning:"):
				lines = append(lines, fmt.Sprintf("   %s %s", warnStyle.Render("⚠"), warnStyle.Render(step)))
			case i == len(m.progressSteps)-1:
				lines = append(lines, fmt.Sprintf("   %s %s", spinnerStyle.Render(spinner), step))
			default:
				lines = append(lines, fmt.Sprintf("   %s %s", doneStyle.Render("✓"), dimStyle.Render(step)))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderPreview() string {
	var lines []string
	lines = append(lines, "")

	// Show the compare range
	if m.plan != nil && m.plan.Previous != nil {
		lines = append(lines, ui.ReleaseFlowDiagram(m.plan.Previous.TagName, m.plan.Current.Display()))
		lines = append(lines, "")
	}

	lines = append(lines, ui.SectionHeader("CLIENT IMPACT", ui.ColorCyan))
	lines = append(lines, "")

	numStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow)
	titleStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	if m.plan != nil {
		for _, pr := range m.plan.Impact {
			lines = append(lines, fmt.Sprintf("   %s %s",
				numStyle.Render(fmt.Sprintf("#%d", pr.Number)),
				titleStyle.Render(pr.Title),
			))
		}
	}
	lines = append(lines, "")

	lines = append(lines, ui.SectionHeader("SUMMARY PREVIEW", ui.ColorYellow))
	lines = append(lines, "")

	const maxPreviewLines = 12
	summaryLines := strings.Split(strings.TrimRight(m.summary, "\n"), "\n")
	shown := summaryLines
	if len(shown) > maxPreviewLines {
		shown = shown[:maxPreviewLines]
	}
	previewStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
	for _, line := range shown {
		lines = append(lines, "   "+previewStyle.Render(line))
	}
	if len(summaryLines) > maxPreviewLines {
		dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		lines = append(lines, dimStyle.Render(fmt.Sprintf("   … %d more lines", len(summaryLines)-maxPreviewLines)))
	}
	lines = append(lines, "")

	lines = append(lines, ui.SectionHeader("CONFIRM", ui.ColorGreen))
	lines = append(lines, "")

	if m.dryRun {
		warnStyle := lipgloss.NewStyle().Foreground(ui.ColorYellow).Bold(true)
		lines = append(lines, warnStyle.Render("  ⚠ Dry run, nothing will be written"))
	} else {
		labelStyle := lipgloss.NewStyle().Foreground(ui.ColorWhite)
		lines = append(lines, labelStyle.Render("  Publish this summary to the release?"))
	}
	lines = append(lines, "")
	lines = append(lines, ui.YesNoButtons(m.confirmSelection))

	return strings.Join(lines, "\n")
}

func (m Model) renderDone() string {
	var lines []string
	lines = append(lines, "")

	if m.noop != "" {
		icon, color := ui.StatusIcon("skipped")
		style := lipgloss.NewStyle().Foreground(color).Bold(true)
		lines = append(lines, fmt.Sprintf("  %s %s", style.Render(icon), style.Render("Nothing to publish")))
		lines = append(lines, "")
		lines = append(lines, "   "+m.noop)
	} else {
		status := "success"
		message := "Release summary published!"
		if m.outcome != nil && !m.outcome.Written {
			status = "skipped"
			message = "Release body already up to date"
		}
		icon, color := ui.StatusIcon(status)
		style := lipgloss.NewStyle().Foreground(color).Bold(true)
		lines = append(lines, fmt.Sprintf("  %s %s", style.Render(icon), style.Render(message)))

		if m.plan != nil {
			releaseStyle := lipgloss.NewStyle().Foreground(ui.ColorCyan)
			lines = append(lines, "")
			lines = append(lines, fmt.Sprintf("   🔗 %s", releaseStyle.Render(m.plan.Current.Display())))
		}
	}

	lines = append(lines, "")
	dimStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
	lines = append(lines, dimStyle.Render("   Press Enter to exit"))

	return strings.Join(lines, "\n")
}

func (m Model) renderError() string {
	var lines []string

	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorRed).Bold(true)

	lines = append(lines, "")
	lines = append(lines, errorStyle.Render("   ✗ Error"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("   %s", m.errorMessage))
	lines = append(lines, "")
	lines = append(lines, "   Press Enter to exit")

	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	var hints []string

	switch m.screen {
	case ScreenRunning, ScreenPublishing:
		hints = []string{
			ui.KeyBinding("q", "Quit", ui.ColorRed),
		}
	case ScreenPreview:
		hints = []string{
			ui.KeyBinding("←→", "Select", ui.ColorWhite),
			ui.KeyBinding("y/n", "Quick", ui.ColorGreen),
			ui.KeyBinding("Enter", "Confirm", ui.ColorGreen),
			ui.KeyBinding("Esc", "Cancel", ui.ColorYellow),
		}
	case ScreenDone, ScreenError:
		hints = []string{
			ui.KeyBinding("Enter", "Done", ui.ColorGreen),
		}
	}

	installedVersion := ""
	if m.version != "" {
		installedVersion = update.VersionDisplay(m.version)
	}

	if len(hints) == 0 && installedVersion == "" {
		return ""
	}

	line := strings.Join(hints, "  ")
	if installedVersion != "" {
		versionStyle := lipgloss.NewStyle().Foreground(ui.ColorDarkGray)
		if line != "" {
			line += "  │  "
		}
		line += versionStyle.Render("v" + installedVersion)
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.ColorDarkGray).
		Padding(0, 1)

	return borderStyle.Render(line)
}
