package app

import (
	"github.com/umanai/uman-changelog/internal/release"

	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10
		return m, tickCmd()

	case progressMsg:
		m.progressSteps = append(m.progressSteps, msg.step)
		if len(m.progressSteps) > maxProgressSteps {
			m.progressSteps = m.progressSteps[len(m.progressSteps)-maxProgressSteps:]
		}
		// Continue listening for more progress updates
		return m, listenForProgress(m.progressChan)

	case summarizeResult:
		return m.handleSummarizeResult(msg)

	case publishResult:
		return m.handlePublishResult(msg)
	}

	return m, nil
}

// handleKey processes keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.shouldQuit = true
		return m, tea.Quit
	}

	switch m.screen {
	case ScreenRunning, ScreenPublishing:
		if msg.String() == "q" {
			m.shouldQuit = true
			return m, tea.Quit
		}
	case ScreenPreview:
		return m.handlePreviewKey(msg)
	case ScreenDone, ScreenError:
		switch msg.String() {
		case "enter", "q", "esc":
			m.shouldQuit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		m.confirmSelection = 0
	case "right", "l":
		m.confirmSelection = 1
	case "y":
		m.confirmSelection = 0
		return m.confirmPublish()
	case "n", "esc", "q":
		m.shouldQuit = true
		return m, tea.Quit
	case "enter":
		if m.confirmSelection == 0 {
			return m.confirmPublish()
		}
		m.shouldQuit = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) confirmPublish() (tea.Model, tea.Cmd) {
	if m.dryRun {
		m.noop = "Dry run, nothing was written."
		m.outcome = &release.Outcome{Plan: m.plan, Summary: m.summary}
		m.screen = ScreenDone
		return m, nil
	}
	m.screen = ScreenPublishing
	return m, publishCmd(m.reconciler, m.plan, m.summary, m.strategy)
}

// Result handlers

func (m Model) handleSummarizeResult(msg summarizeResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.screen = ScreenError
		return m, nil
	}

	m.plan = msg.plan
	m.summary = msg.summary

	switch {
	case msg.plan.Previous == nil:
		m.noop = "No previous published release to compare against."
	case len(msg.plan.Impact) == 0:
		m.noop = "No pull request between the releases carries an impact label."
	case msg.summary == "":
		m.noop = "Every labeled pull request was skipped, nothing to summarize."
	}
	if m.noop != "" {
		m.outcome = &release.Outcome{Plan: m.plan}
		m.screen = ScreenDone
		return m, nil
	}

	m.screen = ScreenPreview
	m.confirmSelection = 0
	return m, nil
}

func (m Model) handlePublishResult(msg publishResult) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.errorMessage = msg.err.Error()
		m.screen = ScreenError
		return m, nil
	}

	m.outcome = &release.Outcome{Plan: m.plan, Summary: m.summary, Written: msg.written}
	m.screen = ScreenDone
	return m, nil
}
