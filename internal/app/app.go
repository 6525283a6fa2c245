// Package app is the interactive preview mode: one bubbletea program that
// walks a single summarize run through Running, Preview, Publishing and
// Done/Error screens. The pipeline itself stays sequential inside background
// commands; only the presentation is event-driven.
package app

import (
	"time"

	"github.com/umanai/uman-changelog/internal/mergedoc"
	"github.com/umanai/uman-changelog/internal/release"

	tea "github.com/charmbracelet/bubbletea"
)

// maxProgressSteps caps how many recent pipeline steps the Running screen keeps
const maxProgressSteps = 8

// Model is the main application state
type Model struct {
	// Run inputs
	reconciler *release.Reconciler
	strategy   mergedoc.Strategy
	tag        string
	dryRun     bool
	version    string

	// Navigation
	screen     Screen
	shouldQuit bool

	// Run state
	plan    *release.Plan
	summary string
	noop    string // reason the run ended with nothing to publish
	outcome *release.Outcome

	// UI state
	confirmSelection int // 0=Yes, 1=No
	errorMessage     string
	spinnerFrame     int

	// Progress channel fed by the reconciler's progress callback
	progressChan  chan string
	progressSteps []string

	// Window size
	width  int
	height int
}

// New creates a new application model. progressChan must be the channel the
// reconciler's progress callback feeds; see SendProgress.
func New(reconciler *release.Reconciler, progressChan chan string, tag string, strategy mergedoc.Strategy, dryRun bool, version string) Model {
	return Model{
		reconciler:   reconciler,
		strategy:     strategy,
		tag:          tag,
		dryRun:       dryRun,
		version:      version,
		screen:       ScreenRunning,
		progressChan: progressChan,
		width:        80,
		height:       24,
	}
}

// SendProgress returns a progress callback that feeds ch without ever
// blocking the pipeline. Wire it into release.WithProgress.
func SendProgress(ch chan string) func(string) {
	return func(step string) {
		select {
		case ch <- step:
		default:
			// Channel full, skip
		}
	}
}

// Outcome reports the run result once the program has exited, nil when the
// run never completed.
func (m Model) Outcome() *release.Outcome {
	return m.outcome
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tickCmd(),
		listenForProgress(m.progressChan),
		summarizeCmd(m.reconciler, m.tag),
	)
}

// tickMsg is sent on each tick for the spinner
type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(_ time.Time) tea.Msg {
		return tickMsg{}
	})
}
