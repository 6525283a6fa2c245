package app

import (
	"context"

	"github.com/umanai/uman-changelog/internal/mergedoc"
	"github.com/umanai/uman-changelog/internal/release"

	tea "github.com/charmbracelet/bubbletea"
)

// Message types for async operations

type summarizeResult struct {
	plan    *release.Plan
	summary string
	err     error
}

type publishResult struct {
	written bool
	err     error
}

// progressMsg is sent for real-time step updates from the reconciler
type progressMsg struct {
	step string
}

// listenForProgress creates a subscription that listens to the progress channel
func listenForProgress(ch chan string) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		step, ok := <-ch
		if !ok {
			return nil
		}
		return progressMsg{step: step}
	}
}

// summarizeCmd resolves the plan and generates the summary in the background.
// No-op conditions come back with a nil error and are classified by the
// handler; the write happens later, after the user confirms.
func summarizeCmd(r *release.Reconciler, tag string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		plan, err := r.Plan(ctx, tag)
		if err != nil {
			return summarizeResult{err: err}
		}
		if plan.Previous == nil || len(plan.Impact) == 0 {
			return summarizeResult{plan: plan}
		}

		summary, err := r.Summarize(ctx, plan)
		if err != nil {
			return summarizeResult{plan: plan, err: err}
		}
		return summarizeResult{plan: plan, summary: summary}
	}
}

// publishCmd merges the summary into the release body and writes it back
func publishCmd(r *release.Reconciler, plan *release.Plan, summary string, strategy mergedoc.Strategy) tea.Cmd {
	return func() tea.Msg {
		written, err := r.Publish(context.Background(), plan, summary, strategy)
		return publishResult{written: written, err: err}
	}
}
