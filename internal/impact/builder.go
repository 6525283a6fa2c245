// Package impact selects the pull requests that matter to clients and
// renders them into a size-bounded model context.
package impact

import (
	"context"
	"fmt"
	"strings"

	"github.com/umanai/uman-changelog/internal/models"
)

const (
	// maxInlineDiffChars caps the size of a single file patch included in
	// the rendered context. Larger patches render as an omission notice.
	maxInlineDiffChars = 2000

	noDescription = "(no description provided)"
)

// TokenCounter measures the model-token cost of a prompt.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// BudgetExceededError reports a context that stayed over the token budget
// even after all diffs were dropped. Both measurements are kept so the
// caller can see how far over each rendering landed.
type BudgetExceededError struct {
	WithDiffs    int
	WithoutDiffs int
	Budget       int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("context exceeds the %d token budget: %d tokens with diffs, %d without",
		e.Budget, e.WithDiffs, e.WithoutDiffs)
}

// Builder assembles the model context for a set of pull requests. When the
// full rendering is over the token budget it degrades once, dropping every
// diff, and fails if the reduced rendering is still over. There is no finer
// fallback: diffs are either all present or all absent.
type Builder struct {
	counter  TokenCounter
	budget   int
	progress func(string)
}

// Option configures a Builder.
type Option func(*Builder)

// WithProgress registers a callback that receives a notice when the builder
// drops diffs to fit the budget.
func WithProgress(fn func(string)) Option {
	return func(b *Builder) {
		b.progress = fn
	}
}

// NewBuilder returns a Builder measuring against the given token budget.
func NewBuilder(counter TokenCounter, budget int, opts ...Option) *Builder {
	b := &Builder{
		counter:  counter,
		budget:   budget,
		progress: func(string) {},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the pull requests with diffs, measures the cost, and falls
// back to a diff-free rendering when the budget is exceeded. At most two
// measurements are made; a second overrun returns a *BudgetExceededError.
func (b *Builder) Build(ctx context.Context, prs []models.PullRequestDetail) (string, error) {
	full := Render(prs, true)
	cost, err := b.counter.CountTokens(ctx, full)
	if err != nil {
		return "", fmt.Errorf("measuring context: %w", err)
	}
	if cost <= b.budget {
		return full, nil
	}

	b.progress(fmt.Sprintf("context is %d tokens against a budget of %d, dropping diffs", cost, b.budget))
	reduced := Render(prs, false)
	reducedCost, err := b.counter.CountTokens(ctx, reduced)
	if err != nil {
		return "", fmt.Errorf("measuring reduced context: %w", err)
	}
	if reducedCost <= b.budget {
		return reduced, nil
	}
	return "", &BudgetExceededError{WithDiffs: cost, WithoutDiffs: reducedCost, Budget: b.budget}
}

// Render produces the textual context for the pull requests. With
// includeDiffs set, each file entry carries its patch text when the patch
// is under the inline ceiling; without it, only the file list with change
// counts is rendered.
func Render(prs []models.PullRequestDetail, includeDiffs bool) string {
	var b strings.Builder
	for i, pr := range prs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "PR #%d: %s\n", pr.Number, pr.Title)
		fmt.Fprintf(&b, "Author: %s\n", pr.Author)
		fmt.Fprintf(&b, "Labels: %s\n", strings.Join(pr.Labels, ", "))
		description := pr.Body
		if description == "" {
			description = noDescription
		}
		fmt.Fprintf(&b, "Description:\n%s\n", description)
		fmt.Fprintf(&b, "Changed files: %d\n", pr.ChangedFileCount)
		for _, file := range pr.Files {
			fmt.Fprintf(&b, "- %s (%s, +%d/-%d)\n", file.Filename, file.Status, file.Additions, file.Deletions)
			if !includeDiffs || file.Patch == "" {
				continue
			}
			if len(file.Patch) < maxInlineDiffChars {
				fmt.Fprintf(&b, "%s\n", file.Patch)
			} else {
				fmt.Fprintf(&b, "(diff omitted: %d characters)\n", len(file.Patch))
			}
		}
	}
	return b.String()
}
