package release

import (
	"context"
	"fmt"

	"github.com/umanai/uman-changelog/internal/changelog"
	"github.com/umanai/uman-changelog/internal/mergedoc"
)

// TableParams describe one changelog-table run.
type TableParams struct {
	// PullNumber is the pull request whose description holds the table.
	PullNumber int
	// Base and Head bound the commit comparison.
	Base, Head string
	// Mode selects the row classification.
	Mode changelog.TableMode
	// Comment posts the table as a new comment instead of editing the
	// description. Comments accumulate across runs; the description merge
	// does not.
	Comment bool
	// DryRun computes the table but never writes.
	DryRun bool
}

// TableOutcome reports what a changelog run produced.
type TableOutcome struct {
	Commits int
	Rows    int
	Table   string
	// Written is false for dry runs, empty tables, and unchanged bodies.
	Written bool
}

// TableRun maintains the commit table of a pull request. Commits can come
// from the hosted compare API or from a local clone; everything downstream
// is identical.
type TableRun struct {
	repo     RepoService
	commits  CommitSource
	excluded string
	progress func(string)
}

// NewTableRun creates a TableRun reading commits from source and writing
// through repo. excludedSource drops housekeeping merges from the table.
func NewTableRun(repo RepoService, source CommitSource, excludedSource string, opts ...Option) *TableRun {
	o := newOptions(opts)
	return &TableRun{
		repo:     repo,
		commits:  source,
		excluded: excludedSource,
		progress: o.progress,
	}
}

// Run renders the commit table between base and head and installs it in the
// pull request description between the sentinel markers, or posts it as a
// comment.
func (t *TableRun) Run(ctx context.Context, p TableParams) (*TableOutcome, error) {
	t.progress(fmt.Sprintf("comparing %s...%s", p.Base, p.Head))
	commits, err := t.commits.CompareCommits(ctx, p.Base, p.Head)
	if err != nil {
		return nil, err
	}

	classifier := changelog.NewClassifier(t.excluded)
	rows := classifier.Rows(p.Mode, commits)
	out := &TableOutcome{
		Commits: len(commits),
		Rows:    len(rows),
		Table:   changelog.Table(p.Mode, rows),
	}
	if out.Table == "" {
		t.progress("no commits to record")
		return out, nil
	}
	if p.DryRun {
		t.progress("dry run, skipping the write")
		return out, nil
	}

	if p.Comment {
		if err := t.repo.CreateIssueComment(ctx, p.PullNumber, out.Table); err != nil {
			return nil, err
		}
		t.progress(fmt.Sprintf("commented on PR #%d", p.PullNumber))
		out.Written = true
		return out, nil
	}

	pr, err := t.repo.PullRequest(ctx, p.PullNumber)
	if err != nil {
		return nil, err
	}
	merged, err := mergedoc.ReplaceDelimitedSection{}.Merge(pr.Body, out.Table)
	if err != nil {
		return nil, err
	}
	if merged == pr.Body {
		t.progress("description already up to date")
		return out, nil
	}

	if err := t.repo.UpdatePullRequestBody(ctx, p.PullNumber, merged); err != nil {
		return nil, err
	}
	t.progress(fmt.Sprintf("updated PR #%d", p.PullNumber))
	out.Written = true
	return out, nil
}
