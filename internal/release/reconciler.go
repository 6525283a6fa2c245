// Package release drives the two reconciliation runs: the AI impact summary
// for a release and the commit table in a pull request description. Every
// run is a fresh, sequential pipeline over externally fetched snapshots;
// nothing is written until all computation has succeeded.
package release

import (
	"context"
	"errors"
	"fmt"

	"github.com/umanai/uman-changelog/internal/changelog"
	"github.com/umanai/uman-changelog/internal/impact"
	"github.com/umanai/uman-changelog/internal/mergedoc"
	"github.com/umanai/uman-changelog/internal/models"
	"github.com/umanai/uman-changelog/internal/prompt"
)

// ErrNoDraftRelease means the repository has no draft release to target.
var ErrNoDraftRelease = errors.New("no draft release found")

// Settings are the config-derived knobs of a summarize run.
type Settings struct {
	// ImpactPhrases mark the labels whose pull requests reach the summary.
	ImpactPhrases []string
	// ExcludedSource drops housekeeping merges, e.g. "umanai/development".
	ExcludedSource string
	// TokenBudget caps the model context size.
	TokenBudget int
}

type options struct {
	progress func(string)
}

// Option configures a run.
type Option func(*options)

// WithProgress registers a callback for step-by-step progress messages.
// Fail-soft warnings are reported here too.
func WithProgress(fn func(string)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func newOptions(opts []Option) options {
	o := options{progress: func(string) {}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Plan is everything resolved before generation: the two releases under
// comparison and the pull requests found between them.
type Plan struct {
	// Current is the release whose body receives the summary.
	Current models.Release
	// Previous is the most recent published release before Current,
	// nil when none exists and the comparison degenerates to empty.
	Previous *models.Release
	// Refs are the extracted pull request numbers, discovery order.
	Refs []int
	// Details are the fetched pull requests; fetch failures are skipped.
	Details []models.PullRequestDetail
	// Impact is the labeled subset of Details, in the same order.
	Impact []models.PullRequestDetail
}

// Outcome reports what a run did.
type Outcome struct {
	Plan    *Plan
	Summary string
	// Written is false for dry runs, no-op runs, and unchanged bodies.
	Written bool
}

// Reconciler composes the summarize pipeline against one repository.
type Reconciler struct {
	repo     RepoService
	model    TextModel
	settings Settings
	progress func(string)
}

// New creates a Reconciler. The settings come from config, not globals, so
// two reconcilers with different settings can coexist.
func New(repo RepoService, model TextModel, settings Settings, opts ...Option) *Reconciler {
	o := newOptions(opts)
	return &Reconciler{
		repo:     repo,
		model:    model,
		settings: settings,
		progress: o.progress,
	}
}

// Plan resolves the current and previous releases and collects the impact
// set between them. tag selects a specific release; empty targets the
// latest draft. Individual pull request fetch failures are warned about and
// skipped, never fatal.
func (r *Reconciler) Plan(ctx context.Context, tag string) (*Plan, error) {
	r.progress("resolving releases")
	releases, err := r.repo.Releases(ctx)
	if err != nil {
		return nil, err
	}

	current, err := resolveCurrent(releases, tag)
	if err != nil {
		return nil, err
	}
	plan := &Plan{Current: current, Previous: resolvePrevious(releases, current)}
	if plan.Previous == nil {
		r.progress("no previous release to compare against")
		return plan, nil
	}

	r.progress(fmt.Sprintf("comparing %s...%s", plan.Previous.TagName, current.Ref()))
	commits, err := r.repo.CompareCommits(ctx, plan.Previous.TagName, current.Ref())
	if err != nil {
		return nil, err
	}

	extractor := changelog.NewExtractor(changelog.ExtractMerges, r.settings.ExcludedSource)
	plan.Refs = extractor.Refs(commits)
	r.progress(fmt.Sprintf("found %d pull requests in %d commits", len(plan.Refs), len(commits)))

	for _, number := range plan.Refs {
		detail, err := r.repo.PullRequest(ctx, number)
		if err != nil {
			r.progress(fmt.Sprintf("warning: skipping PR #%d: %v", number, err))
			continue
		}
		plan.Details = append(plan.Details, *detail)
	}

	plan.Impact = impact.Filter(plan.Details, r.settings.ImpactPhrases)
	return plan, nil
}

// Summarize fetches the file changes of the impact set, builds the budgeted
// context, and generates the summary text. An empty result with a nil error
// means nothing was left to summarize.
func (r *Reconciler) Summarize(ctx context.Context, plan *Plan) (string, error) {
	var enriched []models.PullRequestDetail
	for _, pr := range plan.Impact {
		files, err := r.repo.PullRequestFiles(ctx, pr.Number)
		if err != nil {
			r.progress(fmt.Sprintf("warning: skipping PR #%d: %v", pr.Number, err))
			continue
		}
		pr.Files = files
		enriched = append(enriched, pr)
	}
	if len(enriched) == 0 {
		return "", nil
	}

	builder := impact.NewBuilder(r.model, r.settings.TokenBudget, impact.WithProgress(r.progress))
	contextText, err := builder.Build(ctx, enriched)
	if err != nil {
		return "", err
	}

	r.progress("generating summary")
	return r.model.Generate(ctx, prompt.BuildSummaryPrompt(plan.Current.Display(), contextText))
}

// Publish merges the summary into the release body with the chosen strategy
// and writes it back. When the merged body equals the current one the write
// is skipped entirely.
func (r *Reconciler) Publish(ctx context.Context, plan *Plan, summary string, strategy mergedoc.Strategy) (bool, error) {
	merged, err := strategy.Merge(plan.Current.Body, summary)
	if err != nil {
		return false, err
	}
	if merged == plan.Current.Body {
		r.progress("release body already up to date")
		return false, nil
	}

	if err := r.repo.UpdateReleaseBody(ctx, plan.Current.ID, merged); err != nil {
		return false, err
	}
	r.progress(fmt.Sprintf("updated release %s", plan.Current.Display()))
	return true, nil
}

// Run executes the whole pipeline. An empty impact set ends the run before
// any generation call; dry runs stop right before the write.
func (r *Reconciler) Run(ctx context.Context, tag string, strategy mergedoc.Strategy, dryRun bool) (*Outcome, error) {
	plan, err := r.Plan(ctx, tag)
	if err != nil {
		return nil, err
	}
	out := &Outcome{Plan: plan}

	if plan.Previous == nil {
		return out, nil
	}
	if len(plan.Impact) == 0 {
		r.progress("no pull requests carry an impact label, nothing to do")
		return out, nil
	}

	summary, err := r.Summarize(ctx, plan)
	if err != nil {
		return nil, err
	}
	out.Summary = summary
	if summary == "" {
		return out, nil
	}

	if dryRun {
		r.progress("dry run, skipping the write")
		return out, nil
	}

	out.Written, err = r.Publish(ctx, plan, summary, strategy)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// resolveCurrent picks the release the run targets: the tagged one when tag
// is set, otherwise the latest draft.
func resolveCurrent(releases []models.Release, tag string) (models.Release, error) {
	if tag == "" {
		for _, r := range releases {
			if r.Draft {
				return r, nil
			}
		}
		return models.Release{}, ErrNoDraftRelease
	}
	for _, r := range releases {
		if r.TagName == tag {
			return r, nil
		}
	}
	return models.Release{}, fmt.Errorf("release %q not found", tag)
}

// resolvePrevious picks the most recent release that is published and is
// not the current one. The release list arrives newest first.
func resolvePrevious(releases []models.Release, current models.Release) *models.Release {
	for _, r := range releases {
		if r.Draft || r.ID == current.ID {
			continue
		}
		previous := r
		return &previous
	}
	return nil
}
