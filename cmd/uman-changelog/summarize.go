package main

import (
	"context"
	"fmt"
	"os"

	"github.com/umanai/uman-changelog/internal/app"
	"github.com/umanai/uman-changelog/internal/config"
	"github.com/umanai/uman-changelog/internal/gemini"
	"github.com/umanai/uman-changelog/internal/github"
	"github.com/umanai/uman-changelog/internal/history"
	"github.com/umanai/uman-changelog/internal/mergedoc"
	"github.com/umanai/uman-changelog/internal/release"
	"github.com/umanai/uman-changelog/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSummarizeCmd() *cobra.Command {
	var (
		repoFlag     string
		tag          string
		strategyName string
		heading      string
		dryRun       bool
		interactive  bool
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Generate an AI impact summary and install it in a release body",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.ValidateSummarize(); err != nil {
				return err
			}
			owner, name, err := cfg.Repository(repoFlag)
			if err != nil {
				return err
			}
			strategy, err := mergedoc.ParseStrategy(strategyName, heading)
			if err != nil {
				return err
			}

			repo := github.NewClient(config.GithubToken(), owner, name)
			model := gemini.NewClient(config.GeminiKey(), cfg.Model.Name)
			settings := release.Settings{
				ImpactPhrases:  cfg.Labels.ImpactPhrases,
				ExcludedSource: cfg.ExcludedSource(owner),
				TokenBudget:    cfg.Model.TokenBudget,
			}
			repoName := owner + "/" + name

			if interactive && ui.PlainTerminal() {
				fmt.Fprintln(os.Stderr, "no color-capable terminal detected, running without the interactive view")
				interactive = false
			}

			if interactive {
				if err := runInteractive(repo, model, settings, repoName, tag, strategy, dryRun); err != nil {
					return err
				}
				maybeNotifyUpdate(cfg)
				return nil
			}

			progress := func(step string) {
				fmt.Fprintln(os.Stderr, step)
			}
			rec := release.New(repo, model, settings, release.WithProgress(progress))
			out, err := rec.Run(context.Background(), tag, strategy, dryRun)
			if err != nil {
				return err
			}

			if dryRun && out.Summary != "" {
				fmt.Println(out.Summary)
			}
			recordOutcome("summarize", repoName, out)
			maybeNotifyUpdate(cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository as owner/name (defaults to config)")
	cmd.Flags().StringVar(&tag, "tag", "", "Target a published release by tag instead of the latest draft")
	cmd.Flags().StringVar(&strategyName, "strategy", "section", "How to place the summary: section or prepend")
	cmd.Flags().StringVar(&heading, "heading", "", "Collapsible heading for the prepend strategy")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and print without writing")
	cmd.Flags().BoolVar(&interactive, "interactive", false, "Preview the summary in a TUI before publishing")

	return cmd
}

func runInteractive(repo *github.Client, model *gemini.Client, settings release.Settings, repoName, tag string, strategy mergedoc.Strategy, dryRun bool) error {
	progressCh := make(chan string, 50)
	rec := release.New(repo, model, settings, release.WithProgress(app.SendProgress(progressCh)))

	m := app.New(rec, progressCh, tag, strategy, dryRun, version)
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	if m, ok := final.(app.Model); ok {
		recordOutcome("summarize", repoName, m.Outcome())
	}
	return nil
}

// recordOutcome appends the run to local history, best effort
func recordOutcome(command, repo string, out *release.Outcome) {
	if out == nil || out.Plan == nil {
		return
	}
	history.Record(command, repo, out.Plan.Current.Display(), len(out.Plan.Impact), out.Written)
}
