package main

import (
	"context"
	"fmt"
	"os"

	"github.com/umanai/uman-changelog/internal/changelog"
	"github.com/umanai/uman-changelog/internal/config"
	"github.com/umanai/uman-changelog/internal/github"
	"github.com/umanai/uman-changelog/internal/gitlocal"
	"github.com/umanai/uman-changelog/internal/history"
	"github.com/umanai/uman-changelog/internal/release"

	"github.com/spf13/cobra"
)

func newChangelogCmd() *cobra.Command {
	var (
		repoFlag   string
		pullNumber int
		base       string
		head       string
		modeName   string
		localPath  string
		comment    bool
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "changelog",
		Short: "Maintain the commit table in a pull request description",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := config.RequireToken(); err != nil {
				return err
			}
			owner, name, err := cfg.Repository(repoFlag)
			if err != nil {
				return err
			}
			mode, err := changelog.ParseTableMode(modeName)
			if err != nil {
				return err
			}
			if pullNumber <= 0 {
				return fmt.Errorf("--pr is required")
			}
			if base == "" || head == "" {
				return fmt.Errorf("--base and --head are required")
			}

			repo := github.NewClient(config.GithubToken(), owner, name)

			// Commits come from the compare API unless a local clone is given
			var source release.CommitSource = repo
			if localPath != "" {
				if !gitlocal.IsGitRepo(localPath) {
					return fmt.Errorf("%s is not a git repository", localPath)
				}
				source = gitlocal.Source{Path: localPath}
			}

			progress := func(step string) {
				fmt.Fprintln(os.Stderr, step)
			}
			run := release.NewTableRun(repo, source, cfg.ExcludedSource(owner), release.WithProgress(progress))
			out, err := run.Run(context.Background(), release.TableParams{
				PullNumber: pullNumber,
				Base:       base,
				Head:       head,
				Mode:       mode,
				Comment:    comment,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			if dryRun && out.Table != "" {
				fmt.Println(out.Table)
			}
			history.Record("changelog", owner+"/"+name, fmt.Sprintf("PR #%d", pullNumber), out.Rows, out.Written)
			maybeNotifyUpdate(cfg)
			return nil
		},
	}

	cmd.Flags().StringVar(&repoFlag, "repo", "", "Repository as owner/name (defaults to config)")
	cmd.Flags().IntVar(&pullNumber, "pr", 0, "Pull request whose description holds the table")
	cmd.Flags().StringVar(&base, "base", "", "Base ref of the comparison")
	cmd.Flags().StringVar(&head, "head", "", "Head ref of the comparison")
	cmd.Flags().StringVar(&modeName, "mode", "prerelease", "Row classification: prerelease or commits")
	cmd.Flags().StringVar(&localPath, "local", "", "Derive commits from a local clone at this path")
	cmd.Flags().BoolVar(&comment, "comment", false, "Post the table as a comment instead of editing the description")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and print without writing")

	return cmd
}
