package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/umanai/uman-changelog/internal/config"
	"github.com/umanai/uman-changelog/internal/github"
	"github.com/umanai/uman-changelog/internal/update"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var checkOnly bool

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update uman-changelog to the latest release",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			owner, name, err := updateRepo(cfg)
			if err != nil {
				return err
			}

			lister := github.NewClient(config.GithubToken(), owner, name)
			available, err := update.Check(context.Background(), lister, version)
			cfg.RecordUpdateCheck()
			_ = cfg.Save()
			if err != nil {
				return err
			}
			if available == nil {
				fmt.Printf("uman-changelog %s is up to date\n", update.VersionDisplay(version))
				return nil
			}

			fmt.Printf("new version available: %s (installed: %s)\n",
				update.VersionDisplay(available.Tag), update.VersionDisplay(version))
			if checkOnly {
				return nil
			}

			fmt.Println("downloading...")
			if err := update.Apply(context.Background(), cfg.Update.Repo, available.Tag); err != nil {
				return err
			}
			fmt.Printf("updated to %s\n", update.VersionDisplay(available.Tag))
			return nil
		},
	}

	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check, do not install")
	return cmd
}

func updateRepo(cfg *config.Config) (owner, name string, err error) {
	owner, name, ok := strings.Cut(cfg.Update.Repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid update repository %q in config", cfg.Update.Repo)
	}
	return owner, name, nil
}

// maybeNotifyUpdate prints a stderr notice when a newer release exists.
// Gated to once per day and always best effort.
func maybeNotifyUpdate(cfg *config.Config) {
	if !cfg.ShouldCheckForUpdate() {
		return
	}
	owner, name, err := updateRepo(cfg)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	lister := github.NewClient(config.GithubToken(), owner, name)
	available, err := update.Check(ctx, lister, version)
	cfg.RecordUpdateCheck()
	_ = cfg.Save()
	if err != nil || available == nil {
		return
	}
	if available.Tag == cfg.Update.SkippedVersion {
		return
	}

	fmt.Fprintf(os.Stderr, "\nA new version is available: %s (installed: %s). Run 'uman-changelog update'.\n",
		update.VersionDisplay(available.Tag), update.VersionDisplay(version))
}
