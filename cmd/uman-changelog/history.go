package main

import (
	"fmt"

	"github.com/umanai/uman-changelog/internal/history"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List recent runs recorded on this machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := history.Load()
			if len(entries) == 0 {
				fmt.Println("No recorded runs in the last 30 days.")
				return nil
			}

			for _, e := range entries {
				status := "no-op"
				if e.Written {
					status = "written"
				}
				fmt.Printf("%s  %-9s %-7s %s %s (%d PRs)\n",
					e.CreatedAt.Format("2006-01-02 15:04"),
					e.Command,
					status,
					e.Repo,
					e.Target,
					e.PullRequests,
				)
			}
			return nil
		},
	}
}
