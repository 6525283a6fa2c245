package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/umanai/uman-changelog/internal/termfix"

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is stamped at build time via -ldflags
var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "uman-changelog",
		Short:   "Release summaries and changelog tables for GitHub repositories",
		Version: version,
	}

	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newChangelogCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newUpdateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
