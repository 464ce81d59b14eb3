package main

import (
	"github.com/spf13/cobra"

	"xqhint/internal/version"
)

var (
	// rootFlag is the project root; empty means the working directory
	rootFlag string
	// verbosity counts -v flags
	verbosity int
	// quietFlag silences logging
	quietFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "xqhint",
	Short: "xqhint - XQuery completion harness",
	Long: `xqhint drives the XQuery hint provider against a project directory.
It opens a file in an in-memory editor, replays keystrokes at a cursor
position and prints the hints the provider offers.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("xqhint version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Project root (default: working directory)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable logging")
}
