package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xqhint/internal/config"
	"xqhint/internal/paths"
)

var (
	configFormat    string
	configInitForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage xqhint configuration",
	Long:  "View and create the configuration stored in .xqhint/config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Display the configuration after defaults and XQHINT_* environment overrides
are applied.

Examples:
  xqhint config show
  XQHINT_DISPLAY_STYLE=terminal xqhint config show --format json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "human", "Output format (human, json, yaml)")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing config file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(root)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	output, err := FormatResponse(cfg, OutputFormat(configFormat))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	root, err := getProjectRoot()
	if err != nil {
		return err
	}
	path := paths.ConfigPath(root)
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(root); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
