package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xqhint/internal/language"
	"xqhint/internal/plugin"
)

var languagesFormat string

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "Print the language definitions registered for the project",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer e.Close()

		reg := language.NewRegistry()
		if err := plugin.NewExtension(e.cfg, e.logger).Init(reg); err != nil {
			return err
		}
		output, err := FormatResponse(reg.All(), OutputFormat(languagesFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	languagesCmd.Flags().StringVar(&languagesFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(languagesCmd)
}
