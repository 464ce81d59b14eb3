package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"xqhint/internal/vocab"
)

var vocabFormat string

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Print the static XQuery vocabulary",
	Long:  "Print the keywords, types, operators and axis specifiers offered alongside project identifiers, in the order they are appended",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := vocab.Default()
		output, err := FormatResponse(&v, OutputFormat(vocabFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), output)
		return nil
	},
}

func init() {
	vocabCmd.Flags().StringVar(&vocabFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(vocabCmd)
}
