package main

import (
	"github.com/aretw0/drake/internal/cli"
	"github.com/spf13/cobra"
)

var inspectRaw bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize the board and its current layout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunInspect(cmd.Context(), opts, inspectRaw)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [board...]",
	Short: "Check board definitions for consistency",
	Long:  `Reports duplicate ids, bad sizes, unknown accepts references and malformed options.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.RunValidate(opts, args...)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd, validateCmd)
	inspectCmd.Flags().BoolVar(&inspectRaw, "raw", false, "Print markdown without terminal rendering")
}
