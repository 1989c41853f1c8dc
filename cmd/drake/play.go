package main

import (
	"github.com/aretw0/drake/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the board in the terminal",
	Long:  `Renders the board and lets you drag items with the mouse. Esc cancels a drag, q quits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cli.NotifyShutdown(cmd.Context())
		defer cancel()
		return cli.RunPlay(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
