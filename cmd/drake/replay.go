package main

import (
	"github.com/aretw0/drake/internal/cli"
	"github.com/spf13/cobra"
)

var replayOpts cli.ReplayOptions

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Replay a scripted interaction against the board",
	Long: `Reads steps (down, move, up, start, moveto, end, cancel, remove) from a
YAML list or JSON lines and prints every event the board emits.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cli.NotifyShutdown(cmd.Context())
		defer cancel()
		replayOpts.Script = args[0]
		return cli.RunReplay(ctx, opts, replayOpts)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayOpts.JSON, "json", false, "Write events as JSON lines")
	replayCmd.Flags().DurationVar(&replayOpts.Delay, "delay", 0, "Wait between steps")
	replayCmd.Flags().BoolVar(&replayOpts.Save, "save", false, "Persist the final layout")
}
