package main

import (
	"github.com/aretw0/drake/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over HTTP",
	Long: `Exposes the board as a JSON API: pointer samples and session controls go in,
events come out over SSE, and layouts are persisted to the configured store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := cli.NotifyShutdown(cmd.Context())
		defer cancel()
		return cli.RunServe(ctx, opts)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
	_ = settings.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
	_ = settings.BindPFlag("server.metrics", serveCmd.Flags().Lookup("metrics"))
}
