package main

import (
	"fmt"
	"os"

	"github.com/aretw0/drake/internal/cli"
	"github.com/aretw0/drake/internal/config"
	"github.com/spf13/cobra"
)

var (
	settings = config.New()
	cfgFile  string
	opts     cli.Options
)

var rootCmd = &cobra.Command{
	Use:   "drake",
	Short: "Drake is a pointer-driven drag-and-drop engine",
	Long: `Drake drags items between the containers of a board described in YAML.
Boards can be played in the terminal, replayed from scripts or served over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(settings, cfgFile)
		if err != nil {
			return err
		}
		opts = cli.Options{Config: cfg, Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ./drake.yaml)")
	flags.StringP("board", "b", "board.yaml", "Board definition file")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("store", config.BackendMemory, "Layout store backend (none, memory, file, redis)")
	flags.String("redis-addr", "localhost:6379", "Redis address for the redis store")

	_ = settings.BindPFlag("board.path", flags.Lookup("board"))
	_ = settings.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = settings.BindPFlag("store.backend", flags.Lookup("store"))
	_ = settings.BindPFlag("redis.addr", flags.Lookup("redis-addr"))
}
