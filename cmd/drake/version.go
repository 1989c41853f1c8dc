package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/drake"
	"github.com/aretw0/drake/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of drake",
	Run: func(cmd *cobra.Command, args []string) {
		if !versionShort {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "drake version %s\n", strings.TrimSpace(drake.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVarP(&versionShort, "short", "s", false, "Print only the version")
}
