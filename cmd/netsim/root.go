package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "netsim",
	Short: "Packet-switched network simulation toolkit",
	Long:  "netsim simulates packet routing over a configurable network topology and replays recorded transmission logs.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(replayCmd)
}
