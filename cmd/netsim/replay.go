package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netsim/internal/sim"
)

var (
	replayInput     string
	replaySpeed     float64
	replayPrintOnly bool
	replayJSON      bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a transmission log file",
	Long:  "replay feeds transmission rows from a log file back into GreptimeDB or STDOUT, honoring the recorded timing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer, cleanup, err := newReplayWriter(replayPrintOnly, replayJSON)
		if err != nil {
			return err
		}
		defer cleanup()
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to transmission log file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVar(&replayPrintOnly, "print-only", false, "Print transmissions to STDOUT instead of writing to DB")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print transmissions as JSON lines instead of colorized output")
	replayCmd.MarkFlagRequired("input")
}
