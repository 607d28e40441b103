package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"netsim/internal/config"
	"netsim/internal/sim"
)

var (
	routeConfigPath string
	routeSchemaPath string
	routeSrc        string
	routeDst        string
	routeBytes      int
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Compute the cheapest path for a payload",
	Long:  "route loads a topology and prints the cheapest path between two devices for a given payload size, with per-hop costs.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(routeConfigPath, routeSchemaPath)
		if err != nil {
			return err
		}
		simulator, err := sim.NewSimulator("route-query", cfg, nil, nil, time.Second)
		if err != nil {
			return err
		}

		res := simulator.RouteQuery(routeSrc, routeDst, routeBytes)
		if !res.Found {
			return fmt.Errorf("no route from %s to %s", routeSrc, routeDst)
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Hop\tFrom\tTo\tSeconds\n")
		for i, cost := range res.HopCost {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.6f\n", i+1, res.Path[i], res.Path[i+1], cost)
		}
		tw.Flush()
		fmt.Printf("\nTotal: %.6fs over %d hops for %d bytes\n", res.Seconds, len(res.HopCost), routeBytes)
		return nil
	},
}

func init() {
	routeCmd.Flags().StringVar(&routeConfigPath, "config", "config/topology.yaml", "Path to topology configuration YAML")
	routeCmd.Flags().StringVar(&routeSchemaPath, "schema", "schemas/topology.cue", "Path to CUE schema file")
	routeCmd.Flags().StringVar(&routeSrc, "src", "", "Source device name")
	routeCmd.Flags().StringVar(&routeDst, "dst", "", "Destination device name")
	routeCmd.Flags().IntVar(&routeBytes, "bytes", 1500, "Payload size in bytes")
	routeCmd.MarkFlagRequired("src")
	routeCmd.MarkFlagRequired("dst")
}
