package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"netsim/internal/admin"
	"netsim/internal/config"
	"netsim/internal/logging"
	"netsim/internal/scenario"
	"netsim/internal/sim"
)

var (
	simPrintOnly  bool
	simJSON       bool
	simTUI        bool
	simConfigPath string
	simSchemaPath string
	simTick       time.Duration
	simLogFile    string
	simAdminAddr  string
	simScenario   string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the real-time network simulator",
	Long:  "simulate loads a topology, routes the configured traffic flows every tick and writes transmission records.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return err
		}

		writer, hopWriter, cleanup, err := newWriters(cfg, simPrintOnly, simJSON, simTUI, simLogFile)
		if err != nil {
			return err
		}
		defer cleanup()

		simID := os.Getenv("NETSIM_ID")
		if simID == "" {
			simID = "netsim-01"
		}

		tickInterval := simTick
		if envTick := os.Getenv("TICK_INTERVAL"); envTick != "" {
			d, err := time.ParseDuration(envTick)
			if err != nil {
				return err
			}
			tickInterval = d
		}

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		simulator, err := sim.NewSimulator(simID, cfg, writer, hopWriter, tickInterval)
		if err != nil {
			return err
		}

		if simScenario != "" {
			sc, err := loadScenario(simScenario)
			if err != nil {
				return err
			}
			simulator.SetScenario(scenario.NewEngine(sc))
			log.Info("scenario attached", "name", sc.Name)
		}

		srv := admin.NewServer(simulator)
		go func() {
			if err := srv.Start(ctx, simAdminAddr); err != nil && err != http.ErrServerClosed {
				log.Error("admin server failed", "err", err)
			}
		}()

		go simulator.Run(ctx)

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs

		cancel()
		log.Info("simulation stopped")
		return nil
	},
}

func init() {
	simulateCmd.Flags().BoolVar(&simPrintOnly, "print-only", false, "Print transmissions to STDOUT instead of writing to DB")
	simulateCmd.Flags().BoolVar(&simJSON, "json", false, "Print transmissions as JSON lines instead of colorized output")
	simulateCmd.Flags().BoolVar(&simTUI, "tui", false, "Render transmissions in an interactive terminal view")
	simulateCmd.Flags().StringVar(&simConfigPath, "config", "config/topology.yaml", "Path to topology configuration YAML")
	simulateCmd.Flags().StringVar(&simSchemaPath, "schema", "schemas/topology.cue", "Path to CUE schema file")
	simulateCmd.Flags().DurationVar(&simTick, "tick", time.Second, "Traffic tick interval (e.g. 500ms, 2s)")
	simulateCmd.Flags().StringVar(&simLogFile, "log-file", "", "Path to export transmission logs (JSONL)")
	simulateCmd.Flags().StringVar(&simAdminAddr, "admin-addr", ":8080", "Admin UI listen address")
	simulateCmd.Flags().StringVar(&simScenario, "scenario", "", "Condition scenario: a built-in name or a YAML file path")
}

// loadScenario resolves a built-in scenario name or falls back to loading a
// YAML file.
func loadScenario(name string) (*scenario.Scenario, error) {
	if sc, ok := scenario.BuiltIn()[name]; ok {
		return &sc, nil
	}
	return scenario.Load(name)
}
