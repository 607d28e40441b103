package main

import (
	"os"

	"netsim/internal/config"
	"netsim/internal/network"
	"netsim/internal/sim"
)

// newWriters sets up transmission and hop writers based on flags and env
// vars. It returns the writers and a cleanup function to close any resources.
func newWriters(cfg *config.TopologyConfig, printOnly, jsonOut, tui bool, logFile string) (sim.TransmissionWriter, sim.HopWriter, func(), error) {
	cleanup := func() {}

	writer, hopWriter, base, err := baseWriters(cfg, printOnly, jsonOut, tui)
	if err != nil {
		return nil, nil, nil, err
	}
	cleanup = base

	if logFile == "" {
		return writer, hopWriter, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".hops")
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}
	mw := sim.NewMultiWriter(
		[]sim.TransmissionWriter{writer, fw},
		[]sim.HopWriter{hopWriter, fw},
	)
	closeAll := func() {
		fw.Close()
		base()
	}
	return mw, mw, closeAll, nil
}

// baseWriters chooses the underlying writers based on flags and env vars.
func baseWriters(cfg *config.TopologyConfig, printOnly, jsonOut, tui bool) (sim.TransmissionWriter, sim.HopWriter, func(), error) {
	noop := func() {}

	if tui {
		tw := sim.NewTUIWriter(cfg)
		return tw, tw, func() { tw.Close() }, nil
	}
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		if jsonOut {
			w := sim.NewStdoutWriter()
			return w, w, noop, nil
		}
		w := sim.NewColorStdoutWriter(cfg)
		return w, w, noop, nil
	}

	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	w, err := sim.NewGreptimeDBWriter(endpoint, "public",
		network.TransmissionTableName, network.HopTableName)
	if err != nil {
		return nil, nil, nil, err
	}
	return w, w, noop, nil
}

// newReplayWriter creates a transmission writer without hop handling.
func newReplayWriter(printOnly, jsonOut bool) (sim.TransmissionWriter, func(), error) {
	w, _, cleanup, err := newWriters(nil, printOnly, jsonOut, false, "")
	return w, cleanup, err
}
