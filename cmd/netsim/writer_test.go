package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"netsim/internal/network"
	"netsim/internal/sim"
)

func TestNewWritersPrintOnly(t *testing.T) {
	w, hw, cleanup, err := newWriters(nil, true, false, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", w)
	}
	if _, ok := hw.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected hop writer *sim.ColorStdoutWriter, got %T", hw)
	}
}

func TestNewWritersJSON(t *testing.T) {
	w, _, cleanup, err := newWriters(nil, true, true, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", w)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	w, _, cleanup, err := newWriters(nil, false, false, false, "")
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := w.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", w)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transmissions.log")
	w, hw, cleanup, err := newWriters(nil, true, true, false, path)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := w.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", w)
	}

	row := network.TransmissionRow{SimID: "s1", PacketID: "p1", Src: "a", Dst: "b", Timestamp: time.Now()}
	if err := w.Write(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := hw.WriteHop(network.HopRow{SimID: "s1", PacketID: "p1", From: "a", To: "b"}); err != nil {
		t.Fatalf("write hop failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	hopInfo, err := os.Stat(path + ".hops")
	if err != nil {
		t.Fatalf("stat hops failed: %v", err)
	}
	if hopInfo.Size() == 0 {
		t.Fatalf("expected hop file to be non-empty")
	}
}
