package network

import "testing"

func TestCostForBytesLatencyPlusSerialization(t *testing.T) {
	l := Link{LatencyMs: 5.0, BandwidthMbps: 100.0, Reliability: 0.999}

	// 5ms latency + 1500*8 bits at 100 Mbps = 0.005 + 0.00012 seconds.
	got := l.CostForBytes(1500)
	want := 0.005 + 1500*8.0/(100.0*1e6)
	if got != want {
		t.Errorf("CostForBytes(1500) = %v, want %v", got, want)
	}
}

func TestCostForBytesZeroBandwidthUnusable(t *testing.T) {
	l := Link{LatencyMs: 5.0, BandwidthMbps: 0.0, Reliability: 1.0}

	if got := l.CostForBytes(1000); got < 1e9 {
		t.Errorf("CostForBytes with zero bandwidth = %v, want >= 1e9", got)
	}
}

func TestCostForBytesZeroPayload(t *testing.T) {
	l := Link{LatencyMs: 2.0, BandwidthMbps: 10.0}

	if got := l.CostForBytes(0); got != 0.002 {
		t.Errorf("CostForBytes(0) = %v, want pure latency 0.002", got)
	}
}

func TestReliabilityDoesNotAffectCost(t *testing.T) {
	a := Link{LatencyMs: 1.0, BandwidthMbps: 10.0, Reliability: 0.1}
	b := Link{LatencyMs: 1.0, BandwidthMbps: 10.0, Reliability: 0.999}

	if a.CostForBytes(1200) != b.CostForBytes(1200) {
		t.Error("reliability changed the cost; it is informational only")
	}
}
