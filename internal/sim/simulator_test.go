package sim

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"netsim/internal/config"
	"netsim/internal/network"
)

// MockWriter collects transmission rows for validation.
type MockWriter struct {
	Rows []network.TransmissionRow
}

func (w *MockWriter) Write(row network.TransmissionRow) error {
	w.Rows = append(w.Rows, row)
	return nil
}

// MockHopWriter collects hop rows.
type MockHopWriter struct {
	Hops []network.HopRow
}

func (w *MockHopWriter) WriteHop(h network.HopRow) error {
	w.Hops = append(w.Hops, h)
	return nil
}

func testTopology() *config.TopologyConfig {
	return &config.TopologyConfig{
		Name: "lab",
		Devices: []config.DeviceConfig{
			{Name: "R1", Kind: "router"},
			{Name: "S1", Kind: "switch"},
			{Name: "H1", Kind: "host"},
			{Name: "H2", Kind: "host"},
		},
		Links: []config.LinkConfig{
			{From: "H1", To: "S1", LatencyMs: 1, BandwidthMbps: 1000, Reliability: 0.999},
			{From: "S1", To: "R1", LatencyMs: 2, BandwidthMbps: 1000, Reliability: 0.999},
			{From: "R1", To: "H2", LatencyMs: 5, BandwidthMbps: 100, Reliability: 0.99},
		},
		Flows: []config.Flow{
			{Src: "H1", Dst: "H2", SizeBytes: 1500, TTL: 16, PacketsPerTick: 1},
		},
	}
}

func newTestSimulator(t *testing.T, w TransmissionWriter, hw HopWriter) *Simulator {
	t.Helper()
	s, err := NewSimulator("sim-test", testTopology(), w, hw, time.Second)
	if err != nil {
		t.Fatalf("NewSimulator: %v", err)
	}
	return s
}

func TestAddDeviceNil(t *testing.T) {
	s, _ := NewSimulator("sim-test", nil, nil, nil, time.Second)
	if err := s.AddDevice(nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("AddDevice(nil) = %v, want ErrNilDevice", err)
	}
}

func TestConnectUnknownNode(t *testing.T) {
	s, _ := NewSimulator("sim-test", nil, nil, nil, time.Second)
	if err := s.AddDevice(network.NewRouter("R1")); err != nil {
		t.Fatal(err)
	}
	err := s.Connect("R1", "ghost", network.Link{LatencyMs: 1, BandwidthMbps: 10}, true)
	if !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Connect with unknown node = %v, want ErrUnknownNode", err)
	}
	// The failed call must not leave half a topology behind.
	if got := s.FindRoute("R1", "ghost", 100); got != nil {
		t.Errorf("route to unregistered node = %v, want nil", got)
	}
}

func TestRouteAndSendAcrossTopology(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	path := s.FindRoute("H1", "H2", 1500)
	if len(path) < 2 {
		t.Fatalf("FindRoute = %v, want at least two nodes", path)
	}
	if path[0] != "H1" || path[len(path)-1] != "H2" {
		t.Fatalf("path endpoints = %v", path)
	}

	pkt := network.NewPacket("H1", "H2", 1500, 16)
	seconds := s.SendPacket(path, pkt)
	if seconds <= 0 {
		t.Errorf("transmission time = %v, want > 0", seconds)
	}
	if pkt.TTL >= 16 {
		t.Errorf("TTL = %d, want < 16", pkt.TTL)
	}
	if want := len(path); len(pkt.Hops) != want {
		t.Errorf("hop history length = %d, want %d (start plus each hop)", len(pkt.Hops), want)
	}
}

func TestSendPacketTTLExpiry(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	path := []string{"H1", "S1", "R1", "H2"}
	pkt := network.NewPacket("H1", "H2", 100, 2)
	s.SendPacket(path, pkt)

	if pkt.TTL != 0 {
		t.Errorf("TTL = %d, want 0", pkt.TTL)
	}
	// Start hop plus two traversals before TTL ran out.
	if got := pkt.Hops; !slices.Equal(got, []string{"H1", "S1", "R1"}) {
		t.Errorf("Hops = %v, want [H1 S1 R1]", got)
	}
}

func TestSendPacketShortPathNoMutation(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	pkt := network.NewPacket("H1", "H1", 100, 8)
	if got := s.SendPacket([]string{"H1"}, pkt); got != 0.0 {
		t.Errorf("SendPacket single-node path = %v, want 0", got)
	}
	if pkt.TTL != 8 || len(pkt.Hops) != 0 {
		t.Errorf("packet mutated: ttl=%d hops=%v", pkt.TTL, pkt.Hops)
	}
}

func TestSendPacketFirstMatchWinsOnParallelEdges(t *testing.T) {
	s, _ := NewSimulator("sim-test", nil, nil, nil, time.Second)
	s.AddDevice(network.NewRouter("A"))
	s.AddDevice(network.NewRouter("B"))
	first := network.Link{LatencyMs: 10, BandwidthMbps: 10}
	second := network.Link{LatencyMs: 1, BandwidthMbps: 1000}
	s.Connect("A", "B", first, false)
	s.Connect("A", "B", second, false)

	pkt := network.NewPacket("A", "B", 1000, 4)
	got := s.SendPacket([]string{"A", "B"}, pkt)
	if want := first.CostForBytes(1000); got != want {
		t.Errorf("cost = %v, want first-inserted link cost %v", got, want)
	}
}

func TestSendPacketMissingEdgePenalty(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	// H1 has no direct link to H2; the hop is charged the unusable penalty.
	pkt := network.NewPacket("H1", "H2", 100, 4)
	if got := s.SendPacket([]string{"H1", "H2"}, pkt); got < 1e9 {
		t.Errorf("missing edge cost = %v, want >= 1e9", got)
	}
}

func TestTransmitStatuses(t *testing.T) {
	s := newTestSimulator(t, nil, nil)
	s.AddDevice(network.NewHost("LONER"))

	row, hops := s.Transmit("H1", "H2", 1500, 16)
	if row.Status != network.StatusDelivered {
		t.Errorf("status = %s, want delivered", row.Status)
	}
	if row.HopCount != len(hops) || row.HopCount == 0 {
		t.Errorf("hop count = %d, hop rows = %d", row.HopCount, len(hops))
	}
	if row.Seconds <= 0 {
		t.Errorf("seconds = %v, want > 0", row.Seconds)
	}

	row, hops = s.Transmit("H1", "LONER", 100, 16)
	if row.Status != network.StatusNoRoute {
		t.Errorf("status = %s, want no_route", row.Status)
	}
	if len(hops) != 0 {
		t.Errorf("hop rows for unroutable packet: %v", hops)
	}

	row, _ = s.Transmit("H1", "H2", 1500, 1)
	if row.Status != network.StatusTTLExpired {
		t.Errorf("status = %s, want ttl_expired", row.Status)
	}
	if row.TTLLeft != 0 {
		t.Errorf("ttl_left = %d, want 0", row.TTLLeft)
	}
}

func TestTickWritesFlows(t *testing.T) {
	writer := &MockWriter{}
	hopWriter := &MockHopWriter{}
	s := newTestSimulator(t, writer, hopWriter)

	s.tick(context.Background())

	if len(writer.Rows) != 1 {
		t.Fatalf("expected 1 transmission row, got %d", len(writer.Rows))
	}
	row := writer.Rows[0]
	if row.Src != "H1" || row.Dst != "H2" || row.SimID != "sim-test" {
		t.Errorf("unexpected row: %+v", row)
	}
	if len(hopWriter.Hops) != row.HopCount {
		t.Errorf("hop rows = %d, want %d", len(hopWriter.Hops), row.HopCount)
	}
	for _, h := range hopWriter.Hops {
		if h.PacketID != row.PacketID {
			t.Errorf("hop packet id %s does not match %s", h.PacketID, row.PacketID)
		}
	}
}

func TestRecentTransmissionsRing(t *testing.T) {
	s := newTestSimulator(t, nil, nil)
	for i := 0; i < recentLimit+10; i++ {
		s.Transmit("H1", "H2", 100, 16)
	}
	if got := len(s.RecentTransmissions()); got != recentLimit {
		t.Errorf("recent length = %d, want %d", got, recentLimit)
	}
}

func TestRouteQuery(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	res := s.RouteQuery("H1", "H2", 1500)
	if !res.Found {
		t.Fatal("expected a route")
	}
	if len(res.HopCost) != len(res.Path)-1 {
		t.Errorf("hop costs = %d, path = %d nodes", len(res.HopCost), len(res.Path))
	}
	sum := 0.0
	for _, c := range res.HopCost {
		sum += c
	}
	if sum != res.Seconds {
		t.Errorf("seconds = %v, hop sum = %v", res.Seconds, sum)
	}

	if res := s.RouteQuery("H2", "ghost", 100); res.Found {
		t.Error("found route to absent node")
	}
}

func TestHealthAndDevices(t *testing.T) {
	s := newTestSimulator(t, nil, nil)

	h := s.Health()
	if h.Devices != 4 {
		t.Errorf("devices = %d, want 4", h.Devices)
	}
	if h.Kinds["host"] != 2 || h.Kinds["router"] != 1 || h.Kinds["switch"] != 1 {
		t.Errorf("kinds = %v", h.Kinds)
	}
	// Three bidirectional links produce six directed arcs.
	if h.Links != 6 {
		t.Errorf("links = %d, want 6", h.Links)
	}

	devs := s.Devices()
	if len(devs) != 4 || devs[0].Name != "H1" {
		t.Errorf("devices = %+v", devs)
	}
}
