// Network simulator owning the topology graph and the device registry
package sim

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"netsim/internal/config"
	"netsim/internal/graph"
	"netsim/internal/network"
	"netsim/internal/routing"
	"netsim/internal/scenario"
)

// TransmissionWriter is an interface to support different output writers.
type TransmissionWriter interface {
	Write(network.TransmissionRow) error
}

// HopWriter handles per-hop trace records.
type HopWriter interface {
	WriteHop(network.HopRow) error
}

// Optional: writers may also support batch mode
type batchWriter interface {
	WriteBatch([]network.TransmissionRow) error
}

// Optional: hop writers may support batch mode
type batchHopWriter interface {
	WriteHops([]network.HopRow) error
}

// ErrNilDevice is returned when a nil device reference is registered.
var ErrNilDevice = errors.New("nil device")

// ErrUnknownNode is returned when connecting a node that was never
// registered.
var ErrUnknownNode = errors.New("unknown node")

// A missing edge along a replayed path costs this much, mirroring the
// unusable-link sentinel, instead of failing the transmission.
const unreachableHopCost = 1e9

// Number of transmissions kept for the admin view.
const recentLimit = 128

// Simulator owns a directed link topology and a registry of devices keyed by
// name. Devices are externally owned: the simulator stores references only
// and callers must keep a device alive for as long as the simulator may
// touch it. All state is guarded by one mutex; route queries and
// transmissions are sequential.
type Simulator struct {
	simID        string
	topo         *graph.Graph[string, network.Link]
	devices      map[string]network.Device
	router       routing.Algorithm
	writer       TransmissionWriter
	hopWriter    HopWriter
	flows        []config.Flow
	tickInterval time.Duration
	recent       []network.TransmissionRow
	scn          *scenario.Engine
	downed       map[string]network.Link
	now          func() time.Time
	mu           sync.Mutex
}

// NewSimulator builds a simulator from a topology config. cfg may be nil for
// an empty simulator populated later via AddDevice/Connect. writer and
// hopWriter may be nil when no records should be emitted.
func NewSimulator(simID string, cfg *config.TopologyConfig, writer TransmissionWriter, hopWriter HopWriter, tickInterval time.Duration) (*Simulator, error) {
	s := &Simulator{
		simID:        simID,
		topo:         graph.New[string, network.Link](true),
		devices:      make(map[string]network.Device),
		router:       routing.DijkstraRouting{},
		writer:       writer,
		hopWriter:    hopWriter,
		tickInterval: tickInterval,
		downed:       make(map[string]network.Link),
		now:          time.Now,
	}
	if cfg == nil {
		return s, nil
	}
	for _, d := range cfg.Devices {
		dev, err := network.NewDevice(d.Name, d.Kind)
		if err != nil {
			return nil, err
		}
		if err := s.AddDevice(dev); err != nil {
			return nil, err
		}
	}
	for _, l := range cfg.Links {
		link := network.Link{
			LatencyMs:     l.LatencyMs,
			BandwidthMbps: l.BandwidthMbps,
			Reliability:   l.Reliability,
		}
		if err := s.Connect(l.From, l.To, link, l.Bidir()); err != nil {
			return nil, err
		}
	}
	s.flows = cfg.Flows
	return s, nil
}

// SetRouter substitutes the routing strategy.
func (s *Simulator) SetRouter(r routing.Algorithm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router = r
}

// AddDevice registers a device and ensures a corresponding topology node.
func (s *Simulator) AddDevice(d network.Device) error {
	if d == nil {
		return ErrNilDevice
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices[d.Name()] = d
	s.topo.AddNode(d.Name())
	return nil
}

// Connect links two registered nodes. bidir inserts two explicit directed
// arcs carrying the same link value; the topology graph itself stays
// directed.
func (s *Simulator) Connect(a, b string, link network.Link, bidir bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.topo.HasNode(a) {
		return fmt.Errorf("connect %s->%s: %w: %s", a, b, ErrUnknownNode, a)
	}
	if !s.topo.HasNode(b) {
		return fmt.Errorf("connect %s->%s: %w: %s", a, b, ErrUnknownNode, b)
	}
	s.topo.AddEdge(a, b, link)
	if bidir {
		s.topo.AddEdge(b, a, link)
	}
	return nil
}

// FindRoute returns the shortest-cost path for a payload of the given size,
// or an empty path when none exists.
func (s *Simulator) FindRoute(src, dst string, payloadBytes int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Route(s.topo, src, dst, payloadBytes)
}

// SendPacket replays pkt along path, accumulating per-hop transmission time
// in seconds. Each hop decrements TTL and appends to the hop history; replay
// stops early, without error, once TTL reaches zero. A path shorter than two
// nodes costs 0.0 and mutates nothing.
//
// Under parallel edges between the same pair, the first matching arc in
// adjacency order decides the cost, not the cheapest. That quirk is kept
// deliberately; callers who care should not build parallel links with
// different characteristics.
func (s *Simulator) SendPacket(path []string, pkt *network.Packet) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sendPacket(path, pkt, nil)
}

func (s *Simulator) sendPacket(path []string, pkt *network.Packet, emit func(network.HopRow)) float64 {
	if len(path) < 2 {
		return 0.0
	}
	total := 0.0
	pkt.AddHop(path[0])
	for i := 1; i < len(path); i++ {
		if pkt.TTL <= 0 {
			break
		}
		u, v := path[i-1], path[i]
		cost := unreachableHopCost
		for _, arc := range s.topo.Arcs(u) {
			if arc.To == v {
				cost = arc.Edge.CostForBytes(pkt.Size)
				break
			}
		}
		total += cost
		pkt.DecTTL()
		pkt.AddHop(v)
		if emit != nil {
			emit(network.HopRow{
				SimID:     s.simID,
				PacketID:  pkt.ID,
				From:      u,
				To:        v,
				Seconds:   cost,
				TTLLeft:   pkt.TTL,
				Timestamp: s.now().UTC(),
			})
		}
	}
	return total
}

// Transmit routes a fresh packet from src to dst and replays it, returning
// the transmission summary and the per-hop trace.
func (s *Simulator) Transmit(src, dst string, sizeBytes, ttl int) (network.TransmissionRow, []network.HopRow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transmit(src, dst, sizeBytes, ttl)
}

func (s *Simulator) transmit(src, dst string, sizeBytes, ttl int) (network.TransmissionRow, []network.HopRow) {
	pkt := network.NewPacket(src, dst, sizeBytes, ttl)
	row := network.TransmissionRow{
		SimID:     s.simID,
		PacketID:  pkt.ID,
		Src:       src,
		Dst:       dst,
		SizeBytes: sizeBytes,
		TTLLeft:   ttl,
		Timestamp: s.now().UTC(),
	}

	path := s.router.Route(s.topo, src, dst, sizeBytes)
	if len(path) == 0 {
		row.Status = network.StatusNoRoute
		s.remember(row)
		return row, nil
	}

	var hops []network.HopRow
	seconds := s.sendPacket(path, pkt, func(h network.HopRow) { hops = append(hops, h) })

	row.Path = path
	row.HopCount = len(hops)
	row.Seconds = seconds
	row.TTLLeft = pkt.TTL
	switch {
	case len(path) < 2:
		row.Status = network.StatusDelivered // already at destination
	case pkt.Hops[len(pkt.Hops)-1] == dst:
		row.Status = network.StatusDelivered
	default:
		row.Status = network.StatusTTLExpired
	}
	s.remember(row)
	return row, hops
}

func (s *Simulator) remember(row network.TransmissionRow) {
	s.recent = append(s.recent, row)
	if len(s.recent) > recentLimit {
		s.recent = s.recent[len(s.recent)-recentLimit:]
	}
}

// DeviceInfo summarizes one registered device for reporting.
type DeviceInfo struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Degree int    `json:"degree"`
}

// Devices returns all registered devices sorted by name.
func (s *Simulator) Devices() []DeviceInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DeviceInfo
	for _, name := range s.topo.Nodes() {
		info := DeviceInfo{Name: name, Degree: len(s.topo.Neighbors(name))}
		if d, ok := s.devices[name]; ok {
			info.Kind = d.Kind()
		}
		out = append(out, info)
	}
	return out
}

// LinkInfo describes one directed arc of the topology.
type LinkInfo struct {
	From          string  `json:"from"`
	To            string  `json:"to"`
	LatencyMs     float64 `json:"latency_ms"`
	BandwidthMbps float64 `json:"bandwidth_mbps"`
	Reliability   float64 `json:"reliability"`
}

// Topology returns every directed arc, grouped by source node in sorted
// order.
func (s *Simulator) Topology() []LinkInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []LinkInfo
	for _, from := range s.topo.Nodes() {
		for _, arc := range s.topo.Arcs(from) {
			out = append(out, LinkInfo{
				From:          from,
				To:            arc.To,
				LatencyMs:     arc.Edge.LatencyMs,
				BandwidthMbps: arc.Edge.BandwidthMbps,
				Reliability:   arc.Edge.Reliability,
			})
		}
	}
	return out
}

// HealthSummary aggregates topology counts per device kind.
type HealthSummary struct {
	Devices int            `json:"devices"`
	Links   int            `json:"links"`
	Kinds   map[string]int `json:"kinds"`
}

// Health returns aggregated topology information.
func (s *Simulator) Health() HealthSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := HealthSummary{Devices: s.topo.Len(), Kinds: make(map[string]int)}
	for _, d := range s.devices {
		h.Kinds[d.Kind()]++
	}
	for _, n := range s.topo.Nodes() {
		h.Links += len(s.topo.Neighbors(n))
	}
	return h
}

// RecentTransmissions returns a copy of the most recent transmission rows.
func (s *Simulator) RecentTransmissions() []network.TransmissionRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]network.TransmissionRow, len(s.recent))
	copy(out, s.recent)
	return out
}

// RouteResult is the answer to a one-shot route query.
type RouteResult struct {
	Path    []string  `json:"path"`
	HopCost []float64 `json:"hop_cost"`
	Seconds float64   `json:"seconds"`
	Found   bool      `json:"found"`
}

// RouteQuery computes a route and its per-hop costs without sending a
// packet.
func (s *Simulator) RouteQuery(src, dst string, payloadBytes int) RouteResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	path := s.router.Route(s.topo, src, dst, payloadBytes)
	if len(path) == 0 {
		return RouteResult{}
	}
	res := RouteResult{Path: path, Found: true}
	for i := 1; i < len(path); i++ {
		cost := unreachableHopCost
		for _, arc := range s.topo.Arcs(path[i-1]) {
			if arc.To == path[i] {
				cost = arc.Edge.CostForBytes(payloadBytes)
				break
			}
		}
		res.HopCost = append(res.HopCost, cost)
		res.Seconds += cost
	}
	return res
}

// Config returns the flows the simulator was built with.
func (s *Simulator) Flows() []config.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]config.Flow, len(s.flows))
	copy(out, s.flows)
	return out
}
