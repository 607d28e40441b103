// Route computation over link-annotated topologies.
package routing

import (
	"netsim/internal/graph"
	"netsim/internal/network"
)

// Algorithm chooses a node path through a link topology for a payload of the
// given size. An empty path means no route exists. Implementations are
// substitutable without touching the simulator.
type Algorithm interface {
	Route(g *graph.Graph[string, network.Link], src, dst string, payloadBytes int) []string
}

// DijkstraRouting finds least-transmission-time routes by running Dijkstra
// over an ephemeral weighted view of the topology. Because link cost depends
// on payload size, the same topology can route the same endpoints
// differently for different packet sizes.
type DijkstraRouting struct{}

// Route builds a directed WeightedEdge graph mirroring g's node set and
// arcs, weighting every arc with the link's cost for payloadBytes, then
// returns the shortest path src→dst. The weighted graph is rebuilt on every
// call.
func (DijkstraRouting) Route(g *graph.Graph[string, network.Link], src, dst string, payloadBytes int) []string {
	wg := graph.New[string, graph.WeightedEdge](true)
	for _, u := range g.Nodes() {
		wg.AddNode(u)
	}
	for _, u := range g.Nodes() {
		for _, arc := range g.Arcs(u) {
			cost := arc.Edge.CostForBytes(payloadBytes)
			wg.AddEdge(u, arc.To, graph.WeightedEdge{Weight: cost})
		}
	}

	var dj graph.Dijkstra[string]
	dj.Run(wg, src)
	return dj.PathTo(src, dst)
}
