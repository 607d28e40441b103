// Generic adjacency-list graph used by the routing and simulation layers.
package graph

import (
	"cmp"
	"slices"
)

// Arc is one outgoing connection: the neighbor it leads to plus the edge
// payload attached to the connection.
type Arc[N cmp.Ordered, E any] struct {
	To   N
	Edge E
}

// Graph is an adjacency-list graph parameterized over the node identity type
// and the edge payload type. Arcs keep insertion order and parallel edges are
// allowed; nothing is merged. Directedness is fixed at construction.
//
// None of the operations report errors: queries against absent nodes degrade
// to empty results.
type Graph[N cmp.Ordered, E any] struct {
	adj      map[N][]Arc[N, E]
	directed bool
}

// New creates an empty graph. Pass directed=false for an undirected graph,
// in which case AddEdge and RemoveEdge maintain mirrored arcs.
func New[N cmp.Ordered, E any](directed bool) *Graph[N, E] {
	return &Graph[N, E]{adj: make(map[N][]Arc[N, E]), directed: directed}
}

// Directed reports whether the graph was constructed as directed.
func (g *Graph[N, E]) Directed() bool { return g.directed }

// AddNode inserts a node with no arcs. Adding an existing node is a no-op.
func (g *Graph[N, E]) AddNode(n N) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = nil
	}
}

// AddEdge inserts an arc from→to carrying edge, creating both endpoints if
// they are absent. Undirected graphs also get the mirror arc to→from with the
// same payload.
func (g *Graph[N, E]) AddEdge(from, to N, edge E) {
	g.AddNode(from)
	g.AddNode(to)
	g.adj[from] = append(g.adj[from], Arc[N, E]{To: to, Edge: edge})
	if !g.directed {
		g.adj[to] = append(g.adj[to], Arc[N, E]{To: from, Edge: edge})
	}
}

// RemoveNode deletes n and strips every arc referencing it from all other
// adjacency lists, so no dangling arcs survive.
func (g *Graph[N, E]) RemoveNode(n N) {
	delete(g.adj, n)
	for u, arcs := range g.adj {
		g.adj[u] = slices.DeleteFunc(arcs, func(a Arc[N, E]) bool {
			return a.To == n
		})
	}
}

// RemoveEdge deletes all arcs from→to, not just the first. Undirected graphs
// also drop the mirrored to→from arcs.
func (g *Graph[N, E]) RemoveEdge(from, to N) {
	if arcs, ok := g.adj[from]; ok {
		g.adj[from] = slices.DeleteFunc(arcs, func(a Arc[N, E]) bool {
			return a.To == to
		})
	}
	if !g.directed {
		if arcs, ok := g.adj[to]; ok {
			g.adj[to] = slices.DeleteFunc(arcs, func(a Arc[N, E]) bool {
				return a.To == from
			})
		}
	}
}

// Neighbors returns the neighbor identities of n in adjacency (insertion)
// order. Absent nodes yield an empty result. Parallel edges produce repeated
// entries.
func (g *Graph[N, E]) Neighbors(n N) []N {
	arcs, ok := g.adj[n]
	if !ok || len(arcs) == 0 {
		return nil
	}
	out := make([]N, len(arcs))
	for i, a := range arcs {
		out[i] = a.To
	}
	return out
}

// Arcs returns n's outgoing arcs with their edge payloads, in adjacency
// order. The slice is a copy; mutating it does not touch the graph.
func (g *Graph[N, E]) Arcs(n N) []Arc[N, E] {
	arcs, ok := g.adj[n]
	if !ok || len(arcs) == 0 {
		return nil
	}
	return slices.Clone(arcs)
}

// HasNode reports whether n is a node of the graph.
func (g *Graph[N, E]) HasNode(n N) bool {
	_, ok := g.adj[n]
	return ok
}

// Len returns the number of nodes.
func (g *Graph[N, E]) Len() int { return len(g.adj) }

// Clear removes every node and arc.
func (g *Graph[N, E]) Clear() {
	g.adj = make(map[N][]Arc[N, E])
}

// Nodes returns all node identities in sorted order, so callers iterating
// the node set get deterministic results.
func (g *Graph[N, E]) Nodes() []N {
	out := make([]N, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
