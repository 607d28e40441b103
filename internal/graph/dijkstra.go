package graph

import (
	"cmp"
	"container/heap"
	"math"
	"slices"
)

// WeightedEdge is the edge payload consumed by Dijkstra: a single
// nonnegative scalar weight.
type WeightedEdge struct {
	Weight float64
}

// Dijkstra computes single-source shortest distances over a WeightedEdge
// graph. Dist maps every known node to its best distance (+Inf when
// unreached); Parent holds the predecessor of each reached node. Both maps
// are rebuilt from scratch on every Run and must not be read mid-run.
//
// All edge weights must be nonnegative. This is a caller contract: the
// engine does not validate it, and negative weights silently produce wrong
// distances.
type Dijkstra[N cmp.Ordered] struct {
	Dist   map[N]float64
	Parent map[N]N
}

type distEntry[N cmp.Ordered] struct {
	node N
	dist float64
}

// distQueue is a min-heap ordered by (distance, node).
type distQueue[N cmp.Ordered] []distEntry[N]

func (q distQueue[N]) Len() int { return len(q) }

func (q distQueue[N]) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].node < q[j].node
}

func (q distQueue[N]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *distQueue[N]) Push(x any) { *q = append(*q, x.(distEntry[N])) }

func (q *distQueue[N]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}

// Run computes shortest distances from start. Relaxations push fresh queue
// entries instead of decreasing keys; superseded entries stay in the queue
// and are skipped at pop time when their recorded distance no longer matches
// the live best (lazy deletion). If start is not a node of g, Run leaves
// every distance at +Inf.
func (d *Dijkstra[N]) Run(g *Graph[N, WeightedEdge], start N) {
	d.Dist = make(map[N]float64, g.Len())
	d.Parent = make(map[N]N)
	for _, n := range g.Nodes() {
		d.Dist[n] = math.Inf(1)
	}
	if !g.HasNode(start) {
		return
	}
	d.Dist[start] = 0

	pq := distQueue[N]{{node: start, dist: 0}}
	for pq.Len() > 0 {
		it := heap.Pop(&pq).(distEntry[N])
		if it.dist != d.Dist[it.node] {
			continue // stale entry superseded by a later relaxation
		}
		for _, arc := range g.Arcs(it.node) {
			next := it.dist + arc.Edge.Weight
			if next < d.Dist[arc.To] {
				d.Dist[arc.To] = next
				d.Parent[arc.To] = it.node
				heap.Push(&pq, distEntry[N]{node: arc.To, dist: next})
			}
		}
	}
}

// PathTo reconstructs the start..target node sequence (inclusive) by walking
// Parent backward from target. It returns nil when target was never reached
// or the parent chain is broken; "no path" is a value, not an error.
func (d *Dijkstra[N]) PathTo(start, target N) []N {
	dist, ok := d.Dist[target]
	if !ok || math.IsInf(dist, 1) {
		return nil
	}
	var path []N
	cur := target
	for cur != start {
		path = append(path, cur)
		p, ok := d.Parent[cur]
		if !ok {
			return nil
		}
		cur = p
	}
	path = append(path, start)
	slices.Reverse(path)
	return path
}
