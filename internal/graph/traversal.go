package graph

import "cmp"

// Traversal produces a visitation order over a graph starting from one node.
type Traversal[N cmp.Ordered, E any] interface {
	Run(g *Graph[N, E], start N) []N
}

// BFS visits nodes in breadth-first order. The visited set is reset on every
// Run, so one instance is reusable across calls but must not be run
// concurrently.
type BFS[N cmp.Ordered, E any] struct {
	visited map[N]bool
}

// Run returns the breadth-first visitation order from start. Nodes are marked
// visited when discovered, not when dequeued, so a node never enters the
// queue twice. A start node without neighbors (even one absent from the
// graph) yields a single-element order.
func (b *BFS[N, E]) Run(g *Graph[N, E], start N) []N {
	b.visited = map[N]bool{start: true}
	queue := []N{start}
	var order []N
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		order = append(order, n)
		for _, next := range g.Neighbors(n) {
			if !b.visited[next] {
				b.visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return order
}

// DFS visits nodes in iterative depth-first order. Like BFS, an instance is
// reusable but not reentrant.
type DFS[N cmp.Ordered, E any] struct {
	visited map[N]bool
}

// Run returns the depth-first visitation order from start. A node is visited
// only when popped unvisited; its neighbors are then pushed unconditionally,
// so a node may sit on the stack several times before its first pop. The
// resulting order reflects stack reversal of the adjacency order and is part
// of the contract.
func (d *DFS[N, E]) Run(g *Graph[N, E], start N) []N {
	d.visited = make(map[N]bool)
	stack := []N{start}
	var order []N
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if d.visited[n] {
			continue
		}
		d.visited[n] = true
		order = append(order, n)
		stack = append(stack, g.Neighbors(n)...)
	}
	return order
}
