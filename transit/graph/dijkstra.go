package graph

import (
	"errors"
	"fmt"
	"math"

	"github.com/rhartert/sparsesets"
	"github.com/rhartert/yagh"
)

// ErrNoPath is returned by ShortestPath when the destination cannot be reached
// from the source.
var ErrNoPath = errors.New("no path")

// Path represents a path in a Digraph as the sequence of its edges. The zero
// value is the empty path of weight 0.
type Path struct {
	Weight float64
	Edges  []int
}

// ShortestPath computes a minimum weight path from node src to node dst in g.
// All edge weights must be non-negative.
//
// Every call allocates its own working state so that several searches can run
// concurrently on the same graph. Among paths of equal weight, the one that is
// found first is kept: a node's predecessor is only replaced on a strict
// improvement and edges are scanned in the order they were added to the
// graph. The result is thus the same for the same graph and query.
func ShortestPath(g *Digraph, src int, dst int) (Path, error) {
	if g == nil {
		return Path{}, fmt.Errorf("digraph is nil")
	}

	nNodes := len(g.Nexts)
	if src < 0 || nNodes <= src {
		return Path{}, fmt.Errorf("node %d is not in the graph", src)
	}
	if dst < 0 || nNodes <= dst {
		return Path{}, fmt.Errorf("node %d is not in the graph", dst)
	}

	costs := make([]float64, nNodes)
	for i := range costs {
		costs[i] = math.Inf(1)
	}
	prevs := make([]int, nNodes) // edge used to reach each node
	for i := range prevs {
		prevs[i] = -1
	}
	settled := sparsesets.New(nNodes)

	// The queue never updates the cost of an entry: every improvement pushes a
	// new entry and outdated ones are skipped when popped. Entries are keyed by
	// push order, nodes[k] being the node of the k-th entry. There is at most
	// one push for the source and one per improving edge scan, and each edge
	// is scanned at most once.
	h := yagh.New[float64](g.EdgeCount() + 1)
	nodes := make([]int, 0, g.EdgeCount()+1)
	push := func(v int, c float64) {
		h.Put(len(nodes), c)
		nodes = append(nodes, v)
	}

	costs[src] = 0
	push(src, 0)

	for h.Size() > 0 {
		entry := h.Pop()
		u, c := nodes[entry.Elem], entry.Cost
		if settled.Contains(u) {
			continue // outdated entry
		}
		if err := settled.Insert(u); err != nil {
			return Path{}, err
		}

		if u == dst {
			break
		}

		for _, e := range g.Nexts[u] {
			v := g.Edges[e].To
			if settled.Contains(v) {
				continue
			}

			// Path src -> u -> v is not better than the best known path.
			newCost := c + g.Edges[e].Weight
			if costs[v] <= newCost {
				continue
			}

			costs[v] = newCost
			prevs[v] = e
			push(v, newCost)
		}
	}

	if !settled.Contains(dst) {
		return Path{}, ErrNoPath
	}

	return Path{
		Weight: costs[dst],
		Edges:  backtrack(g, prevs, src, dst),
	}, nil
}

// backtrack follows the predecessor edges from dst back to src and returns
// the edges in path order.
func backtrack(g *Digraph, prevs []int, src int, dst int) []int {
	edges := []int{}
	for v := dst; v != src; v = g.Edges[prevs[v]].From {
		edges = append(edges, prevs[v])
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return edges
}
