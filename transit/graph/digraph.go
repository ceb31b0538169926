// Package graph provides a static weighted directed graph and a shortest path
// search over it.
package graph

// Edge represents a weighted edge between two nodes in a directed graph.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Digraph represents a directed graph. Edges are identified by their index in
// the Edges slice and Nexts[u] lists the identifiers of the edges leaving u.
//
// A Digraph is never modified once created and can safely be shared by
// concurrent readers.
type Digraph struct {
	Nexts [][]int
	Edges []Edge
}

// NewDigraph returns a graph with nodes 0 to nNodes-1 and the given edges.
// The i-th edge keeps id i, so callers can attach data to an edge (such as
// the itinerary item it stands for) in a slice parallel to edges. Edges that
// leave a node are listed in Nexts in their order in edges. NewDigraph panics
// if an edge starts outside [0, nNodes).
func NewDigraph(edges []Edge, nNodes int) *Digraph {
	nexts := make([][]int, nNodes)
	for id, e := range edges {
		nexts[e.From] = append(nexts[e.From], id)
	}
	return &Digraph{
		Nexts: nexts,
		Edges: append(make([]Edge, 0, len(edges)), edges...),
	}
}

// NodeCount returns the number of nodes in the graph.
func (dg *Digraph) NodeCount() int {
	return len(dg.Nexts)
}

// EdgeCount returns the number of edges in the graph.
func (dg *Digraph) EdgeCount() int {
	return len(dg.Edges)
}
