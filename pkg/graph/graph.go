// Package graph provides an in-memory weighted directed graph keyed by
// string node IDs (email addresses), with an on-demand undirected
// projection and induced-subgraph extraction.
package graph

import "sort"

// Edge is a directed, weighted edge between two named nodes.
type Edge struct {
	From   string
	To     string
	Weight int
}

// Directed is an adjacency-map based weighted directed graph.
// Node insertion order is recorded so that all iteration (Nodes, Edges,
// Successors, Predecessors) is deterministic run-to-run for a fixed input.
// Not safe for concurrent mutation.
type Directed struct {
	order     []string                  // node IDs in insertion order
	index     map[string]int            // node ID -> position in order
	out       map[string]map[string]int // src -> dst -> weight
	in        map[string]map[string]int // dst -> src -> weight
	edgeCount int
}

// NewDirected creates an empty directed graph.
func NewDirected() *Directed {
	return &Directed{
		index: make(map[string]int),
		out:   make(map[string]map[string]int),
		in:    make(map[string]map[string]int),
	}
}

// AddNode adds a node to the graph. Adding an existing node is a no-op.
func (g *Directed) AddNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	g.out[id] = make(map[string]int)
	g.in[id] = make(map[string]int)
}

// HasNode reports whether the node is present.
func (g *Directed) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// AddEdge adds a directed edge src->dst with the given weight, creating
// endpoint nodes as needed. Self-loops are rejected, as are duplicate
// (src,dst) pairs: the upstream aggregation already merges duplicates, so a
// second edge for the same pair indicates a bug in the caller.
func (g *Directed) AddEdge(src, dst string, weight int) error {
	if src == dst {
		return newEdgeError("AddEdge", src, dst, ErrSelfLoop)
	}
	if weight < 1 {
		return newEdgeError("AddEdge", src, dst, ErrInvalidWeight)
	}
	g.AddNode(src)
	g.AddNode(dst)
	if _, exists := g.out[src][dst]; exists {
		return newEdgeError("AddEdge", src, dst, ErrDuplicateEdge)
	}
	g.out[src][dst] = weight
	g.in[dst][src] = weight
	g.edgeCount++
	return nil
}

// NodeCount returns the number of nodes.
func (g *Directed) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of directed edges.
func (g *Directed) EdgeCount() int {
	return g.edgeCount
}

// Nodes returns all node IDs in insertion order.
func (g *Directed) Nodes() []string {
	nodes := make([]string, len(g.order))
	copy(nodes, g.order)
	return nodes
}

// Edges returns all edges ordered by source insertion order, then target
// insertion order.
func (g *Directed) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for _, src := range g.order {
		targets := g.sortedNeighbors(g.out[src])
		for _, dst := range targets {
			edges = append(edges, Edge{From: src, To: dst, Weight: g.out[src][dst]})
		}
	}
	return edges
}

// InDegree returns the number of distinct predecessor nodes of id, ignoring
// edge weights. Unknown nodes report an error.
func (g *Directed) InDegree(id string) (int, error) {
	if !g.HasNode(id) {
		return 0, newNodeError("InDegree", id, ErrNodeNotFound)
	}
	return len(g.in[id]), nil
}

// WeightedInDegree returns the sum of weights of edges ending at id.
func (g *Directed) WeightedInDegree(id string) (int, error) {
	if !g.HasNode(id) {
		return 0, newNodeError("WeightedInDegree", id, ErrNodeNotFound)
	}
	total := 0
	for _, w := range g.in[id] {
		total += w
	}
	return total, nil
}

// OutDegree returns the number of distinct successor nodes of id.
func (g *Directed) OutDegree(id string) (int, error) {
	if !g.HasNode(id) {
		return 0, newNodeError("OutDegree", id, ErrNodeNotFound)
	}
	return len(g.out[id]), nil
}

// Weight returns the weight of the directed edge src->dst and whether the
// edge exists.
func (g *Directed) Weight(src, dst string) (int, bool) {
	w, ok := g.out[src][dst]
	return w, ok
}

// Predecessors returns the distinct sources of edges ending at id, in node
// insertion order.
func (g *Directed) Predecessors(id string) []string {
	return g.sortedNeighbors(g.in[id])
}

// Successors returns the distinct targets of edges starting at id, in node
// insertion order.
func (g *Directed) Successors(id string) []string {
	return g.sortedNeighbors(g.out[id])
}

// Subgraph returns the subgraph induced by keep: the listed nodes that exist
// in g, plus every edge whose endpoints are both kept, with original weights
// and direction. Relative node insertion order is preserved.
func (g *Directed) Subgraph(keep []string) *Directed {
	member := make(map[string]bool, len(keep))
	for _, id := range keep {
		if g.HasNode(id) {
			member[id] = true
		}
	}

	sub := NewDirected()
	for _, id := range g.order {
		if member[id] {
			sub.AddNode(id)
		}
	}
	for _, id := range g.order {
		if !member[id] {
			continue
		}
		for _, dst := range g.sortedNeighbors(g.out[id]) {
			if member[dst] {
				sub.out[id][dst] = g.out[id][dst]
				sub.in[dst][id] = g.out[id][dst]
				sub.edgeCount++
			}
		}
	}
	return sub
}

// sortedNeighbors orders the keys of a neighbor map by node insertion order.
func (g *Directed) sortedNeighbors(m map[string]int) []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return g.index[ids[i]] < g.index[ids[j]]
	})
	return ids
}
