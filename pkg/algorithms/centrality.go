// Package algorithms implements the analysis passes over a communication
// graph: degree centrality, Louvain community detection, and selection of
// the core of the largest community.
package algorithms

import "github.com/netsleuth/mailgraph/pkg/graph"

// InDegreeCentrality computes normalised in-degree centrality for all nodes:
// the number of distinct senders to a node divided by N-1. Edge weights are
// ignored here; only the modularity computation uses them. An empty graph
// fails with ErrEmptyGraph and a single-node graph with ErrInsufficientNodes
// (N-1 would be zero), rather than silently reporting zeros.
func InDegreeCentrality(g *graph.Directed) (map[string]float64, error) {
	return degreeCentrality(g, func(id string) (int, error) { return g.InDegree(id) })
}

// OutDegreeCentrality computes normalised out-degree centrality: the number
// of distinct recipients of a node divided by N-1.
func OutDegreeCentrality(g *graph.Directed) (map[string]float64, error) {
	return degreeCentrality(g, func(id string) (int, error) { return g.OutDegree(id) })
}

// DegreeCentrality computes normalised total degree centrality, counting
// distinct neighbours in either direction.
func DegreeCentrality(g *graph.Directed) (map[string]float64, error) {
	return degreeCentrality(g, func(id string) (int, error) {
		in, err := g.InDegree(id)
		if err != nil {
			return 0, err
		}
		out, err := g.OutDegree(id)
		if err != nil {
			return 0, err
		}
		return in + out, nil
	})
}

func degreeCentrality(g *graph.Directed, degree func(id string) (int, error)) (map[string]float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, ErrEmptyGraph
	}
	if n < 2 {
		return nil, ErrInsufficientNodes
	}

	scores := make(map[string]float64, n)
	norm := float64(n - 1)
	for _, id := range g.Nodes() {
		d, err := degree(id)
		if err != nil {
			return nil, err
		}
		scores[id] = float64(d) / norm
	}
	return scores, nil
}
