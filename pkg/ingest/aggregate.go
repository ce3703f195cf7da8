package ingest

import (
	"strings"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// WeightedEdge is an aggregated directed edge: weight counts how many raw
// pairs collapsed into it.
type WeightedEdge struct {
	From   string
	To     string
	Weight int
}

// Aggregate collapses raw pairs into a weighted edge set. Both fields are
// trimmed of surrounding whitespace; pairs with a blank field and self-loop
// pairs are discarded; the survivors are grouped by (From,To) with weight
// equal to the group size.
//
// Output order is first-seen order of each (From,To) key, which makes the
// result deterministic for a fixed input, but callers must treat it as an
// unordered set.
func Aggregate(pairs []Pair) []WeightedEdge {
	counts := make(map[Pair]int, len(pairs))
	order := make([]Pair, 0, len(pairs))

	for _, p := range pairs {
		key := Pair{
			From: strings.TrimSpace(p.From),
			To:   strings.TrimSpace(p.To),
		}
		if key.From == "" || key.To == "" || key.From == key.To {
			continue
		}
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}

	edges := make([]WeightedEdge, 0, len(order))
	for _, key := range order {
		edges = append(edges, WeightedEdge{From: key.From, To: key.To, Weight: counts[key]})
	}
	return edges
}

// BuildGraph loads an aggregated edge set into a directed graph. Aggregate
// already guarantees uniqueness and no self-loops, so any error here means
// the input did not come from Aggregate.
func BuildGraph(edges []WeightedEdge) (*graph.Directed, error) {
	g := graph.NewDirected()
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To, e.Weight); err != nil {
			return nil, err
		}
	}
	return g, nil
}
