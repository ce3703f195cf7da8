package algorithms

import (
	"fmt"
	"sort"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// CoreSelection is the core of the largest community, prepared for an
// external renderer: the induced subgraph, the full centrality ranking of
// the selected nodes, and the subset that should receive visible labels.
type CoreSelection struct {
	CommunityID int
	Members     []string // all members of the community, ranked
	Core        []string // top kVisualize members
	Labels      []string // top kLabel members
	Subgraph    *graph.Directed
}

// SelectCore picks the largest community by member count and extracts the
// induced subgraph on its top kVisualize members ranked by centrality.
//
// Tie-break rules, chosen for reproducibility:
//   - equal community sizes: the smallest community id wins;
//   - equal centrality: node ids compare lexicographically ascending.
func SelectCore(g *graph.Directed, result *CommunityResult, centrality map[string]float64, kVisualize, kLabel int) (*CoreSelection, error) {
	if kVisualize < 0 || kLabel < 0 || kLabel > kVisualize {
		return nil, fmt.Errorf("kVisualize=%d kLabel=%d: %w", kVisualize, kLabel, ErrInvalidSelectionParameter)
	}
	if result == nil || len(result.NodeCommunity) == 0 {
		return nil, ErrNoCommunities
	}

	counts := make(map[int]int)
	for _, c := range result.NodeCommunity {
		counts[c]++
	}
	largest, largestSize := -1, 0
	for c, size := range counts {
		if size > largestSize || (size == largestSize && c < largest) {
			largest, largestSize = c, size
		}
	}

	members := make([]string, 0, largestSize)
	for _, id := range g.Nodes() {
		if c, ok := result.NodeCommunity[id]; ok && c == largest {
			members = append(members, id)
		}
	}
	sort.Slice(members, func(i, j int) bool {
		ci, cj := centrality[members[i]], centrality[members[j]]
		if ci != cj {
			return ci > cj
		}
		return members[i] < members[j]
	})

	core := members
	if len(core) > kVisualize {
		core = core[:kVisualize]
	}
	labels := core
	if len(labels) > kLabel {
		labels = labels[:kLabel]
	}

	return &CoreSelection{
		CommunityID: largest,
		Members:     members,
		Core:        core,
		Labels:      labels,
		Subgraph:    g.Subgraph(core),
	}, nil
}
