package algorithms

import (
	"sort"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// halfEdge is one endpoint's view of an undirected edge at some level of
// the agglomeration. Each edge appears in both endpoints' lists.
type halfEdge struct {
	to     int
	weight float64
}

// levelGraph is the working representation for one Louvain level. Self
// weights carry the intra-community weight of collapsed communities up to
// the next level; they count towards node degree (twice) but never appear
// in adjacency lists.
type levelGraph struct {
	adj  [][]halfEdge
	self []float64
}

func (lg *levelGraph) degree(i int) float64 {
	k := 2 * lg.self[i]
	for _, e := range lg.adj[i] {
		k += e.weight
	}
	return k
}

// Louvain assigns every node of the undirected projection a community id by
// greedy multi-level modularity optimisation. Nodes are visited in
// insertion order on every sweep, so the partition is deterministic for a
// fixed input. Community ids are renumbered by first appearance over node
// insertion order. An empty graph yields an empty partition.
func Louvain(u *graph.Undirected) *CommunityResult {
	nodes := u.Nodes()
	result := &CommunityResult{NodeCommunity: make(map[string]int, len(nodes))}
	if len(nodes) == 0 {
		return result
	}

	index := make(map[string]int, len(nodes))
	for i, id := range nodes {
		index[id] = i
	}

	lg := &levelGraph{
		adj:  make([][]halfEdge, len(nodes)),
		self: make([]float64, len(nodes)),
	}
	for i, id := range nodes {
		for _, nb := range u.Neighbors(id) {
			w, _ := u.Weight(id, nb)
			lg.adj[i] = append(lg.adj[i], halfEdge{to: index[nb], weight: float64(w)})
		}
	}

	m := float64(u.TotalWeight())

	// membership maps each original node index to its current meta-node
	membership := make([]int, len(nodes))
	for i := range membership {
		membership[i] = i
	}

	// A graph without edges stays at the all-singletons partition; the gain
	// formula would divide by zero anyway.
	if m > 0 {
		for {
			comm, moved := localPhase(lg, m)
			comm, nComm := renumber(comm)
			for i := range membership {
				membership[i] = comm[membership[i]]
			}
			result.Levels++
			if !moved || nComm == len(lg.adj) {
				break
			}
			lg = aggregate(lg, comm, nComm)
		}
	}

	// Renumber once more so final ids follow first appearance over the
	// original node order, independent of the aggregation history.
	final, nComm := renumber(membership)
	members := make([][]string, nComm)
	for i, id := range nodes {
		result.NodeCommunity[id] = final[i]
		members[final[i]] = append(members[final[i]], id)
	}
	for c := 0; c < nComm; c++ {
		result.Communities = append(result.Communities, &Community{
			ID:    c,
			Nodes: members[c],
			Size:  len(members[c]),
		})
	}
	result.Modularity = Modularity(u, result.NodeCommunity)
	return result
}

// localPhase sweeps all nodes repeatedly, moving each to the neighbouring
// community with the strictly largest positive modularity gain, until a
// full sweep makes no move. Returns the community of each node and whether
// any move happened at all.
func localPhase(lg *levelGraph, m float64) (comm []int, moved bool) {
	n := len(lg.adj)
	comm = make([]int, n)
	sumTot := make([]float64, n) // total degree of each community
	k := make([]float64, n)
	for i := 0; i < n; i++ {
		comm[i] = i
		k[i] = lg.degree(i)
		sumTot[i] = k[i]
	}

	for {
		movedInSweep := false
		for i := 0; i < n; i++ {
			old := comm[i]
			sumTot[old] -= k[i]

			// Weight from i to each adjacent community, candidates kept in
			// first-encountered order for deterministic tie-breaking.
			commWeight := make(map[int]float64)
			candidates := make([]int, 0, len(lg.adj[i]))
			for _, e := range lg.adj[i] {
				c := comm[e.to]
				if _, seen := commWeight[c]; !seen {
					candidates = append(candidates, c)
				}
				commWeight[c] += e.weight
			}

			// Gain of re-entering the old community is the baseline; a
			// candidate wins only with a strictly larger gain.
			best := old
			bestGain := commWeight[old] - sumTot[old]*k[i]/(2*m)
			for _, c := range candidates {
				if c == old {
					continue
				}
				gain := commWeight[c] - sumTot[c]*k[i]/(2*m)
				if gain > bestGain {
					best = c
					bestGain = gain
				}
			}

			sumTot[best] += k[i]
			if best != old {
				comm[i] = best
				movedInSweep = true
				moved = true
			}
		}
		if !movedInSweep {
			return comm, moved
		}
	}
}

// renumber relabels communities to 0..C-1 in order of first appearance.
func renumber(comm []int) ([]int, int) {
	next := 0
	mapping := make(map[int]int, len(comm))
	out := make([]int, len(comm))
	for i, c := range comm {
		label, ok := mapping[c]
		if !ok {
			label = next
			mapping[c] = label
			next++
		}
		out[i] = label
	}
	return out, next
}

// aggregate collapses each community into a single meta-node. Inter-community
// weights sum onto meta-edges; intra-community weights (including carried
// self weights) become the meta-node's self weight.
func aggregate(lg *levelGraph, comm []int, nComm int) *levelGraph {
	next := &levelGraph{
		adj:  make([][]halfEdge, nComm),
		self: make([]float64, nComm),
	}

	weights := make([]map[int]float64, nComm)
	for i := range lg.adj {
		ci := comm[i]
		next.self[ci] += lg.self[i]
		for _, e := range lg.adj[i] {
			cj := comm[e.to]
			if ci == cj {
				// Each intra edge is visited from both endpoints.
				next.self[ci] += e.weight / 2
				continue
			}
			if weights[ci] == nil {
				weights[ci] = make(map[int]float64)
			}
			weights[ci][cj] += e.weight
		}
	}

	for ci := 0; ci < nComm; ci++ {
		neighbors := make([]int, 0, len(weights[ci]))
		for cj := range weights[ci] {
			neighbors = append(neighbors, cj)
		}
		sort.Ints(neighbors)
		for _, cj := range neighbors {
			next.adj[ci] = append(next.adj[ci], halfEdge{to: cj, weight: weights[ci][cj]})
		}
	}
	return next
}

// Modularity computes the modularity of a partition over the undirected
// graph: Q = sum over communities of in_c/(2m) - (tot_c/(2m))^2.
func Modularity(u *graph.Undirected, partition map[string]int) float64 {
	m := float64(u.TotalWeight())
	if m == 0 {
		return 0
	}

	intra := make(map[int]float64)
	tot := make(map[int]float64)
	for _, id := range u.Nodes() {
		c := partition[id]
		tot[c] += float64(u.WeightedDegree(id))
		for _, nb := range u.Neighbors(id) {
			if partition[nb] == c {
				w, _ := u.Weight(id, nb)
				intra[c] += float64(w) // ordered pairs: counts each edge twice
			}
		}
	}

	// Sum in ascending community id order so float rounding is identical
	// across runs.
	ids := make([]int, 0, len(tot))
	for c := range tot {
		ids = append(ids, c)
	}
	sort.Ints(ids)

	q := 0.0
	for _, c := range ids {
		q += intra[c] / (2 * m)
		q -= (tot[c] / (2 * m)) * (tot[c] / (2 * m))
	}
	return q
}
