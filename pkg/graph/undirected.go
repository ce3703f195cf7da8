package graph

import "sort"

// Undirected is the undirected projection of a directed graph. For each
// unordered pair {u,v} the projected weight is the sum of the directed
// weights in either direction. The adjacency map is symmetric:
// adj[u][v] == adj[v][u].
type Undirected struct {
	order       []string
	index       map[string]int
	adj         map[string]map[string]int
	edgeCount   int
	totalWeight int // sum of weights, each undirected edge counted once
}

// ToUndirected builds the undirected projection of g. It does not mutate g,
// and the projection shares no state with it.
func (g *Directed) ToUndirected() *Undirected {
	u := &Undirected{
		index: make(map[string]int, len(g.order)),
		adj:   make(map[string]map[string]int, len(g.order)),
	}
	for _, id := range g.order {
		u.index[id] = len(u.order)
		u.order = append(u.order, id)
		u.adj[id] = make(map[string]int)
	}
	for _, src := range g.order {
		for dst, w := range g.out[src] {
			if u.adj[src][dst] == 0 {
				u.edgeCount++
			}
			u.adj[src][dst] += w
			u.adj[dst][src] += w
			u.totalWeight += w
		}
	}
	return u
}

// NodeCount returns the number of nodes.
func (u *Undirected) NodeCount() int {
	return len(u.order)
}

// EdgeCount returns the number of undirected edges.
func (u *Undirected) EdgeCount() int {
	return u.edgeCount
}

// TotalWeight returns the sum of all undirected edge weights, each edge
// counted once. This is the "m" of the modularity formula.
func (u *Undirected) TotalWeight() int {
	return u.totalWeight
}

// Nodes returns all node IDs in the original insertion order.
func (u *Undirected) Nodes() []string {
	nodes := make([]string, len(u.order))
	copy(nodes, u.order)
	return nodes
}

// HasNode reports whether the node is present.
func (u *Undirected) HasNode(id string) bool {
	_, ok := u.index[id]
	return ok
}

// Weight returns the projected weight of the undirected edge {a,b} and
// whether the edge exists.
func (u *Undirected) Weight(a, b string) (int, bool) {
	w, ok := u.adj[a][b]
	return w, ok
}

// Neighbors returns the neighbors of id in node insertion order.
func (u *Undirected) Neighbors(id string) []string {
	ids := make([]string, 0, len(u.adj[id]))
	for n := range u.adj[id] {
		ids = append(ids, n)
	}
	sort.Slice(ids, func(i, j int) bool {
		return u.index[ids[i]] < u.index[ids[j]]
	})
	return ids
}

// WeightedDegree returns the sum of weights of edges incident to id.
func (u *Undirected) WeightedDegree(id string) int {
	total := 0
	for _, w := range u.adj[id] {
		total += w
	}
	return total
}
