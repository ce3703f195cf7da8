package visualization

import (
	"math"
	"math/rand"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// ForceDirectedLayout implements force-directed (spring) graph layout
type ForceDirectedLayout struct {
	config *LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config *LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using the force-directed algorithm.
// Initial placement draws from a PRNG seeded by config.Seed, so the layout
// is reproducible for a fixed graph and seed.
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Directed, nodeIDs []string) (map[string]Position, error) {
	if len(nodeIDs) == 0 {
		return make(map[string]Position), nil
	}

	// Single node - center it
	if len(nodeIDs) == 1 {
		return map[string]Position{
			nodeIDs[0]: {
				X: fdl.config.Width / 2,
				Y: fdl.config.Height / 2,
			},
		}, nil
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))

	// Initialize random positions
	positions := make(map[string]Position)
	for _, nodeID := range nodeIDs {
		positions[nodeID] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Build neighbor lists in a deterministic order
	neighbors := make(map[string][]string)
	for _, nodeID := range nodeIDs {
		seen := make(map[string]bool)
		for _, nb := range g.Successors(nodeID) {
			if !seen[nb] {
				seen[nb] = true
				neighbors[nodeID] = append(neighbors[nodeID], nb)
			}
		}
		for _, nb := range g.Predecessors(nodeID) {
			if !seen[nb] {
				seen[nb] = true
				neighbors[nodeID] = append(neighbors[nodeID], nb)
			}
		}
	}

	// Force-directed iterations
	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodeIDs))) // Optimal distance
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position)
		for _, nodeID := range nodeIDs {
			forces[nodeID] = Position{X: 0, Y: 0}
		}

		// Repulsion between all pairs
		for i, nodeID1 := range nodeIDs {
			for j := i + 1; j < len(nodeIDs); j++ {
				nodeID2 := nodeIDs[j]
				dx := positions[nodeID1].X - positions[nodeID2].X
				dy := positions[nodeID1].Y - positions[nodeID2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[nodeID1] = Position{
					X: forces[nodeID1].X + fx,
					Y: forces[nodeID1].Y + fy,
				}
				forces[nodeID2] = Position{
					X: forces[nodeID2].X - fx,
					Y: forces[nodeID2].Y - fy,
				}
			}
		}

		// Attraction between connected nodes
		for _, nodeID1 := range nodeIDs {
			for _, nodeID2 := range neighbors[nodeID1] {
				if _, exists := positions[nodeID2]; !exists {
					continue
				}

				dx := positions[nodeID1].X - positions[nodeID2].X
				dy := positions[nodeID1].Y - positions[nodeID2].Y
				dist := math.Sqrt(dx*dx + dy*dy)

				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[nodeID1] = Position{
					X: forces[nodeID1].X - fx,
					Y: forces[nodeID1].Y - fy,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, nodeID := range nodeIDs {
			fx := forces[nodeID].X
			fy := forces[nodeID].Y
			force := math.Sqrt(fx*fx + fy*fy)

			if force > 0 {
				dx := (fx / force) * math.Min(force, temperature) * cool
				dy := (fy / force) * math.Min(force, temperature) * cool

				positions[nodeID] = Position{
					X: positions[nodeID].X + dx,
					Y: positions[nodeID].Y + dy,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding), nil
}
