// Package visualization computes 2D layouts for the extracted community
// core and renders the visual summary as SVG. Layouts are deterministic for
// a fixed seed so repeated runs produce identical images.
package visualization

import (
	"github.com/netsleuth/mailgraph/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // Seed for randomised initial placement
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.Directed, nodeIDs []string) (map[string]Position, error)
}
