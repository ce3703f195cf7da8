package visualization

import (
	"strings"
	"testing"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// TestDisplayName covers the address humanisation rules
func TestDisplayName(t *testing.T) {
	cases := []struct {
		address string
		want    string
	}{
		{"jeff.skilling@enron.com", "Jeff Skilling"},
		{"kenneth.lay@enron.com", "Kenneth Lay"},
		{"SALLY.BECK@ENRON.COM", "Sally Beck"},
		{"pete@x.com", "Pete"},
		{"no-at-sign", "No-at-sign"},
		{"élodie.durand@enron.com", "Élodie Durand"},
		{"øystein@x.com", "Øystein"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.address); got != tc.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tc.address, got, tc.want)
		}
	}
}

// TestRenderSVG_Structure verifies edges, nodes, and labels all render
func TestRenderSVG_Structure(t *testing.T) {
	g := graph.NewDirected()
	g.AddEdge("jeff.skilling@enron.com", "kenneth.lay@enron.com", 4)

	positions := map[string]Position{
		"jeff.skilling@enron.com": {X: 100, Y: 100},
		"kenneth.lay@enron.com":   {X: 300, Y: 200},
	}
	centrality := map[string]float64{
		"jeff.skilling@enron.com": 0.5,
		"kenneth.lay@enron.com":   1.0,
	}

	var buf strings.Builder
	err := RenderSVG(&buf, g, positions, centrality, []string{"kenneth.lay@enron.com"}, 800, 600, "Core Network")
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := buf.String()

	if !strings.Contains(svg, "<title>Core Network</title>") {
		t.Error("Missing title element")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("Expected 2 circles, got %d", strings.Count(svg, "<circle"))
	}
	if strings.Count(svg, "<line") != 1 {
		t.Errorf("Expected 1 edge line, got %d", strings.Count(svg, "<line"))
	}
	if !strings.Contains(svg, ">Kenneth Lay</text>") {
		t.Error("Missing humanised label for kenneth.lay")
	}
	if strings.Contains(svg, "Jeff Skilling") {
		t.Error("Unlabelled node must not get a text element")
	}
	// Radius scales with centrality: 2 + c*(40-2)
	if !strings.Contains(svg, `r="21.00"`) || !strings.Contains(svg, `r="40.00"`) {
		t.Errorf("Node radii not scaled by centrality:\n%s", svg)
	}
}

// TestRenderSVG_SkipsUnplacedNodes verifies missing positions are tolerated
func TestRenderSVG_SkipsUnplacedNodes(t *testing.T) {
	g := graph.NewDirected()
	g.AddEdge("a@x.com", "b@x.com", 1)

	positions := map[string]Position{"a@x.com": {X: 10, Y: 10}}

	var buf strings.Builder
	err := RenderSVG(&buf, g, positions, nil, []string{"b@x.com"}, 800, 600, "")
	if err != nil {
		t.Fatalf("RenderSVG failed: %v", err)
	}
	svg := buf.String()

	if strings.Count(svg, "<circle") != 1 {
		t.Errorf("Expected 1 circle for the placed node, got %d", strings.Count(svg, "<circle"))
	}
	if strings.Contains(svg, "<line") {
		t.Error("Edge with an unplaced endpoint must not render")
	}
	if strings.Contains(svg, "<text") {
		t.Error("Label for an unplaced node must not render")
	}
}
