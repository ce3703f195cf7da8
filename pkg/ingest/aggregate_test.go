package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

// TestAggregate_GroupsDuplicatePairs verifies duplicate pairs merge by count
func TestAggregate_GroupsDuplicatePairs(t *testing.T) {
	pairs := []Pair{
		{From: "a@x.com", To: "b@x.com"},
		{From: "a@x.com", To: "b@x.com"},
		{From: "b@x.com", To: "a@x.com"},
		{From: "a@x.com", To: "b@x.com"},
	}

	edges := Aggregate(pairs)

	want := []WeightedEdge{
		{From: "a@x.com", To: "b@x.com", Weight: 3},
		{From: "b@x.com", To: "a@x.com", Weight: 1},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("Expected edges %v, got %v", want, edges)
	}
}

// TestAggregate_TrimsWhitespace verifies fields merge after trimming
func TestAggregate_TrimsWhitespace(t *testing.T) {
	pairs := []Pair{
		{From: " a@x.com ", To: "b@x.com"},
		{From: "a@x.com", To: "b@x.com "},
	}

	edges := Aggregate(pairs)

	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge after trimming, got %d", len(edges))
	}
	if edges[0].Weight != 2 {
		t.Errorf("Expected weight 2, got %d", edges[0].Weight)
	}
}

// TestAggregate_DiscardsBlanksAndSelfLoops verifies the discard filters
func TestAggregate_DiscardsBlanksAndSelfLoops(t *testing.T) {
	pairs := []Pair{
		{From: "", To: "b@x.com"},
		{From: "a@x.com", To: "  "},
		{From: "a@x.com", To: "a@x.com"},
		{From: " a@x.com", To: "a@x.com "}, // self-loop after trimming
	}

	if edges := Aggregate(pairs); len(edges) != 0 {
		t.Errorf("Expected no edges, got %v", edges)
	}
}

// TestAggregate_PreservesCase verifies addresses are not case-folded
func TestAggregate_PreservesCase(t *testing.T) {
	pairs := []Pair{
		{From: "Alice@X.com", To: "bob@x.com"},
		{From: "alice@x.com", To: "bob@x.com"},
	}

	edges := Aggregate(pairs)

	if len(edges) != 2 {
		t.Errorf("Expected case-distinct senders to stay separate, got %v", edges)
	}
}

// TestBuildGraph_LoadsAggregatedEdges verifies graph construction
func TestBuildGraph_LoadsAggregatedEdges(t *testing.T) {
	edges := []WeightedEdge{
		{From: "a@x.com", To: "b@x.com", Weight: 3},
		{From: "b@x.com", To: "a@x.com", Weight: 1},
	}

	g, err := BuildGraph(edges)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	if g.NodeCount() != 2 || g.EdgeCount() != 2 {
		t.Errorf("Expected 2 nodes and 2 edges, got %d and %d", g.NodeCount(), g.EdgeCount())
	}
	if w, _ := g.Weight("a@x.com", "b@x.com"); w != 3 {
		t.Errorf("Expected weight 3, got %d", w)
	}
}

// TestBuildGraph_RejectsUnaggregatedInput verifies the defensive duplicate check
func TestBuildGraph_RejectsUnaggregatedInput(t *testing.T) {
	edges := []WeightedEdge{
		{From: "a@x.com", To: "b@x.com", Weight: 1},
		{From: "a@x.com", To: "b@x.com", Weight: 1},
	}

	if _, err := BuildGraph(edges); !errors.Is(err, graph.ErrDuplicateEdge) {
		t.Errorf("Expected ErrDuplicateEdge, got %v", err)
	}
}
