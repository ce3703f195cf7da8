package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestNewRegistry_RegistersAllMetrics verifies construction does not panic
// and counters start at zero
func TestNewRegistry_RegistersAllMetrics(t *testing.T) {
	r := NewRegistry()

	if got := testutil.ToFloat64(r.MessagesParsed); got != 0 {
		t.Errorf("Expected zero messages parsed, got %f", got)
	}

	r.MessagesParsed.Inc()
	r.ParseFailures.Add(3)
	r.GraphNodes.Set(12)

	if got := testutil.ToFloat64(r.MessagesParsed); got != 1 {
		t.Errorf("Expected 1 message parsed, got %f", got)
	}
	if got := testutil.ToFloat64(r.ParseFailures); got != 3 {
		t.Errorf("Expected 3 parse failures, got %f", got)
	}
	if got := testutil.ToFloat64(r.GraphNodes); got != 12 {
		t.Errorf("Expected 12 graph nodes, got %f", got)
	}
}

// TestRegistry_IsolatedFromDefault verifies two registries do not collide
func TestRegistry_IsolatedFromDefault(t *testing.T) {
	first := NewRegistry()
	second := NewRegistry()

	first.PairsExtracted.Add(5)

	if got := testutil.ToFloat64(second.PairsExtracted); got != 0 {
		t.Errorf("Registries share state: got %f", got)
	}
}

// TestHandler_ServesExposition verifies the /metrics output
func TestHandler_ServesExposition(t *testing.T) {
	r := NewRegistry()
	r.Modularity.Set(0.42)
	r.ObserveStage("louvain", 150*time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, "mailgraph_modularity 0.42") {
		t.Errorf("Missing modularity gauge in exposition:\n%s", body)
	}
	if !strings.Contains(body, `mailgraph_stage_duration_seconds_count{stage="louvain"} 1`) {
		t.Errorf("Missing stage histogram in exposition:\n%s", body)
	}
}
