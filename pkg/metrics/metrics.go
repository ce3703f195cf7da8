// Package metrics exposes Prometheus instrumentation for the analysis
// pipeline. All metrics live on a private registry so tests and repeated
// runs never collide with the global default.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for the pipeline
type Registry struct {
	// Ingest
	MessagesParsed prometheus.Counter
	ParseFailures  prometheus.Counter
	PairsExtracted prometheus.Counter

	// Graph
	GraphNodes      prometheus.Gauge
	GraphEdges      prometheus.Gauge
	AggregatedEdges prometheus.Gauge

	// Analysis
	LouvainLevels    prometheus.Gauge
	CommunitiesFound prometheus.Gauge
	Modularity       prometheus.Gauge
	StageDuration    *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewRegistry creates and registers all pipeline metrics.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		MessagesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mailgraph_messages_parsed_total",
			Help: "Raw messages successfully parsed",
		}),
		ParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mailgraph_parse_failures_total",
			Help: "Raw messages skipped because header parsing failed",
		}),
		PairsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mailgraph_pairs_extracted_total",
			Help: "Sender/recipient pairs extracted from the corpus",
		}),
		GraphNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_graph_nodes",
			Help: "Nodes in the communication graph",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_graph_edges",
			Help: "Directed edges in the communication graph",
		}),
		AggregatedEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_aggregated_edges",
			Help: "Weighted edges after aggregation",
		}),
		LouvainLevels: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_louvain_levels",
			Help: "Aggregation levels the community detection ran",
		}),
		CommunitiesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_communities_found",
			Help: "Communities in the final partition",
		}),
		Modularity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mailgraph_modularity",
			Help: "Modularity of the final partition",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mailgraph_stage_duration_seconds",
			Help:    "Wall time per pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		}, []string{"stage"}),
		registry: reg,
	}

	reg.MustRegister(
		r.MessagesParsed, r.ParseFailures, r.PairsExtracted,
		r.GraphNodes, r.GraphEdges, r.AggregatedEdges,
		r.LouvainLevels, r.CommunitiesFound, r.Modularity,
		r.StageDuration,
	)
	return r
}

// ObserveStage records the wall time of one pipeline stage.
func (r *Registry) ObserveStage(stage string, d time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry, mainly for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
