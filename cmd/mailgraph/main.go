package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/netsleuth/mailgraph/pkg/algorithms"
	"github.com/netsleuth/mailgraph/pkg/config"
	"github.com/netsleuth/mailgraph/pkg/graph"
	"github.com/netsleuth/mailgraph/pkg/ingest"
	"github.com/netsleuth/mailgraph/pkg/logging"
	"github.com/netsleuth/mailgraph/pkg/metrics"
	"github.com/netsleuth/mailgraph/pkg/visualization"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	inputCSV := flag.String("input", "", "Raw corpus CSV with a \"message\" column")
	cleanedCSV := flag.String("cleaned", "", "Cleaned edge-list cache path (.sz for snappy)")
	outputSVG := flag.String("output", "", "Output SVG path")
	kVisualize := flag.Int("k-visualize", -1, "Community core size bound")
	kLabel := flag.Int("k-label", -1, "Number of labelled core members")
	metricsAddr := flag.String("metrics-addr", "", "Expose Prometheus metrics on this address during the run")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mailgraph: %v\n", err)
		os.Exit(1)
	}

	// Flags win over the config file
	if *inputCSV != "" {
		cfg.InputCSV = *inputCSV
	}
	if *cleanedCSV != "" {
		cfg.CleanedCSV = *cleanedCSV
	}
	if *outputSVG != "" {
		cfg.OutputSVG = *outputSVG
	}
	if *kVisualize >= 0 {
		cfg.KVisualize = *kVisualize
	}
	if *kLabel >= 0 {
		cfg.KLabel = *kLabel
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "mailgraph: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel)).
		With(logging.Component("mailgraph"), logging.String("run_id", uuid.NewString()))

	reg := metrics.NewRegistry()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", reg.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				logger.Warn("metrics listener stopped", logging.Error(err))
			}
		}()
		logger.Info("metrics exposed", logging.String("addr", cfg.MetricsAddr))
	}

	if err := run(cfg, logger, reg); err != nil {
		logger.Error("pipeline failed", logging.Error(err))
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// run executes the full pipeline: corpus to edge list, edge list to graph,
// centrality and community detection, core extraction, layout, SVG.
func run(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) error {
	pairs, err := loadPairs(cfg, logger, reg)
	if err != nil {
		return err
	}

	g, centrality, err := buildGraph(pairs, logger, reg)
	if err != nil {
		return err
	}

	sel, err := detectCore(g, centrality, cfg, logger, reg)
	if err != nil {
		return err
	}

	return render(sel, centrality, cfg, logger, reg)
}

func loadPairs(cfg *config.Config, logger logging.Logger, reg *metrics.Registry) ([]ingest.Pair, error) {
	start := time.Now()
	pairs, stats, err := ingest.LoadOrParse(cfg.InputCSV, cfg.CleanedCSV)
	if err != nil {
		return nil, fmt.Errorf("load corpus: %w", err)
	}
	reg.ObserveStage("ingest", time.Since(start))

	reg.MessagesParsed.Add(float64(stats.Messages))
	reg.ParseFailures.Add(float64(stats.Failures))
	reg.PairsExtracted.Add(float64(len(pairs)))

	logger.Info("edge list ready",
		logging.Stage("ingest"),
		logging.Count(len(pairs)),
		logging.Int("messages", stats.Messages),
		logging.Int("failures", stats.Failures),
		logging.Bool("cached", stats.Cached),
		logging.Latency(time.Since(start)))
	return pairs, nil
}

func buildGraph(pairs []ingest.Pair, logger logging.Logger, reg *metrics.Registry) (*graph.Directed, map[string]float64, error) {
	start := time.Now()
	edges := ingest.Aggregate(pairs)
	g, err := ingest.BuildGraph(edges)
	if err != nil {
		return nil, nil, fmt.Errorf("build graph: %w", err)
	}
	reg.ObserveStage("graph", time.Since(start))

	reg.AggregatedEdges.Set(float64(len(edges)))
	reg.GraphNodes.Set(float64(g.NodeCount()))
	reg.GraphEdges.Set(float64(g.EdgeCount()))

	logger.Info("graph built",
		logging.Stage("graph"),
		logging.Int("nodes", g.NodeCount()),
		logging.Int("edges", g.EdgeCount()),
		logging.Latency(time.Since(start)))

	start = time.Now()
	centrality, err := algorithms.InDegreeCentrality(g)
	if err != nil {
		return nil, nil, fmt.Errorf("in-degree centrality: %w", err)
	}
	reg.ObserveStage("centrality", time.Since(start))

	logger.Info("centrality computed",
		logging.Stage("centrality"),
		logging.Count(len(centrality)),
		logging.Latency(time.Since(start)))
	return g, centrality, nil
}

func detectCore(g *graph.Directed, centrality map[string]float64, cfg *config.Config, logger logging.Logger, reg *metrics.Registry) (*algorithms.CoreSelection, error) {
	start := time.Now()
	result := algorithms.Louvain(g.ToUndirected())
	reg.ObserveStage("louvain", time.Since(start))

	reg.LouvainLevels.Set(float64(result.Levels))
	reg.CommunitiesFound.Set(float64(len(result.Communities)))
	reg.Modularity.Set(result.Modularity)

	logger.Info("communities detected",
		logging.Stage("louvain"),
		logging.Int("communities", len(result.Communities)),
		logging.Int("levels", result.Levels),
		logging.Modularity(result.Modularity),
		logging.Latency(time.Since(start)))

	sel, err := algorithms.SelectCore(g, result, centrality, cfg.KVisualize, cfg.KLabel)
	if err != nil {
		return nil, fmt.Errorf("select core: %w", err)
	}

	logger.Info("core selected",
		logging.Stage("selection"),
		logging.CommunityID(sel.CommunityID),
		logging.Int("members", len(sel.Members)),
		logging.Int("core", len(sel.Core)),
		logging.Int("labels", len(sel.Labels)))
	return sel, nil
}

func render(sel *algorithms.CoreSelection, centrality map[string]float64, cfg *config.Config, logger logging.Logger, reg *metrics.Registry) error {
	start := time.Now()
	layout := visualization.NewForceDirectedLayout(&visualization.LayoutConfig{
		Width:      cfg.CanvasSize,
		Height:     cfg.CanvasSize,
		Iterations: cfg.LayoutIterations,
		Seed:       cfg.LayoutSeed,
	})
	positions, err := layout.ComputeLayout(sel.Subgraph, sel.Core)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	out, err := os.Create(cfg.OutputSVG)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer out.Close()

	title := fmt.Sprintf("Largest community core (%d of %d members)", len(sel.Core), len(sel.Members))
	if err := visualization.RenderSVG(out, sel.Subgraph, positions, centrality, sel.Labels, cfg.CanvasSize, cfg.CanvasSize, title); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	reg.ObserveStage("render", time.Since(start))

	logger.Info("visual summary written",
		logging.Stage("render"),
		logging.Path(cfg.OutputSVG),
		logging.Latency(time.Since(start)))
	return nil
}
