package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rqsmap_parse_seconds",
		Help:    "Time spent parsing a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	FilesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rqsmap_files_parsed_total",
		Help: "Total number of source files parsed.",
	}, []string{"language"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rqsmap_parse_failures_total",
		Help: "Total number of source files skipped due to parse or read failures.",
	}, []string{"language"})

	GraphNodes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rqsmap_graph_nodes_total",
		Help: "Number of nodes in the dependency graph of the latest run.",
	})

	GraphEdges = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rqsmap_graph_edges_total",
		Help: "Number of edges in the dependency graph of the latest run.",
	})

	GraphCycles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rqsmap_graph_cycles_total",
		Help: "Number of multi-file strongly connected components in the latest run.",
	})

	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rqsmap_analysis_seconds",
		Help:    "Time spent on analysis stages.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	AnalysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rqsmap_runs_total",
		Help: "Total number of analysis runs by outcome.",
	}, []string{"outcome"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rqsmap_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
