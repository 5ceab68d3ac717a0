package insights

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/da11an/repo-query-surface/internal/graph"
	"github.com/da11an/repo-query-surface/internal/observability"
	"github.com/da11an/repo-query-surface/internal/parser"
	"github.com/da11an/repo-query-surface/internal/resolver"
)

// Options carries one run's immutable inputs: the repository root, the
// file snapshot, the active profile, and the report tunables.
type Options struct {
	Root    string
	Files   []string
	Profile *resolver.Profile

	// ExtraRoots are configured source roots appended after the
	// discovered and profile-conventional ones.
	ExtraRoots []string

	ShowAllThreshold int
	TopLimit         int
	LayerPreview     int
	SampleThreshold  int
}

// EmptyReport describes a run over a tree with no supported source
// files, before any language profile could be chosen.
func EmptyReport(root, language string) *Report {
	observability.AnalysisRuns.WithLabelValues("no_files").Inc()
	return &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Root:        root,
		Language:    language,
		NoFiles:     true,
	}
}

// Analyze runs the batch pipeline over the snapshot: parse, resolve,
// topology, ranking. Nothing in it is fatal; parse and read failures
// skip the file and the worst outcome is a sparse report.
func Analyze(ctx context.Context, opts Options) *Report {
	ctx, span := observability.Tracer.Start(ctx, "insights.Analyze",
		trace.WithAttributes(attribute.String("language", opts.Profile.Name)))
	defer span.End()

	start := time.Now()
	rep := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: start.UTC(),
		Root:        opts.Root,
		Language:    opts.Profile.Name,
	}

	files := parseFiles(ctx, opts, rep)
	rep.FileCount = len(files)
	if len(files) == 0 {
		rep.NoFiles = true
		rep.DurationMs = time.Since(start).Milliseconds()
		observability.AnalysisRuns.WithLabelValues("no_files").Inc()
		return rep
	}

	g := resolveEdges(ctx, opts, files, rep)
	rep.EdgeCount = g.EdgeCount()
	observability.GraphNodes.Set(float64(g.NodeCount()))
	observability.GraphEdges.Set(float64(g.EdgeCount()))

	full := g.ModulePopularityTable()
	rep.ModuleCount = len(full)
	keep := truncateCount(len(full), opts)
	rep.ModulePopularity = make([]ModuleRow, 0, keep)
	for _, row := range full[:keep] {
		rep.ModulePopularity = append(rep.ModulePopularity, ModuleRow{
			Module:    row.Module,
			Count:     row.Count,
			Importers: row.Importers,
		})
	}

	if g.EdgeCount() == 0 {
		rep.NoInternalEdges = true
		observability.GraphCycles.Set(0)
		rep.DurationMs = time.Since(start).Milliseconds()
		observability.AnalysisRuns.WithLabelValues("no_edges").Inc()
		return rep
	}

	top := computeTopology(ctx, g, opts)
	buildRecords(ctx, g, top, opts, rep)

	observability.GraphCycles.Set(float64(rep.CycleCount))
	observability.AnalysisRuns.WithLabelValues("ok").Inc()
	rep.DurationMs = time.Since(start).Milliseconds()
	return rep
}

func parseFiles(ctx context.Context, opts Options, rep *Report) []*parser.File {
	_, span := observability.Tracer.Start(ctx, "insights.parse")
	defer span.End()
	stage := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("parse").Observe(time.Since(stage).Seconds())
	}()

	p := parser.NewParser()
	files := make([]*parser.File, 0, len(opts.Files))
	for _, rel := range opts.Files {
		content, err := os.ReadFile(filepath.Join(opts.Root, filepath.FromSlash(rel)))
		if err != nil {
			slog.Warn("skipping unreadable file", "path", rel, "error", err)
			rep.SkippedCount++
			continue
		}
		f, err := p.ParseFile(rel, content)
		if err != nil {
			slog.Warn("skipping file", "path", rel, "error", err)
			rep.SkippedCount++
			continue
		}
		files = append(files, f)
	}
	return files
}

func resolveEdges(ctx context.Context, opts Options, files []*parser.File, rep *Report) *graph.Graph {
	_, span := observability.Tracer.Start(ctx, "insights.resolve")
	defer span.End()
	stage := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("resolve").Observe(time.Since(stage).Seconds())
	}()

	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	goModule := ""
	if opts.Profile.Name == "go" {
		goModule = resolver.GoModulePath(opts.Root)
	}
	r := resolver.New(opts.Profile, paths, opts.ExtraRoots, goModule)
	rep.Roots = r.Roots()

	g := graph.New(paths)
	for _, f := range files {
		for _, ref := range f.Imports {
			g.AddModuleReference(resolver.DisplayModule(ref), f.Path)
			res := r.Resolve(ref, f.Path)
			if !res.Internal {
				continue
			}
			for _, target := range res.Targets {
				g.AddEdge(f.Path, target)
			}
		}
	}
	return g
}

func computeTopology(ctx context.Context, g *graph.Graph, opts Options) *graph.Topology {
	_, span := observability.Tracer.Start(ctx, "insights.graph")
	defer span.End()
	stage := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("graph").Observe(time.Since(stage).Seconds())
	}()
	return g.Topology(opts.SampleThreshold)
}

func buildRecords(ctx context.Context, g *graph.Graph, top *graph.Topology, opts Options, rep *Report) {
	_, span := observability.Tracer.Start(ctx, "insights.rank")
	defer span.End()
	stage := time.Now()
	defer func() {
		observability.AnalysisDuration.WithLabelValues("rank").Observe(time.Since(stage).Seconds())
	}()

	rep.ComponentCount = len(top.Components)
	rep.Cycles = top.CycleGroups()
	rep.CycleCount = len(rep.Cycles)
	rep.Sampled = top.Sampled
	rep.SampleSize = top.SampleSize

	n := len(top.Nodes)
	var sum, max float64
	for v := 0; v < n; v++ {
		s := top.FileScore(v)
		sum += s
		if s > max {
			max = s
		}
	}
	rep.ScoreMean = sum / float64(n)
	rep.ScoreMax = max
	for _, l := range top.Layers {
		if l > rep.MaxLayer {
			rep.MaxLayer = l
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		va, vb := order[a], order[b]
		sa, sb := top.FileScore(va), top.FileScore(vb)
		if sa != sb {
			return sa > sb
		}
		return top.Nodes[va] < top.Nodes[vb]
	})
	keep := truncateCount(n, opts)
	rep.KeyFiles = make([]FileRow, 0, keep)
	for _, v := range order[:keep] {
		rep.KeyFiles = append(rep.KeyFiles, FileRow{
			Path:        top.Nodes[v],
			FanIn:       top.FanIn[v],
			FanOut:      top.FanOut[v],
			Betweenness: top.Betweenness[v],
			Layer:       top.Layers[v],
			Score:       top.FileScore(v),
		})
	}

	byLayer := make(map[int][]string)
	for v, l := range top.Layers {
		byLayer[l] = append(byLayer[l], top.Nodes[v])
	}
	layers := make([]int, 0, len(byLayer))
	for l := range byLayer {
		layers = append(layers, l)
	}
	sort.Ints(layers)
	for _, l := range layers {
		members := byLayer[l]
		sort.Strings(members)
		preview := members
		if opts.LayerPreview > 0 && len(preview) > opts.LayerPreview {
			preview = preview[:opts.LayerPreview]
		}
		rep.LayerGroups = append(rep.LayerGroups, LayerGroup{
			Layer:    l,
			Size:     len(members),
			Preview:  preview,
			Overflow: len(members) - len(preview),
		})
	}

	edges := g.Edges()
	rep.Edges = make([]EdgeRow, 0, len(edges))
	for _, e := range edges {
		from, to := top.Index[e.From], top.Index[e.To]
		comp := top.ComponentOf[from]
		rep.Edges = append(rep.Edges, EdgeRow{
			Source:      e.From,
			Target:      e.To,
			SourceLayer: top.Layers[from],
			TargetLayer: top.Layers[to],
			Score:       top.EdgeScore(from, to),
			InCycle:     comp == top.ComponentOf[to] && len(top.Components[comp]) > 1,
		})
	}

	linkOrder := make([]int, len(edges))
	for i := range linkOrder {
		linkOrder[i] = i
	}
	sort.Slice(linkOrder, func(a, b int) bool {
		ea, eb := edges[linkOrder[a]], edges[linkOrder[b]]
		sa := top.EdgeScore(top.Index[ea.From], top.Index[ea.To])
		sb := top.EdgeScore(top.Index[eb.From], top.Index[eb.To])
		if sa != sb {
			return sa > sb
		}
		if ea.From != eb.From {
			return ea.From < eb.From
		}
		return ea.To < eb.To
	})
	keepLinks := truncateCount(len(edges), opts)
	rep.KeyLinks = make([]LinkRow, 0, keepLinks)
	for _, i := range linkOrder[:keepLinks] {
		e := edges[i]
		from, to := top.Index[e.From], top.Index[e.To]
		rep.KeyLinks = append(rep.KeyLinks, LinkRow{
			Source:    e.From,
			Target:    e.To,
			LayerDrop: top.LayerDrop(from, to),
			Score:     top.EdgeScore(from, to),
		})
	}
}

// truncateCount applies the show-all rule: tables at or under the
// threshold emit every row, longer ones cut to the top limit.
func truncateCount(total int, opts Options) int {
	if total <= opts.ShowAllThreshold {
		return total
	}
	if opts.TopLimit < total {
		return opts.TopLimit
	}
	return total
}
