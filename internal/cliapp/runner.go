package cliapp

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/da11an/repo-query-surface/internal/config"
	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/history"
	"github.com/da11an/repo-query-surface/internal/insights"
	"github.com/da11an/repo-query-surface/internal/observability"
	"github.com/da11an/repo-query-surface/internal/output"
	"github.com/da11an/repo-query-surface/internal/resolver"
	"github.com/da11an/repo-query-surface/internal/scan"
	"github.com/da11an/repo-query-surface/internal/serve"
	"github.com/da11an/repo-query-surface/internal/util"
	"github.com/da11an/repo-query-surface/internal/watcher"
)

// runner owns one configured analysis pipeline: scan, analyze, render,
// then fan the report out to stdout or a file, the history store and
// the HTTP server. Watch mode re-runs the whole pipeline per change
// batch; the limiter keeps a floor between consecutive runs.
type runner struct {
	cfg  *config.Config
	root string

	out     string
	format  string
	showAll bool
	// quiet suppresses report emission; the dashboard renders instead.
	quiet bool

	store *history.Store
	srv   *serve.Server

	limiter  *util.Limiter
	watchCtx context.Context

	updateMu sync.RWMutex
	onUpdate func(*insights.Report)
}

func newRunner(cfg *config.Config, opts cliOptions) *runner {
	root := "."
	if len(opts.args) == 1 {
		root = opts.args[0]
	}

	interval := cfg.Watch.MinInterval().Seconds()
	if interval <= 0 {
		interval = 1
	}

	return &runner{
		cfg:     cfg,
		root:    root,
		out:     opts.out,
		format:  cfg.Report.Format,
		showAll: opts.showAll,
		quiet:   opts.ui,
		limiter: util.NewLimiter(1/interval, 1),
	}
}

// runOnce executes a full pipeline pass and fans the report out.
func (r *runner) runOnce(ctx context.Context) (*insights.Report, error) {
	rep, err := r.analyze(ctx)
	if err != nil {
		observability.AnalysisRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	r.persist(rep)
	r.publish(rep)

	if !r.quiet {
		text, err := r.render(rep)
		if err != nil {
			return nil, err
		}
		if err := r.emit(text); err != nil {
			return nil, err
		}
	}

	r.emitUpdate(rep)
	return rep, nil
}

func (r *runner) analyze(ctx context.Context) (*insights.Report, error) {
	scanStart := time.Now()
	_, span := observability.Tracer.Start(ctx, "cliapp.scan")
	res, err := scan.Repo(r.root, r.cfg.Exclude.Dirs, r.cfg.Exclude.Files)
	span.End()
	observability.AnalysisDuration.WithLabelValues("scan").Observe(time.Since(scanStart).Seconds())
	if err != nil {
		return nil, err
	}

	language := r.cfg.Analysis.Language
	if language == "auto" {
		language = scan.AutoDetect(res.ByLanguage)
		if language != "" {
			slog.Debug("language auto-detected", "language", language)
		}
	}
	if language == "" {
		slog.Warn("no supported source files found", "root", r.root)
		return insights.EmptyReport(r.root, "auto"), nil
	}

	profile := resolver.ProfileFor(language)
	if profile == nil {
		return nil, errors.New(errors.CodeConfigInvalid,
			fmt.Sprintf("no language profile for %q", language))
	}

	return insights.Analyze(ctx, insights.Options{
		Root:             r.root,
		Files:            res.FilesFor(profile),
		Profile:          profile,
		ExtraRoots:       r.cfg.Analysis.Roots,
		ShowAllThreshold: r.showAllThreshold(),
		TopLimit:         r.cfg.Report.TopLimit,
		LayerPreview:     r.cfg.Report.LayerPreview,
		SampleThreshold:  r.cfg.Centrality.SampleThreshold,
	}), nil
}

func (r *runner) showAllThreshold() int {
	if r.showAll {
		return math.MaxInt
	}
	return r.cfg.Report.ShowAllThreshold
}

func (r *runner) render(rep *insights.Report) (string, error) {
	renderer, err := output.For(r.format)
	if err != nil {
		return "", err
	}
	return renderer.Render(rep)
}

func (r *runner) emit(text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if r.out != "" {
		if err := util.WriteFileWithDirs(r.out, []byte(text), 0o644); err != nil {
			return errors.Wrap(err, errors.CodeRenderFailed,
				fmt.Sprintf("write report %q", r.out))
		}
		slog.Info("report written", "path", r.out, "format", r.format)
		return nil
	}

	_, err := os.Stdout.WriteString(text)
	return err
}

func (r *runner) persist(rep *insights.Report) {
	if r.store == nil {
		return
	}
	if err := r.store.SaveRun(history.FromReport(rep)); err != nil {
		slog.Error("failed to record run", "error", err)
	}
}

func (r *runner) publish(rep *insights.Report) {
	if r.srv != nil {
		r.srv.Publish(rep)
	}
}

func (r *runner) startWatch(ctx context.Context) (*watcher.Watcher, error) {
	r.watchCtx = ctx
	w, err := watcher.NewWatcher(
		r.cfg.Watch.Debounce(),
		r.cfg.Exclude.Dirs,
		r.cfg.Exclude.Files,
		r.handleChanges,
	)
	if err != nil {
		return nil, err
	}
	if err := w.Watch([]string{r.root}); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *runner) handleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	if err := r.limiter.Wait(r.watchCtx, 1); err != nil {
		return
	}

	start := time.Now()
	if _, err := r.runOnce(r.watchCtx); err != nil {
		slog.Error("re-analysis failed", "error", err)
		return
	}
	slog.Debug("re-analysis complete", "duration", time.Since(start))
}

func (r *runner) setUpdateHandler(fn func(*insights.Report)) {
	r.updateMu.Lock()
	r.onUpdate = fn
	r.updateMu.Unlock()
}

func (r *runner) emitUpdate(rep *insights.Report) {
	r.updateMu.RLock()
	handler := r.onUpdate
	r.updateMu.RUnlock()
	if handler != nil {
		handler(rep)
	}
}
