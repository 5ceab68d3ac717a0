package cliapp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/da11an/repo-query-surface/internal/config"
	"github.com/da11an/repo-query-surface/internal/history"
	"github.com/da11an/repo-query-surface/internal/observability"
	"github.com/da11an/repo-query-surface/internal/output"
	"github.com/da11an/repo-query-surface/internal/resolver"
	"github.com/da11an/repo-query-surface/internal/serve"
	"github.com/da11an/repo-query-surface/internal/util"
)

const trendLimit = 30

func Run(args []string) int {
	opts, err := parseOptions(args)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Printf("rqsmap v%s\n", versionString)
		return 0
	}

	cleanupLogs := configureLogging(opts.ui, opts.verbose)
	defer cleanupLogs()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	config.ApplyEnvOverrides(cfg)

	if err := applyModeOptions(&opts, cfg); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}

	if opts.trend {
		return printTrend(cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.SetupTracing(ctx, cfg.Serve.OTLPEndpoint, versionString)
	if err != nil {
		slog.Warn("tracing setup failed", "error", err)
	} else {
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				slog.Warn("tracing shutdown failed", "error", err)
			}
		}()
	}

	r := newRunner(cfg, opts)

	if opts.history || cfg.History.Enabled {
		store, err := history.Open(historyPath(cfg))
		if err != nil {
			slog.Error("history setup failed", "error", err)
			return 1
		}
		defer store.Close()
		r.store = store
	}

	if opts.serve {
		srv, err := serve.New(ctx, cfg.Serve.Addr, versionString)
		if err != nil {
			slog.Error("serve setup failed", "error", err)
			return 1
		}
		r.srv = srv
	}

	rep, err := r.runOnce(ctx)
	if err != nil {
		slog.Error("analysis failed", "error", err)
		return 1
	}

	if r.srv != nil {
		if err := r.srv.Start(ctx); err != nil {
			slog.Error("failed to start server", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = r.srv.Stop(shutdownCtx)
		}()
	}

	if !opts.watch && !opts.ui && !opts.serve {
		return 0
	}

	if opts.watch || opts.ui {
		w, err := r.startWatch(ctx)
		if err != nil {
			slog.Error("failed to start watcher", "error", err)
			return 1
		}
		defer w.Close()
	}

	if opts.ui {
		trend := loadTrendPoints(r.store)
		if err := runUI(r, rep, trend); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	<-ctx.Done()
	slog.Info("shutting down")
	return 0
}

func applyModeOptions(opts *cliOptions, cfg *config.Config) error {
	if opts.trend && (opts.watch || opts.ui || opts.serve) {
		return fmt.Errorf("-trend cannot be combined with -watch, -ui or -serve")
	}

	if len(opts.args) > 1 {
		return fmt.Errorf("at most one repository root argument is accepted: rqsmap [flags] [root]")
	}

	if opts.lang != "" {
		lang := strings.ToLower(strings.TrimSpace(opts.lang))
		if lang != "auto" && resolver.ProfileFor(lang) == nil {
			return fmt.Errorf("unknown language %q; supported: auto, %s",
				opts.lang, strings.Join(resolver.ProfileNames(), ", "))
		}
		cfg.Analysis.Language = lang
	}

	if opts.format != "" {
		format := strings.ToLower(strings.TrimSpace(opts.format))
		if _, err := output.For(format); err != nil {
			return err
		}
		cfg.Report.Format = format
	}

	if opts.top > 0 {
		cfg.Report.TopLimit = opts.top
	}

	return nil
}

func historyPath(cfg *config.Config) string {
	if strings.TrimSpace(cfg.History.Path) != "" {
		return cfg.History.Path
	}
	return util.StatePath("history.db")
}

func printTrend(cfg *config.Config) int {
	store, err := history.Open(historyPath(cfg))
	if err != nil {
		slog.Error("failed to open history store", "error", err)
		return 1
	}
	defer store.Close()

	runs, err := store.LoadRuns(trendLimit)
	if err != nil {
		slog.Error("failed to load run history", "error", err)
		return 1
	}
	if len(runs) == 0 {
		fmt.Println("History: no recorded runs.")
		return 0
	}

	points := history.Deltas(runs)
	fmt.Printf("History: %d runs from %s to %s\n",
		len(runs),
		runs[0].Timestamp.Format("2006-01-02 15:04:05"),
		runs[len(runs)-1].Timestamp.Format("2006-01-02 15:04:05"),
	)
	for _, p := range points {
		fmt.Printf("  %s files=%d (%+d) edges=%d (%+d) cycles=%d (%+d) max_layer=%d (%+d) score_mean=%.2f (%+.2f)\n",
			p.Timestamp.Format(time.RFC3339),
			p.FileCount, p.DeltaFiles,
			p.EdgeCount, p.DeltaEdges,
			p.CycleCount, p.DeltaCycles,
			p.MaxLayer, p.DeltaMaxLayer,
			p.ScoreMean, p.DeltaScore,
		)
	}
	return 0
}

func loadTrendPoints(store *history.Store) []history.TrendPoint {
	if store == nil {
		return nil
	}
	runs, err := store.LoadRuns(trendLimit)
	if err != nil {
		slog.Warn("failed to load run history for trend overlay", "error", err)
		return nil
	}
	return history.Deltas(runs)
}

func configureLogging(uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	// Reports stream to stdout, so logs stay on stderr.
	logDest := os.Stderr
	var closeFn func() = func() {}
	if uiMode {
		logPath := util.StatePath("rqsmap.log")
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					logDest = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(logDest, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}
