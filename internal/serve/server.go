package serve

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/da11an/repo-query-surface/internal/errors"
	"github.com/da11an/repo-query-surface/internal/insights"
	"github.com/da11an/repo-query-surface/internal/output"
)

// Server exposes the latest analysis snapshot over HTTP. Analyses
// publish whole reports; a read-write mutex guards the swap so watch
// mode can refresh the snapshot while requests stream out.
type Server struct {
	addr    string
	version string

	mu     sync.RWMutex
	report *insights.Report

	server *http.Server
}

// New validates the embedded API contract and prepares a server on
// addr. The listener does not start until Start.
func New(ctx context.Context, addr, version string) (*Server, error) {
	if addr == "" {
		return nil, errors.New(errors.CodeServeInit, "serve address must not be empty")
	}
	if _, err := loadSpec(ctx); err != nil {
		return nil, err
	}
	return &Server{addr: addr, version: version}, nil
}

// Publish swaps in a fresh analysis snapshot.
func (s *Server) Publish(rep *insights.Report) {
	s.mu.Lock()
	s.report = rep
	s.mu.Unlock()
}

func (s *Server) snapshot() *insights.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/insights", s.handleInsights)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/openapi.json", s.handleOpenAPI)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

// Start runs the listener in the background. Stop shuts it down.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	slog.Info("analysis server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("analysis server failed", "error", err)
		}
	}()

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rep := s.snapshot()
	if rep == nil {
		writeError(w, http.StatusServiceUnavailable, errors.CodeGraphEmpty, "no analysis available yet")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	renderer, err := output.For(format)
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeConfigInvalid, err.Error())
		return
	}
	text, err := renderer.Render(rep)
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.CodeRenderFailed, err.Error())
		return
	}

	contentType := "text/plain; charset=utf-8"
	switch format {
	case "json":
		contentType = "application/json"
	case "markdown":
		contentType = "text/markdown; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write([]byte(text))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rep := s.snapshot()
	if rep == nil {
		writeError(w, http.StatusServiceUnavailable, errors.CodeGraphEmpty, "no analysis available yet")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status      string `json:"status"`
		Version     string `json:"version,omitempty"`
		LastRunID   string `json:"last_run_id,omitempty"`
		GeneratedAt string `json:"generated_at,omitempty"`
	}
	h := health{Status: "up", Version: s.version}
	if rep := s.snapshot(); rep != nil {
		h.LastRunID = rep.RunID
		h.GeneratedAt = rep.GeneratedAt.Format(time.RFC3339)
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h)
}

func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(openapiDoc)
}

func writeError(w http.ResponseWriter, status int, code errors.ErrorCode, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    string(code),
			"message": msg,
		},
	})
}
