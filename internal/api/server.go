// Package api exposes the HTTP interface for the endpoint scanner.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/uatoolkit/endpointscan/internal/scanner"
	"github.com/uatoolkit/endpointscan/internal/wordlist"
)

// Scanner runs one scan per call; the engine in internal/scanner is the
// production implementation.
type Scanner interface {
	Scan(ctx context.Context, req scanner.ScanRequest) (*scanner.ScanResult, error)
}

// Server wires HTTP handlers to the scan engine.
type Server struct {
	router chi.Router
	engine Scanner
	logger *zap.Logger
}

// NewServer constructs a Server with middleware and routes.
func NewServer(engine Scanner, logger *zap.Logger) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
	}
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.Get("/", s.index)
	r.Get("/healthz", s.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Post("/api/scan", s.handleScan)

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		s.logger.Debug("index write failed", zap.Error(err))
	}
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type scanAPIRequest struct {
	Target      string   `json:"target"`
	Paths       []string `json:"paths"`
	UseDefault  *bool    `json:"use_default"`
	Concurrency int      `json:"concurrency"`
}

type scanAPIResponse struct {
	Results   []scanner.ProbeOutcome `json:"results"`
	Checked   int                    `json:"checked"`
	DurationS float64                `json:"duration_s"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanAPIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.Target == "" {
		writeError(w, http.StatusBadRequest, "target is required")
		return
	}

	paths := sanitizePaths(req.Paths)
	if useDefault := req.UseDefault == nil || *req.UseDefault; useDefault || len(paths) == 0 {
		paths = wordlist.Default()
	}

	result, err := s.engine.Scan(r.Context(), scanner.ScanRequest{
		Target:      req.Target,
		Paths:       paths,
		Concurrency: req.Concurrency,
	})
	if err != nil {
		if errors.Is(err, scanner.ErrInvalidTarget) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("scan failed", zap.String("target", req.Target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "scan failed")
		return
	}
	writeJSON(w, http.StatusOK, scanAPIResponse{
		Results:   result.Results,
		Checked:   result.Checked,
		DurationS: result.DurationSeconds(),
	})
}

func sanitizePaths(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type requestIDKey struct{}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)
		s.logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.status),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
