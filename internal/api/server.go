// internal/api/server.go

// Package api exposes the assistant over HTTP: one query endpoint plus
// health and metrics.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hr-assistant/internal/assistant/pipeline"
	"hr-assistant/internal/common/config"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/metrics"
)

const maxBodyBytes = 1 << 16

// QueryResponse is the wire shape of a successful assistant answer.
type QueryResponse struct {
	Intent        string      `json:"intent"`
	Answer        string      `json:"answer"`
	Context       interface{} `json:"context"`
	OriginalQuery string      `json:"original_query"`
	Timestamp     time.Time   `json:"timestamp"`
}

// Server wires the pipeline, rate limiter, and HTTP plumbing.
type Server struct {
	pipeline  *pipeline.Pipeline
	limiter   *RateLimiter
	cfg       config.ServerConfig
	logger    logger.Logger
	startedAt time.Time
}

func NewServer(p *pipeline.Pipeline, limiter *RateLimiter, cfg config.ServerConfig, log logger.Logger) *Server {
	return &Server{
		pipeline:  p,
		limiter:   limiter,
		cfg:       cfg,
		logger:    log.With(map[string]interface{}{"component": "api"}),
		startedAt: time.Now(),
	}
}

// Handler builds the routed handler with request-id and logging middleware
// applied to every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/assistant/query", s.handleQuery)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return s.withRequestID(s.withLogging(mux))
}

// ListenAndServe runs the HTTP server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Millisecond,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("assistant API listening", map[string]interface{}{
			"address": s.cfg.ListenAddress,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, apperrors.NewRequestInvalidError("only POST is supported"))
		return
	}

	if !s.limiter.Allow(r.Context(), callerKey(r)) {
		metrics.RateLimited.Inc()
		writeError(w, http.StatusTooManyRequests, apperrors.NewRateLimitError("too many queries, retry later"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewRequestInvalidError("unable to read request body"))
		return
	}
	if err := validateQueryRequest(body); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewRequestInvalidError(err.Error()))
		return
	}

	var req struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, apperrors.NewRequestInvalidError("request is not valid JSON"))
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.RequestTimeout)*time.Millisecond)
		defer cancel()
	}

	result, err := s.pipeline.Process(ctx, req.Query)
	if err != nil {
		metrics.AssistantQueryErrors.WithLabelValues(string(apperrors.ErrCodeRetrievalFailed)).Inc()
		writeError(w, http.StatusInternalServerError, apperrors.NewRetrievalError(req.Query, "record store query failed"))
		return
	}

	answer := s.pipeline.Answer(ctx, result)

	writeJSON(w, http.StatusOK, QueryResponse{
		Intent:        string(result.Intent),
		Answer:        answer,
		Context:       result.Context,
		OriginalQuery: result.OriginalQuery,
		Timestamp:     result.Timestamp,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, apperrors.NewRequestInvalidError("only GET is supported"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.startedAt).String(),
	})
}

type requestIDKey struct{}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		requestID, _ := r.Context().Value(requestIDKey{}).(string)
		s.logger.Info("request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      sw.status,
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  requestID,
		})
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, stdErr *apperrors.StandardError) {
	writeJSON(w, status, map[string]interface{}{"error": stdErr})
}
