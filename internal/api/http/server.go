package apihttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"playdex/searchservice/internal/domain"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// SearchService is the orchestrator surface the API exposes.
type SearchService interface {
	Search(ctx context.Context, request domain.SearchRequest) (domain.SearchResponse, error)
	LoadMore(ctx context.Context, threadID string, limit int) (domain.SearchResponse, error)
	ThreadState(threadID string) (domain.ThreadStatus, error)
}

type Server struct {
	search SearchService
	logger *slog.Logger
}

const maxQueryLength = 500

type ServerOption func(*Server)

func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

func NewServer(searchService SearchService, options ...ServerOption) *Server {
	server := &Server{
		search: searchService,
		logger: slog.Default(),
	}
	for _, option := range options {
		if option != nil {
			option(server)
		}
	}
	if server.logger == nil {
		server.logger = slog.Default()
	}
	return server
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/v1/search", s.handleSearch)
	mux.HandleFunc("/api/v1/search/more", s.handleLoadMore)
	mux.HandleFunc("/api/v1/search/threads/", s.handleThreadState)
	traced := otelhttp.NewHandler(loggingMiddleware(s.logger, mux), "playdex-search",
		otelhttp.WithFilter(func(r *http.Request) bool {
			p := r.URL.Path
			return p != "/metrics" && p != "/health"
		}),
	)
	return recoveryMiddleware(s.logger, rateLimitMiddleware(50, 100, metricsMiddleware(traced)))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/search" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.search == nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "search service is not configured")
		return
	}

	var payload domain.SearchRequest
	if err := decodeJSONBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	payload.Query = strings.TrimSpace(payload.Query)
	if payload.Query == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "query is required")
		return
	}
	if len(payload.Query) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "invalid_request", "query too long (max 500 characters)")
		return
	}

	response, err := s.search.Search(r.Context(), payload)
	if err != nil {
		s.writeSearchError(w, "search request failed", payload.Query, err)
		return
	}

	s.logger.Info("search completed",
		slog.String("query", truncate(payload.Query, 80)),
		slog.String("threadId", response.ThreadID),
		slog.Int("results", len(response.Results)),
		slog.Bool("hasMore", response.HasMore),
		slog.Int64("elapsedMs", response.ElapsedMS),
	)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleLoadMore(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/api/v1/search/more" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.search == nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "search service is not configured")
		return
	}

	var payload struct {
		ThreadID string `json:"threadId"`
		Limit    int    `json:"limit"`
	}
	if err := decodeJSONBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	threadID := strings.TrimSpace(payload.ThreadID)
	if threadID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "threadId is required")
		return
	}

	response, err := s.search.LoadMore(r.Context(), threadID, payload.Limit)
	if err != nil {
		s.writeSearchError(w, "load more failed", threadID, err)
		return
	}

	s.logger.Info("load more completed",
		slog.String("threadId", threadID),
		slog.Int("results", len(response.Results)),
		slog.Bool("hasMore", response.HasMore),
		slog.Int64("elapsedMs", response.ElapsedMS),
	)
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleThreadState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.search == nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "search service is not configured")
		return
	}

	threadID := strings.TrimPrefix(r.URL.Path, "/api/v1/search/threads/")
	if threadID == "" || strings.Contains(threadID, "/") {
		http.NotFound(w, r)
		return
	}

	status, err := s.search.ThreadState(threadID)
	if err != nil {
		if errors.Is(err, domain.ErrThreadNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "thread not found or expired")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "thread lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"threadId": threadID,
		"status":   status,
	})
}

// writeSearchError maps pipeline failures onto HTTP statuses. Upstream
// trouble is a gateway problem, never a client error.
func (s *Server) writeSearchError(w http.ResponseWriter, message, subject string, err error) {
	s.logger.Warn(message,
		slog.String("subject", truncate(subject, 80)),
		slog.String("error", err.Error()),
	)
	switch {
	case errors.Is(err, domain.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, domain.ErrThreadNotFound):
		writeError(w, http.StatusNotFound, "not_found", "thread not found or expired")
	case errors.Is(err, domain.ErrStaleFetch):
		writeError(w, http.StatusConflict, "superseded", "a newer fetch superseded this request")
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "upstream_timeout", "the stats provider did not answer in time")
	case errors.Is(err, domain.ErrUpstreamThrottled):
		writeError(w, http.StatusBadGateway, "upstream_throttled", "the stats provider is throttling requests")
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrDecode):
		writeError(w, http.StatusBadGateway, "upstream_error", "the stats provider returned an unusable response")
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "search failed")
	}
}

func decodeJSONBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid json body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
