// Package http exposes the classification engine over a JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/synthaser"
	"github.com/aretw0/synthaser/internal/presentation/graph"
	"github.com/aretw0/synthaser/pkg/classify"
	"github.com/aretw0/synthaser/pkg/domain"
	"github.com/aretw0/synthaser/pkg/ports"
	"github.com/aretw0/synthaser/pkg/rules"
)

// APIVersion is reported by GET /info.
const APIVersion = "0.1.0"

// maxBodyBytes bounds POST /classify payloads.
const maxBodyBytes = 32 << 20

// Engine is the subset of *synthaser.Engine the server needs.
type Engine interface {
	Run(ctx context.Context, queries []synthaser.Query) (*synthaser.Report, error)
	Result(ctx context.Context, runID string) (*synthaser.Report, error)
	Forest() *rules.Forest
	Store() ports.ResultStore
}

// Server serves the HTTP API.
type Server struct {
	Engine  Engine
	Streams *StreamManager
	Logger  *slog.Logger
	Metrics http.Handler
}

// HandlerOption configures NewHandler.
type HandlerOption func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(s *Server) { s.Logger = logger }
}

// WithMetrics mounts a metrics handler at GET /metrics.
func WithMetrics(h http.Handler) HandlerOption {
	return func(s *Server) { s.Metrics = h }
}

// WithStreams shares a stream manager, e.g. to publish rule reloads.
func WithStreams(sm *StreamManager) HandlerOption {
	return func(s *Server) { s.Streams = sm }
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...HandlerOption) http.Handler {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		Logger:  slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/classify", s.Classify)
	r.Get("/forest", s.GetForest)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", s.ListResults)
		r.Get("/{runID}", s.GetResult)
		r.Delete("/{runID}", s.DeleteResult)
	})
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClassifyRequest is the body of POST /classify. Either Queries or Batch
// (hits keyed by query ID) may be used.
type ClassifyRequest struct {
	Queries []synthaser.Query             `json:"queries,omitempty"`
	Batch   map[string][]domain.HitRecord `json:"batch,omitempty"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// Classify handles the POST /classify request.
func (s *Server) Classify(w http.ResponseWriter, r *http.Request) {
	var body ClassifyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		s.Logger.Warn("classify: invalid request body", "error", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	queries := body.Queries
	if len(body.Batch) > 0 {
		queries = append(queries, synthaser.QueriesFromBatch(body.Batch)...)
	}

	report, err := s.Engine.Run(r.Context(), queries)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			s.Logger.Error("classify failed", "error", err)
		}
		writeJSON(w, status, errorBody(err))
		return
	}

	if msg, err := json.Marshal(runEvent{Type: "run", RunID: report.RunID, Sequences: len(report.Sequences), Classified: report.Classified()}); err == nil {
		s.Streams.Broadcast(string(msg))
	}
	writeJSON(w, http.StatusOK, report)
}

type runEvent struct {
	Type       string `json:"type"`
	RunID      string `json:"run_id"`
	Sequences  int    `json:"sequences"`
	Classified int    `json:"classified"`
}

// ForestRule is one rule as exposed by GET /forest.
type ForestRule struct {
	rules.Definition
	Readable string   `json:"readable"`
	Path     []string `json:"path,omitempty"`
}

// ForestResponse is the body of GET /forest.
type ForestResponse struct {
	Rules     []ForestRule          `json:"rules"`
	Hierarchy []rules.HierarchyNode `json:"hierarchy"`
	Unplaced  []string              `json:"unplaced,omitempty"`
}

// GetForest handles the GET /forest request. With ?format=mermaid it returns
// a flowchart instead of JSON; ?sequence=<id>&run=<runID> overlays the
// classification of a stored sequence.
func (s *Server) GetForest(w http.ResponseWriter, r *http.Request) {
	f := s.Engine.Forest()

	if r.URL.Query().Get("format") == "mermaid" {
		overlay, err := s.overlay(r)
		if err != nil {
			writeJSON(w, statusFor(err), errorBody(err))
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, graph.GenerateMermaid(f, overlay))
		return
	}

	resp := ForestResponse{
		Rules:     make([]ForestRule, 0, len(f.Rules())),
		Hierarchy: f.Hierarchy(),
		Unplaced:  f.Unplaced(),
	}
	for _, rule := range f.Rules() {
		fr := ForestRule{Definition: rule.Definition(), Readable: rule.Readable()}
		if n, ok := f.Lookup(rule.Name()); ok {
			fr.Path = n.Path()
		}
		resp.Rules = append(resp.Rules, fr)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) overlay(r *http.Request) (*graph.GraphOverlay, error) {
	q := r.URL.Query()
	runID, seqID := q.Get("run"), q.Get("sequence")
	if runID == "" || seqID == "" {
		return nil, nil
	}
	report, err := s.Engine.Result(r.Context(), runID)
	if err != nil {
		return nil, err
	}
	seq, ok := report.Result().Sequence(seqID)
	if !ok {
		return nil, fmt.Errorf("sequence %q: %w", seqID, domain.ErrResultNotFound)
	}

	matched := classify.Matched(seq, s.Engine.Forest())
	overlay := &graph.GraphOverlay{}
	for name := range matched {
		overlay.Matched = append(overlay.Matched, name)
	}
	sort.Strings(overlay.Matched)
	for _, p := range seq.LabelPaths {
		overlay.Leaves = append(overlay.Leaves, p.Leaf())
	}
	return overlay, nil
}

// ListResults handles the GET /results request.
func (s *Server) ListResults(w http.ResponseWriter, r *http.Request) {
	store := s.Engine.Store()
	if store == nil {
		writeJSON(w, http.StatusOK, []string{})
		return
	}
	ids, err := store.List(r.Context())
	if err != nil {
		s.Logger.Error("list results failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody(err))
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

// GetResult handles the GET /results/{runID} request.
func (s *Server) GetResult(w http.ResponseWriter, r *http.Request) {
	report, err := s.Engine.Result(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		writeJSON(w, statusFor(err), errorBody(err))
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// DeleteResult handles the DELETE /results/{runID} request.
func (s *Server) DeleteResult(w http.ResponseWriter, r *http.Request) {
	store := s.Engine.Store()
	if store == nil {
		writeJSON(w, http.StatusNotFound, errorBody(domain.ErrResultNotFound))
		return
	}
	if err := store.Delete(r.Context(), chi.URLParam(r, "runID")); err != nil {
		writeJSON(w, statusFor(err), errorBody(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":         "synthaser-http",
		"version":     strings.TrimSpace(synthaser.Version),
		"api_version": APIVersion,
		"rules":       s.Engine.Forest().Len(),
	})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, unsubscribe := s.Streams.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// StreamManager fans messages out to active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{subscribers: make(map[chan string]struct{})}
}

// Subscribe registers a listener. The returned func unregisters it and
// closes the channel.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Broadcast sends msg to every subscriber. Slow subscribers drop messages.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Subscribers returns the number of active listeners.
func (sm *StreamManager) Subscribers() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}

// -- Helpers --

func statusFor(err error) int {
	var vErr *domain.ValidationError
	var cErr *domain.ConfigurationError
	var agg *domain.AggregateError
	switch {
	case errors.Is(err, domain.ErrResultNotFound):
		return http.StatusNotFound
	case errors.As(err, &vErr), errors.As(err, &agg):
		return http.StatusUnprocessableEntity
	case errors.As(err, &cErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}
	return http.StatusInternalServerError
}

func errorBody(err error) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}
	var agg *domain.AggregateError
	if errors.As(err, &agg) {
		resp.Error = fmt.Sprintf("%d validation errors", len(agg.Errors))
		for _, e := range agg.Errors {
			resp.Details = append(resp.Details, e.Error())
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
