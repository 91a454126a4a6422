package inspector

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rterrors "github.com/vango-dev/vroute/internal/errors"
	"github.com/vango-dev/vroute/pkg/router"
)

// maxBodySize bounds POST /navigate bodies.
const maxBodySize = 1 << 20

// Server exposes one router over HTTP. The router can be swapped while the
// server runs, e.g. after a configuration reload.
type Server struct {
	mu       sync.RWMutex
	router   *router.Router
	cancel   func()
	hub      *Hub
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger. If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithGatherer sets the metrics source for GET /metrics.
// Default: prometheus.DefaultGatherer.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// New creates a server for r.
func New(r *router.Router, opts ...Option) *Server {
	s := &Server{
		hub:      NewHub(),
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.SetRouter(r)
	return s
}

// SetRouter replaces the served router and tells stream clients to reload.
func (s *Server) SetRouter(r *router.Router) {
	cancel := r.OnChange(s.hub.NotifyNavigation)

	s.mu.Lock()
	prev := s.cancel
	replaced := s.router != nil
	s.router, s.cancel = r, cancel
	s.mu.Unlock()

	if prev != nil {
		prev()
	}
	if replaced {
		s.hub.NotifyReload()
	}
}

// Router returns the served router.
func (s *Server) Router() *router.Router {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.router
}

// Hub returns the event stream hub.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Close unsubscribes from the router and disconnects stream clients.
func (s *Server) Close() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.hub.Close()
}

// Handler returns the HTTP handler serving the inspector endpoints.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/routes", s.handleRoutes)
	r.Get("/tree", s.handleTree)
	r.Get("/resolve", s.handleResolve)
	r.Get("/current", s.handleCurrent)
	r.Get("/history", s.handleHistory)
	r.Get("/components", s.handleComponents)
	r.Post("/navigate", s.handleNavigate)
	r.Get("/events", s.hub.HandleWebSocket)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("inspector request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Router().Records())
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Router().Tree())
}

// ResolveResponse is the body of GET /resolve.
type ResolveResponse struct {
	Route router.Route          `json:"route"`
	Chain router.ComponentChain `json:"chain"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	route, chain, err := s.Router().Resolve(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ResolveResponse{Route: route, Chain: chain})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Router().CurrentRoute())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Router().History())
}

// ComponentsResponse is the body of GET /components.
type ComponentsResponse struct {
	Live    []string              `json:"live"`
	Pending router.ComponentChain `json:"pending"`
}

func (s *Server) handleComponents(w http.ResponseWriter, r *http.Request) {
	rt := s.Router()
	writeJSON(w, http.StatusOK, ComponentsResponse{
		Live:    rt.Components(),
		Pending: rt.Pending(),
	})
}

// NavigateResponse is the body of POST /navigate.
type NavigateResponse struct {
	Committed bool                  `json:"committed"`
	Vetoed    bool                  `json:"vetoed"`
	Current   router.Route          `json:"current"`
	Chain     router.ComponentChain `json:"chain,omitempty"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req router.NavigationRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&req); err != nil {
		writeError(w, rterrors.New("R020").
			WithDetail("Request body must be a JSON navigation request.").
			Wrap(err))
		return
	}

	rt := s.Router()
	nav, err := rt.Navigate(req, router.WithContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, NavigateResponse{
		Committed: nav.Committed(),
		Vetoed:    nav.Vetoed(),
		Current:   rt.CurrentRoute(),
		Chain:     nav.Chain,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusOf maps an error category to an HTTP status.
func statusOf(err error) int {
	switch {
	case errors.Is(err, rterrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rterrors.ErrMissingParam):
		return http.StatusBadRequest
	case errors.Is(err, rterrors.ErrConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, rterrors.ErrState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	re := rterrors.FromError(err, "")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusOf(err))
	w.Write([]byte(`{"error":` + re.FormatJSON() + "}\n"))
}
