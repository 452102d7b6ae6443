// Package server exposes the crates below a directory through a read-only
// HTTP API.
//
// Routes:
//
//	GET /healthz
//	GET /api/crates                       crate folders and zip archives
//	GET /api/crate?path=P                 metadata document
//	GET /api/crate/summary?path=P         root properties, entities, untracked entries
//	GET /api/crate/entity?path=P&id=ID    one entity node
//	GET /api/crate/validate?path=P        default rule set results
//	GET /api/crate/graph?path=P           diagram (format=svg|dot, detailed, references)
//	GET /metrics                          Prometheus metrics, when enabled
//
// P is slash-separated and relative to the served directory; an empty P
// names the directory itself.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/rocrate/pkg/buildinfo"
	"github.com/matzehuels/rocrate/pkg/cache"
	"github.com/matzehuels/rocrate/pkg/errors"
	"github.com/matzehuels/rocrate/pkg/observability"
)

// Options configure a Server.
type Options struct {
	// Cache holds rendered diagrams. Nil disables diagram caching.
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
	// Metrics is mounted at /metrics when set.
	Metrics *Metrics
}

// Server routes API requests to a Store.
type Server struct {
	store  *Store
	cache  cache.Cache
	keyer  cache.Keyer
	ttl    time.Duration
	logger *log.Logger
	router chi.Router
}

// New builds the router over store.
func New(store *Store, opts Options) *Server {
	s := &Server{
		store:  store,
		cache:  opts.Cache,
		keyer:  cache.NewScopedKeyer(nil, "serve:"),
		ttl:    opts.TTL,
		logger: opts.Logger,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Get("/api/crates", s.listCrates)
	r.Get("/api/crate", s.document)
	r.Get("/api/crate/summary", s.summary)
	r.Get("/api/crate/entity", s.entity)
	r.Get("/api/crate/validate", s.validate)
	r.Get("/api/crate/graph", s.graph)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("serving crates", "addr", addr, "base", s.store.Base())

	select {
	case err := <-errc:
		return errors.Wrap(errors.ErrCodeIO, err, "listen on %s", addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "shutdown")
	}
	s.logger.Info("server stopped")
	return nil
}

// observe reports each request to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed.Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{
		Error: err.Error(),
		Code:  string(errors.GetCode(err)),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidPath), errors.Is(err, errors.ErrCodeInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeStructural),
		errors.Is(err, errors.ErrCodeValidation),
		errors.Is(err, errors.ErrCodeDuplicateID):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func boolParam(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}
