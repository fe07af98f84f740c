// Package http exposes the dashboard API plus health, readiness, and metrics
// endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/store"
)

// Resolver produces weather snapshots and search results for the handlers.
type Resolver interface {
	ResolveCity(ctx context.Context, name string) (domain.Snapshot, error)
	ResolveCoordinates(ctx context.Context, lat, lon float64) (domain.Snapshot, error)
	ResolveCurrentLocation(ctx context.Context) (domain.Snapshot, error)
	SearchCities(ctx context.Context, query string) ([]domain.Place, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the dashboard API over HTTP.
type Server struct {
	httpServer *http.Server
	resolver   Resolver
	store      *store.Store
	logger     *slog.Logger
}

// NewServer wires the dashboard routes onto a stdlib mux.
func NewServer(addr string, resolver Resolver, st *store.Store, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		resolver: resolver,
		store:    st,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/weather", s.handleWeather)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/locations", s.handleListLocations)
	mux.HandleFunc("POST /api/locations", s.handleAddLocation)
	mux.HandleFunc("DELETE /api/locations/{id}", s.handleRemoveLocation)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PATCH /api/settings", s.handlePatchSettings)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	view := s.store.View()
	writeJSON(w, http.StatusOK, stateResponse{
		View:    view,
		Display: displayFor(view.Snapshot, view.Settings),
	})
}

// handleWeather resolves weather for one of three mutually exclusive inputs:
// ?city=<name>, ?lat=<f>&lon=<f>, or ?source=auto for device geolocation.
// The resolution runs under the store's request generation so a slower
// superseded lookup can never clobber a newer one.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	gen := s.store.BeginResolution()

	var (
		snapshot domain.Snapshot
		err      error
	)
	switch {
	case q.Get("city") != "":
		snapshot, err = s.resolver.ResolveCity(r.Context(), q.Get("city"))
	case q.Get("lat") != "" || q.Get("lon") != "":
		var lat, lon float64
		lat, lon, err = parseCoordinates(q.Get("lat"), q.Get("lon"))
		if err != nil {
			s.store.ApplyResolution(gen, nil, err)
			writeError(w, http.StatusBadRequest, err)
			return
		}
		snapshot, err = s.resolver.ResolveCoordinates(r.Context(), lat, lon)
	case q.Get("source") == "auto":
		snapshot, err = s.resolver.ResolveCurrentLocation(r.Context())
	default:
		err = errors.New("one of city, lat/lon, or source=auto is required")
		s.store.ApplyResolution(gen, nil, err)
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if err != nil {
		s.store.ApplyResolution(gen, nil, err)
		writeError(w, statusForResolveError(err), err)
		return
	}

	if !s.store.ApplyResolution(gen, &snapshot, nil) {
		s.logger.Debug("discarded stale resolution", "generation", gen)
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		Snapshot: snapshot,
		Display:  displayFor(&snapshot, s.store.Settings()),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	places, err := s.resolver.SearchCities(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, statusForResolveError(err), err)
		return
	}
	if places == nil {
		places = []domain.Place{}
	}
	writeJSON(w, http.StatusOK, places)
}

func (s *Server) handleListLocations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.SavedLocations())
}

type addLocationRequest struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func (s *Server) handleAddLocation(w http.ResponseWriter, r *http.Request) {
	var req addLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	loc := domain.NewSavedLocation(req.Name, req.Country, req.Lat, req.Lon)
	if err := s.store.AddSavedLocation(r.Context(), loc); err != nil {
		if errors.Is(err, domain.ErrDuplicateLocation) {
			writeError(w, http.StatusConflict, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, loc)
}

func (s *Server) handleRemoveLocation(w http.ResponseWriter, r *http.Request) {
	s.store.RemoveSavedLocation(r.Context(), r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

func (s *Server) handlePatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch domain.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, s.store.UpdateSettings(r.Context(), patch))
}

func parseCoordinates(latStr, lonStr string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, errors.New("lat must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, errors.New("lon must be a number")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, errors.New("coordinates out of range")
	}
	return lat, lon, nil
}

func statusForResolveError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCityNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrProvider):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
