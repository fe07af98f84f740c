// Package store owns the dashboard's application state: the latest weather
// snapshot, loading/error status, saved locations, and display settings.
//
// The store is an explicit state-owner passed to the adapters that drive it;
// there is no package-level singleton. All mutators are defined on Store and
// guarded by a mutex so the single-writer invariant holds even when the HTTP
// adapter serves concurrent requests.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/observability"
)

// StateKey is the single named record all persisted state lives under.
const StateKey = "app-state"

// stateVersion is the persisted schema version. Records with a different
// version are discarded in favor of defaults rather than half-parsed.
const stateVersion = 1

// Persister is the durable key-value storage contract.
type Persister interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// persistedState is the serializable subset of store state: the explicit
// projection persisted across restarts. Snapshot, loading, and error are
// transient and deliberately absent.
type persistedState struct {
	Version        int                    `json:"version"`
	SavedLocations []domain.SavedLocation `json:"saved_locations"`
	Settings       domain.Settings        `json:"settings"`
}

// View is a consistent read of the full in-memory state.
type View struct {
	Snapshot       *domain.Snapshot       `json:"snapshot,omitempty"`
	SavedLocations []domain.SavedLocation `json:"saved_locations"`
	Settings       domain.Settings        `json:"settings"`
	Loading        bool                   `json:"loading"`
	Error          string                 `json:"error,omitempty"`
}

// Store is the application state container.
type Store struct {
	mu         sync.Mutex
	snapshot   *domain.Snapshot
	saved      []domain.SavedLocation
	settings   domain.Settings
	loading    bool
	errMsg     string
	generation uint64

	persister Persister
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Store with default settings and no saved locations.
// persister may be nil for ephemeral use; state then lives only in memory.
func New(persister Persister, logger *slog.Logger, metrics *observability.Metrics) *Store {
	return &Store{
		settings:  domain.DefaultSettings(),
		persister: persister,
		logger:    logger,
		metrics:   metrics,
	}
}

// Rehydrate loads persisted saved locations and settings. Missing state is a
// fresh start; a record with an unknown schema version or unparseable body is
// discarded with a warning rather than propagated. Snapshot, loading, and
// error always start empty regardless.
func (s *Store) Rehydrate(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	raw, err := s.persister.Load(ctx, StateKey)
	if err != nil {
		return fmt.Errorf("rehydrate state: %w", err)
	}
	if raw == nil {
		return nil
	}

	var ps persistedState
	if err := json.Unmarshal(raw, &ps); err != nil {
		s.logger.Warn("persisted state unparseable, starting fresh", "error", err)
		return nil
	}
	if ps.Version != stateVersion {
		s.logger.Warn("persisted state has unknown schema version, starting fresh",
			"found", ps.Version, "want", stateVersion)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = ps.SavedLocations
	s.settings = ps.Settings
	s.metrics.SavedLocations.Set(float64(len(s.saved)))
	return nil
}

// SetWeather replaces the current snapshot and clears any existing error:
// success implicitly clears prior failure state.
func (s *Store) SetWeather(snapshot *domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.errMsg = ""
}

// ClearWeather resets the snapshot to absent.
func (s *Store) ClearWeather() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}

// SetLoading sets the loading indicator.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// SetError records an error message and forces loading off: an error
// terminates any in-flight operation's loading indication. An empty message
// clears the error.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
	if msg != "" {
		s.loading = false
	}
}

// BeginResolution marks a new resolution in flight: it advances the request
// generation, turns the loading indicator on, and clears the previous error.
// The returned generation must be handed back to ApplyResolution.
func (s *Store) BeginResolution() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.loading = true
	s.errMsg = ""
	return s.generation
}

// ApplyResolution applies a finished resolution's outcome, but only while gen
// is still the current generation; a result from a superseded resolution is
// discarded so the store always reflects the most recently started request.
// Returns false when the result was discarded as stale.
func (s *Store) ApplyResolution(gen uint64, snapshot *domain.Snapshot, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.metrics.Resolutions.WithLabelValues("any", "stale").Inc()
		return false
	}

	s.loading = false
	if err != nil {
		// The previous snapshot stays in memory but the UI shows the error.
		s.errMsg = err.Error()
		return true
	}
	s.snapshot = snapshot
	s.errMsg = ""
	return true
}

// AddSavedLocation saves a location. The duplicate check is centralized here:
// an ID collision (same coordinates, whatever the label) is rejected with
// domain.ErrDuplicateLocation.
func (s *Store) AddSavedLocation(ctx context.Context, loc domain.SavedLocation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.saved {
		if existing.ID == loc.ID {
			return domain.ErrDuplicateLocation
		}
	}

	s.saved = append(s.saved, loc)
	s.metrics.SavedLocations.Set(float64(len(s.saved)))
	s.persistLocked(ctx)
	return nil
}

// RemoveSavedLocation removes a saved location by ID. A missing ID is a no-op.
func (s *Store) RemoveSavedLocation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.saved {
		if existing.ID == id {
			s.saved = append(s.saved[:i], s.saved[i+1:]...)
			s.metrics.SavedLocations.Set(float64(len(s.saved)))
			s.persistLocked(ctx)
			return
		}
	}
}

// UpdateSettings shallow-merges the patch into the current settings and
// returns the result. Unspecified fields are untouched.
func (s *Store) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = s.settings.Merge(patch)
	s.persistLocked(ctx)
	return s.settings
}

// Weather returns the current snapshot, or nil when absent.
func (s *Store) Weather() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// SavedLocations returns the saved locations in insertion order.
func (s *Store) SavedLocations() []domain.SavedLocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SavedLocation, len(s.saved))
	copy(out, s.saved)
	return out
}

// Settings returns the current display settings.
func (s *Store) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Loading reports whether a resolution is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the current error message, empty when none.
func (s *Store) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// View returns a consistent copy of the full state for the API layer.
func (s *Store) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make([]domain.SavedLocation, len(s.saved))
	copy(saved, s.saved)

	return View{
		Snapshot:       s.snapshot,
		SavedLocations: saved,
		Settings:       s.settings,
		Loading:        s.loading,
		Error:          s.errMsg,
	}
}

// persistLocked serializes the durable projection and writes it under
// StateKey. Persistence failures are logged and counted, not surfaced: the
// in-memory mutation already happened and the next mutation retries the
// write. Callers must hold s.mu.
func (s *Store) persistLocked(ctx context.Context) {
	if s.persister == nil {
		return
	}

	ps := persistedState{
		Version:        stateVersion,
		SavedLocations: s.saved,
		Settings:       s.settings,
	}

	raw, err := json.Marshal(ps)
	if err != nil {
		s.logger.Error("marshal persisted state", "error", err)
		s.metrics.PersistFailures.Inc()
		return
	}

	if err := s.persister.Save(ctx, StateKey, raw); err != nil {
		s.logger.Error("persist state", "error", err)
		s.metrics.PersistFailures.Inc()
	}
}
