package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/observability"
	"github.com/couchcryptid/weather-dash/internal/store"
)

// memPersister keeps records in a map so a second Store can rehydrate from it.
type memPersister struct {
	records map[string][]byte
	saveErr error
	loadErr error
}

func newMemPersister() *memPersister {
	return &memPersister{records: map[string][]byte{}}
}

func (p *memPersister) Save(_ context.Context, key string, value []byte) error {
	if p.saveErr != nil {
		return p.saveErr
	}
	buf := make([]byte, len(value))
	copy(buf, value)
	p.records[key] = buf
	return nil
}

func (p *memPersister) Load(_ context.Context, key string) ([]byte, error) {
	if p.loadErr != nil {
		return nil, p.loadErr
	}
	return p.records[key], nil
}

func newStore(t *testing.T, p store.Persister) *store.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return store.New(p, logger, observability.NewMetricsForTesting())
}

func london() domain.SavedLocation {
	return domain.NewSavedLocation("London", "GB", 51.5074, -0.1278)
}

func TestRehydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	persister := newMemPersister()

	first := newStore(t, persister)
	require.NoError(t, first.Rehydrate(ctx))

	require.NoError(t, first.AddSavedLocation(ctx, london()))
	require.NoError(t, first.AddSavedLocation(ctx, domain.NewSavedLocation("Oslo", "NO", 59.9139, 10.7522)))
	first.UpdateSettings(ctx, domain.SettingsPatch{TemperatureUnit: ptr(domain.TempFahrenheit)})

	// Transient state must not survive the restart.
	first.SetWeather(&domain.Snapshot{})
	first.SetError("provider down")
	first.SetLoading(true)

	second := newStore(t, persister)
	require.NoError(t, second.Rehydrate(ctx))

	assert.Equal(t, first.SavedLocations(), second.SavedLocations())
	assert.Equal(t, domain.TempFahrenheit, second.Settings().TemperatureUnit)
	assert.Nil(t, second.Weather())
	assert.False(t, second.Loading())
	assert.Empty(t, second.Error())
}

func TestRehydrateMissingStateStartsFresh(t *testing.T) {
	s := newStore(t, newMemPersister())
	require.NoError(t, s.Rehydrate(context.Background()))

	assert.Empty(t, s.SavedLocations())
	assert.Equal(t, domain.DefaultSettings(), s.Settings())
}

func TestRehydrateUnknownVersionStartsFresh(t *testing.T) {
	persister := newMemPersister()
	blob, err := json.Marshal(map[string]any{
		"version":  99,
		"settings": map[string]any{"temperature_unit": "fahrenheit"},
	})
	require.NoError(t, err)
	persister.records[store.StateKey] = blob

	s := newStore(t, persister)
	require.NoError(t, s.Rehydrate(context.Background()))

	assert.Equal(t, domain.DefaultSettings(), s.Settings())
	assert.Empty(t, s.SavedLocations())
}

func TestRehydrateGarbageStartsFresh(t *testing.T) {
	persister := newMemPersister()
	persister.records[store.StateKey] = []byte("not json")

	s := newStore(t, persister)
	require.NoError(t, s.Rehydrate(context.Background()))
	assert.Equal(t, domain.DefaultSettings(), s.Settings())
}

func TestRehydrateLoadError(t *testing.T) {
	persister := newMemPersister()
	persister.loadErr = errors.New("disk gone")

	s := newStore(t, persister)
	require.Error(t, s.Rehydrate(context.Background()))
}

func TestAddSavedLocationRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMemPersister())

	require.NoError(t, s.AddSavedLocation(ctx, london()))

	// Same coordinates under a different label collide by ID.
	dup := domain.NewSavedLocation("Londinium", "GB", 51.5074, -0.1278)
	err := s.AddSavedLocation(ctx, dup)
	require.ErrorIs(t, err, domain.ErrDuplicateLocation)
	assert.Len(t, s.SavedLocations(), 1)
	assert.Equal(t, "London", s.SavedLocations()[0].Name)
}

func TestRemoveSavedLocationMissingIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMemPersister())
	require.NoError(t, s.AddSavedLocation(ctx, london()))

	s.RemoveSavedLocation(ctx, "loc-does-not-exist")
	assert.Len(t, s.SavedLocations(), 1)
}

func TestRemoveSavedLocationKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, newMemPersister())

	a := domain.NewSavedLocation("A", "AA", 1, 1)
	b := domain.NewSavedLocation("B", "BB", 2, 2)
	c := domain.NewSavedLocation("C", "CC", 3, 3)
	for _, loc := range []domain.SavedLocation{a, b, c} {
		require.NoError(t, s.AddSavedLocation(ctx, loc))
	}

	s.RemoveSavedLocation(ctx, b.ID)

	got := s.SavedLocations()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "C", got[1].Name)
}

func TestSetErrorForcesLoadingOff(t *testing.T) {
	s := newStore(t, nil)
	s.SetLoading(true)

	s.SetError("city not found")

	assert.False(t, s.Loading())
	assert.Equal(t, "city not found", s.Error())
}

func TestSetWeatherClearsError(t *testing.T) {
	s := newStore(t, nil)
	s.SetError("provider down")

	s.SetWeather(&domain.Snapshot{})

	assert.Empty(t, s.Error())
	assert.NotNil(t, s.Weather())
}

func TestApplyResolutionDiscardsStaleResult(t *testing.T) {
	s := newStore(t, nil)

	first := s.BeginResolution()
	second := s.BeginResolution()

	stale := &domain.Snapshot{Location: domain.Location{Name: "Stale"}}
	assert.False(t, s.ApplyResolution(first, stale, nil))
	assert.Nil(t, s.Weather())
	assert.True(t, s.Loading(), "a stale result must not end the newer resolution's loading state")

	fresh := &domain.Snapshot{Location: domain.Location{Name: "Fresh"}}
	assert.True(t, s.ApplyResolution(second, fresh, nil))
	assert.Equal(t, "Fresh", s.Weather().Location.Name)
	assert.False(t, s.Loading())
}

func TestApplyResolutionErrorKeepsPreviousSnapshot(t *testing.T) {
	s := newStore(t, nil)
	s.SetWeather(&domain.Snapshot{Location: domain.Location{Name: "London"}})

	gen := s.BeginResolution()
	assert.True(t, s.ApplyResolution(gen, nil, domain.ErrCityNotFound))

	assert.Equal(t, "London", s.Weather().Location.Name)
	assert.Equal(t, domain.ErrCityNotFound.Error(), s.Error())
	assert.False(t, s.Loading())
}

func TestBeginResolutionClearsError(t *testing.T) {
	s := newStore(t, nil)
	s.SetError("old failure")

	s.BeginResolution()

	assert.Empty(t, s.Error())
	assert.True(t, s.Loading())
}

func TestPersistFailureDoesNotBlockMutation(t *testing.T) {
	ctx := context.Background()
	persister := newMemPersister()
	persister.saveErr = errors.New("disk full")

	s := newStore(t, persister)
	require.NoError(t, s.AddSavedLocation(ctx, london()))
	assert.Len(t, s.SavedLocations(), 1)
}

func TestUpdateSettingsMergesPatch(t *testing.T) {
	s := newStore(t, nil)

	got := s.UpdateSettings(context.Background(), domain.SettingsPatch{
		TemperatureUnit: ptr(domain.TempFahrenheit),
		Theme:           ptr(domain.ThemeDark),
	})

	assert.Equal(t, domain.TempFahrenheit, got.TemperatureUnit)
	assert.Equal(t, domain.ThemeDark, got.Theme)
	assert.Equal(t, domain.DefaultSettings().WindSpeedUnit, got.WindSpeedUnit)
	assert.Equal(t, got, s.Settings())
}

func TestViewIsConsistentCopy(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, nil)
	require.NoError(t, s.AddSavedLocation(ctx, london()))
	s.SetLoading(true)

	view := s.View()
	assert.Len(t, view.SavedLocations, 1)
	assert.True(t, view.Loading)

	view.SavedLocations[0].Name = "mutated"
	assert.Equal(t, "London", s.SavedLocations()[0].Name)
}

func ptr[T any](v T) *T { return &v }
