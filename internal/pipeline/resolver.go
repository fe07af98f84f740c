// Package pipeline resolves a place identifier (city name, coordinate pair,
// or current device location) into a single normalized weather snapshot.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/observability"
)

const (
	// maxHourlyEntries caps the hourly forecast carried in a snapshot.
	maxHourlyEntries = 24

	// searchLimit caps the candidates returned by city search.
	searchLimit = 5

	// minSearchRunes guards request volume: shorter queries never reach the
	// provider.
	minSearchRunes = 2
)

// Metric label values for resolution entry points.
const (
	methodCity        = "city"
	methodCoords      = "coords"
	methodGeolocation = "geolocation"
)

// override carries the canonical display name from geocoding so the geocoded
// label wins over whatever the weather endpoint calls the place.
type override struct {
	name    string
	country string
}

// Resolver is the weather resolution pipeline. It is stateless; every call
// re-fetches from the provider.
type Resolver struct {
	provider domain.Provider
	locator  domain.Locator
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// New creates a Resolver. locator may be nil when the device-location
// capability is disabled; ResolveCurrentLocation then fails with
// domain.ErrLocationUnavailable.
func New(provider domain.Provider, locator domain.Locator, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		provider: provider,
		locator:  locator,
		logger:   logger,
		metrics:  metrics,
	}
}

// ResolveCity geocodes a free-text city name and resolves weather for the
// best match. The first geocoding candidate is authoritative; no secondary
// disambiguation is performed.
func (r *Resolver) ResolveCity(ctx context.Context, name string) (domain.Snapshot, error) {
	places, err := r.provider.Geocode(ctx, name, 1)
	if err != nil {
		r.metrics.Resolutions.WithLabelValues(methodCity, "error").Inc()
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	if len(places) == 0 {
		r.metrics.Resolutions.WithLabelValues(methodCity, "error").Inc()
		return domain.Snapshot{}, fmt.Errorf("%w: %q", domain.ErrCityNotFound, name)
	}

	best := places[0]
	return r.resolve(ctx, best.Lat, best.Lon, &override{name: best.Name, country: best.Country}, methodCity)
}

// ResolveCoordinates resolves weather for an explicit coordinate pair. The
// location label comes from the provider's current-conditions endpoint.
func (r *Resolver) ResolveCoordinates(ctx context.Context, lat, lon float64) (domain.Snapshot, error) {
	return r.resolve(ctx, lat, lon, nil, methodCoords)
}

// ResolveCurrentLocation obtains coordinates from the device-location
// capability and resolves weather for them.
func (r *Resolver) ResolveCurrentLocation(ctx context.Context) (domain.Snapshot, error) {
	if r.locator == nil {
		r.metrics.Resolutions.WithLabelValues(methodGeolocation, "error").Inc()
		return domain.Snapshot{}, fmt.Errorf("%w: capability disabled", domain.ErrLocationUnavailable)
	}

	geo, err := r.locator.Locate(ctx)
	if err != nil {
		r.metrics.Resolutions.WithLabelValues(methodGeolocation, "error").Inc()
		return domain.Snapshot{}, err
	}

	return r.resolve(ctx, geo.Lat, geo.Lon, nil, methodGeolocation)
}

// SearchCities returns up to five ranked candidate places for a partial
// query. Queries shorter than two runes return an empty result without a
// provider call.
func (r *Resolver) SearchCities(ctx context.Context, query string) ([]domain.Place, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchRunes {
		r.metrics.SearchRequests.WithLabelValues("short_circuit").Inc()
		return []domain.Place{}, nil
	}

	places, err := r.provider.Geocode(ctx, query, searchLimit)
	if err != nil {
		r.metrics.SearchRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	r.metrics.SearchRequests.WithLabelValues("served").Inc()
	return places, nil
}

// resolve issues the three provider requests concurrently and merges the
// results into a snapshot. Current and forecast must both succeed; air
// quality is best-effort and its failure only leaves the field absent.
func (r *Resolver) resolve(ctx context.Context, lat, lon float64, ov *override, method string) (domain.Snapshot, error) {
	start := time.Now()

	var (
		wg sync.WaitGroup

		obs    domain.CurrentObservation
		obsErr error

		bundle    domain.ForecastBundle
		bundleErr error

		air    domain.AirQuality
		airErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		obs, obsErr = r.provider.CurrentConditions(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		bundle, bundleErr = r.provider.Forecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		air, airErr = r.provider.AirQuality(ctx, lat, lon)
	}()
	wg.Wait()

	// Fail fast: no partial weather data is ever shown.
	if bundleErr != nil {
		r.metrics.Resolutions.WithLabelValues(method, "error").Inc()
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrProvider, bundleErr)
	}
	if obsErr != nil {
		r.metrics.Resolutions.WithLabelValues(method, "error").Inc()
		return domain.Snapshot{}, fmt.Errorf("%w: %v", domain.ErrProvider, obsErr)
	}

	// Best-effort: the air-quality failure never crosses into the
	// operation's error channel.
	var airQuality *domain.AirQuality
	if airErr != nil {
		r.logger.Warn("air quality unavailable", "lat", lat, "lon", lon, "error", airErr)
		r.metrics.AirQualityFallbacks.Inc()
	} else {
		airQuality = &air
	}

	name, country := obs.Name, obs.Country
	if ov != nil {
		name, country = ov.name, ov.country
	}

	hourly := bundle.Hourly
	if len(hourly) > maxHourlyEntries {
		hourly = hourly[:maxHourlyEntries]
	}

	now := domain.Now()
	snapshot := domain.Snapshot{
		Location: domain.Location{
			Name:      name,
			Country:   country,
			Lat:       lat,
			Lon:       lon,
			Timezone:  bundle.Timezone,
			LocalTime: localTime(now, bundle.Timezone),
		},
		Current:    bundle.Current,
		Hourly:     hourly,
		Daily:      bundle.Daily, // truncation to 7 is a presentation concern
		AirQuality: airQuality,
		Alerts:     bundle.Alerts,
		FetchedAt:  now.UTC(),
	}

	r.metrics.Resolutions.WithLabelValues(method, "success").Inc()
	r.metrics.ResolutionDuration.Observe(time.Since(start).Seconds())
	return snapshot, nil
}

// localTime converts the fetch time into the snapshot's timezone, falling
// back to UTC when the identifier is unknown.
func localTime(now time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return now.UTC()
	}
	return now.In(loc)
}
