package domain

import "context"

// Provider abstracts the external weather data source.
type Provider interface {
	// Geocode resolves a free-text query to up to limit candidate places,
	// best match first. A query with no matches returns an empty slice, not
	// an error.
	Geocode(ctx context.Context, query string, limit int) ([]Place, error)

	// CurrentConditions fetches the slim current-weather record for a
	// coordinate pair. Used only as a location name/country fallback.
	CurrentConditions(ctx context.Context, lat, lon float64) (CurrentObservation, error)

	// Forecast fetches the combined current+hourly+daily+alerts record.
	Forecast(ctx context.Context, lat, lon float64) (ForecastBundle, error)

	// AirQuality fetches the air quality index and pollutant concentrations.
	AirQuality(ctx context.Context, lat, lon float64) (AirQuality, error)
}

// Locator is the device-location capability: it yields the coordinates the
// process is running from, or fails.
type Locator interface {
	Locate(ctx context.Context) (Geo, error)
}
