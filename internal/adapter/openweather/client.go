package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/observability"
	"github.com/sony/gobreaker"
)

// Endpoint labels used in metrics.
const (
	endpointGeocode    = "geocode"
	endpointCurrent    = "current"
	endpointForecast   = "forecast"
	endpointAirQuality = "air_quality"
)

// Client implements domain.Provider using the OpenWeatherMap API.
// It is stateless: every call re-fetches from the provider. Weather data goes
// stale within the hour, so a cache here would trade freshness for little.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	geoURL     string
	metrics    *observability.Metrics
	logger     *slog.Logger
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates an OpenWeatherMap client.
func NewClient(apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5",
		geoURL:  "https://api.openweathermap.org/geo/1.0",
		metrics: metrics,
		logger:  logger,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "openweather",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
	}
}

// Geocode resolves a free-text query to up to limit candidate places, in the
// provider's ranking order.
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]domain.Place, error) {
	params := url.Values{
		"q":     {query},
		"limit": {strconv.Itoa(limit)},
		"appid": {c.apiKey},
	}

	var entries []geoEntry
	if err := c.doRequest(ctx, endpointGeocode, c.geoURL+"/direct?"+params.Encode(), &entries); err != nil {
		return nil, err
	}

	places := make([]domain.Place, len(entries))
	for i, e := range entries {
		places[i] = domain.Place{
			Name:    e.Name,
			Country: e.Country,
			State:   e.State,
			Lat:     e.Lat,
			Lon:     e.Lon,
		}
	}
	return places, nil
}

// CurrentConditions fetches the slim current-weather record for a coordinate
// pair. Only the location name and country are surfaced; all numeric fields
// come from the forecast endpoint instead.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) (domain.CurrentObservation, error) {
	var resp currentWeatherResponse
	if err := c.doRequest(ctx, endpointCurrent, c.baseURL+"/weather?"+c.coordParams(lat, lon, true).Encode(), &resp); err != nil {
		return domain.CurrentObservation{}, err
	}
	return domain.CurrentObservation{
		Name:    resp.Name,
		Country: resp.Sys.Country,
	}, nil
}

// Forecast fetches the combined current+hourly+daily+alerts record.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (domain.ForecastBundle, error) {
	params := c.coordParams(lat, lon, true)
	params.Set("exclude", "minutely")

	var resp oneCallResponse
	if err := c.doRequest(ctx, endpointForecast, c.baseURL+"/onecall?"+params.Encode(), &resp); err != nil {
		return domain.ForecastBundle{}, err
	}

	bundle := domain.ForecastBundle{
		Timezone: resp.Timezone,
		Current: domain.Current{
			Temp:       resp.Current.Temp,
			FeelsLike:  resp.Current.FeelsLike,
			Humidity:   resp.Current.Humidity,
			Pressure:   resp.Current.Pressure,
			WindSpeed:  resp.Current.WindSpeed,
			WindDeg:    resp.Current.WindDeg,
			Clouds:     resp.Current.Clouds,
			UVIndex:    resp.Current.UVI,
			Visibility: resp.Current.Visibility,
			DewPoint:   resp.Current.DewPoint,
			Sunrise:    resp.Current.Sunrise,
			Sunset:     resp.Current.Sunset,
			Conditions: conditionsFrom(resp.Current.Weather),
		},
	}

	bundle.Hourly = make([]domain.HourlyEntry, len(resp.Hourly))
	for i, h := range resp.Hourly {
		bundle.Hourly[i] = domain.HourlyEntry{
			Time:       h.Dt,
			Temp:       h.Temp,
			FeelsLike:  h.FeelsLike,
			Humidity:   h.Humidity,
			Pressure:   h.Pressure,
			WindSpeed:  h.WindSpeed,
			WindDeg:    h.WindDeg,
			Clouds:     h.Clouds,
			Pop:        h.Pop,
			Conditions: conditionsFrom(h.Weather),
		}
	}

	bundle.Daily = make([]domain.DailyEntry, len(resp.Daily))
	for i, d := range resp.Daily {
		bundle.Daily[i] = domain.DailyEntry{
			Time: d.Dt,
			Temps: domain.DayTemps{
				Min:   d.Temp.Min,
				Max:   d.Temp.Max,
				Day:   d.Temp.Day,
				Night: d.Temp.Night,
				Morn:  d.Temp.Morn,
				Eve:   d.Temp.Eve,
			},
			Humidity:   d.Humidity,
			Pressure:   d.Pressure,
			WindSpeed:  d.WindSpeed,
			WindDeg:    d.WindDeg,
			Clouds:     d.Clouds,
			Pop:        d.Pop,
			Rain:       d.Rain,
			Snow:       d.Snow,
			UVIndex:    d.UVI,
			Conditions: conditionsFrom(d.Weather),
		}
	}

	if len(resp.Alerts) > 0 {
		bundle.Alerts = make([]domain.Alert, len(resp.Alerts))
		for i, a := range resp.Alerts {
			bundle.Alerts[i] = domain.Alert{
				Sender:      a.SenderName,
				Event:       a.Event,
				Start:       a.Start,
				End:         a.End,
				Description: a.Description,
			}
		}
	}

	return bundle, nil
}

// AirQuality fetches the air quality index and pollutant concentrations.
func (c *Client) AirQuality(ctx context.Context, lat, lon float64) (domain.AirQuality, error) {
	var resp airPollutionResponse
	if err := c.doRequest(ctx, endpointAirQuality, c.baseURL+"/air_pollution?"+c.coordParams(lat, lon, false).Encode(), &resp); err != nil {
		return domain.AirQuality{}, err
	}

	if len(resp.List) == 0 {
		return domain.AirQuality{}, fmt.Errorf("air pollution response contained no readings")
	}

	r := resp.List[0]
	return domain.AirQuality{
		Index: r.Main.AQI,
		Pollutants: domain.Pollutants{
			CO:   r.Components.CO,
			NO:   r.Components.NO,
			NO2:  r.Components.NO2,
			O3:   r.Components.O3,
			SO2:  r.Components.SO2,
			PM25: r.Components.PM25,
			PM10: r.Components.PM10,
			NH3:  r.Components.NH3,
		},
	}, nil
}

// coordParams builds the shared query parameters for coordinate-keyed
// endpoints. The air pollution endpoint rejects a units parameter.
func (c *Client) coordParams(lat, lon float64, metric bool) url.Values {
	params := url.Values{
		"lat":   {strconv.FormatFloat(lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"appid": {c.apiKey},
	}
	if metric {
		params.Set("units", "metric")
	}
	return params
}

// doRequest executes a GET through the circuit breaker and decodes the JSON
// body into target. Non-2xx responses and decode failures are errors; the
// caller decides how they surface.
func (c *Client) doRequest(ctx context.Context, endpoint, fullURL string, target any) error {
	start := time.Now()
	_, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%s request: %w", endpoint, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
		}

		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
		}
		return nil, nil
	})

	c.metrics.ProviderAPIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	c.metrics.ProviderRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

// conditionsFrom maps the provider's weather array to a Conditions value,
// taking the first entry as authoritative.
func conditionsFrom(entries []weatherEntry) domain.Conditions {
	if len(entries) == 0 {
		return domain.Conditions{}
	}
	w := entries[0]
	return domain.Conditions{
		Code:        w.ID,
		Group:       w.Main,
		Description: w.Description,
		Icon:        w.Icon,
	}
}
