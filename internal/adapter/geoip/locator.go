// Package geoip provides the device-location capability through an IP
// geolocation lookup, the process-side analogue of browser geolocation.
package geoip

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/weather-dash/internal/domain"
)

// Locator implements domain.Locator against an ip-api.com style endpoint.
type Locator struct {
	httpClient *http.Client
	endpoint   string
	logger     *slog.Logger
}

// NewLocator creates an IP geolocation locator.
func NewLocator(endpoint string, timeout time.Duration, logger *slog.Logger) *Locator {
	return &Locator{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint: endpoint,
		logger:   logger,
	}
}

// response is the ip-api.com JSON shape.
type response struct {
	Status  string  `json:"status"` // "success" or "fail"
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate returns the coordinates the process appears to run from. Every
// failure mode (endpoint unreachable, denied, timeout, malformed body)
// collapses to domain.ErrLocationUnavailable; the underlying cause is logged,
// not surfaced.
func (l *Locator) Locate(ctx context.Context) (domain.Geo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return domain.Geo{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		l.logger.Warn("geoip lookup failed", "error", err)
		return domain.Geo{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Warn("geoip lookup rejected", "status", resp.StatusCode)
		return domain.Geo{}, fmt.Errorf("%w: status %d", domain.ErrLocationUnavailable, resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Geo{}, fmt.Errorf("%w: %v", domain.ErrLocationUnavailable, err)
	}

	if body.Status != "success" {
		l.logger.Warn("geoip lookup denied", "message", body.Message)
		return domain.Geo{}, fmt.Errorf("%w: %s", domain.ErrLocationUnavailable, body.Message)
	}

	return domain.Geo{Lat: body.Lat, Lon: body.Lon}, nil
}
