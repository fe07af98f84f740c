package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// weather resolution pipeline and state store.
type Metrics struct {
	Resolutions        *prometheus.CounterVec // labels: method={city,coords,geolocation,any}, outcome={success,error,stale}
	ResolutionDuration prometheus.Histogram

	// Provider request metrics.
	ProviderRequests    *prometheus.CounterVec   // labels: endpoint={geocode,current,forecast,air_quality}, outcome={success,error}
	ProviderAPIDuration *prometheus.HistogramVec // labels: endpoint

	// AirQualityFallbacks counts resolutions that completed without air
	// quality because the best-effort request failed.
	AirQualityFallbacks prometheus.Counter

	SearchRequests  *prometheus.CounterVec // labels: outcome={served,short_circuit,error}
	SavedLocations  prometheus.Gauge
	PersistFailures prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "resolutions_total",
			Help:      "Weather resolutions by entry point and outcome.",
		}, []string{"method", "outcome"}),
		ResolutionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_dash",
			Name:      "resolution_duration_seconds",
			Help:      "Duration of a complete place-to-snapshot resolution.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "provider_requests_total",
			Help:      "Outbound provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_dash",
			Name:      "provider_api_duration_seconds",
			Help:      "Provider API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"endpoint"}),
		AirQualityFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "air_quality_fallbacks_total",
			Help:      "Snapshots produced without air quality after a best-effort failure.",
		}),
		SearchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "search_requests_total",
			Help:      "City search requests by outcome.",
		}, []string{"outcome"}),
		SavedLocations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "weather_dash",
			Name:      "saved_locations",
			Help:      "Number of locations currently saved.",
		}),
		PersistFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "weather_dash",
			Name:      "persist_failures_total",
			Help:      "State persistence write failures.",
		}),
	}

	prometheus.MustRegister(
		m.Resolutions,
		m.ResolutionDuration,
		m.ProviderRequests,
		m.ProviderAPIDuration,
		m.AirQualityFallbacks,
		m.SearchRequests,
		m.SavedLocations,
		m.PersistFailures,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		Resolutions:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dash", Name: "resolutions_total"}, []string{"method", "outcome"}),
		ResolutionDuration:  prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "weather_dash", Name: "resolution_duration_seconds"}),
		ProviderRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dash", Name: "provider_requests_total"}, []string{"endpoint", "outcome"}),
		ProviderAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_dash", Name: "provider_api_duration_seconds"}, []string{"endpoint"}),
		AirQualityFallbacks: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_dash", Name: "air_quality_fallbacks_total"}),
		SearchRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_dash", Name: "search_requests_total"}, []string{"outcome"}),
		SavedLocations:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "weather_dash", Name: "saved_locations"}),
		PersistFailures:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "weather_dash", Name: "persist_failures_total"}),
	}
}
