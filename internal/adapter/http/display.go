package http

import (
	"github.com/couchcryptid/weather-dash/internal/domain"
	"github.com/couchcryptid/weather-dash/internal/store"
)

// snapshotDisplay is the snapshot's headline values rendered as strings in the
// user's configured units. Raw metric values stay in the snapshot itself;
// this block exists so clients never re-implement unit conversion.
type snapshotDisplay struct {
	Temperature   string `json:"temperature"`
	FeelsLike     string `json:"feels_like"`
	WindSpeed     string `json:"wind_speed"`
	WindDirection string `json:"wind_direction"`
	Pressure      string `json:"pressure"`
	Sunrise       string `json:"sunrise"`
	Sunset        string `json:"sunset"`
	LocalTime     string `json:"local_time"`
	UVIndex       string `json:"uv_index"`
	AirQuality    string `json:"air_quality,omitempty"`
}

// weatherResponse is a snapshot plus its rendered display block.
type weatherResponse struct {
	domain.Snapshot
	Display *snapshotDisplay `json:"display"`
}

// stateResponse is the full state view plus the rendered display block for
// the current snapshot, absent when no snapshot is held.
type stateResponse struct {
	store.View
	Display *snapshotDisplay `json:"display,omitempty"`
}

// displayFor renders a snapshot's headline values per the given settings.
// Returns nil for a nil snapshot.
func displayFor(snap *domain.Snapshot, settings domain.Settings) *snapshotDisplay {
	if snap == nil {
		return nil
	}

	tz := snap.Location.Timezone
	d := &snapshotDisplay{
		Temperature:   domain.FormatTemperature(snap.Current.Temp, settings.TemperatureUnit),
		FeelsLike:     domain.FormatTemperature(snap.Current.FeelsLike, settings.TemperatureUnit),
		WindSpeed:     domain.FormatWindSpeed(snap.Current.WindSpeed, settings.WindSpeedUnit),
		WindDirection: domain.WindDirection(snap.Current.WindDeg),
		Pressure:      domain.FormatPressure(snap.Current.Pressure, settings.PressureUnit),
		Sunrise:       domain.FormatClockTime(snap.Current.Sunrise, tz, settings.TimeFormat),
		Sunset:        domain.FormatClockTime(snap.Current.Sunset, tz, settings.TimeFormat),
		LocalTime:     domain.FormatClockTime(snap.Location.LocalTime.Unix(), tz, settings.TimeFormat),
		UVIndex:       domain.UVIndexLabel(snap.Current.UVIndex),
	}
	if snap.AirQuality != nil {
		d.AirQuality = domain.AirQualityLabel(snap.AirQuality.Index)
	}
	return d
}
