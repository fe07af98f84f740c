package domain

import "time"

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Location identifies the place a snapshot was resolved for.
type Location struct {
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	Timezone  string    `json:"timezone"` // IANA identifier, e.g. "Europe/London"
	LocalTime time.Time `json:"local_time"`
}

// Conditions is the textual/icon description shared by current, hourly, and
// daily entries.
type Conditions struct {
	Code        int    `json:"code"` // provider condition ID, e.g. 500
	Group       string `json:"group"` // condition group, e.g. "Rain"
	Description string `json:"description"`
	Icon        string `json:"icon"` // e.g. "10d"
}

// Current holds the observed conditions at fetch time.
type Current struct {
	Temp       float64    `json:"temp"`
	FeelsLike  float64    `json:"feels_like"`
	Humidity   int        `json:"humidity"`
	Pressure   int        `json:"pressure"`
	WindSpeed  float64    `json:"wind_speed"`
	WindDeg    int        `json:"wind_deg"`
	Clouds     int        `json:"clouds"`
	UVIndex    float64    `json:"uv_index"`
	Visibility int        `json:"visibility"`
	DewPoint   float64    `json:"dew_point"`
	Sunrise    int64      `json:"sunrise"` // epoch seconds
	Sunset     int64      `json:"sunset"`  // epoch seconds
	Conditions Conditions `json:"conditions"`
}

// HourlyEntry is one hour of forecast, chronological ascending as returned by
// the provider.
type HourlyEntry struct {
	Time       int64      `json:"time"` // epoch seconds
	Temp       float64    `json:"temp"`
	FeelsLike  float64    `json:"feels_like"`
	Humidity   int        `json:"humidity"`
	Pressure   int        `json:"pressure"`
	WindSpeed  float64    `json:"wind_speed"`
	WindDeg    int        `json:"wind_deg"`
	Clouds     int        `json:"clouds"`
	Pop        float64    `json:"pop"` // precipitation probability, 0–1
	Conditions Conditions `json:"conditions"`
}

// DayTemps is the per-day temperature breakdown.
type DayTemps struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
	Morn  float64 `json:"morn"`
	Eve   float64 `json:"eve"`
}

// DailyEntry is one day of forecast.
type DailyEntry struct {
	Time       int64      `json:"time"` // epoch seconds
	Temps      DayTemps   `json:"temps"`
	Humidity   int        `json:"humidity"`
	Pressure   int        `json:"pressure"`
	WindSpeed  float64    `json:"wind_speed"`
	WindDeg    int        `json:"wind_deg"`
	Clouds     int        `json:"clouds"`
	Pop        float64    `json:"pop"`
	Rain       float64    `json:"rain,omitempty"` // accumulation, mm
	Snow       float64    `json:"snow,omitempty"` // accumulation, mm
	UVIndex    float64    `json:"uv_index"`
	Conditions Conditions `json:"conditions"`
}

// Pollutants holds raw pollutant concentrations in μg/m³.
type Pollutants struct {
	CO   float64 `json:"co"`
	NO   float64 `json:"no"`
	NO2  float64 `json:"no2"`
	O3   float64 `json:"o3"`
	SO2  float64 `json:"so2"`
	PM25 float64 `json:"pm2_5"`
	PM10 float64 `json:"pm10"`
	NH3  float64 `json:"nh3"`
}

// AirQuality is the provider's 1–5 ordinal index plus pollutant readings.
type AirQuality struct {
	Index      int        `json:"index"`
	Pollutants Pollutants `json:"pollutants"`
}

// Alert is a weather advisory issued for the snapshot's location.
type Alert struct {
	Sender      string `json:"sender"`
	Event       string `json:"event"`
	Start       int64  `json:"start"` // epoch seconds
	End         int64  `json:"end"`   // epoch seconds
	Description string `json:"description"`
}

// Snapshot is one complete, internally consistent weather result for a single
// location. Snapshots are constructed fully formed and replaced wholesale on
// each successful resolution; no partially populated snapshot ever escapes
// the pipeline.
type Snapshot struct {
	Location   Location      `json:"location"`
	Current    Current       `json:"current"`
	Hourly     []HourlyEntry `json:"hourly"`
	Daily      []DailyEntry  `json:"daily"`
	AirQuality *AirQuality   `json:"air_quality,omitempty"` // nil when the best-effort request failed
	Alerts     []Alert       `json:"alerts,omitempty"`
	FetchedAt  time.Time     `json:"fetched_at"`
}

// Place is one geocoding candidate for a free-text query.
type Place struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"` // admin region, not always present
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// CurrentObservation is the slim current-conditions response used only as a
// location name/country fallback when no geocoding override is available.
type CurrentObservation struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ForecastBundle is the combined forecast response: the primary source of all
// numeric weather fields in a snapshot.
type ForecastBundle struct {
	Timezone string        `json:"timezone"`
	Current  Current       `json:"current"`
	Hourly   []HourlyEntry `json:"hourly"`
	Daily    []DailyEntry  `json:"daily"`
	Alerts   []Alert       `json:"alerts,omitempty"`
}
