// Package domain models the weather dashboard's core data: resolved weather
// snapshots, saved locations, and display settings.
//
// # Data Source
//
// Weather data comes from the OpenWeatherMap API family:
//
//	geo/1.0/direct         free-text geocoding, ordered candidate places
//	data/2.5/weather       current conditions (location name fallback only)
//	data/2.5/onecall       current + hourly + daily forecast + alerts
//	data/2.5/air_pollution air quality index and pollutant concentrations
//
// All requests use metric units; unit conversion is a presentation concern
// (see [FormatTemperature] and friends). Timestamps are Unix epoch seconds in
// UTC, paired with an IANA timezone identifier for local display.
//
// # OpenWeatherMap Conventions
//
// Condition codes: each weather entry carries a numeric condition ID, a short
// group name ("Clear", "Rain", ...), a human-readable description, and an icon
// code such as "10d" where the trailing letter distinguishes day ("d") from
// night ("n").
//
// Air quality: the provider reports an ordinal Air Quality Index on a 1–5
// scale (1 = good, 5 = very poor) plus raw pollutant concentrations in μg/m³
// for CO, NO, NO₂, O₃, SO₂, PM2.5, PM10, and NH₃.
//
// # ID Generation
//
// Saved-location IDs are deterministic SHA-256 hashes of the coordinate pair
// at four-decimal precision (roughly 11 m). Deriving the ID from coordinates
// rather than the display name means the same physical place cannot be saved
// twice under different labels. See [LocationID].
package domain
