package domain

// Display unit choices. Values match the persisted wire format.
type (
	TemperatureUnit string
	WindSpeedUnit   string
	PressureUnit    string
	TimeFormat      string
	Theme           string
)

const (
	TempCelsius    TemperatureUnit = "celsius"
	TempFahrenheit TemperatureUnit = "fahrenheit"

	WindMetersPerSec WindSpeedUnit = "ms"
	WindKmPerHour    WindSpeedUnit = "kmh"
	WindMilesPerHour WindSpeedUnit = "mph"

	PressureHPa  PressureUnit = "hpa"
	PressureInHg PressureUnit = "inhg"

	Time12h TimeFormat = "12h"
	Time24h TimeFormat = "24h"

	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
	ThemeAuto  Theme = "auto"
)

// Settings holds the user's display preferences.
type Settings struct {
	TemperatureUnit TemperatureUnit `json:"temperature_unit"`
	WindSpeedUnit   WindSpeedUnit   `json:"wind_speed_unit"`
	PressureUnit    PressureUnit    `json:"pressure_unit"`
	TimeFormat      TimeFormat      `json:"time_format"`
	Theme           Theme           `json:"theme"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		TemperatureUnit: TempCelsius,
		WindSpeedUnit:   WindMetersPerSec,
		PressureUnit:    PressureHPa,
		TimeFormat:      Time24h,
		Theme:           ThemeAuto,
	}
}

// SettingsPatch is a partial settings update. Nil fields leave the existing
// value untouched.
type SettingsPatch struct {
	TemperatureUnit *TemperatureUnit `json:"temperature_unit,omitempty"`
	WindSpeedUnit   *WindSpeedUnit   `json:"wind_speed_unit,omitempty"`
	PressureUnit    *PressureUnit    `json:"pressure_unit,omitempty"`
	TimeFormat      *TimeFormat      `json:"time_format,omitempty"`
	Theme           *Theme           `json:"theme,omitempty"`
}

// Merge applies the patch to s and returns the result. Only supplied fields
// change; settings are never replaced wholesale.
func (s Settings) Merge(p SettingsPatch) Settings {
	if p.TemperatureUnit != nil {
		s.TemperatureUnit = *p.TemperatureUnit
	}
	if p.WindSpeedUnit != nil {
		s.WindSpeedUnit = *p.WindSpeedUnit
	}
	if p.PressureUnit != nil {
		s.PressureUnit = *p.PressureUnit
	}
	if p.TimeFormat != nil {
		s.TimeFormat = *p.TimeFormat
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	return s
}
