package domain

import (
	"fmt"
	"math"
	"time"
)

// compassPoints are the 16-wind compass labels, clockwise from north.
var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// FormatTemperature renders a metric temperature in the requested unit.
func FormatTemperature(tempC float64, unit TemperatureUnit) string {
	if unit == TempFahrenheit {
		return fmt.Sprintf("%d°F", int(math.Round(tempC*9/5+32)))
	}
	return fmt.Sprintf("%d°C", int(math.Round(tempC)))
}

// FormatWindSpeed renders a m/s wind speed in the requested unit.
func FormatWindSpeed(speedMS float64, unit WindSpeedUnit) string {
	switch unit {
	case WindKmPerHour:
		return fmt.Sprintf("%d km/h", int(math.Round(speedMS*3.6)))
	case WindMilesPerHour:
		return fmt.Sprintf("%d mph", int(math.Round(speedMS*2.237)))
	default:
		return fmt.Sprintf("%d m/s", int(math.Round(speedMS)))
	}
}

// FormatPressure renders an hPa pressure in the requested unit.
func FormatPressure(pressureHPa int, unit PressureUnit) string {
	if unit == PressureInHg {
		return fmt.Sprintf("%.2f inHg", float64(pressureHPa)*0.02953)
	}
	return fmt.Sprintf("%d hPa", pressureHPa)
}

// WindDirection maps a bearing in degrees to a 16-wind compass label.
// Bearings outside [0, 360) are normalized first.
func WindDirection(deg int) string {
	deg = ((deg % 360) + 360) % 360
	idx := int(math.Round(float64(deg)/22.5)) % 16
	return compassPoints[idx]
}

// FormatClockTime renders an epoch-second timestamp in the given IANA
// timezone and time format. Falls back to UTC when the zone is unknown.
func FormatClockTime(epoch int64, timezone string, format TimeFormat) string {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	t := time.Unix(epoch, 0).In(loc)
	if format == Time12h {
		return t.Format("3:04 PM")
	}
	return t.Format("15:04")
}

// AirQualityLabel maps the 1–5 ordinal AQI to its provider-defined label.
func AirQualityLabel(index int) string {
	switch index {
	case 1:
		return "Good"
	case 2:
		return "Fair"
	case 3:
		return "Moderate"
	case 4:
		return "Poor"
	case 5:
		return "Very Poor"
	default:
		return "Unknown"
	}
}

// UVIndexLabel maps a UV index to the WHO exposure category.
func UVIndexLabel(uvi float64) string {
	switch {
	case uvi <= 2:
		return "Low"
	case uvi <= 5:
		return "Moderate"
	case uvi <= 7:
		return "High"
	case uvi <= 10:
		return "Very High"
	default:
		return "Extreme"
	}
}
