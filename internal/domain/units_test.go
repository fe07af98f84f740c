package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTemperature(t *testing.T) {
	tests := []struct {
		name  string
		tempC float64
		unit  TemperatureUnit
		want  string
	}{
		{"celsius rounds", 21.6, TempCelsius, "22°C"},
		{"celsius negative", -3.4, TempCelsius, "-3°C"},
		{"fahrenheit", 0, TempFahrenheit, "32°F"},
		{"fahrenheit rounds", 21.6, TempFahrenheit, "71°F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTemperature(tt.tempC, tt.unit))
		})
	}
}

func TestFormatWindSpeed(t *testing.T) {
	assert.Equal(t, "5 m/s", FormatWindSpeed(5.2, WindMetersPerSec))
	assert.Equal(t, "19 km/h", FormatWindSpeed(5.2, WindKmPerHour))
	assert.Equal(t, "12 mph", FormatWindSpeed(5.2, WindMilesPerHour))
}

func TestFormatPressure(t *testing.T) {
	assert.Equal(t, "1013 hPa", FormatPressure(1013, PressureHPa))
	assert.Equal(t, "29.91 inHg", FormatPressure(1013, PressureInHg))
}

func TestWindDirection(t *testing.T) {
	tests := []struct {
		deg  int
		want string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{350, "N"}, // wraps past NNW back to N
		{202, "SSW"},
		{-30, "NNW"}, // negative bearings normalize instead of panicking
		{-90, "W"},
		{360, "N"},
		{450, "E"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WindDirection(tt.deg), "deg=%d", tt.deg)
	}
}

func TestFormatClockTime(t *testing.T) {
	// 2026-03-14 13:05:00 UTC.
	epoch := int64(1773493500)

	assert.Equal(t, "13:05", FormatClockTime(epoch, "UTC", Time24h))
	assert.Equal(t, "1:05 PM", FormatClockTime(epoch, "UTC", Time12h))

	// Unknown zone falls back to UTC rather than failing.
	assert.Equal(t, "13:05", FormatClockTime(epoch, "Not/AZone", Time24h))
}

func TestAirQualityLabel(t *testing.T) {
	assert.Equal(t, "Good", AirQualityLabel(1))
	assert.Equal(t, "Moderate", AirQualityLabel(3))
	assert.Equal(t, "Very Poor", AirQualityLabel(5))
	assert.Equal(t, "Unknown", AirQualityLabel(0))
	assert.Equal(t, "Unknown", AirQualityLabel(9))
}

func TestUVIndexLabel(t *testing.T) {
	assert.Equal(t, "Low", UVIndexLabel(1.5))
	assert.Equal(t, "Moderate", UVIndexLabel(4))
	assert.Equal(t, "High", UVIndexLabel(6.2))
	assert.Equal(t, "Very High", UVIndexLabel(9))
	assert.Equal(t, "Extreme", UVIndexLabel(11))
}
