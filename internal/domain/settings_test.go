package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, TempCelsius, s.TemperatureUnit)
	assert.Equal(t, WindMetersPerSec, s.WindSpeedUnit)
	assert.Equal(t, PressureHPa, s.PressureUnit)
	assert.Equal(t, Time24h, s.TimeFormat)
	assert.Equal(t, ThemeAuto, s.Theme)
}

func TestSettings_Merge_SingleField(t *testing.T) {
	before := DefaultSettings()
	unit := TempFahrenheit

	after := before.Merge(SettingsPatch{TemperatureUnit: &unit})

	assert.Equal(t, TempFahrenheit, after.TemperatureUnit)

	// Every other field stays identical to its prior value.
	after.TemperatureUnit = before.TemperatureUnit
	assert.Empty(t, cmp.Diff(before, after))
}

func TestSettings_Merge_EmptyPatchIsNoop(t *testing.T) {
	before := DefaultSettings()
	after := before.Merge(SettingsPatch{})
	assert.Empty(t, cmp.Diff(before, after))
}

func TestSettings_Merge_MultipleFields(t *testing.T) {
	wind := WindMilesPerHour
	theme := ThemeDark
	format := Time12h

	after := DefaultSettings().Merge(SettingsPatch{
		WindSpeedUnit: &wind,
		Theme:         &theme,
		TimeFormat:    &format,
	})

	assert.Equal(t, WindMilesPerHour, after.WindSpeedUnit)
	assert.Equal(t, ThemeDark, after.Theme)
	assert.Equal(t, Time12h, after.TimeFormat)
	assert.Equal(t, TempCelsius, after.TemperatureUnit)
	assert.Equal(t, PressureHPa, after.PressureUnit)
}
