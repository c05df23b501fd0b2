package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"taskonaut/internal/core/model"
)

func TestSettingsRoundTrip(t *testing.T) {
	config := model.DefaultConfig()
	settings := FromConfig(config)

	settings.WorkHours["friday"] = 6
	settings.AutoSplitMinutes = 10
	settings.RetentionDays = 30
	settings.Transparency = 0.8
	settings.ShowSeconds = true
	settings.ExportFilename = "hours.xlsx"
	settings.AutoExportDaily = false
	settings.Language = "de"

	settings.ApplyTo(&config)

	assert.Equal(t, 6.0, config.WorkHours["friday"])
	assert.Equal(t, 10, config.AutoSplitMinutes)
	assert.Equal(t, 30, config.RetentionDays)
	assert.Equal(t, 0.8, config.Overlay.Transparency)
	assert.True(t, config.Overlay.ShowSeconds)
	assert.Equal(t, "hours.xlsx", config.Export.Filename)
	assert.False(t, config.Export.AutoExportDaily)
	assert.Equal(t, "de", config.Language)
}

func TestFromConfigCopiesWorkHours(t *testing.T) {
	config := model.DefaultConfig()
	settings := FromConfig(config)

	settings.WorkHours["monday"] = 4

	// Editing the settings must not touch the live configuration.
	assert.Equal(t, 8.0, config.WorkHours["monday"])
}
