package preferences

import (
	"taskonaut/internal/core/model"
)

// Settings defines the editable user preferences.
type Settings struct {
	WorkHours        model.WorkHours
	AutoSplitMinutes int
	RetentionDays    int
	Transparency     float64
	ShowSeconds      bool
	ExportFilename   string
	AutoExportDaily  bool
	Language         string
}

// FromConfig extracts the editable subset of the configuration.
func FromConfig(config model.Config) Settings {
	workHours := make(model.WorkHours, len(config.WorkHours))
	for weekday, hours := range config.WorkHours {
		workHours[weekday] = hours
	}
	return Settings{
		WorkHours:        workHours,
		AutoSplitMinutes: config.AutoSplitMinutes,
		RetentionDays:    config.RetentionDays,
		Transparency:     config.Overlay.Transparency,
		ShowSeconds:      config.Overlay.ShowSeconds,
		ExportFilename:   config.Export.Filename,
		AutoExportDaily:  config.Export.AutoExportDaily,
		Language:         config.Language,
	}
}

// ApplyTo writes the settings back into the configuration.
func (settings Settings) ApplyTo(config *model.Config) {
	config.WorkHours = settings.WorkHours
	config.AutoSplitMinutes = settings.AutoSplitMinutes
	config.RetentionDays = settings.RetentionDays
	config.Overlay.Transparency = settings.Transparency
	config.Overlay.ShowSeconds = settings.ShowSeconds
	config.Export.Filename = settings.ExportFilename
	config.Export.AutoExportDaily = settings.AutoExportDaily
	config.Language = settings.Language
}
