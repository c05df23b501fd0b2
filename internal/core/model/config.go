package model

import (
	"strings"
	"time"
)

// DefaultTargetHours applies when a weekday has no configured target.
const DefaultTargetHours = 8.0

// WorkHours maps lowercase weekday names to target hours.
type WorkHours map[string]float64

// TargetHours returns the configured target for a weekday, falling back
// to the default when the weekday is absent.
func (hours WorkHours) TargetHours(weekday time.Weekday) float64 {
	if target, ok := hours[strings.ToLower(weekday.String())]; ok {
		return target
	}
	return DefaultTargetHours
}

// BreakTimes defines the minimum break rules.
type BreakTimes struct {
	MinBreakAfterHours      float64 `json:"min_break_after_hours"`
	MinBreakDurationMinutes int     `json:"min_break_duration_minutes"`
}

// Position is a screen coordinate pair.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// OverlaySettings defines overlay geometry and appearance.
type OverlaySettings struct {
	Position     Position `json:"position"`
	Width        int      `json:"width"`
	Height       int      `json:"height"`
	FontSize     int      `json:"font_size"`
	Transparency float64  `json:"transparency"`
	AlwaysOnTop  bool     `json:"always_on_top"`
	ShowSeconds  bool     `json:"show_seconds"`
}

// ExportSettings defines spreadsheet export behavior.
type ExportSettings struct {
	Filename        string `json:"filename"`
	AutoExportDaily bool   `json:"auto_export_daily"`
}

// ProjectCatalog holds the project/task catalog and selection state.
type ProjectCatalog struct {
	ActiveProject      string              `json:"active_project"`
	ActiveTask         string              `json:"active_task"`
	Projects           map[string][]string `json:"projects"`
	RecentCombinations []string            `json:"recent_combinations"`
}

// Config is the persisted application configuration.
type Config struct {
	WorkHours        WorkHours       `json:"work_hours"`
	BreakTimes       BreakTimes      `json:"break_times"`
	Overlay          OverlaySettings `json:"overlay_settings"`
	Export           ExportSettings  `json:"excel_export"`
	Projects         ProjectCatalog  `json:"projects_data"`
	AutoSplitMinutes int             `json:"auto_split_minutes"`
	RetentionDays    int             `json:"retention_days"`
	Language         string          `json:"language"`
}

// AutoSplitThreshold converts the configured minutes to a duration.
func (config Config) AutoSplitThreshold() time.Duration {
	if config.AutoSplitMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(config.AutoSplitMinutes) * time.Minute
}

// DefaultConfig returns the configuration written on first start.
func DefaultConfig() Config {
	return Config{
		WorkHours: WorkHours{
			"monday":    8.0,
			"tuesday":   8.0,
			"wednesday": 8.0,
			"thursday":  8.0,
			"friday":    8.0,
			"saturday":  0.0,
			"sunday":    0.0,
		},
		BreakTimes: BreakTimes{
			MinBreakAfterHours:      6.0,
			MinBreakDurationMinutes: 30,
		},
		Overlay: OverlaySettings{
			Position:     Position{X: 100, Y: 100},
			Width:        220,
			Height:       130,
			FontSize:     12,
			Transparency: 0.9,
			AlwaysOnTop:  true,
			ShowSeconds:  false,
		},
		Export: ExportSettings{
			Filename:        "working_hours.xlsx",
			AutoExportDaily: true,
		},
		Projects: ProjectCatalog{
			ActiveProject: "General",
			ActiveTask:    "Daily Work",
			Projects: map[string][]string{
				"General": {"Daily Work"},
			},
			RecentCombinations: []string{},
		},
		AutoSplitMinutes: 5,
		RetentionDays:    90,
		Language:         "en",
	}
}
