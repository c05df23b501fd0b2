package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkHoursTargetHours(t *testing.T) {
	hours := WorkHours{"monday": 6.5, "saturday": 0}

	assert.Equal(t, 6.5, hours.TargetHours(time.Monday))
	assert.Equal(t, 0.0, hours.TargetHours(time.Saturday))

	// Missing weekdays fall back to the default.
	assert.Equal(t, DefaultTargetHours, hours.TargetHours(time.Friday))
}

func TestAutoSplitThreshold(t *testing.T) {
	assert.Equal(t, 10*time.Minute, Config{AutoSplitMinutes: 10}.AutoSplitThreshold())
	assert.Equal(t, 5*time.Minute, Config{}.AutoSplitThreshold())
	assert.Equal(t, 5*time.Minute, Config{AutoSplitMinutes: -1}.AutoSplitThreshold())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Len(t, config.WorkHours, 7)
	assert.Equal(t, 8.0, config.WorkHours["monday"])
	assert.Equal(t, 0.0, config.WorkHours["sunday"])
	assert.Equal(t, "working_hours.xlsx", config.Export.Filename)
	assert.Equal(t, "General", config.Projects.ActiveProject)
	assert.Equal(t, "Daily Work", config.Projects.ActiveTask)
	assert.Equal(t, 5, config.AutoSplitMinutes)
	assert.Equal(t, 90, config.RetentionDays)
	assert.Equal(t, "en", config.Language)
}
