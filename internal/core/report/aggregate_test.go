package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskonaut/internal/core/model"
)

func closedSession(start time.Time, duration time.Duration, project, task string, sessionType model.SessionType) model.Session {
	end := start.Add(duration)
	return model.Session{
		ID:              start.Format(time.RFC3339) + project,
		StartTime:       start,
		EndTime:         &end,
		Project:         project,
		Task:            task,
		DurationSeconds: int(duration.Seconds()),
		Type:            sessionType,
	}
}

var testTargets = model.WorkHours{
	"monday":   8,
	"tuesday":  8,
	"saturday": 0,
	"sunday":   0,
}

func TestDailySummariesStatuses(t *testing.T) {
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	saturday := time.Date(2024, 1, 13, 10, 0, 0, 0, time.UTC)

	sessions := []model.Session{
		// Monday: 8h work plus a break, target reached.
		closedSession(monday, 4*time.Hour, "Alpha", "Dev", model.SessionWork),
		closedSession(monday.Add(4*time.Hour), 30*time.Minute, "Alpha", "Pause", model.SessionBreak),
		closedSession(monday.Add(5*time.Hour), 4*time.Hour, "Alpha", "Dev", model.SessionWork),
		// Tuesday: 3h work, below target.
		closedSession(tuesday, 3*time.Hour, "Alpha", "Dev", model.SessionWork),
		// Saturday: breaks only, no work.
		closedSession(saturday, time.Hour, "Alpha", "Pause", model.SessionBreak),
	}

	summaries := DailySummaries(sessions, testTargets)
	require.Len(t, summaries, 3)

	assert.Equal(t, StatusNoWork, summaries[0].Status)
	assert.Equal(t, 0.0, summaries[0].WorkHours)
	assert.Equal(t, 1.0, summaries[0].BreakHours)

	assert.Equal(t, StatusTargetReached, summaries[1].Status)
	assert.Equal(t, 8.0, summaries[1].WorkHours)
	assert.Equal(t, 0.5, summaries[1].BreakHours)
	assert.Equal(t, 8.5, summaries[1].TotalHours)
	assert.Equal(t, 0.0, summaries[1].Difference)
	assert.Equal(t, "09:00:00", summaries[1].StartTime)
	assert.Equal(t, "18:00:00", summaries[1].EndTime)

	assert.Equal(t, StatusBelowTarget, summaries[2].Status)
	assert.Equal(t, -5.0, summaries[2].Difference)
}

func TestDailySummariesZeroTargetDayReached(t *testing.T) {
	sunday := time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC)
	sessions := []model.Session{
		closedSession(sunday, time.Hour, "Alpha", "Dev", model.SessionWork),
	}

	summaries := DailySummaries(sessions, testTargets)
	require.Len(t, summaries, 1)
	assert.Equal(t, StatusTargetReached, summaries[0].Status)
}

func TestDailySummariesSkipOpenSessions(t *testing.T) {
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	sessions := []model.Session{
		{StartTime: monday, Project: "Alpha", IsActive: true, Type: model.SessionWork},
	}
	assert.Empty(t, DailySummaries(sessions, testTargets))
}

func TestMonthlyRollup(t *testing.T) {
	january := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	february := time.Date(2024, 2, 5, 9, 0, 0, 0, time.UTC)

	sessions := []model.Session{
		closedSession(january, 2*time.Hour, "Alpha", "Dev", model.SessionWork),
		closedSession(january.Add(3*time.Hour), time.Hour, "Alpha", "Dev", model.SessionWork),
		closedSession(january.Add(5*time.Hour), 4*time.Hour, "Beta", "Review", model.SessionWork),
		closedSession(january.Add(10*time.Hour), time.Hour, "Alpha", "Pause", model.SessionBreak),
		closedSession(february, time.Hour, "", "", model.SessionWork),
		{StartTime: february, Project: "Gamma", IsActive: true, Type: model.SessionWork},
	}

	rows := MonthlyRollup(sessions)
	require.Len(t, rows, 3)

	// January first, higher hours first within the month.
	assert.Equal(t, MonthlyRow{Month: "2024-01", Project: "Beta", Task: "Review", Hours: 4, Sessions: 1}, rows[0])
	assert.Equal(t, MonthlyRow{Month: "2024-01", Project: "Alpha", Task: "Dev", Hours: 3, Sessions: 2}, rows[1])

	// Empty project and task fall back to the catalog defaults.
	assert.Equal(t, MonthlyRow{Month: "2024-02", Project: "General", Task: "No Task", Hours: 1, Sessions: 1}, rows[2])
}

func TestSessionRowsDayTotalsOnFirstRow(t *testing.T) {
	monday := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)

	sessions := []model.Session{
		closedSession(monday.Add(4*time.Hour), time.Hour, "Alpha", "Pause", model.SessionBreak),
		closedSession(monday, 2*time.Hour, "Alpha", "Dev", model.SessionWork),
		closedSession(tuesday, 3*time.Hour, "Beta", "Dev", model.SessionWork),
	}

	rows := SessionRows(sessions)
	require.Len(t, rows, 3)

	require.NotNil(t, rows[0].DayWork)
	assert.Equal(t, 2.0, *rows[0].DayWork)
	assert.Equal(t, 1.0, *rows[0].DayBreak)
	assert.Equal(t, 3.0, *rows[0].DayTotal)

	assert.Nil(t, rows[1].DayWork)
	assert.Nil(t, rows[1].DayBreak)
	assert.Nil(t, rows[1].DayTotal)

	require.NotNil(t, rows[2].DayWork)
	assert.Equal(t, 3.0, *rows[2].DayWork)
}
