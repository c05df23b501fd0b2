package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIsBreak(t *testing.T) {
	assert.False(t, Session{Type: SessionWork, Project: "Alpha"}.IsBreak())
	assert.True(t, Session{Type: SessionBreak, Project: "Alpha"}.IsBreak())

	// Legacy files tag breaks via the sentinel project only.
	assert.True(t, Session{Type: SessionWork, Project: BreakProject}.IsBreak())
}

func TestSessionElapsedSeconds(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	closed := Session{StartTime: start, EndTime: &end, DurationSeconds: 5400}
	assert.Equal(t, 5400, closed.ElapsedSeconds(end.Add(time.Hour)))

	active := Session{StartTime: start, IsActive: true}
	assert.Equal(t, 1800, active.ElapsedSeconds(start.Add(30*time.Minute)))

	neither := Session{StartTime: start}
	assert.Equal(t, 0, neither.ElapsedSeconds(start.Add(time.Hour)))
}

func TestSessionJSONRoundTrip(t *testing.T) {
	start := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	original := Session{
		ID:              "abc-123",
		StartTime:       start,
		EndTime:         &end,
		Project:         "Alpha",
		Task:            "Review",
		DurationSeconds: 7200,
		Type:            SessionWork,
		Note:            "pairing",
	}

	serialized, err := json.Marshal(original)
	require.NoError(t, err)

	for _, key := range []string{
		`"id"`, `"start_time"`, `"end_time"`, `"project"`, `"task"`,
		`"duration_seconds"`, `"is_active"`, `"session_type"`, `"note"`,
	} {
		assert.Contains(t, string(serialized), key)
	}

	var restored Session
	require.NoError(t, json.Unmarshal(serialized, &restored))
	assert.Equal(t, original.ID, restored.ID)
	assert.True(t, original.StartTime.Equal(restored.StartTime))
	require.NotNil(t, restored.EndTime)
	assert.True(t, end.Equal(*restored.EndTime))
	assert.Equal(t, original.Project, restored.Project)
	assert.Equal(t, original.Task, restored.Task)
	assert.Equal(t, original.DurationSeconds, restored.DurationSeconds)
	assert.Equal(t, original.Type, restored.Type)
	assert.Equal(t, original.Note, restored.Note)
}

func TestSessionDate(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 59, 30, 0, time.UTC)
	date := Session{StartTime: start}.Date()
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), date)
}
