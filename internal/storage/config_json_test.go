package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskonaut/internal/core/model"
)

func newTestConfigStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewConfigStore(dir, testLogger())
	require.NoError(t, store.Load())
	return store, dir
}

func TestConfigStoreLoadMissingWritesDefaults(t *testing.T) {
	store, dir := newTestConfigStore(t)

	config := store.Config()
	assert.Equal(t, 8.0, config.WorkHours["monday"])
	assert.Equal(t, "working_hours.xlsx", config.Export.Filename)

	rawData, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(rawData), `"work_hours"`)
	assert.Contains(t, string(rawData), "\n  ")
}

func TestConfigStoreLoadMalformedWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{oops"), 0o644))

	store := NewConfigStore(dir, testLogger())
	require.NoError(t, store.Load())
	assert.Equal(t, "en", store.Config().Language)

	var onDisk model.Config
	rawData, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rawData, &onDisk))
	assert.Len(t, onDisk.WorkHours, 7)
}

func TestConfigStoreLoadMissingRequiredKeysWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"language":"de"}`), 0o644))

	store := NewConfigStore(dir, testLogger())
	require.NoError(t, store.Load())

	// The partial document fails the required-key check and is replaced.
	config := store.Config()
	assert.Equal(t, "en", config.Language)
	assert.Len(t, config.WorkHours, 7)
}

func TestConfigStoreLoadFillsSecondaryDefaults(t *testing.T) {
	dir := t.TempDir()
	partial := `{
  "work_hours": {"monday": 6},
  "excel_export": {"filename": "report.xlsx"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(partial), 0o644))

	store := NewConfigStore(dir, testLogger())
	require.NoError(t, store.Load())

	config := store.Config()
	assert.Equal(t, 6.0, config.WorkHours["monday"])
	assert.Equal(t, "report.xlsx", config.Export.Filename)
	assert.Equal(t, 5, config.AutoSplitMinutes)
	assert.Equal(t, 90, config.RetentionDays)
	assert.Equal(t, "en", config.Language)
	assert.Positive(t, config.Overlay.Width)
}

func TestConfigStoreRecentCombinations(t *testing.T) {
	store, _ := newTestConfigStore(t)

	require.NoError(t, store.UpdateRecentCombination("Alpha", "Dev"))
	require.NoError(t, store.UpdateRecentCombination("Beta", "Review"))
	require.NoError(t, store.UpdateRecentCombination("Alpha", "Dev"))

	recent := store.RecentCombinations()
	require.Len(t, recent, 2)
	assert.Equal(t, "Alpha - Dev", recent[0])
	assert.Equal(t, "Beta - Review", recent[1])

	for i := 0; i < 15; i++ {
		require.NoError(t, store.UpdateRecentCombination(fmt.Sprintf("P%d", i), "Task"))
	}
	assert.Len(t, store.RecentCombinations(), 10)
}

func TestConfigStoreActiveProjectTask(t *testing.T) {
	store, _ := newTestConfigStore(t)

	project, task := store.ActiveProjectTask()
	assert.Equal(t, "General", project)
	assert.Equal(t, "Daily Work", task)

	require.NoError(t, store.SetActiveProjectTask("Alpha", "Dev"))
	project, task = store.ActiveProjectTask()
	assert.Equal(t, "Alpha", project)
	assert.Equal(t, "Dev", task)

	recent := store.RecentCombinations()
	require.NotEmpty(t, recent)
	assert.Equal(t, "Alpha - Dev", recent[0])
}

func TestConfigStoreProjectCatalog(t *testing.T) {
	store, _ := newTestConfigStore(t)

	require.NoError(t, store.AddProject("Alpha", "Dev", "Review"))
	require.NoError(t, store.AddProject("Beta"))
	require.NoError(t, store.AddTask("Alpha", "Docs"))
	require.NoError(t, store.AddTask("Alpha", "Docs"))
	require.NoError(t, store.AddTask("Unknown", "Docs"))

	assert.Equal(t, []string{"Alpha", "Beta", "General"}, store.ProjectNames())
	assert.Equal(t, []string{"Dev", "Review", "Docs"}, store.TasksForProject("Alpha"))
	assert.Equal(t, []string{"Daily Work"}, store.TasksForProject("Beta"))
	assert.Equal(t, []string{"Daily Work"}, store.TasksForProject("Unknown"))
}

func TestConfigStoreLegacyProjectsMigration(t *testing.T) {
	dir := t.TempDir()
	config := `{
  "work_hours": {"monday": 8},
  "excel_export": {"filename": "working_hours.xlsx"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(config), 0o644))

	legacy := model.ProjectCatalog{
		ActiveProject:      "Alpha",
		ActiveTask:         "Dev",
		Projects:           map[string][]string{"Alpha": {"Dev"}},
		RecentCombinations: []string{"Alpha - Dev"},
	}
	legacyData, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, legacyProjectsFileName), legacyData, 0o644))

	store := NewConfigStore(dir, testLogger())
	require.NoError(t, store.Load())

	project, task := store.ActiveProjectTask()
	assert.Equal(t, "Alpha", project)
	assert.Equal(t, "Dev", task)
	assert.Equal(t, []string{"Alpha - Dev"}, store.RecentCombinations())

	// The migrated catalog is persisted into the config document.
	rawData, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	require.NoError(t, err)
	assert.Contains(t, string(rawData), `"Alpha"`)
}

func TestConfigStoreTargetHours(t *testing.T) {
	store, _ := newTestConfigStore(t)

	assert.Equal(t, 8.0, store.TargetHours(time.Wednesday))
	assert.Equal(t, 0.0, store.TargetHours(time.Sunday))

	saturday := time.Date(2024, 1, 13, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, store.RequiredWorkSeconds(saturday))
	wednesday := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 8*3600, store.RequiredWorkSeconds(wednesday))
}

func TestConfigStoreUpdatePersists(t *testing.T) {
	store, dir := newTestConfigStore(t)

	require.NoError(t, store.Update(func(config *model.Config) {
		config.Language = "de"
		config.RetentionDays = 30
	}))

	reloaded := NewConfigStore(dir, testLogger())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "de", reloaded.Config().Language)
	assert.Equal(t, 30, reloaded.Config().RetentionDays)
}
