package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"taskonaut/internal/core/model"
)

const (
	// ConfigFileName is the configuration file inside the data directory.
	ConfigFileName = "config.json"
	// legacyProjectsFileName is folded into the config on first load.
	legacyProjectsFileName = "projects.json"

	maxRecentCombinations = 10
)

// ConfigStore owns the configuration document and its JSON file.
type ConfigStore struct {
	mu         sync.Mutex
	path       string
	legacyPath string
	logger     *slog.Logger
	config     model.Config
}

// NewConfigStore creates a store backed by config.json in dir. Call
// Load before use.
func NewConfigStore(dir string, logger *slog.Logger) *ConfigStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigStore{
		path:       filepath.Join(dir, ConfigFileName),
		legacyPath: filepath.Join(dir, legacyProjectsFileName),
		logger:     logger,
	}
}

// Load reads the configuration, substituting and persisting defaults
// when the file is missing, unreadable, or fails the required-key
// check. A legacy projects file is migrated into the document once.
func (store *ConfigStore) Load() error {
	store.mu.Lock()
	defer store.mu.Unlock()

	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.Warn("config file unreadable, writing defaults", "path", store.path, "error", err)
		}
		store.config = model.DefaultConfig()
		return store.saveLocked()
	}

	var config model.Config
	if err := json.Unmarshal(rawData, &config); err != nil {
		store.logger.Warn("config file malformed, writing defaults", "path", store.path, "error", err)
		store.config = model.DefaultConfig()
		return store.saveLocked()
	}
	if len(config.WorkHours) == 0 || config.Export.Filename == "" {
		store.logger.Warn("config missing required keys, writing defaults", "path", store.path)
		store.config = model.DefaultConfig()
		return store.saveLocked()
	}

	applyConfigDefaults(&config)
	store.config = config
	store.migrateLegacyProjectsLocked()
	return nil
}

// Save rewrites the configuration file with indentation.
func (store *ConfigStore) Save() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.saveLocked()
}

func (store *ConfigStore) saveLocked() error {
	serialized, err := json.MarshalIndent(store.config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(store.path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// migrateLegacyProjectsLocked folds a standalone projects file into the
// config document. The embedded copy is authoritative afterwards.
func (store *ConfigStore) migrateLegacyProjectsLocked() {
	if len(store.config.Projects.Projects) > 0 || store.config.Projects.ActiveProject != "" {
		return
	}

	rawData, err := os.ReadFile(store.legacyPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			store.logger.Warn("legacy projects file unreadable", "path", store.legacyPath, "error", err)
		}
		return
	}

	var catalog model.ProjectCatalog
	if err := json.Unmarshal(rawData, &catalog); err != nil {
		store.logger.Warn("legacy projects file malformed, skipping migration", "error", err)
		return
	}

	store.config.Projects = catalog
	if err := store.saveLocked(); err != nil {
		store.logger.Warn("persisting migrated projects failed", "error", err)
		return
	}
	store.logger.Info("legacy projects file migrated into config", "path", store.legacyPath)
}

func applyConfigDefaults(config *model.Config) {
	defaults := model.DefaultConfig()
	if config.AutoSplitMinutes <= 0 {
		config.AutoSplitMinutes = defaults.AutoSplitMinutes
	}
	if config.RetentionDays <= 0 {
		config.RetentionDays = defaults.RetentionDays
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.Overlay.Width <= 0 || config.Overlay.Height <= 0 {
		config.Overlay.Width = defaults.Overlay.Width
		config.Overlay.Height = defaults.Overlay.Height
	}
}

// Config returns a snapshot of the current configuration.
func (store *ConfigStore) Config() model.Config {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.config
}

// Update applies a mutation under the lock and persists the result.
func (store *ConfigStore) Update(mutate func(*model.Config)) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	mutate(&store.config)
	return store.saveLocked()
}

// TargetHours returns the configured target for a weekday.
func (store *ConfigStore) TargetHours(weekday time.Weekday) float64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.config.WorkHours.TargetHours(weekday)
}

// RequiredWorkSeconds converts the target hours for a date to seconds.
func (store *ConfigStore) RequiredWorkSeconds(date time.Time) int {
	return int(store.TargetHours(date.Weekday()) * 3600)
}

// UpdateRecentCombination records "{project} - {task}" at the front of
// the recent list, deduplicated and capped.
func (store *ConfigStore) UpdateRecentCombination(project, task string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	combination := fmt.Sprintf("%s - %s", project, task)
	recent := make([]string, 0, maxRecentCombinations)
	recent = append(recent, combination)
	for _, existing := range store.config.Projects.RecentCombinations {
		if existing == combination {
			continue
		}
		recent = append(recent, existing)
		if len(recent) == maxRecentCombinations {
			break
		}
	}
	store.config.Projects.RecentCombinations = recent
	return store.saveLocked()
}

// RecentCombinations returns the recent project/task combinations,
// most recent first.
func (store *ConfigStore) RecentCombinations() []string {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]string(nil), store.config.Projects.RecentCombinations...)
}

// SetActiveProjectTask updates the active selection and the recent
// list.
func (store *ConfigStore) SetActiveProjectTask(project, task string) error {
	store.mu.Lock()
	store.config.Projects.ActiveProject = project
	store.config.Projects.ActiveTask = task
	store.mu.Unlock()
	return store.UpdateRecentCombination(project, task)
}

// ActiveProjectTask returns the active selection, defaulting to the
// general catalog entry.
func (store *ConfigStore) ActiveProjectTask() (string, string) {
	store.mu.Lock()
	defer store.mu.Unlock()

	project := store.config.Projects.ActiveProject
	task := store.config.Projects.ActiveTask
	if project == "" {
		project = "General"
	}
	if task == "" {
		task = "Daily Work"
	}
	return project, task
}

// AddProject registers a new project with optional initial tasks.
func (store *ConfigStore) AddProject(name string, initialTasks ...string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if len(initialTasks) == 0 {
		initialTasks = []string{"Daily Work"}
	}
	if store.config.Projects.Projects == nil {
		store.config.Projects.Projects = map[string][]string{}
	}
	store.config.Projects.Projects[name] = initialTasks
	return store.saveLocked()
}

// AddTask appends a task to an existing project. Adding to an unknown
// project or duplicating a task is a no-op.
func (store *ConfigStore) AddTask(project, task string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	tasks, ok := store.config.Projects.Projects[project]
	if !ok {
		return nil
	}
	for _, existing := range tasks {
		if existing == task {
			return nil
		}
	}
	store.config.Projects.Projects[project] = append(tasks, task)
	return store.saveLocked()
}

// ProjectNames returns the catalog's project names, sorted.
func (store *ConfigStore) ProjectNames() []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	names := make([]string, 0, len(store.config.Projects.Projects))
	for name := range store.config.Projects.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TasksForProject returns the catalog tasks for a project, with a
// fallback default.
func (store *ConfigStore) TasksForProject(project string) []string {
	store.mu.Lock()
	defer store.mu.Unlock()

	if tasks, ok := store.config.Projects.Projects[project]; ok && len(tasks) > 0 {
		return append([]string(nil), tasks...)
	}
	return []string{"Daily Work"}
}
