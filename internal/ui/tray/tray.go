package tray

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"taskonaut/internal/core/tracker"
	"taskonaut/internal/i18n"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleWork  func()
	OnToggleBreak func()
	OnSwitch      func(project, task string)
	OnExport      func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles the system tray menu.
type Manager struct {
	app         desktop.App
	language    string
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	workItem    *fyne.MenuItem
	breakItem   *fyne.MenuItem
	switchItem  *fyne.MenuItem
	state       tracker.State
	statusLabel string
	recent      []string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, language string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		language:  language,
		callbacks: callbacks,
		state:     tracker.StateIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.workItem = fyne.NewMenuItem(i18n.T(language, "start_work"), func() {
		if manager.callbacks.OnToggleWork != nil {
			manager.callbacks.OnToggleWork()
		}
	})
	manager.breakItem = fyne.NewMenuItem(i18n.T(language, "take_break"), func() {
		if manager.callbacks.OnToggleBreak != nil {
			manager.callbacks.OnToggleBreak()
		}
	})

	manager.switchItem = fyne.NewMenuItem(i18n.T(language, "switch_project"), nil)
	manager.switchItem.ChildMenu = fyne.NewMenu("")

	manager.refreshMenu()
	return manager
}

// SetState updates the menu labels for the current tracking state.
func (manager *Manager) SetState(state tracker.State) {
	manager.state = state
	switch state {
	case tracker.StateWorking:
		manager.workItem.Label = i18n.T(manager.language, "stop")
		manager.breakItem.Label = i18n.T(manager.language, "take_break")
	case tracker.StateOnBreak:
		manager.workItem.Label = i18n.T(manager.language, "start_work")
		manager.breakItem.Label = i18n.T(manager.language, "stop")
	default:
		manager.workItem.Label = i18n.T(manager.language, "start_work")
		manager.breakItem.Label = i18n.T(manager.language, "take_break")
	}
	manager.refreshMenu()
}

// SetStatus updates the status line.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetRecentCombinations rebuilds the switch submenu from the recent
// "{project} - {task}" list.
func (manager *Manager) SetRecentCombinations(recent []string) {
	if equalStrings(manager.recent, recent) {
		return
	}
	manager.recent = append([]string(nil), recent...)

	items := make([]*fyne.MenuItem, 0, len(recent))
	for _, combination := range recent {
		project, task := splitCombination(combination)
		items = append(items, fyne.NewMenuItem(combination, func() {
			if manager.callbacks.OnSwitch != nil {
				manager.callbacks.OnSwitch(project, task)
			}
		}))
	}
	manager.switchItem.ChildMenu = fyne.NewMenu("", items...)
	manager.switchItem.Disabled = len(items) == 0
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(i18n.T(manager.language, "app_title"),
		manager.statusItem,
		manager.workItem,
		manager.breakItem,
		manager.switchItem,
		fyne.NewMenuItem(i18n.T(manager.language, "export_now"), func() {
			if manager.callbacks.OnExport != nil {
				manager.callbacks.OnExport()
			}
		}),
		fyne.NewMenuItem(i18n.T(manager.language, "preferences"), func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItem(i18n.T(manager.language, "quit"), func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}

func splitCombination(combination string) (string, string) {
	parts := strings.SplitN(combination, " - ", 2)
	if len(parts) != 2 {
		return combination, ""
	}
	return parts[0], parts[1]
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
