package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"taskonaut/internal/core/model"
	"taskonaut/internal/core/report"
	"taskonaut/internal/core/tracker"
	"taskonaut/internal/i18n"
	"taskonaut/internal/platform"
	"taskonaut/internal/ui/overlay"
	"taskonaut/internal/ui/preferences"
	"taskonaut/internal/ui/tray"
)

// runOverlay wires the stores, the tracker and the Fyne UI together
// and blocks until the application quits.
func runOverlay(cmd *cobra.Command, args []string) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return fmt.Errorf("another %s instance is already running", appName)
	}
	defer func() {
		_ = guard.Release()
	}()

	dir, config, sessions, err := openStores()
	if err != nil {
		return err
	}

	logger := slog.Default()
	clock := clockwork.NewRealClock()
	exporter := report.NewExporter(exportPath(dir, config), logger)
	machine := tracker.New(sessions, config, exporter, clock, logger,
		tracker.Options{TickInterval: time.Second})

	// Retention sweep on startup, before anything reads the list.
	if removed := sessions.CleanupOldData(config.Config().RetentionDays); removed > 0 {
		if err := sessions.Save(); err != nil {
			logger.Warn("saving sessions after retention sweep failed", "error", err)
		}
	}

	fyneApp := app.NewWithID("io.taskonaut.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		return errors.New("system tray unsupported on this platform")
	}

	cfg := config.Config()
	language := cfg.Language

	var overlayWindow *overlay.Window
	shutdown := func() {
		machine.Shutdown()
		fyneApp.Quit()
	}

	overlayWindow = overlay.New(fyneApp, overlayConfig(cfg), overlay.Callbacks{
		OnToggleWork:  func() { toggleWork(machine, overlayWindow) },
		OnToggleBreak: func() { toggleBreak(machine, overlayWindow) },
		OnQuit:        shutdown,
	})

	prefsWindow := preferences.New(fyneApp, preferences.FromConfig(cfg), func(updated preferences.Settings) {
		if err := config.Update(func(current *model.Config) {
			updated.ApplyTo(current)
		}); err != nil {
			logger.Warn("saving preferences failed", "error", err)
		}
		overlayWindow.UpdateConfig(overlayConfig(config.Config()))
	})

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, language, tray.Callbacks{
		OnToggleWork:  func() { toggleWork(machine, overlayWindow) },
		OnToggleBreak: func() { toggleBreak(machine, overlayWindow) },
		OnSwitch: func(project, task string) {
			if err := machine.SwitchProject(project, task); err != nil {
				logger.Warn("project switch failed", "error", err)
			}
		},
		OnExport: func() {
			if err := machine.ExportReport(); err != nil {
				logger.Warn("manual export failed", "error", err)
				overlayWindow.ShowError(i18n.T(language, "export_failed"))
			}
		},
		OnPreferences: prefsWindow.Show,
		OnQuit:        shutdown,
	})
	trayManager.SetRecentCombinations(config.RecentCombinations())

	events := machine.Subscribe(5)
	go func() {
		for event := range events {
			overlayWindow.ApplyEvent(event)
			switch event.Type {
			case tracker.EventStateChange:
				current := event
				fyne.Do(func() {
					trayManager.SetState(current.State)
					trayManager.SetRecentCombinations(config.RecentCombinations())
				})
			case tracker.EventProgress:
				status := trayStatus(language, event)
				fyne.Do(func() {
					trayManager.SetStatus(status)
				})
			case tracker.EventError:
				overlayWindow.ShowError(event.Message)
			}
		}
	}()

	machine.Start()
	overlayWindow.Show()
	fyneApp.Run()
	return nil
}

func overlayConfig(cfg model.Config) overlay.Config {
	return overlay.Config{
		Opacity:     opacityToAlpha(cfg.Overlay.Transparency),
		FontSize:    float32(cfg.Overlay.FontSize),
		Width:       float32(cfg.Overlay.Width),
		Height:      float32(cfg.Overlay.Height),
		ShowSeconds: cfg.Overlay.ShowSeconds,
		Language:    cfg.Language,
	}
}

func toggleWork(machine *tracker.Tracker, overlayWindow *overlay.Window) {
	if machine.State() == tracker.StateWorking {
		machine.StopSession()
		return
	}
	if err := machine.StartWork(); err != nil {
		slog.Warn("starting work session failed", "error", err)
		overlayWindow.ShowError(err.Error())
	}
}

func toggleBreak(machine *tracker.Tracker, overlayWindow *overlay.Window) {
	if machine.State() == tracker.StateOnBreak {
		machine.StopSession()
		return
	}
	if err := machine.StartBreak(); err != nil {
		slog.Warn("starting break session failed", "error", err)
		overlayWindow.ShowError(err.Error())
	}
}

func trayStatus(language string, event tracker.Event) string {
	var state string
	switch event.State {
	case tracker.StateWorking:
		state = i18n.T(language, "status_working")
	case tracker.StateOnBreak:
		state = i18n.T(language, "status_on_break")
	default:
		state = i18n.T(language, "status_idle")
	}
	worked := time.Duration(event.WorkedSeconds) * time.Second
	remaining := time.Duration(event.RemainingSeconds) * time.Second
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%s · %s %s · %s %s", state,
		i18n.T(language, "work_time"), formatClock(worked),
		i18n.T(language, "remaining"), formatClock(remaining))
}

func formatClock(value time.Duration) string {
	totalSeconds := int(value.Seconds())
	return fmt.Sprintf("%02d:%02d", totalSeconds/3600, (totalSeconds%3600)/60)
}

func opacityToAlpha(opacity float64) uint8 {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return uint8(opacity * 255)
}
