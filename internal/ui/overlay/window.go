package overlay

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"taskonaut/internal/core/tracker"
	"taskonaut/internal/i18n"
)

// Config defines overlay visuals and formatting.
type Config struct {
	Opacity     uint8
	FontSize    float32
	Width       float32
	Height      float32
	ShowSeconds bool
	Language    string
}

// Callbacks defines overlay action handlers.
type Callbacks struct {
	OnToggleWork  func()
	OnToggleBreak func()
	OnQuit        func()
}

// Window manages the always-on-top overlay UI. It is rendering only:
// every mutation goes through the callbacks into the tracker.
type Window struct {
	app          fyne.App
	window       fyne.Window
	config       Config
	callbacks    Callbacks
	background   *canvas.Rectangle
	projectLabel *canvas.Text
	elapsedLabel *canvas.Text
	totalsLabel  *canvas.Text
	statusLabel  *canvas.Text
	workButton   *widget.Button
	breakButton  *widget.Button
	state        tracker.State
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window.
func New(app fyne.App, config Config, callbacks Callbacks) *Window {
	window := app.NewWindow(i18n.T(config.Language, "app_title"))
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated and floats above normal windows.
		window = driver.CreateSplashWindow()
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 44, G: 62, B: 80, A: config.Opacity})

	textColor := color.NRGBA{R: 236, G: 240, B: 241, A: 255}
	accentColor := color.NRGBA{R: 232, G: 190, B: 66, A: 255}

	projectLabel := canvas.NewText("", textColor)
	projectLabel.TextStyle = fyne.TextStyle{Bold: true}
	projectLabel.TextSize = config.FontSize

	elapsedLabel := canvas.NewText("00:00", accentColor)
	elapsedLabel.TextStyle = fyne.TextStyle{Bold: true}
	elapsedLabel.TextSize = config.FontSize * 2

	totalsLabel := canvas.NewText("", textColor)
	totalsLabel.TextSize = config.FontSize * 0.9

	statusLabel := canvas.NewText(i18n.T(config.Language, "status_idle"), textColor)
	statusLabel.TextSize = config.FontSize * 0.9

	workButton := widget.NewButton(i18n.T(config.Language, "start_work"), nil)
	breakButton := widget.NewButton(i18n.T(config.Language, "take_break"), nil)

	content := container.NewVBox(
		container.NewPadded(projectLabel),
		container.NewPadded(elapsedLabel),
		container.NewPadded(totalsLabel),
		container.NewPadded(statusLabel),
		container.NewGridWithColumns(2, workButton, breakButton),
	)
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(config.Width, config.Height))

	overlay := &Window{
		app:          app,
		window:       window,
		config:       config,
		callbacks:    callbacks,
		background:   background,
		projectLabel: projectLabel,
		elapsedLabel: elapsedLabel,
		totalsLabel:  totalsLabel,
		statusLabel:  statusLabel,
		workButton:   workButton,
		breakButton:  breakButton,
		state:        tracker.StateIdle,
	}

	workButton.OnTapped = func() {
		if overlay.callbacks.OnToggleWork != nil {
			overlay.callbacks.OnToggleWork()
		}
	}
	breakButton.OnTapped = func() {
		if overlay.callbacks.OnToggleBreak != nil {
			overlay.callbacks.OnToggleBreak()
		}
	}

	window.SetCloseIntercept(func() {
		if overlay.callbacks.OnQuit != nil {
			overlay.callbacks.OnQuit()
		}
	})

	return overlay
}

// Show displays the overlay.
func (overlay *Window) Show() {
	overlay.window.Show()
	overlay.applyNativeOpacity(overlay.config.Opacity)
}

// Hide hides the overlay.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// ShowError surfaces a failure dialog over the overlay.
func (overlay *Window) ShowError(message string) {
	fyne.Do(func() {
		dialog.ShowError(errors.New(message), overlay.window)
	})
}

// ApplyEvent refreshes the overlay from a tracker event. Safe to call
// from the event pump goroutine.
func (overlay *Window) ApplyEvent(event tracker.Event) {
	fyne.Do(func() {
		overlay.applyEventUnsafe(event)
	})
}

// UpdateConfig updates overlay visuals.
func (overlay *Window) UpdateConfig(config Config) {
	fyne.Do(func() {
		overlay.config = config
		overlay.background.FillColor = color.NRGBA{R: 44, G: 62, B: 80, A: config.Opacity}
		overlay.projectLabel.TextSize = config.FontSize
		overlay.elapsedLabel.TextSize = config.FontSize * 2
		overlay.totalsLabel.TextSize = config.FontSize * 0.9
		overlay.statusLabel.TextSize = config.FontSize * 0.9
		overlay.window.Resize(fyne.NewSize(config.Width, config.Height))
		canvas.Refresh(overlay.background)
		overlay.refreshButtonsUnsafe()
		overlay.applyNativeOpacity(config.Opacity)
	})
}

func (overlay *Window) applyEventUnsafe(event tracker.Event) {
	language := overlay.config.Language

	if event.Type == tracker.EventStateChange || event.State != overlay.state {
		overlay.state = event.State
		overlay.refreshButtonsUnsafe()
		overlay.statusLabel.Text = stateDescription(language, event.State)
		overlay.statusLabel.Refresh()
	}

	overlay.projectLabel.Text = fmt.Sprintf("%s - %s", event.Project, event.Task)
	overlay.projectLabel.Refresh()

	if event.Type == tracker.EventProgress {
		overlay.elapsedLabel.Text = formatSeconds(event.ElapsedSeconds, overlay.config.ShowSeconds)
		overlay.elapsedLabel.Refresh()

		overlay.totalsLabel.Text = fmt.Sprintf("%s %s  ·  %s %s",
			i18n.T(language, "work_time"), formatSeconds(event.WorkedSeconds, overlay.config.ShowSeconds),
			i18n.T(language, "remaining"), formatRemaining(event.RemainingSeconds, overlay.config.ShowSeconds))
		overlay.totalsLabel.Refresh()
	}
}

func (overlay *Window) refreshButtonsUnsafe() {
	language := overlay.config.Language
	switch overlay.state {
	case tracker.StateWorking:
		overlay.workButton.SetText(i18n.T(language, "stop"))
		overlay.breakButton.SetText(i18n.T(language, "take_break"))
	case tracker.StateOnBreak:
		overlay.workButton.SetText(i18n.T(language, "start_work"))
		overlay.breakButton.SetText(i18n.T(language, "stop"))
	default:
		overlay.workButton.SetText(i18n.T(language, "start_work"))
		overlay.breakButton.SetText(i18n.T(language, "take_break"))
	}
}

func stateDescription(language string, state tracker.State) string {
	switch state {
	case tracker.StateWorking:
		return i18n.T(language, "status_working")
	case tracker.StateOnBreak:
		return i18n.T(language, "status_on_break")
	default:
		return i18n.T(language, "status_idle")
	}
}

func formatSeconds(seconds int, showSeconds bool) string {
	if seconds < 0 {
		seconds = 0
	}
	duration := time.Duration(seconds) * time.Second
	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	if showSeconds {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// formatRemaining shows overtime with a leading plus once the target is
// passed.
func formatRemaining(seconds int, showSeconds bool) string {
	if seconds < 0 {
		return "+" + formatSeconds(-seconds, showSeconds)
	}
	return formatSeconds(seconds, showSeconds)
}
