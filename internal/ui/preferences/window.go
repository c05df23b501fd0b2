package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"taskonaut/internal/core/model"
	"taskonaut/internal/i18n"
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      Settings
	onSave        func(Settings)
	weekdayHours  map[string]*widget.Entry
	autoSplit     *widget.Entry
	retention     *widget.Entry
	exportFile    *widget.Entry
	transparency  *widget.Slider
	showSeconds   *widget.Check
	autoExport    *widget.Check
	language      *widget.Select
	validationMsg *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow(i18n.T(settings.Language, "preferences"))

	weekdayHours := make(map[string]*widget.Entry, len(weekdayOrder))
	hourRows := make([]fyne.CanvasObject, 0, len(weekdayOrder))
	for _, weekday := range weekdayOrder {
		key := strings.ToLower(weekday.String())
		entry := widget.NewEntry()
		entry.SetText(formatHours(settings.WorkHours.TargetHours(weekday)))
		weekdayHours[key] = entry
		hourRows = append(hourRows, container.NewHBox(widget.NewLabel(weekday.String()), layout.NewSpacer(), entry, widget.NewLabel("h")))
	}

	autoSplit := widget.NewEntry()
	autoSplit.SetText(strconv.Itoa(settings.AutoSplitMinutes))

	retention := widget.NewEntry()
	retention.SetText(strconv.Itoa(settings.RetentionDays))

	exportFile := widget.NewEntry()
	exportFile.SetText(settings.ExportFilename)

	transparency := widget.NewSlider(0.5, 1.0)
	transparency.Value = settings.Transparency
	transparency.Step = 0.01

	showSeconds := widget.NewCheck("Show seconds", nil)
	showSeconds.SetChecked(settings.ShowSeconds)

	autoExport := widget.NewCheck("Export automatically on stop", nil)
	autoExport.SetChecked(settings.AutoExportDaily)

	language := widget.NewSelect([]string{"en", "de"}, nil)
	language.SetSelected(settings.Language)

	validationMsg := widget.NewLabel("")
	validationMsg.Hide()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Daily target hours", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewVBox(hourRows...),
		widget.NewLabelWithStyle("Tracking", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Auto-split after"), autoSplit, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Keep sessions for"), retention, widget.NewLabel("days")),
		widget.NewLabelWithStyle("Report", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Export file"), exportFile),
		autoExport,
		widget.NewLabelWithStyle("Overlay", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Opacity"),
		transparency,
		showSeconds,
		container.NewHBox(widget.NewLabel("Language"), language),
		validationMsg,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form)))
	window.Resize(fyne.NewSize(420, 520))

	prefs := &Window{
		window:        window,
		settings:      settings,
		onSave:        onSave,
		weekdayHours:  weekdayHours,
		autoSplit:     autoSplit,
		retention:     retention,
		exportFile:    exportFile,
		transparency:  transparency,
		showSeconds:   showSeconds,
		autoExport:    autoExport,
		language:      language,
		validationMsg: validationMsg,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// handleSave validates the form; an invalid field shows an inline
// message and leaves the stored settings untouched.
func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.WorkHours = make(model.WorkHours, len(prefs.weekdayHours))

	for weekday, entry := range prefs.weekdayHours {
		hours, err := strconv.ParseFloat(strings.TrimSpace(entry.Text), 64)
		if err != nil || hours < 0 || hours > 24 {
			prefs.showValidation(fmt.Sprintf("Invalid target hours for %s", weekday))
			return
		}
		settings.WorkHours[weekday] = hours
	}

	minutes, ok := parsePositiveInt(prefs.autoSplit.Text)
	if !ok {
		prefs.showValidation("Auto-split minutes must be a positive number")
		return
	}
	settings.AutoSplitMinutes = minutes

	days, ok := parsePositiveInt(prefs.retention.Text)
	if !ok {
		prefs.showValidation("Retention days must be a positive number")
		return
	}
	settings.RetentionDays = days

	filename := strings.TrimSpace(prefs.exportFile.Text)
	if filename == "" {
		prefs.showValidation("Export filename must not be empty")
		return
	}
	settings.ExportFilename = filename

	settings.Transparency = prefs.transparency.Value
	settings.ShowSeconds = prefs.showSeconds.Checked
	settings.AutoExportDaily = prefs.autoExport.Checked
	settings.Language = prefs.language.Selected

	prefs.validationMsg.Hide()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) showValidation(message string) {
	prefs.validationMsg.SetText(message)
	prefs.validationMsg.Show()
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
