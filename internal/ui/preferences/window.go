package preferences

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"screentimer/internal/core/model"
)

var oversizeLabels = map[model.OversizePolicy]string{
	model.OversizeElementHeight:  "Relative to element height",
	model.OversizeViewportHeight: "Relative to viewport height",
}

var strategyLabels = map[model.Strategy]string{
	model.StrategyOverlap:     "Visible share of the element",
	model.StrategyFullyInside: "Entirely inside the window",
	model.StrategyEntryRatio:  "How far the top has scrolled in",
	model.StrategyCentreBand:  "Centre in the middle of the window",
}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   Settings
	onSave     func(Settings)
	lookEntry  *widget.Entry
	reportEnt  *widget.Entry
	threshold  *widget.Slider
	thresholdL *widget.Label
	oversize   *widget.Select
	strategy   *widget.Select
	idleCheck  *widget.Check
	idleAfter  *widget.Entry
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Screen Timer Settings")

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		lookEntry:  widget.NewEntry(),
		reportEnt:  widget.NewEntry(),
		threshold:  widget.NewSlider(0, 1),
		thresholdL: widget.NewLabel(""),
		oversize: widget.NewSelect([]string{
			oversizeLabels[model.OversizeElementHeight],
			oversizeLabels[model.OversizeViewportHeight],
		}, nil),
		strategy: widget.NewSelect([]string{
			strategyLabels[model.StrategyOverlap],
			strategyLabels[model.StrategyFullyInside],
			strategyLabels[model.StrategyEntryRatio],
			strategyLabels[model.StrategyCentreBand],
		}, nil),
		idleCheck: widget.NewCheck("Pause while idle", nil),
		idleAfter: widget.NewEntry(),
	}
	prefs.threshold.Step = 0.05
	prefs.threshold.OnChanged = func(value float64) {
		prefs.thresholdL.SetText(fmt.Sprintf("%.0f%%", value*100))
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sampling", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Look every"), prefs.lookEntry, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Report every"), prefs.reportEnt, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Visible threshold"), prefs.thresholdL),
		prefs.threshold,
		widget.NewLabel("Counts as visible when"),
		prefs.strategy,
		widget.NewLabel("Tall elements"),
		prefs.oversize,
		widget.NewLabelWithStyle("Idle", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.idleCheck,
		container.NewHBox(widget.NewLabel("Idle after"), prefs.idleAfter, widget.NewLabel("sec")),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.lookEntry.SetText(strconv.FormatInt(settings.LookInterval.Milliseconds(), 10))
	prefs.reportEnt.SetText(strconv.Itoa(int(settings.ReportInterval / time.Second)))
	prefs.threshold.SetValue(settings.Threshold)
	prefs.thresholdL.SetText(fmt.Sprintf("%.0f%%", settings.Threshold*100))
	prefs.oversize.SetSelected(oversizeLabels[settings.Oversize])
	prefs.strategy.SetSelected(strategyLabels[settings.Strategy])
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.idleAfter.SetText(strconv.Itoa(int(settings.IdlePauseAfter / time.Second)))
}

// Settings returns the values currently held by the window.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// collect reads the form. Unparseable or non-positive numbers keep the previous value.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if millis, ok := parsePositiveInt(prefs.lookEntry.Text); ok {
		settings.LookInterval = time.Duration(millis) * time.Millisecond
	}
	if seconds, ok := parsePositiveInt(prefs.reportEnt.Text); ok {
		settings.ReportInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(prefs.idleAfter.Text); ok {
		settings.IdlePauseAfter = time.Duration(seconds) * time.Second
	}
	settings.Threshold = math.Round(prefs.threshold.Value*100) / 100
	for policy, label := range oversizeLabels {
		if label == prefs.oversize.Selected {
			settings.Oversize = policy
		}
	}
	for strategy, label := range strategyLabels {
		if label == prefs.strategy.Selected {
			settings.Strategy = strategy
		}
	}
	settings.IdlePauseEnabled = prefs.idleCheck.Checked
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
