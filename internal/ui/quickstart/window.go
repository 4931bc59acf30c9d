// Package quickstart is the launcher window: interval inputs, presets and
// the start button.
package quickstart

import (
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"intervaltimer/internal/core/model"
)

// Callbacks defines what the launcher asks of the application.
type Callbacks struct {
	OnStart        func(config model.TimeIntervalConfig, presetID string)
	OnSaveSettings func(settings model.Settings)
}

// Window handles the quick-start UI.
type Window struct {
	window       fyne.Window
	presets      model.PresetRepository
	callbacks    Callbacks
	logger       *slog.Logger
	settings     model.Settings
	intervals    *widget.Entry
	workMinutes  *widget.Entry
	workSeconds  *widget.Entry
	restMinutes  *widget.Entry
	restSeconds  *widget.Entry
	presetName   *widget.Entry
	presetList   *widget.Select
	startButton  *widget.Button
	saveButton   *widget.Button
	editButton   *widget.Button
	deleteButton *widget.Button
	listed       []model.Preset
	selected     string
}

// New creates the launcher window.
func New(app fyne.App, presets model.PresetRepository, settings model.Settings, callbacks Callbacks, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := app.NewWindow("Interval Timer")

	launcher := &Window{
		window:      window,
		presets:     presets,
		callbacks:   callbacks,
		logger:      logger,
		settings:    settings,
		intervals:   widget.NewEntry(),
		workMinutes: widget.NewEntry(),
		workSeconds: widget.NewEntry(),
		restMinutes: widget.NewEntry(),
		restSeconds: widget.NewEntry(),
		presetName:  widget.NewEntry(),
	}
	launcher.presetName.SetPlaceHolder("Preset name")
	for _, entry := range launcher.inputEntries() {
		entry.OnSubmitted = func(string) { launcher.normalize() }
	}

	launcher.presetList = widget.NewSelect(nil, launcher.selectPreset)
	launcher.presetList.PlaceHolder = "Saved presets"
	launcher.startButton = widget.NewButton("Start", launcher.handleStart)
	launcher.startButton.Importance = widget.HighImportance
	launcher.saveButton = widget.NewButton("Save preset", launcher.handleSave)
	launcher.editButton = widget.NewButton("Update preset", launcher.handleUpdate)
	launcher.deleteButton = widget.NewButton("Delete preset", launcher.handleDelete)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Quick start", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Intervals"), launcher.intervals),
		container.NewHBox(widget.NewLabel("Work"), launcher.workMinutes, widget.NewLabel(":"), launcher.workSeconds),
		container.NewHBox(widget.NewLabel("Rest"), launcher.restMinutes, widget.NewLabel(":"), launcher.restSeconds),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("Presets", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		launcher.presetList,
		launcher.presetName,
		container.NewHBox(launcher.saveButton, launcher.editButton, layout.NewSpacer(), launcher.deleteButton),
	)

	content := container.NewBorder(nil, launcher.startButton, nil, nil, form)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(420, 420))

	launcher.setInput(model.InputFromConfig(settings.QuickStart))
	launcher.Reload()
	if settings.LastPreset != "" && launcher.selectByID(settings.LastPreset) {
		launcher.selected = settings.LastPreset
		launcher.presetName.SetText(launcher.selectedName())
	}
	launcher.refreshButtons()
	return launcher
}

// Window returns the underlying fyne window.
func (launcher *Window) Window() fyne.Window {
	return launcher.window
}

// Show displays the launcher.
func (launcher *Window) Show() {
	launcher.window.Show()
	launcher.window.RequestFocus()
}

// Hide hides the launcher.
func (launcher *Window) Hide() {
	launcher.window.Hide()
}

// Reload re-reads the preset list. It must run on the fyne thread.
func (launcher *Window) Reload() {
	presets, err := launcher.presets.List()
	if err != nil {
		launcher.logger.Warn("list presets", "error", err)
		return
	}
	launcher.listed = presets

	options := make([]string, 0, len(presets))
	for _, preset := range presets {
		options = append(options, presetOption(preset))
	}
	launcher.presetList.Options = options

	if launcher.selected != "" && !launcher.selectByID(launcher.selected) {
		launcher.selected = ""
		launcher.presetList.ClearSelected()
	}
	launcher.presetList.Refresh()
	launcher.refreshButtons()
}

// Input returns the current, normalized field values.
func (launcher *Window) Input() model.IntervalInput {
	return launcher.readInput().Normalize()
}

func (launcher *Window) handleStart() {
	config, ok := launcher.normalize()
	if !ok {
		return
	}

	launcher.settings.QuickStart = config
	launcher.settings.LastPreset = launcher.selected
	if launcher.callbacks.OnSaveSettings != nil {
		launcher.callbacks.OnSaveSettings(launcher.settings)
	}
	if launcher.callbacks.OnStart != nil {
		launcher.callbacks.OnStart(config, launcher.selected)
	}
}

func (launcher *Window) handleSave() {
	config, ok := launcher.normalize()
	if !ok {
		return
	}
	preset, err := launcher.presets.Save(launcher.presetName.Text, config)
	if err != nil {
		launcher.showError(err)
		return
	}
	launcher.logger.Info("preset saved", "id", preset.ID, "name", preset.Name)
	launcher.selected = preset.ID
	launcher.Reload()
}

func (launcher *Window) handleUpdate() {
	if launcher.selected == "" {
		return
	}
	config, ok := launcher.normalize()
	if !ok {
		return
	}
	preset := model.Preset{ID: launcher.selected, Name: launcher.presetName.Text, Interval: config}
	if err := launcher.presets.Update(preset); err != nil {
		launcher.showError(err)
		return
	}
	launcher.logger.Info("preset updated", "id", preset.ID)
	launcher.Reload()
}

func (launcher *Window) handleDelete() {
	if launcher.selected == "" {
		return
	}
	id := launcher.selected
	if err := launcher.presets.Delete(id); err != nil && !errors.Is(err, model.ErrPresetNotFound) {
		launcher.showError(err)
		return
	}
	launcher.logger.Info("preset deleted", "id", id)
	launcher.selected = ""
	launcher.presetName.SetText("")
	launcher.presetList.ClearSelected()
	launcher.Reload()
}

func (launcher *Window) selectPreset(option string) {
	for _, preset := range launcher.listed {
		if presetOption(preset) != option {
			continue
		}
		launcher.selected = preset.ID
		launcher.presetName.SetText(preset.Name)
		launcher.setInput(model.InputFromConfig(preset.Interval))
		break
	}
	launcher.refreshButtons()
}

// selectByID marks the preset as selected without touching the inputs.
func (launcher *Window) selectByID(id string) bool {
	for _, preset := range launcher.listed {
		if preset.ID == id {
			launcher.presetList.Selected = presetOption(preset)
			launcher.presetList.Refresh()
			return true
		}
	}
	return false
}

func (launcher *Window) selectedName() string {
	for _, preset := range launcher.listed {
		if preset.ID == launcher.selected {
			return preset.Name
		}
	}
	return ""
}

func (launcher *Window) normalize() (model.TimeIntervalConfig, bool) {
	input := launcher.readInput().Normalize()
	launcher.setInput(input)
	config, err := input.Config()
	if err != nil {
		launcher.showError(err)
		return model.TimeIntervalConfig{}, false
	}
	return config, true
}

func (launcher *Window) readInput() model.IntervalInput {
	return model.IntervalInput{
		Intervals:   launcher.intervals.Text,
		WorkMinutes: launcher.workMinutes.Text,
		WorkSeconds: launcher.workSeconds.Text,
		RestMinutes: launcher.restMinutes.Text,
		RestSeconds: launcher.restSeconds.Text,
	}
}

func (launcher *Window) setInput(input model.IntervalInput) {
	launcher.intervals.SetText(input.Intervals)
	launcher.workMinutes.SetText(input.WorkMinutes)
	launcher.workSeconds.SetText(input.WorkSeconds)
	launcher.restMinutes.SetText(input.RestMinutes)
	launcher.restSeconds.SetText(input.RestSeconds)
}

func (launcher *Window) inputEntries() []*widget.Entry {
	return []*widget.Entry{
		launcher.intervals,
		launcher.workMinutes,
		launcher.workSeconds,
		launcher.restMinutes,
		launcher.restSeconds,
	}
}

func (launcher *Window) refreshButtons() {
	if launcher.selected == "" {
		launcher.editButton.Disable()
		launcher.deleteButton.Disable()
		return
	}
	launcher.editButton.Enable()
	launcher.deleteButton.Enable()
}

func (launcher *Window) showError(err error) {
	launcher.logger.Warn("quick start", "error", err)
	dialog.ShowError(err, launcher.window)
}

func presetOption(preset model.Preset) string {
	return fmt.Sprintf("%s  %s / %s x%d", preset.Name, preset.Interval.DisplayWork(), preset.Interval.DisplayRest(), preset.Interval.Intervals)
}
