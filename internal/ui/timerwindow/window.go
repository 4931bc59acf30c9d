// Package timerwindow renders a running interval session.
package timerwindow

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"intervaltimer/internal/core/session"
	"intervaltimer/internal/core/timer"
)

// Callbacks forwards user commands to the session.
type Callbacks struct {
	OnPauseOrResume func()
	OnRequestEnd    func(force bool)
	OnDismissEnd    func()
	OnClosed        func()
}

// Window shows the countdown of one session.
type Window struct {
	window         fyne.Window
	callbacks      Callbacks
	background     *canvas.Rectangle
	phaseLabel     *canvas.Text
	remainingLabel *canvas.Text
	intervalsLabel *widget.Label
	doneLabel      *canvas.Text
	progress       *widget.ProgressBar
	pauseButton    *widget.Button
	endButton      *widget.Button
	endDialog      *dialog.ConfirmDialog
	last           session.TimerUiState
}

// New creates the timer window. It is not shown until Show is called.
func New(app fyne.App, callbacks Callbacks) *Window {
	window := app.NewWindow("Interval Timer")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(phaseColor(timer.PhasePrepare))

	phaseLabel := canvas.NewText("", color.White)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 28

	remainingLabel := canvas.NewText("", color.White)
	remainingLabel.Alignment = fyne.TextAlignCenter
	remainingLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	remainingLabel.TextSize = 72

	doneLabel := canvas.NewText(timer.PhaseDone.Title(), color.White)
	doneLabel.Alignment = fyne.TextAlignCenter
	doneLabel.TextStyle = fyne.TextStyle{Bold: true}
	doneLabel.TextSize = 48
	doneLabel.Hide()

	intervalsLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	timerWindow := &Window{
		window:         window,
		callbacks:      callbacks,
		background:     background,
		phaseLabel:     phaseLabel,
		remainingLabel: remainingLabel,
		intervalsLabel: intervalsLabel,
		doneLabel:      doneLabel,
		progress:       progress,
	}

	timerWindow.pauseButton = widget.NewButtonWithIcon(session.LabelPause, theme.MediaPauseIcon(), func() {
		if timerWindow.callbacks.OnPauseOrResume != nil {
			timerWindow.callbacks.OnPauseOrResume()
		}
	})
	timerWindow.endButton = widget.NewButtonWithIcon("", theme.CancelIcon(), timerWindow.requestEnd)

	header := container.NewBorder(nil, nil, nil, timerWindow.endButton, intervalsLabel)
	center := container.NewVBox(
		layout.NewSpacer(),
		phaseLabel,
		remainingLabel,
		doneLabel,
		layout.NewSpacer(),
	)
	footer := container.NewVBox(progress, container.NewCenter(timerWindow.pauseButton))
	content := container.NewBorder(header, footer, nil, nil, center)

	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(360, 480))
	window.SetCloseIntercept(timerWindow.requestEnd)

	return timerWindow
}

// Show displays the window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Close closes the window without asking the session.
func (timerWindow *Window) Close() {
	timerWindow.hideEndDialog()
	timerWindow.window.Close()
}

// Last returns the most recently rendered state.
func (timerWindow *Window) Last() session.TimerUiState {
	return timerWindow.last
}

// Follow renders every update until the channel is closed, then closes the
// window and runs OnClosed.
func (timerWindow *Window) Follow(updates <-chan session.TimerUiState) {
	go func() {
		for ui := range updates {
			state := ui
			fyne.Do(func() {
				timerWindow.Render(state)
			})
		}
		fyne.Do(func() {
			timerWindow.Close()
			if timerWindow.callbacks.OnClosed != nil {
				timerWindow.callbacks.OnClosed()
			}
		})
	}()
}

// Render applies ui to the widgets. It must run on the fyne thread.
func (timerWindow *Window) Render(ui session.TimerUiState) {
	timerWindow.last = ui

	timerWindow.background.FillColor = phaseColor(ui.Phase)
	timerWindow.background.Refresh()

	done := ui.Phase == timer.PhaseDone
	if done {
		timerWindow.phaseLabel.Hide()
		timerWindow.remainingLabel.Hide()
		timerWindow.doneLabel.Show()
	} else {
		timerWindow.phaseLabel.Text = ui.PhaseTitle
		timerWindow.phaseLabel.Show()
		timerWindow.phaseLabel.Refresh()
		timerWindow.remainingLabel.Text = ui.RemainingText
		timerWindow.remainingLabel.Show()
		timerWindow.remainingLabel.Refresh()
		timerWindow.doneLabel.Hide()
	}

	timerWindow.intervalsLabel.SetText(ui.IntervalsText)
	timerWindow.progress.SetValue(ui.Progress)

	if ui.PauseVisible {
		timerWindow.pauseButton.SetText(ui.PauseLabel)
		if ui.PauseLabel == session.LabelPause {
			timerWindow.pauseButton.SetIcon(theme.MediaPauseIcon())
		} else {
			timerWindow.pauseButton.SetIcon(theme.MediaPlayIcon())
		}
		timerWindow.pauseButton.Show()
	} else {
		timerWindow.pauseButton.Hide()
	}

	if ui.ShowEndDialog {
		timerWindow.showEndDialog()
	} else {
		timerWindow.hideEndDialog()
	}
}

func (timerWindow *Window) requestEnd() {
	if timerWindow.callbacks.OnRequestEnd != nil {
		timerWindow.callbacks.OnRequestEnd(false)
	}
}

func (timerWindow *Window) showEndDialog() {
	if timerWindow.endDialog != nil {
		return
	}
	var confirm *dialog.ConfirmDialog
	confirm = dialog.NewConfirm(session.EndDialogTitle, session.EndDialogMessage, func(end bool) {
		if timerWindow.endDialog != confirm {
			return
		}
		timerWindow.endDialog = nil
		if end {
			if timerWindow.callbacks.OnRequestEnd != nil {
				timerWindow.callbacks.OnRequestEnd(true)
			}
			return
		}
		if timerWindow.callbacks.OnDismissEnd != nil {
			timerWindow.callbacks.OnDismissEnd()
		}
	}, timerWindow.window)
	confirm.SetConfirmText("End")
	confirm.SetDismissText("Cancel")
	timerWindow.endDialog = confirm
	confirm.Show()
}

func (timerWindow *Window) hideEndDialog() {
	if timerWindow.endDialog == nil {
		return
	}
	confirm := timerWindow.endDialog
	timerWindow.endDialog = nil
	confirm.Hide()
}

func phaseColor(phase timer.Phase) color.Color {
	switch phase {
	case timer.PhaseWork:
		return color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xff}
	case timer.PhaseRest:
		return color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	case timer.PhaseDone:
		return color.NRGBA{R: 0x15, G: 0x65, B: 0xc0, A: 0xff}
	default:
		return color.NRGBA{R: 0xef, G: 0x8f, B: 0x00, A: 0xff}
	}
}
