// Package tui renders a running session in the terminal.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"intervaltimer/internal/core/session"
	"intervaltimer/internal/core/timer"
)

const defaultWidth = 40

// Controller is the part of a session the terminal UI drives.
type Controller interface {
	Snapshot() session.TimerUiState
	PauseOrResume() bool
	RequestEnd(force bool) timer.EndOutcome
	DismissEndDialog()
}

type stateMsg session.TimerUiState

type endedMsg struct{}

// Model is the bubbletea model of the timer screen.
type Model struct {
	controller Controller
	updates    <-chan session.TimerUiState
	ui         session.TimerUiState
	keys       KeyMap
	help       help.Model
	progress   progress.Model
	width      int
	ended      bool
}

// New creates a model for controller that renders every state on updates.
func New(controller Controller, updates <-chan session.TimerUiState) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = defaultWidth
	return Model{
		controller: controller,
		updates:    updates,
		ui:         controller.Snapshot(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		progress:   bar,
		width:      defaultWidth,
	}
}

// Init waits for the first session update.
func (model Model) Init() tea.Cmd {
	return waitForState(model.updates)
}

// Update handles session updates and key presses.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		model.ui = session.TimerUiState(msg)
		return model, waitForState(model.updates)

	case endedMsg:
		model.ended = true
		model.ui = model.controller.Snapshot()
		return model, tea.Quit

	case tea.WindowSizeMsg:
		model.width = min(max(msg.Width-12, 10), 80)
		model.progress.Width = model.width
		model.help.Width = msg.Width
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(msg)
	}
	return model, nil
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, model.keys.Quit) {
		model.controller.RequestEnd(true)
		model.ui = model.controller.Snapshot()
		return model, nil
	}

	if model.ui.ShowEndDialog {
		switch {
		case key.Matches(msg, model.keys.Confirm):
			model.controller.RequestEnd(true)
		case key.Matches(msg, model.keys.Cancel):
			model.controller.DismissEndDialog()
		}
		model.ui = model.controller.Snapshot()
		return model, nil
	}

	switch {
	case key.Matches(msg, model.keys.Pause):
		model.controller.PauseOrResume()
	case key.Matches(msg, model.keys.End):
		model.controller.RequestEnd(false)
	}
	model.ui = model.controller.Snapshot()
	return model, nil
}

// View renders the timer screen.
func (model Model) View() string {
	if model.ended {
		return ""
	}
	ui := model.ui
	color := phaseColor(ui.Phase)

	var body strings.Builder
	body.WriteString(phaseStyle(ui.Phase).Render(ui.PhaseTitle))
	if ui.IntervalsText != "" {
		body.WriteString("  ")
		body.WriteString(intervalsStyle.Render(ui.IntervalsText))
	}
	body.WriteString("\n\n")
	if ui.RemainingText != "" {
		body.WriteString(remainingStyle.Render(ui.RemainingText))
		if ui.PauseVisible && ui.PauseLabel == session.LabelResume {
			body.WriteString("  ")
			body.WriteString(pausedStyle.Render("paused"))
		}
		body.WriteString("\n\n")
	}
	body.WriteString(model.progress.ViewAs(ui.Progress))

	view := frameStyle.BorderForeground(color).Render(body.String())
	if ui.ShowEndDialog {
		dialog := dialogStyle.Render(session.EndDialogTitle + "\n" + session.EndDialogMessage)
		view = lipgloss.JoinVertical(lipgloss.Left, view, dialog, model.help.View(dialogKeys{keys: model.keys}))
		return view + "\n"
	}
	return lipgloss.JoinVertical(lipgloss.Left, view, model.help.View(model.keys)) + "\n"
}

// UI returns the state the model last rendered.
func (model Model) UI() session.TimerUiState {
	return model.ui
}

func waitForState(updates <-chan session.TimerUiState) tea.Cmd {
	return func() tea.Msg {
		ui, ok := <-updates
		if !ok {
			return endedMsg{}
		}
		return stateMsg(ui)
	}
}
