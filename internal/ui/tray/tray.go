// Package tray mirrors the running session in the system tray menu.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"intervaltimer/internal/core/session"
)

const menuTitle = "Interval Timer"

// App is the tray part of fyne's desktop.App.
type App interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnPauseOrResume func()
	OnEnd           func()
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app        App
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	showItem   *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	endItem    *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(app App, icon fyne.Resource, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Idle", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem("Show timer", func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	manager.pauseItem = fyne.NewMenuItem(session.LabelPause, func() {
		if manager.callbacks.OnPauseOrResume != nil {
			manager.callbacks.OnPauseOrResume()
		}
	})
	manager.endItem = fyne.NewMenuItem(session.EndDialogTitle, func() {
		if manager.callbacks.OnEnd != nil {
			manager.callbacks.OnEnd()
		}
	})
	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.Clear()
	if icon != nil {
		app.SetSystemTrayIcon(icon)
	}
	return manager
}

// Update reflects ui in the menu.
func (manager *Manager) Update(ui session.TimerUiState) {
	manager.statusItem.Label = Status(ui)
	manager.pauseItem.Label = ui.PauseLabel
	manager.pauseItem.Disabled = !ui.PauseVisible
	manager.endItem.Disabled = ui.Ended
	manager.showItem.Disabled = ui.Ended
	manager.refreshMenu()
}

// Clear resets the menu to the no-session state.
func (manager *Manager) Clear() {
	manager.statusItem.Label = "Idle"
	manager.pauseItem.Label = session.LabelPause
	manager.pauseItem.Disabled = true
	manager.endItem.Disabled = true
	manager.showItem.Disabled = false
	manager.refreshMenu()
}

// Menu returns the menu currently installed.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.showItem,
		fyne.NewMenuItemSeparator(),
		manager.pauseItem,
		manager.endItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	)
}

// Status renders the one-line tray summary of a session.
func Status(ui session.TimerUiState) string {
	if ui.Ended {
		return "Ended"
	}
	if ui.RemainingText == "" {
		return ui.PhaseTitle
	}
	status := fmt.Sprintf("%s %s", ui.PhaseTitle, ui.RemainingText)
	if ui.IntervalsText != "" {
		status = fmt.Sprintf("%s (%s)", status, ui.IntervalsText)
	}
	if ui.PauseVisible && ui.PauseLabel == session.LabelResume {
		status += " paused"
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
