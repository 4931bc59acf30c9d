package cli

import (
	"context"
	"errors"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/session"
	"intervaltimer/internal/platform"
	"intervaltimer/internal/storage"
	"intervaltimer/internal/ui/quickstart"
	"intervaltimer/internal/ui/timerwindow"
	"intervaltimer/internal/ui/tray"
	"intervaltimer/resources"
)

const (
	appID              = "io.intervaltimer.app"
	trayUpdateInterval = time.Second
)

func newGUICommand(state *env) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window (default)",
		Long: `Open the desktop window.

Only one desktop instance runs at a time; starting another brings the
running one to the front.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), state)
		},
	}
}

// desktopApp owns the fyne windows and at most one running session.
// All fields are touched on the fyne thread only.
type desktopApp struct {
	ctx         context.Context
	state       *env
	app         fyne.App
	launcher    *quickstart.Window
	tray        *tray.Manager
	running     *session.Session
	timerWindow *timerwindow.Window
}

func runGUI(ctx context.Context, state *env) error {
	lock, err := platform.AcquireInstanceLock(platform.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		state.logger.Info("intervaltimer is already running, activated it")
		return nil
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = lock.Release()
	}()

	presets, err := state.openPresets()
	if err != nil {
		return err
	}
	defer presets.Close()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustLogo())

	gui := &desktopApp{ctx: ctx, state: state, app: fyneApp}
	gui.launcher = quickstart.New(fyneApp, presets, state.loadSettings(), quickstart.Callbacks{
		OnStart:        gui.start,
		OnSaveSettings: state.saveSettings,
	}, state.logger.Logger)
	gui.launcher.Window().SetMaster()

	if trayApp, ok := fyneApp.(desktop.App); ok {
		gui.tray = tray.New(trayApp, fyneApp.Icon(), tray.Callbacks{
			OnShow:          gui.show,
			OnPauseOrResume: gui.pauseOrResume,
			OnEnd:           gui.requestEnd,
			OnQuit:          gui.quit,
		})
	} else {
		state.logger.Info("system tray unsupported on this platform")
	}

	go func() {
		for range lock.Activations() {
			fyne.Do(gui.show)
		}
	}()

	if file := storage.PresetsFile(state.cfg.Storage.Backend, state.storageDir); file != "" {
		watcher, err := storage.WatchFile(file, state.logger.Logger)
		if err != nil {
			state.logger.Warn("watch presets", "error", err)
		} else {
			defer watcher.Close()
			go func() {
				for range watcher.Changes() {
					fyne.Do(gui.launcher.Reload)
				}
			}()
		}
	}

	go func() {
		<-ctx.Done()
		fyne.Do(gui.quit)
	}()

	gui.launcher.Show()
	fyneApp.Run()
	return nil
}

func (gui *desktopApp) start(interval model.TimeIntervalConfig, presetID string) {
	if gui.running != nil {
		gui.running.Close()
	}

	running, err := gui.state.startSession(gui.ctx, interval)
	if err != nil {
		gui.state.logger.Error("start session", "error", err, "preset", presetID)
		return
	}

	timerWindow := timerwindow.New(gui.app, timerwindow.Callbacks{
		OnPauseOrResume: func() { running.PauseOrResume() },
		OnRequestEnd:    func(force bool) { running.RequestEnd(force) },
		OnDismissEnd:    running.DismissEndDialog,
		OnClosed: func() {
			if gui.running != running {
				return
			}
			gui.running = nil
			gui.timerWindow = nil
			if gui.tray != nil {
				gui.tray.Clear()
			}
			gui.launcher.Show()
		},
	})
	gui.running = running
	gui.timerWindow = timerWindow

	timerWindow.Render(running.Snapshot())
	timerWindow.Follow(running.Subscribe(64))
	if gui.tray != nil {
		gui.followTray(running)
	}

	gui.launcher.Hide()
	timerWindow.Show()
}

// followTray mirrors the session in the tray menu, at most once a second
// unless the phase or pause state changes.
func (gui *desktopApp) followTray(running *session.Session) {
	updates := running.Subscribe(8)
	go func() {
		var last session.TimerUiState
		var lastAt time.Time
		for ui := range updates {
			changed := ui.Phase != last.Phase || ui.PauseLabel != last.PauseLabel || ui.Ended != last.Ended
			if !changed && time.Since(lastAt) < trayUpdateInterval {
				continue
			}
			last, lastAt = ui, time.Now()
			state := ui
			fyne.Do(func() {
				if gui.running == running {
					gui.tray.Update(state)
				}
			})
		}
	}()
}

func (gui *desktopApp) show() {
	if gui.timerWindow != nil {
		gui.timerWindow.Show()
		return
	}
	gui.launcher.Show()
}

func (gui *desktopApp) pauseOrResume() {
	if gui.running != nil {
		gui.running.PauseOrResume()
	}
}

func (gui *desktopApp) requestEnd() {
	if gui.running == nil {
		return
	}
	gui.running.RequestEnd(false)
	if gui.timerWindow != nil {
		gui.timerWindow.Show()
	}
}

func (gui *desktopApp) quit() {
	if gui.running != nil {
		gui.running.Close()
	}
	gui.app.Quit()
}
