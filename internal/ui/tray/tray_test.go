package tray

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"

	"intervaltimer/internal/core/session"
	"intervaltimer/internal/core/timer"
)

type fakeApp struct {
	menus []*fyne.Menu
	icons []fyne.Resource
}

func (app *fakeApp) SetSystemTrayMenu(menu *fyne.Menu) { app.menus = append(app.menus, menu) }
func (app *fakeApp) SetSystemTrayIcon(icon fyne.Resource) { app.icons = append(app.icons, icon) }

func (app *fakeApp) last() *fyne.Menu {
	return app.menus[len(app.menus)-1]
}

func TestNew_InstallsIdleMenu(t *testing.T) {
	app := &fakeApp{}
	icon := fyne.NewStaticResource("icon.png", []byte{1})
	New(app, icon, Callbacks{})

	if len(app.icons) != 1 {
		t.Errorf("icon set %d times, want 1", len(app.icons))
	}
	menu := app.last()
	if menu.Items[0].Label != "Idle" {
		t.Errorf("status = %q, want Idle", menu.Items[0].Label)
	}
	if !menu.Items[3].Disabled || !menu.Items[4].Disabled {
		t.Error("pause and end should be disabled without a session")
	}
}

func TestUpdate_ReflectsSession(t *testing.T) {
	app := &fakeApp{}
	manager := New(app, nil, Callbacks{})

	ui := session.Project(timer.State{
		Phase:              timer.PhaseRest,
		Remaining:          12300 * time.Millisecond,
		PhaseDuration:      30 * time.Second,
		RemainingIntervals: 1,
		Running:            false,
	}, false, false)
	manager.Update(ui)

	menu := app.last()
	if got := menu.Items[0].Label; got != "Rest 12,3 (Last interval) paused" {
		t.Errorf("status = %q", got)
	}
	if menu.Items[3].Label != session.LabelResume || menu.Items[3].Disabled {
		t.Errorf("pause item = %q disabled=%v", menu.Items[3].Label, menu.Items[3].Disabled)
	}

	manager.Update(session.Project(timer.State{Phase: timer.PhaseDone, Progress: 1}, false, false))
	if menu := app.last(); !menu.Items[3].Disabled || menu.Items[0].Label != "Done" {
		t.Errorf("done menu: status=%q pause disabled=%v", menu.Items[0].Label, menu.Items[3].Disabled)
	}
}

func TestMenu_ForwardsActions(t *testing.T) {
	app := &fakeApp{}
	var shows, toggles, ends, quits int
	New(app, nil, Callbacks{
		OnShow:          func() { shows++ },
		OnPauseOrResume: func() { toggles++ },
		OnEnd:           func() { ends++ },
		OnQuit:          func() { quits++ },
	})

	menu := app.last()
	menu.Items[1].Action()
	menu.Items[3].Action()
	menu.Items[4].Action()
	menu.Items[6].Action()

	if shows != 1 || toggles != 1 || ends != 1 || quits != 1 {
		t.Errorf("actions = show %d toggle %d end %d quit %d", shows, toggles, ends, quits)
	}
}
