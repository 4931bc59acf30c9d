package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/ticker"
	"intervaltimer/internal/core/timer"
)

type fakeTicker struct {
	mu      sync.Mutex
	events  chan ticker.Event
	next    ticker.Handle
	starts  []time.Duration
	cancels []ticker.Handle
	stops   int
}

func newFakeTicker() *fakeTicker {
	return &fakeTicker{events: make(chan ticker.Event, 16)}
}

func (fake *fakeTicker) Start(duration time.Duration) ticker.Handle {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.next++
	fake.starts = append(fake.starts, duration)
	return fake.next
}

func (fake *fakeTicker) Cancel(handle ticker.Handle) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.cancels = append(fake.cancels, handle)
}

func (fake *fakeTicker) Events() <-chan ticker.Event {
	return fake.events
}

func (fake *fakeTicker) Stop() {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.stops++
}

func (fake *fakeTicker) current() ticker.Handle {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.next
}

type fakeSound struct {
	mu       sync.Mutex
	played   []timer.Cue
	releases int
}

func (fake *fakeSound) Play(cue timer.Cue) error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.played = append(fake.played, cue)
	return nil
}

func (fake *fakeSound) Release() error {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.releases++
	return nil
}

func startTestSession(t *testing.T, config model.TimeIntervalConfig) (*Session, *fakeTicker, *fakeSound) {
	t.Helper()
	fake := newFakeTicker()
	sound := &fakeSound{}
	session, err := Start(context.Background(), config, Options{Ticker: fake, Sound: sound})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(session.Close)
	return session, fake, sound
}

func finish(session *Session, fake *fakeTicker) {
	session.apply(ticker.Event{Handle: fake.current(), Finished: true})
}

func TestStart_InitialSnapshot(t *testing.T) {
	session, fake, _ := startTestSession(t, model.TimeIntervalConfig{Work: 5 * time.Second, Rest: 2 * time.Second, Intervals: 2})

	ui := session.Snapshot()
	if ui.Phase != timer.PhasePrepare || ui.PhaseTitle != "Prepare" {
		t.Errorf("phase = %s/%q, want prepare", ui.Phase, ui.PhaseTitle)
	}
	if ui.RemainingText != "5,0" || ui.Progress != 0 {
		t.Errorf("remaining = %q progress = %v, want 5,0 and 0", ui.RemainingText, ui.Progress)
	}
	if !ui.PauseVisible || ui.PauseLabel != LabelPause {
		t.Errorf("pause button = %v/%q, want visible Pause", ui.PauseVisible, ui.PauseLabel)
	}
	if ui.IntervalsText != "2" || ui.ShowEndDialog || ui.Ended {
		t.Errorf("unexpected snapshot %+v", ui)
	}
	if len(fake.starts) != 1 || fake.starts[0] != timer.DefaultPrepareDuration {
		t.Errorf("countdowns started = %v, want [5s]", fake.starts)
	}
	if session.ID() == "" {
		t.Error("session should have an id")
	}
}

func TestStart_InvalidConfig(t *testing.T) {
	fake := newFakeTicker()
	_, err := Start(context.Background(), model.TimeIntervalConfig{Work: time.Second}, Options{Ticker: fake})
	if !errors.Is(err, timer.ErrInvalidConfig) {
		t.Fatalf("Start() error = %v, want ErrInvalidConfig", err)
	}
	if fake.stops != 1 {
		t.Errorf("ticker should be stopped after a failed start, stops = %d", fake.stops)
	}
}

func TestSession_RunsToDoneAndEnds(t *testing.T) {
	session, fake, sound := startTestSession(t, model.TimeIntervalConfig{Work: 5 * time.Second, Rest: 2 * time.Second, Intervals: 2})
	updates := session.Subscribe(64)

	finish(session, fake)
	if ui := session.Snapshot(); ui.Phase != timer.PhaseWork || ui.IntervalsText != "2" {
		t.Fatalf("after prepare: %+v", ui)
	}
	finish(session, fake)
	if ui := session.Snapshot(); ui.Phase != timer.PhaseRest || ui.IntervalsText != LabelLastInterval {
		t.Fatalf("after first work: %+v", ui)
	}
	finish(session, fake)
	finish(session, fake)

	ui := session.Snapshot()
	if ui.Phase != timer.PhaseDone || ui.RemainingText != "" || ui.IntervalsText != "" {
		t.Errorf("done snapshot = %+v", ui)
	}
	if ui.PauseVisible || ui.Progress != 1 {
		t.Errorf("done should hide pause and be complete, got %+v", ui)
	}
	if session.PauseOrResume() {
		t.Error("PauseOrResume() in Done should be a no-op")
	}

	if outcome := session.RequestEnd(false); outcome != timer.EndSession {
		t.Fatalf("RequestEnd(false) in Done = %v, want EndSession", outcome)
	}
	select {
	case <-session.Done():
	default:
		t.Fatal("Done() should be closed")
	}
	if sound.releases != 1 {
		t.Errorf("releases = %d, want 1", sound.releases)
	}

	var last TimerUiState
	for update := range updates {
		last = update
	}
	if !last.Ended {
		t.Errorf("last published state should be ended, got %+v", last)
	}
	want := []timer.Cue{timer.CueEndRest, timer.CueEndWork, timer.CueEndRest, timer.CueFinish}
	if len(sound.played) != len(want) {
		t.Fatalf("played %v, want %v", sound.played, want)
	}
}

func TestSession_EndConfirmation(t *testing.T) {
	session, fake, sound := startTestSession(t, model.TimeIntervalConfig{Work: 5 * time.Second, Rest: 2 * time.Second, Intervals: 2})
	finish(session, fake)
	session.apply(ticker.Event{Handle: fake.current(), Remaining: 4 * time.Second})
	before := session.Snapshot()

	if outcome := session.RequestEnd(false); outcome != timer.EndNeedsConfirmation {
		t.Fatalf("RequestEnd(false) = %v, want EndNeedsConfirmation", outcome)
	}
	ui := session.Snapshot()
	if !ui.ShowEndDialog {
		t.Fatal("end dialog should be shown")
	}
	if ui.Timer != before.Timer {
		t.Errorf("timer state changed: %+v -> %+v", before.Timer, ui.Timer)
	}

	session.apply(ticker.Event{Handle: fake.current(), Remaining: 3500 * time.Millisecond})
	if got := session.Snapshot(); got.RemainingText != "3,5" || !got.ShowEndDialog {
		t.Errorf("countdown should keep running behind the dialog, got %+v", got)
	}

	session.DismissEndDialog()
	if session.Snapshot().ShowEndDialog {
		t.Error("DismissEndDialog() should hide the dialog")
	}

	if outcome := session.RequestEnd(true); outcome != timer.EndSession {
		t.Fatalf("RequestEnd(true) = %v", outcome)
	}
	session.Close()
	session.RequestEnd(true)
	if sound.releases != 1 {
		t.Errorf("releases = %d, want 1", sound.releases)
	}
	if fake.stops != 1 {
		t.Errorf("ticker stops = %d, want 1", fake.stops)
	}
	if !session.Snapshot().Ended {
		t.Error("snapshot should report ended")
	}
}

func TestSession_PauseResume(t *testing.T) {
	session, fake, _ := startTestSession(t, model.TimeIntervalConfig{Work: 10 * time.Second, Rest: time.Second, Intervals: 1})
	finish(session, fake)
	workHandle := fake.current()
	session.apply(ticker.Event{Handle: workHandle, Remaining: 6 * time.Second})

	if !session.PauseOrResume() {
		t.Fatal("PauseOrResume() should pause")
	}
	ui := session.Snapshot()
	if ui.PauseLabel != LabelResume || ui.Timer.Running {
		t.Errorf("paused snapshot = %+v", ui)
	}

	session.apply(ticker.Event{Handle: workHandle, Remaining: 5 * time.Second})
	if got := session.Snapshot().Timer.Remaining; got != 6*time.Second {
		t.Errorf("stale tick changed remaining to %v", got)
	}

	session.PauseOrResume()
	if got := fake.starts[len(fake.starts)-1]; got != 6*time.Second {
		t.Errorf("resume started %v, want 6s", got)
	}
	if session.Snapshot().PauseLabel != LabelPause {
		t.Error("resumed session should offer Pause")
	}
}

func TestSession_EventLoopAppliesTickerEvents(t *testing.T) {
	session, fake, _ := startTestSession(t, model.TimeIntervalConfig{Work: 5 * time.Second, Rest: 2 * time.Second, Intervals: 1})
	updates := session.Subscribe(16)

	fake.events <- ticker.Event{Handle: fake.current(), Remaining: 2500 * time.Millisecond}

	select {
	case ui := <-updates:
		if ui.RemainingText != "2,5" || ui.Progress != 0.5 {
			t.Errorf("update = %+v, want 2,5 at half progress", ui)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected an update from the event loop")
	}
}

func TestSession_ContextCancelEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	session, err := Start(ctx, model.DefaultQuickStart(), Options{Ticker: newFakeTicker()})
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	select {
	case <-session.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("session should end when its context is cancelled")
	}
}

func TestSubscribe_AfterEnd(t *testing.T) {
	session, _, _ := startTestSession(t, model.DefaultQuickStart())
	session.Close()

	updates := session.Subscribe(1)
	ui, ok := <-updates
	if !ok || !ui.Ended {
		t.Errorf("late subscriber should get the final state, got %+v %v", ui, ok)
	}
	if _, ok := <-updates; ok {
		t.Error("late subscriber channel should be closed")
	}
}
