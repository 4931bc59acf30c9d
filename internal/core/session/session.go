// Package session runs one interval timer session and publishes its UI
// state to any number of observers.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/ticker"
	"intervaltimer/internal/core/timer"
)

// Ticker is the countdown source driving a session.
type Ticker interface {
	timer.Countdown
	Events() <-chan ticker.Event
	Stop()
}

// Options configures a Session. Zero values fall back to defaults.
type Options struct {
	TickInterval    time.Duration
	PrepareDuration time.Duration
	Sound           timer.SoundPlayer
	Ticker          Ticker
	Logger          *slog.Logger
}

// Session serializes every engine call behind one mutex. Ticker events are
// applied by a single goroutine started in Start.
type Session struct {
	mu            sync.Mutex
	id            string
	engine        *timer.Engine
	ticker        Ticker
	logger        *slog.Logger
	showEndDialog bool
	ui            TimerUiState
	subscribers   []chan TimerUiState
	finished      bool
	done          chan struct{}
}

// Start validates config and begins the Prepare phase. The session ends when
// it is force-ended, ended after Done, closed or ctx is cancelled.
func Start(ctx context.Context, config model.TimeIntervalConfig, options Options) (*Session, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	countdown := options.Ticker
	if countdown == nil {
		countdown = ticker.New(options.TickInterval)
	}

	session := &Session{
		id:     uuid.NewString(),
		ticker: countdown,
		done:   make(chan struct{}),
	}
	session.logger = logger.With("session_id", session.id)

	engine, err := timer.New(config, timer.Options{
		PrepareDuration: options.PrepareDuration,
		Countdown:       countdown,
		Sound:           options.Sound,
		Observer:        session.observe,
		Logger:          session.logger,
	})
	if err != nil {
		countdown.Stop()
		return nil, fmt.Errorf("start session: %w", err)
	}
	session.engine = engine

	session.mu.Lock()
	session.ui = Project(engine.State(), false, false)
	engine.Start()
	session.mu.Unlock()

	session.logger.Info("session started",
		"work", config.Work,
		"rest", config.Rest,
		"intervals", config.Intervals,
	)

	go session.run(ctx)
	return session, nil
}

// ID returns the session identifier used in logs.
func (session *Session) ID() string {
	return session.id
}

// Config returns the interval config the session runs.
func (session *Session) Config() model.TimeIntervalConfig {
	return session.engine.Config()
}

// Snapshot returns the latest UI state.
func (session *Session) Snapshot() TimerUiState {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.ui
}

// Subscribe registers an observer channel. Slow observers miss snapshots
// rather than block the timer. The channel is closed when the session ends.
func (session *Session) Subscribe(buffer int) <-chan TimerUiState {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan TimerUiState, buffer)

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.finished {
		ch <- session.ui
		close(ch)
		return ch
	}
	session.subscribers = append(session.subscribers, ch)
	return ch
}

// Done is closed once the session has ended.
func (session *Session) Done() <-chan struct{} {
	return session.done
}

// PauseOrResume toggles the countdown. It reports whether anything changed.
func (session *Session) PauseOrResume() bool {
	session.mu.Lock()
	defer session.mu.Unlock()

	changed := session.engine.PauseOrResume()
	if changed {
		session.logger.Debug("pause toggled", "running", session.engine.State().Running)
	}
	return changed
}

// RequestEnd ends the session when force is set or the timer is Done.
// Otherwise it raises the end-confirmation dialog and keeps counting down.
func (session *Session) RequestEnd(force bool) timer.EndOutcome {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished {
		return timer.EndSession
	}

	outcome := session.engine.RequestEnd(force)
	if outcome == timer.EndNeedsConfirmation {
		session.showEndDialog = true
		session.publishLocked()
		return outcome
	}

	session.finishLocked("ended")
	return outcome
}

// DismissEndDialog hides the end-confirmation dialog.
func (session *Session) DismissEndDialog() {
	session.mu.Lock()
	defer session.mu.Unlock()

	if !session.showEndDialog || session.finished {
		return
	}
	session.showEndDialog = false
	session.publishLocked()
}

// Close force-ends the session. Safe to call more than once.
func (session *Session) Close() {
	session.RequestEnd(true)
}

func (session *Session) run(ctx context.Context) {
	events := session.ticker.Events()
	for {
		select {
		case <-session.done:
			return
		case <-ctx.Done():
			session.logger.Debug("session context cancelled")
			session.Close()
			return
		case event := <-events:
			session.apply(event)
		}
	}
}

func (session *Session) apply(event ticker.Event) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.finished {
		return
	}
	session.engine.HandleEvent(event)
}

// observe runs inside engine calls, so the session lock is already held.
func (session *Session) observe(state timer.State) {
	session.ui = Project(state, session.showEndDialog, session.engine.Ended())
	session.emitLocked(session.ui)
}

func (session *Session) publishLocked() {
	session.ui = Project(session.engine.State(), session.showEndDialog, session.engine.Ended())
	session.emitLocked(session.ui)
}

func (session *Session) emitLocked(ui TimerUiState) {
	if session.finished {
		return
	}
	for _, ch := range session.subscribers {
		select {
		case ch <- ui:
		default:
		}
	}
}

func (session *Session) finishLocked(reason string) {
	session.showEndDialog = false
	session.ui = Project(session.engine.State(), false, true)
	session.ticker.Stop()
	session.finished = true
	for _, ch := range session.subscribers {
		close(ch)
	}
	session.subscribers = nil
	close(session.done)

	state := session.engine.State()
	session.logger.Info("session "+reason,
		"phase", string(state.Phase),
		"remaining_intervals", state.RemainingIntervals,
	)
}
