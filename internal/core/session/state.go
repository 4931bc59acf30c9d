package session

import (
	"fmt"
	"strconv"
	"time"

	"intervaltimer/internal/core/model"
	"intervaltimer/internal/core/timer"
)

// Labels shown by every front end.
const (
	LabelPause        = "Pause"
	LabelResume       = "Resume"
	LabelLastInterval = "Last interval"
	EndDialogTitle    = "End timer"
	EndDialogMessage  = "Do you really want to end the timer?"
)

// TimerUiState is the projection of a session that front ends render.
type TimerUiState struct {
	Phase         timer.Phase
	PhaseTitle    string
	RemainingText string
	Progress      float64
	IntervalsText string
	PauseVisible  bool
	PauseLabel    string
	ShowEndDialog bool
	Ended         bool
	Timer         timer.State
}

// Project builds the UI state for a timer snapshot.
func Project(state timer.State, showEndDialog, ended bool) TimerUiState {
	ui := TimerUiState{
		Phase:         state.Phase,
		PhaseTitle:    state.Phase.Title(),
		RemainingText: RemainingText(state.Phase, state.Remaining),
		Progress:      state.Progress,
		IntervalsText: IntervalsText(state.RemainingIntervals),
		PauseVisible:  state.Phase != timer.PhaseDone && !ended,
		PauseLabel:    LabelResume,
		ShowEndDialog: showEndDialog && !ended,
		Ended:         ended,
		Timer:         state,
	}
	if state.Running {
		ui.PauseLabel = LabelPause
	}
	return ui
}

// RemainingText formats the countdown as "s,d" below one minute and
// "m:ss,d" otherwise, where d is tenths of a second. Done shows nothing.
func RemainingText(phase timer.Phase, remaining time.Duration) string {
	if phase == timer.PhaseDone {
		return ""
	}
	if remaining < 0 {
		remaining = 0
	}
	minutes := model.DisplayMinutes(remaining)
	seconds := model.DisplaySeconds(remaining)
	tenths := model.DisplayMillis(remaining) / 100
	if minutes == 0 {
		return fmt.Sprintf("%d,%d", seconds, tenths)
	}
	return fmt.Sprintf("%d:%02d,%d", minutes, seconds, tenths)
}

// IntervalsText describes how many work phases are left.
func IntervalsText(remaining int) string {
	switch {
	case remaining <= 0:
		return ""
	case remaining == 1:
		return LabelLastInterval
	default:
		return strconv.Itoa(remaining)
	}
}
