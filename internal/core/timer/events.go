package timer

import "time"

// Phase represents the current part of an interval session.
type Phase string

const (
	PhasePrepare Phase = "prepare"
	PhaseWork    Phase = "work"
	PhaseRest    Phase = "rest"
	PhaseDone    Phase = "done"
)

// Title returns the display name of the phase.
func (phase Phase) Title() string {
	switch phase {
	case PhasePrepare:
		return "Prepare"
	case PhaseWork:
		return "Work"
	case PhaseRest:
		return "Rest"
	case PhaseDone:
		return "Done"
	default:
		return string(phase)
	}
}

// Cue identifies an audio clip played at a countdown point.
type Cue string

const (
	CuePreEndWork Cue = "pre_end_work"
	CueEndWork    Cue = "end_work"
	CuePreEndRest Cue = "pre_end_rest"
	CueEndRest    Cue = "end_rest"
	CueFinish     Cue = "finish"
)

// Cues lists every cue the engine can request.
func Cues() []Cue {
	return []Cue{CuePreEndWork, CueEndWork, CuePreEndRest, CueEndRest, CueFinish}
}

// State is a snapshot of a running session.
type State struct {
	Phase              Phase
	Remaining          time.Duration
	PhaseDuration      time.Duration
	RemainingIntervals int
	Running            bool
	CueCountdown       int
	Progress           float64
}

// EndOutcome describes what an end request resolved to.
type EndOutcome int

const (
	// EndNeedsConfirmation means the user has to confirm before the session ends.
	EndNeedsConfirmation EndOutcome = iota
	// EndSession means the session was torn down.
	EndSession
)
