package timer

import (
	"time"

	"intervaltimer/internal/core/model"
)

const (
	initialCueCountdown = 3
	cueTriggerThreshold = 100 * time.Millisecond
)

// CueScheduler decides when the 3-2-1 pre-end cues fire.
type CueScheduler struct {
	countdown int
}

// NewCueScheduler returns a scheduler armed at three seconds.
func NewCueScheduler() CueScheduler {
	return CueScheduler{countdown: initialCueCountdown}
}

// Countdown returns the second at which the next pre-end cue fires.
func (scheduler *CueScheduler) Countdown() int {
	return scheduler.countdown
}

// Reset re-arms the scheduler for a new phase.
func (scheduler *CueScheduler) Reset() {
	scheduler.countdown = initialCueCountdown
}

// PreEndCue reports whether a tick at remaining should play a cue.
// Only the displayed minutes are checked, so a phase of an hour or more
// rolls over and can fire again in its last minute of each hour.
func (scheduler *CueScheduler) PreEndCue(phase Phase, remaining time.Duration) (Cue, bool) {
	if phase != PhaseWork && phase != PhaseRest {
		return "", false
	}
	if model.DisplayMinutes(remaining) > 0 {
		return "", false
	}
	seconds := model.DisplaySeconds(remaining)
	millis := time.Duration(model.DisplayMillis(remaining)) * time.Millisecond
	if seconds != int64(scheduler.countdown) || millis >= cueTriggerThreshold {
		return "", false
	}

	if scheduler.countdown == 1 {
		scheduler.countdown = initialCueCountdown
	} else {
		scheduler.countdown--
	}

	if phase == PhaseWork {
		return CuePreEndWork, true
	}
	return CuePreEndRest, true
}

// FinishedCue returns the cue played when from ends and next begins.
// Leaving Prepare plays the end-of-rest cue, like leaving a Rest phase.
func FinishedCue(from, next Phase) (Cue, bool) {
	switch {
	case from == PhaseDone:
		return "", false
	case next == PhaseDone:
		return CueFinish, true
	case from == PhaseWork && next == PhaseRest:
		return CueEndWork, true
	case next == PhaseWork:
		return CueEndRest, true
	default:
		return "", false
	}
}
