package timer

import (
	"testing"
	"time"
)

func TestCueScheduler_PreEndCue(t *testing.T) {
	tests := []struct {
		name      string
		phase     Phase
		countdown int
		remaining time.Duration
		wantCue   Cue
		wantFire  bool
		wantNext  int
	}{
		{"work at three seconds", PhaseWork, 3, 3000 * time.Millisecond, CuePreEndWork, true, 2},
		{"rest at two seconds", PhaseRest, 2, 2099 * time.Millisecond, CuePreEndRest, true, 1},
		{"one second resets", PhaseWork, 1, 1050 * time.Millisecond, CuePreEndWork, true, 3},
		{"outside threshold", PhaseWork, 3, 3100 * time.Millisecond, "", false, 3},
		{"wrong second", PhaseWork, 3, 2050 * time.Millisecond, "", false, 3},
		{"whole minute left", PhaseWork, 3, time.Minute + 3050*time.Millisecond, "", false, 3},
		{"prepare is silent", PhasePrepare, 3, 3050 * time.Millisecond, "", false, 3},
		{"done is silent", PhaseDone, 3, 3050 * time.Millisecond, "", false, 3},
		{"hour rolls over", PhaseWork, 3, time.Hour + 3050*time.Millisecond, CuePreEndWork, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := CueScheduler{countdown: tt.countdown}
			cue, fired := scheduler.PreEndCue(tt.phase, tt.remaining)
			if fired != tt.wantFire || cue != tt.wantCue {
				t.Errorf("PreEndCue() = %q, %v; want %q, %v", cue, fired, tt.wantCue, tt.wantFire)
			}
			if scheduler.Countdown() != tt.wantNext {
				t.Errorf("countdown = %d, want %d", scheduler.Countdown(), tt.wantNext)
			}
		})
	}
}

func TestCueScheduler_Reset(t *testing.T) {
	scheduler := NewCueScheduler()
	scheduler.PreEndCue(PhaseWork, 3*time.Second)
	scheduler.Reset()
	if scheduler.Countdown() != 3 {
		t.Errorf("countdown after reset = %d, want 3", scheduler.Countdown())
	}
}

func TestFinishedCue(t *testing.T) {
	tests := []struct {
		from, next Phase
		want       Cue
	}{
		{PhasePrepare, PhaseWork, CueEndRest},
		{PhaseWork, PhaseRest, CueEndWork},
		{PhaseRest, PhaseWork, CueEndRest},
		{PhaseWork, PhaseDone, CueFinish},
	}

	for _, tt := range tests {
		got, ok := FinishedCue(tt.from, tt.next)
		if !ok || got != tt.want {
			t.Errorf("FinishedCue(%s, %s) = %q, %v; want %q", tt.from, tt.next, got, ok, tt.want)
		}
	}

	if _, ok := FinishedCue(PhaseDone, PhaseDone); ok {
		t.Error("done to done should not play a cue")
	}
}

func TestPhase_Title(t *testing.T) {
	if PhaseRest.Title() != "Rest" || PhasePrepare.Title() != "Prepare" {
		t.Errorf("unexpected titles %q %q", PhaseRest.Title(), PhasePrepare.Title())
	}
}
