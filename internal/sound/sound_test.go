package sound

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"

	"intervaltimer/internal/config"
	"intervaltimer/internal/core/timer"
)

type fakeOutput struct {
	initErr    error
	rate       beep.SampleRate
	bufferSize int
	calls      []string
	played     []beep.Streamer
}

func (output *fakeOutput) Init(rate beep.SampleRate, bufferSize int) error {
	output.calls = append(output.calls, "init")
	output.rate = rate
	output.bufferSize = bufferSize
	return output.initErr
}

func (output *fakeOutput) Play(streamer beep.Streamer) {
	output.calls = append(output.calls, "play")
	output.played = append(output.played, streamer)
}

func (output *fakeOutput) Clear() {
	output.calls = append(output.calls, "clear")
}

func equalCalls(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestSpeakerPlayer_StopThenPlay(t *testing.T) {
	output := &fakeOutput{}
	player, err := NewSpeakerPlayer(output, 100*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewSpeakerPlayer() error = %v", err)
	}
	if output.rate != sampleRate || output.bufferSize != sampleRate.N(100*time.Millisecond) {
		t.Errorf("Init(%v, %d), want %v, %d", output.rate, output.bufferSize, sampleRate, sampleRate.N(100*time.Millisecond))
	}

	if err := player.Play(timer.CuePreEndWork); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if err := player.Play(timer.CueEndWork); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	want := []string{"init", "clear", "play", "clear", "play"}
	if !equalCalls(output.calls, want) {
		t.Errorf("calls = %v, want %v", output.calls, want)
	}

	samples := make([][2]float64, 512)
	n, ok := output.played[1].Stream(samples)
	if !ok || n == 0 {
		t.Errorf("played cue produced no samples (n=%d, ok=%v)", n, ok)
	}
}

func TestDecodeCue_EveryCue(t *testing.T) {
	cues := []timer.Cue{timer.CuePreEndWork, timer.CuePreEndRest, timer.CueEndWork, timer.CueEndRest, timer.CueFinish}

	for _, cue := range cues {
		buffer, err := decodeCue(cue)
		if err != nil {
			t.Fatalf("decodeCue(%s) error = %v", cue, err)
		}
		if buffer.Format().SampleRate != sampleRate {
			t.Errorf("decodeCue(%s) rate = %v, want %v", cue, buffer.Format().SampleRate, sampleRate)
		}
		if buffer.Len() == 0 {
			t.Errorf("decodeCue(%s) is empty", cue)
		}
	}

	if _, err := decodeCue(timer.Cue("unknown")); err == nil {
		t.Error("decodeCue(unknown) should fail")
	}
}

func TestSpeakerPlayer_CachesDecodedCues(t *testing.T) {
	player, err := NewSpeakerPlayer(&fakeOutput{}, 0, nil)
	if err != nil {
		t.Fatalf("NewSpeakerPlayer() error = %v", err)
	}
	_ = player.Play(timer.CueFinish)
	first := player.cues[timer.CueFinish]
	_ = player.Play(timer.CueFinish)
	if first == nil || player.cues[timer.CueFinish] != first {
		t.Error("cue should be decoded once and reused")
	}
}

func TestSpeakerPlayer_FailuresAreSwallowed(t *testing.T) {
	output := &fakeOutput{}
	player, err := NewSpeakerPlayer(output, 0, nil)
	if err != nil {
		t.Fatalf("NewSpeakerPlayer() error = %v", err)
	}

	if err := player.Play(timer.Cue("unknown")); err != nil {
		t.Errorf("Play() should swallow decode errors, got %v", err)
	}
	if len(output.played) != 0 {
		t.Errorf("unknown cue should not play, got %d streams", len(output.played))
	}
}

func TestSpeakerPlayer_Release(t *testing.T) {
	output := &fakeOutput{}
	player, err := NewSpeakerPlayer(output, 0, nil)
	if err != nil {
		t.Fatalf("NewSpeakerPlayer() error = %v", err)
	}

	_ = player.Play(timer.CueFinish)
	if err := player.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if err := player.Release(); err != nil {
		t.Fatalf("second Release() error = %v", err)
	}

	want := []string{"init", "clear", "play", "clear"}
	if !equalCalls(output.calls, want) {
		t.Errorf("calls = %v, want %v", output.calls, want)
	}
	if err := player.Play(timer.CueFinish); !errors.Is(err, ErrReleased) {
		t.Errorf("Play() after release = %v, want ErrReleased", err)
	}
}

func TestNewSpeakerPlayer_DeviceError(t *testing.T) {
	deviceErr := errors.New("no ALSA device")
	_, err := NewSpeakerPlayer(&fakeOutput{initErr: deviceErr}, 0, nil)
	if !errors.Is(err, ErrNoPlayer) || !errors.Is(err, deviceErr) {
		t.Errorf("NewSpeakerPlayer() error = %v, want ErrNoPlayer wrapping the device error", err)
	}
}

func TestBellPlayer(t *testing.T) {
	tests := []struct {
		cue  timer.Cue
		want string
	}{
		{timer.CuePreEndWork, "\a"},
		{timer.CuePreEndRest, "\a"},
		{timer.CueEndWork, "\a\a"},
		{timer.CueEndRest, "\a\a"},
		{timer.CueFinish, "\a\a\a"},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		player := NewBellPlayer(&buf)
		if err := player.Play(tt.cue); err != nil {
			t.Fatalf("Play(%s) error = %v", tt.cue, err)
		}
		if buf.String() != tt.want {
			t.Errorf("Play(%s) wrote %q, want %q", tt.cue, buf.String(), tt.want)
		}
		_ = player.Release()
		if err := player.Play(tt.cue); !errors.Is(err, ErrReleased) {
			t.Errorf("Play() after release = %v", err)
		}
	}
}

func TestNew_SelectsPlayer(t *testing.T) {
	original := newOutput
	defer func() { newOutput = original }()

	tests := []struct {
		name    string
		cfg     config.SoundConfig
		initErr error
		want    string
		wantErr error
	}{
		{"disabled", config.SoundConfig{Enabled: false, Player: config.PlayerAuto}, nil, "nop", nil},
		{"none", config.SoundConfig{Enabled: true, Player: config.PlayerNone}, nil, "nop", nil},
		{"bell", config.SoundConfig{Enabled: true, Player: config.PlayerBell}, nil, "bell", nil},
		{"speaker", config.SoundConfig{Enabled: true, Player: config.PlayerSpeaker, BufferMs: 50}, nil, "speaker", nil},
		{"speaker without device", config.SoundConfig{Enabled: true, Player: config.PlayerSpeaker}, errors.New("busy"), "", ErrNoPlayer},
		{"auto", config.SoundConfig{Enabled: true, Player: config.PlayerAuto}, nil, "speaker", nil},
		{"auto without device", config.SoundConfig{Enabled: true, Player: config.PlayerAuto}, errors.New("busy"), "bell", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			newOutput = func() Output { return &fakeOutput{initErr: tt.initErr} }

			player, err := New(tt.cfg, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			var got string
			switch player.(type) {
			case NopPlayer:
				got = "nop"
			case *BellPlayer:
				got = "bell"
			case *SpeakerPlayer:
				got = "speaker"
			}
			if got != tt.want {
				t.Errorf("New() returned %T, want %s", player, tt.want)
			}
		})
	}
}
