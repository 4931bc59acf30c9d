package sound

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"

	"intervaltimer/internal/core/timer"
	"intervaltimer/resources"
)

const (
	sampleRate       beep.SampleRate = 44100
	resampleQuality                  = 4
	defaultBufferLen                 = 50 * time.Millisecond
)

// Output is the audio device cues are mixed into.
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(streamer beep.Streamer)
	Clear()
}

// SpeakerPlayer decodes the embedded cue WAVs once and plays them on an
// Output. Each Play clears the previous cue before starting the next one.
type SpeakerPlayer struct {
	mu       sync.Mutex
	output   Output
	logger   *slog.Logger
	cues     map[timer.Cue]*beep.Buffer
	released bool
}

// NewSpeakerPlayer opens output with the given buffer length.
func NewSpeakerPlayer(output Output, buffer time.Duration, logger *slog.Logger) (*SpeakerPlayer, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if buffer <= 0 {
		buffer = defaultBufferLen
	}
	if err := output.Init(sampleRate, sampleRate.N(buffer)); err != nil {
		return nil, fmt.Errorf("open speaker: %w: %w", ErrNoPlayer, err)
	}
	return &SpeakerPlayer{
		output: output,
		logger: logger,
		cues:   make(map[timer.Cue]*beep.Buffer),
	}, nil
}

// Play stops the current cue and starts cue. Decoding failures are logged
// and not returned.
func (player *SpeakerPlayer) Play(cue timer.Cue) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.released {
		return ErrReleased
	}

	buffer, err := player.cueLocked(cue)
	if err != nil {
		player.logger.Warn("decode cue", "cue", string(cue), "error", err)
		return nil
	}
	player.output.Clear()
	player.output.Play(buffer.Streamer(0, buffer.Len()))
	return nil
}

// Release silences the output. Later calls to Play fail with ErrReleased.
// The device itself stays open for the next session.
func (player *SpeakerPlayer) Release() error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if !player.released {
		player.output.Clear()
		player.released = true
	}
	return nil
}

func (player *SpeakerPlayer) cueLocked(cue timer.Cue) (*beep.Buffer, error) {
	if buffer, ok := player.cues[cue]; ok {
		return buffer, nil
	}
	buffer, err := decodeCue(cue)
	if err != nil {
		return nil, err
	}
	player.cues[cue] = buffer
	return buffer, nil
}

// decodeCue reads the embedded WAV for cue into memory at sampleRate.
func decodeCue(cue timer.Cue) (*beep.Buffer, error) {
	resource, err := resources.Sound(string(cue))
	if err != nil {
		return nil, err
	}
	streamer, format, err := wav.Decode(bytes.NewReader(resource.Content()))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource.Name(), err)
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, sampleRate, streamer)
	}
	format.SampleRate = sampleRate

	buffer := beep.NewBuffer(format)
	buffer.Append(source)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource.Name(), err)
	}
	return buffer, nil
}

// speakerOutput drives the process-wide beep speaker. The speaker can only
// be initialized once, so later sessions reuse the first configuration.
type speakerOutput struct{}

var (
	speakerOnce sync.Once
	speakerErr  error
)

func (speakerOutput) Init(rate beep.SampleRate, bufferSize int) error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(rate, bufferSize)
	})
	return speakerErr
}

func (speakerOutput) Play(streamer beep.Streamer) {
	speaker.Play(streamer)
}

func (speakerOutput) Clear() {
	speaker.Clear()
}
