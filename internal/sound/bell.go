package sound

import (
	"io"
	"sync"

	"intervaltimer/internal/core/timer"
)

// BellPlayer rings the terminal bell: once for pre-end cues, twice at phase
// ends and three times at the finish.
type BellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBellPlayer writes bells to out.
func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{out: out}
}

// Play writes the bells for cue.
func (player *BellPlayer) Play(cue timer.Cue) error {
	player.mu.Lock()
	defer player.mu.Unlock()

	if player.out == nil {
		return ErrReleased
	}
	_, err := io.WriteString(player.out, bells(cue))
	return err
}

// Release detaches the writer.
func (player *BellPlayer) Release() error {
	player.mu.Lock()
	defer player.mu.Unlock()
	player.out = nil
	return nil
}

func bells(cue timer.Cue) string {
	switch cue {
	case timer.CueFinish:
		return "\a\a\a"
	case timer.CueEndWork, timer.CueEndRest:
		return "\a\a"
	default:
		return "\a"
	}
}
