//go:build ebiten

package gui

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// sounds plays synthesised cue clips. A nil *sounds is silent.
type sounds struct {
	ctx   *audio.Context
	clips map[core.Cue][]byte
}

// newSounds prepares the cue clips. Failures are logged and yield nil so
// the game continues without sound.
func newSounds(cfg config.AudioConfig, logger *log.Logger) *sounds {
	if !cfg.Enabled {
		return nil
	}

	clips, err := synthCues(cfg.Volume)
	if err != nil {
		logger.Warn("audio disabled", "error", err)
		return nil
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	if ctx.SampleRate() != sampleRate {
		logger.Warn("audio disabled", "error", "sample rate mismatch", "rate", ctx.SampleRate())
		return nil
	}

	return &sounds{ctx: ctx, clips: clips}
}

func (s *sounds) play(c core.Cue) {
	if s == nil {
		return
	}
	clip, ok := s.clips[c]
	if !ok {
		return
	}
	s.ctx.NewPlayerFromBytes(clip).Play()
}
