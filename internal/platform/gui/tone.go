package gui

import (
	"encoding/binary"
	"errors"
	"math"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// sampleRate of the synthesised cues.
const sampleRate = 44100

// ErrInvalidTone is returned for tones that cannot be synthesised.
var ErrInvalidTone = errors.New("gui: invalid tone")

// tone is a sine sweep from Freq to EndFreq.
type tone struct {
	Freq    float64
	EndFreq float64
	Dur     time.Duration
}

var cueTones = map[core.Cue]tone{
	core.CueJump:  {Freq: 520, EndFreq: 780, Dur: 70 * time.Millisecond},
	core.CueScore: {Freq: 880, EndFreq: 1320, Dur: 120 * time.Millisecond},
	core.CueHit:   {Freq: 220, EndFreq: 110, Dur: 180 * time.Millisecond},
	core.CueDie:   {Freq: 330, EndFreq: 70, Dur: 450 * time.Millisecond},
	core.CueStart: {Freq: 440, EndFreq: 660, Dur: 150 * time.Millisecond},
}

// synthTone renders t as 16-bit little-endian stereo PCM with a linear
// fade-out so clips end without a click.
func synthTone(t tone, volume float64) ([]byte, error) {
	if t.Freq <= 0 || t.EndFreq <= 0 || t.Dur <= 0 || volume < 0 || volume > 1 {
		return nil, ErrInvalidTone
	}

	n := int(t.Dur.Seconds() * sampleRate)
	buf := make([]byte, n*4)

	phase := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		freq := t.Freq + (t.EndFreq-t.Freq)*progress
		amp := volume * (1 - progress)

		v := int16(math.Sin(phase) * amp * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))

		phase += 2 * math.Pi * freq / sampleRate
	}

	return buf, nil
}

// synthCues renders every cue tone.
func synthCues(volume float64) (map[core.Cue][]byte, error) {
	clips := make(map[core.Cue][]byte, len(cueTones))
	for cue, t := range cueTones {
		pcm, err := synthTone(t, volume)
		if err != nil {
			return nil, err
		}
		clips[cue] = pcm
	}
	return clips, nil
}
