// Package oto implements the chordium.ChordPlayer capability on top of the
// oto audio library, rendering chords as additive sine voicings.
package oto

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"
)

const (
	sampleRate   = 44100
	channelCount = 2

	attack  = 5 * time.Millisecond
	release = 60 * time.Millisecond
)

// Context wraps an oto audio context as a fire-and-forget chord player. It
// is safe to call before the audio device is ready: unready playback is
// logged and silently dropped, never an error to the caller.
type Context struct {
	ctx   *oto.Context
	ready chan struct{}
	log   *zap.Logger
}

// NewContext opens the audio device. The returned context can be used
// immediately; playback calls made before the device signals readiness are
// dropped.
func NewContext(log *zap.Logger) (*Context, error) {
	if log == nil {
		log = zap.NewNop()
	}
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	return &Context{ctx: ctx, ready: ready, log: log}, nil
}

// PlayNote plays a single frequency.
func (c *Context) PlayNote(frequency float64, duration time.Duration, gain float64) {
	c.PlayChord([]float64{frequency}, duration, gain)
}

// PlayChord renders the frequencies into one buffer and starts playing it.
// Fire-and-forget: the player is disposed of after the buffer has drained.
func (c *Context) PlayChord(frequencies []float64, duration time.Duration, gain float64) {
	select {
	case <-c.ready:
	default:
		c.log.Warn("audio device not ready, dropping chord")
		return
	}
	if len(frequencies) == 0 || duration <= 0 {
		return
	}
	buf := FloatBufferTo16BitLE(renderChord(frequencies, duration, gain))
	p := c.ctx.NewPlayer(bytes.NewReader(buf))
	p.Play()
	go func() {
		time.Sleep(duration + 100*time.Millisecond)
		p.Close()
	}()
}

// renderChord mixes equal-gain sine voices with a short linear attack and
// release, normalized by voice count so stacked extensions do not clip.
func renderChord(frequencies []float64, duration time.Duration, gain float64) []float32 {
	frames := int(float64(sampleRate) * duration.Seconds())
	attackFrames := int(float64(sampleRate) * attack.Seconds())
	releaseFrames := int(float64(sampleRate) * release.Seconds())
	if releaseFrames > frames {
		releaseFrames = frames
	}
	voiceGain := gain / float64(len(frequencies))
	buffer := make([]float32, frames*channelCount)
	for _, freq := range frequencies {
		step := 2 * math.Pi * freq / sampleRate
		for i := 0; i < frames; i++ {
			env := 1.0
			if i < attackFrames {
				env = float64(i) / float64(attackFrames)
			} else if left := frames - i; left < releaseFrames {
				env = float64(left) / float64(releaseFrames)
			}
			v := float32(math.Sin(step*float64(i)) * voiceGain * env)
			buffer[i*channelCount] += v
			buffer[i*channelCount+1] += v
		}
	}
	return buffer
}
