package chordium

import "time"

type (
	// ChordPlayer is the injected audio playback capability. Implementations
	// render the given frequencies for the given duration at the given gain
	// (0..1). Both calls are fire-and-forget: they must not block and must be
	// safe to call even before the audio backend is fully initialized, in
	// which case the call is a no-op.
	ChordPlayer interface {
		PlayNote(frequency float64, duration time.Duration, gain float64)
		PlayChord(frequencies []float64, duration time.Duration, gain float64)
	}

	// NopPlayer is a ChordPlayer that does nothing. It is the default player
	// of the scheduler, so the engine keeps working without an audio device.
	NopPlayer struct{}
)

func (NopPlayer) PlayNote(frequency float64, duration time.Duration, gain float64)      {}
func (NopPlayer) PlayChord(frequencies []float64, duration time.Duration, gain float64) {}

// SecondsPerEighth returns the length of one eighth-note unit at the given
// tempo. An eighth note is half a beat, so at 120 BPM one unit is 250ms.
func SecondsPerEighth(bpm int) time.Duration {
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	return time.Duration(float64(time.Minute) / float64(bpm) / 2)
}
