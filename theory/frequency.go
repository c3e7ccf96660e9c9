package theory

import (
	"fmt"
	"math"
)

// Equal temperament reference: A at octave 4 is 440 Hz. referenceStep is the
// absolute chromatic step of that pitch (octave*12 + pitch class of A).
const (
	referencePitch = 440.0
	referenceStep  = 4*12 + 9
)

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var noteIndices = map[string]int{
	"C": 0, "B#": 0,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"F": 5, "E#": 5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": 11,
}

// NoteName returns the canonical (sharp-spelled) name of a pitch class 0-11.
func NoteName(pitchClass int) string {
	return noteNames[mod(pitchClass, 12)]
}

// ChromaticIndex returns the pitch class 0-11 of a note name. Both sharp and
// flat spellings are accepted.
func ChromaticIndex(note string) (int, error) {
	if idx, ok := noteIndices[note]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("unknown note name %q", note)
}

// StepFrequency returns the frequency of an absolute chromatic step count in
// 12-tone equal temperament.
func StepFrequency(step int) float64 {
	return referencePitch * math.Pow(2, float64(step-referenceStep)/12)
}

// ChordFrequencies converts a root note and interval set to frequencies at the
// given base octave. Intervals above 11 carry into the next octave. The result
// follows the order of the intervals given.
func ChordFrequencies(root string, intervals []int, baseOctave int) ([]float64, error) {
	rootIndex, err := ChromaticIndex(root)
	if err != nil {
		return nil, err
	}
	freqs := make([]float64, len(intervals))
	for i, interval := range intervals {
		semitoneOffset := rootIndex + interval
		octaveCarry := semitoneOffset / 12
		pitchClass := semitoneOffset % 12
		freqs[i] = StepFrequency((baseOctave+octaveCarry)*12 + pitchClass)
	}
	return freqs, nil
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}
