package theory

import (
	"fmt"

	"github.com/chordium/chordium"
)

type (
	// Mood groups borrowed chords by their emotional effect rather than by
	// harmonic function.
	Mood int

	// Borrowed is a modal-interchange chord: a chord drawn from a parallel
	// mode, tagged with the mood it lends to the key.
	Borrowed struct {
		chordium.Chord
		Mood Mood
	}

	borrowedSpec struct {
		numeral    string
		rootOffset int // semitones above the tonic
		quality    Quality
		mood       Mood
	}
)

const (
	MoodDarkening Mood = iota
	MoodBrightening
	MoodResolving
)

func (m Mood) String() string {
	switch m {
	case MoodDarkening:
		return "darkening"
	case MoodBrightening:
		return "brightening"
	case MoodResolving:
		return "resolving"
	}
	return "unknown"
}

// borrowedTable is a fixed per-mode table of modal-interchange chords. The
// entries are looked up directly instead of being derived from the parallel
// mode, because they intentionally deviate from the diatonic set.
var borrowedTable = map[Mode][]borrowedSpec{
	Major: {
		{"iv", 5, QualityMinor, MoodDarkening},
		{"bVI", 8, QualityMajor, MoodDarkening},
		{"ii°", 2, QualityDiminished, MoodDarkening},
		{"bIII", 3, QualityMajor, MoodBrightening},
		{"bVII", 10, QualityMajor, MoodBrightening},
		{"bII", 1, QualityMajor, MoodResolving},
	},
	Minor: {
		{"bII", 1, QualityMajor, MoodDarkening},
		{"I", 0, QualityMajor, MoodBrightening},
		{"IV", 5, QualityMajor, MoodBrightening},
		{"V", 7, QualityMajor, MoodResolving},
		{"vii°", 11, QualityDiminished, MoodResolving},
	},
	Dorian: {
		{"bVI", 8, QualityMajor, MoodDarkening},
		{"I", 0, QualityMajor, MoodBrightening},
		{"V", 7, QualityMajor, MoodResolving},
	},
	Phrygian: {
		{"I", 0, QualityMajor, MoodBrightening},
		{"IV", 5, QualityMajor, MoodBrightening},
		{"V", 7, QualityMajor, MoodResolving},
	},
	Lydian: {
		{"IV", 5, QualityMajor, MoodDarkening},
		{"iv", 5, QualityMinor, MoodDarkening},
		{"bVII", 10, QualityMajor, MoodDarkening},
	},
	Mixolydian: {
		{"iv", 5, QualityMinor, MoodDarkening},
		{"bVI", 8, QualityMajor, MoodDarkening},
		{"V", 7, QualityMajor, MoodResolving},
		{"vii°", 11, QualityDiminished, MoodResolving},
	},
	Locrian: {
		{"i", 0, QualityMinor, MoodBrightening},
		{"I", 0, QualityMajor, MoodBrightening},
		{"V", 7, QualityMajor, MoodResolving},
	},
}

// BorrowedChords returns the modal-interchange chords of the key and mode, in
// table order. All borrowed chords have FunctionBorrowed.
func BorrowedChords(key string, mode Mode) ([]Borrowed, error) {
	specs, ok := borrowedTable[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	keyIndex, err := ChromaticIndex(key)
	if err != nil {
		return nil, err
	}
	chords := make([]Borrowed, len(specs))
	for i, s := range specs {
		chords[i] = Borrowed{
			Chord: chordium.Chord{
				Root:      NoteName((keyIndex + s.rootOffset) % 12),
				Intervals: append([]int(nil), triads[s.quality]...),
				Numeral:   s.numeral,
				Function:  chordium.FunctionBorrowed,
			},
			Mood: s.mood,
		}
	}
	return chords, nil
}
