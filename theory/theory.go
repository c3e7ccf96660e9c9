// Package theory derives the diatonic and borrowed chords of a key and mode,
// labels them with roman numerals and harmonic functions, and converts
// interval sets to frequencies.
package theory

import (
	"fmt"
	"strings"

	"github.com/chordium/chordium"
)

type (
	// Mode is one of the seven diatonic modes.
	Mode string

	// Quality is the triad quality of a scale degree.
	Quality int

	// modeSpec is the fixed table defining a mode: the seven scale-degree
	// intervals relative to the tonic, and the triad quality built on each
	// degree.
	modeSpec struct {
		intervals [7]int
		qualities [7]Quality
	}
)

const (
	Major      Mode = "major"
	Dorian     Mode = "dorian"
	Phrygian   Mode = "phrygian"
	Lydian     Mode = "lydian"
	Mixolydian Mode = "mixolydian"
	Minor      Mode = "minor"
	Locrian    Mode = "locrian"
)

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
)

var modes = map[Mode]modeSpec{
	Major: {
		intervals: [7]int{0, 2, 4, 5, 7, 9, 11},
		qualities: [7]Quality{QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished},
	},
	Dorian: {
		intervals: [7]int{0, 2, 3, 5, 7, 9, 10},
		qualities: [7]Quality{QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished, QualityMajor},
	},
	Phrygian: {
		intervals: [7]int{0, 1, 3, 5, 7, 8, 10},
		qualities: [7]Quality{QualityMinor, QualityMajor, QualityMajor, QualityMinor, QualityDiminished, QualityMajor, QualityMinor},
	},
	Lydian: {
		intervals: [7]int{0, 2, 4, 6, 7, 9, 11},
		qualities: [7]Quality{QualityMajor, QualityMajor, QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMinor},
	},
	Mixolydian: {
		intervals: [7]int{0, 2, 4, 5, 7, 9, 10},
		qualities: [7]Quality{QualityMajor, QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMinor, QualityMajor},
	},
	Minor: {
		intervals: [7]int{0, 2, 3, 5, 7, 8, 10},
		qualities: [7]Quality{QualityMinor, QualityDiminished, QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor},
	},
	Locrian: {
		intervals: [7]int{0, 1, 3, 5, 6, 8, 10},
		qualities: [7]Quality{QualityDiminished, QualityMajor, QualityMinor, QualityMinor, QualityMajor, QualityMajor, QualityMinor},
	},
}

// triads maps a quality to the intervals of the triad built with it.
var triads = map[Quality][]int{
	QualityMajor:      {0, 4, 7},
	QualityMinor:      {0, 3, 7},
	QualityDiminished: {0, 3, 6},
	QualityAugmented:  {0, 4, 8},
}

var degreeNumerals = [7]string{"i", "ii", "iii", "iv", "v", "vi", "vii"}

// degreeFunctions is fixed by scale position, independent of mode: tonic on
// degrees 1 and 6, subdominant on 2 and 4, dominant on 5 and 7, mediant on 3.
var degreeFunctions = [7]chordium.Function{
	chordium.FunctionTonic,
	chordium.FunctionSubdominant,
	chordium.FunctionMediant,
	chordium.FunctionSubdominant,
	chordium.FunctionDominant,
	chordium.FunctionTonic,
	chordium.FunctionDominant,
}

// ParseMode returns the Mode for a mode name. "ionian" and "aeolian" are
// accepted as aliases for major and minor.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(strings.ToLower(name)); m {
	case Major, Dorian, Phrygian, Lydian, Mixolydian, Minor, Locrian:
		return m, nil
	case "ionian":
		return Major, nil
	case "aeolian":
		return Minor, nil
	}
	return "", fmt.Errorf("unknown mode %q", name)
}

// Numeral returns the roman numeral for a scale degree (0-6) and quality:
// uppercase for major and augmented, lowercase for minor and diminished, with
// ° appended for diminished and + for augmented triads.
func Numeral(degree int, quality Quality) string {
	n := degreeNumerals[degree]
	switch quality {
	case QualityMajor:
		return strings.ToUpper(n)
	case QualityAugmented:
		return strings.ToUpper(n) + "+"
	case QualityDiminished:
		return n + "°"
	}
	return n
}

// ScaleChords returns the seven diatonic chords of the key and mode in scale
// degree order. The mode table is transposed by the key's chromatic offset;
// intervals within each chord stay relative to that chord's root.
func ScaleChords(key string, mode Mode) ([]chordium.Chord, error) {
	spec, ok := modes[mode]
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	keyIndex, err := ChromaticIndex(key)
	if err != nil {
		return nil, err
	}
	chords := make([]chordium.Chord, 7)
	for degree := 0; degree < 7; degree++ {
		quality := spec.qualities[degree]
		chords[degree] = chordium.Chord{
			Root:      NoteName((keyIndex + spec.intervals[degree]) % 12),
			Intervals: append([]int(nil), triads[quality]...),
			Numeral:   Numeral(degree, quality),
			Function:  degreeFunctions[degree],
		}
	}
	return chords, nil
}

// ScaleIntervals returns the seven scale-degree intervals of a mode.
func ScaleIntervals(mode Mode) ([7]int, error) {
	spec, ok := modes[mode]
	if !ok {
		return [7]int{}, fmt.Errorf("unknown mode %q", mode)
	}
	return spec.intervals, nil
}
