package chordium

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

type (
	// Chord is a chord definition produced by the theory engine: a root pitch
	// name, the intervals of the voicing in semitones from the root, the roman
	// numeral of the chord within its key, and its harmonic function.
	Chord struct {
		Root      string
		Intervals []int `yaml:",flow"`
		Numeral   string
		Function  Function
	}

	// Function is the harmonic function of a chord within a key. The function
	// of a diatonic chord depends only on its scale degree, not on the mode;
	// borrowed chords are always FunctionBorrowed.
	Function int

	// ProgressionEntry is one chord scheduled in a progression. Position and
	// Duration are measured in eighth-note units from the start of the
	// progression.
	ProgressionEntry struct {
		ID        string `yaml:",omitempty"`
		Root      string
		Intervals []int `yaml:",flow"`
		Numeral   string
		Position  int
		Duration  int
	}

	// Progression is an ordered sequence of chords in a key, plus the tempo
	// and loop flag used when scheduling it for playback. This is also the
	// yaml document format of progression files.
	Progression struct {
		Key     string
		Mode    string
		BPM     int
		Loop    bool `yaml:",omitempty"`
		Entries []ProgressionEntry
	}
)

const (
	FunctionTonic Function = iota
	FunctionSubdominant
	FunctionDominant
	FunctionMediant
	FunctionBorrowed
)

// DefaultBPM is the tempo used when a progression has no valid tempo of its
// own.
const DefaultBPM = 120

func (f Function) String() string {
	switch f {
	case FunctionTonic:
		return "tonic"
	case FunctionSubdominant:
		return "subdominant"
	case FunctionDominant:
		return "dominant"
	case FunctionMediant:
		return "mediant"
	case FunctionBorrowed:
		return "borrowed"
	}
	return "unknown"
}

// Copy makes a deep copy of a Chord.
func (c Chord) Copy() Chord {
	intervals := make([]int, len(c.Intervals))
	copy(intervals, c.Intervals)
	return Chord{Root: c.Root, Intervals: intervals, Numeral: c.Numeral, Function: c.Function}
}

// Copy makes a deep copy of a ProgressionEntry.
func (e ProgressionEntry) Copy() ProgressionEntry {
	intervals := make([]int, len(e.Intervals))
	copy(intervals, e.Intervals)
	ret := e
	ret.Intervals = intervals
	return ret
}

// Copy makes a deep copy of a Progression.
func (p Progression) Copy() Progression {
	entries := make([]ProgressionEntry, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = e.Copy()
	}
	ret := p
	ret.Entries = entries
	return ret
}

// NewEntry creates a ProgressionEntry with a fresh unique id.
func NewEntry(chord Chord, position, duration int) ProgressionEntry {
	return ProgressionEntry{
		ID:        uuid.NewString(),
		Root:      chord.Root,
		Intervals: append([]int(nil), chord.Intervals...),
		Numeral:   chord.Numeral,
		Position:  position,
		Duration:  duration,
	}
}

// Validate checks that the progression can be scheduled: every entry has a
// positive duration and a non-negative position, and no two entries share a
// position, so that ordering by position is a total order. A non-positive BPM
// is not an error; the scheduler clamps it to DefaultBPM.
func (p Progression) Validate() error {
	seen := make(map[int]bool, len(p.Entries))
	for i, e := range p.Entries {
		if e.Duration <= 0 {
			return fmt.Errorf("entry %d: duration should be > 0, got %d", i, e.Duration)
		}
		if e.Position < 0 {
			return fmt.Errorf("entry %d: position should be >= 0, got %d", i, e.Position)
		}
		if len(e.Intervals) == 0 {
			return fmt.Errorf("entry %d: no intervals", i)
		}
		for _, iv := range e.Intervals {
			if iv < 0 || iv > 23 {
				return fmt.Errorf("entry %d: interval %d out of range 0-23", i, iv)
			}
		}
		if seen[e.Position] {
			return errors.New("two entries share the same position")
		}
		seen[e.Position] = true
	}
	return nil
}

// Sorted returns a copy of the progression with the entries sorted by
// position.
func (p Progression) Sorted() Progression {
	ret := p.Copy()
	sort.Slice(ret.Entries, func(i, j int) bool {
		return ret.Entries[i].Position < ret.Entries[j].Position
	})
	return ret
}

// ClampBPM returns the tempo of the progression, falling back to DefaultBPM
// when the stored tempo is not usable.
func (p Progression) ClampBPM() int {
	if p.BPM <= 0 {
		return DefaultBPM
	}
	return p.BPM
}
