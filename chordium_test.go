package chordium

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validProgression() Progression {
	return Progression{
		Key: "C",
		BPM: 120,
		Entries: []ProgressionEntry{
			{ID: "a", Root: "C", Intervals: []int{0, 4, 7}, Position: 0, Duration: 4},
			{ID: "b", Root: "G", Intervals: []int{0, 4, 7}, Position: 4, Duration: 4},
		},
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, validProgression().Validate())
	assert.NoError(t, Progression{}.Validate(), "empty progression is valid")

	tests := []struct {
		name   string
		mutate func(*Progression)
	}{
		{"zero duration", func(p *Progression) { p.Entries[0].Duration = 0 }},
		{"negative duration", func(p *Progression) { p.Entries[1].Duration = -1 }},
		{"negative position", func(p *Progression) { p.Entries[0].Position = -1 }},
		{"no intervals", func(p *Progression) { p.Entries[0].Intervals = nil }},
		{"interval out of range", func(p *Progression) { p.Entries[0].Intervals = []int{0, 24} }},
		{"negative interval", func(p *Progression) { p.Entries[0].Intervals = []int{-1, 4, 7} }},
		{"duplicate position", func(p *Progression) { p.Entries[1].Position = 0 }},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := validProgression()
			test.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestSorted(t *testing.T) {
	p := validProgression()
	p.Entries[0], p.Entries[1] = p.Entries[1], p.Entries[0]
	sorted := p.Sorted()
	assert.Equal(t, "a", sorted.Entries[0].ID)
	assert.Equal(t, "b", sorted.Entries[1].ID)
	assert.Equal(t, "b", p.Entries[0].ID, "the original is untouched")
}

func TestCopyIsDeep(t *testing.T) {
	p := validProgression()
	c := p.Copy()
	c.Entries[0].Intervals[0] = 99
	c.Entries[1].Root = "A"
	assert.Equal(t, 0, p.Entries[0].Intervals[0])
	assert.Equal(t, "G", p.Entries[1].Root)
}

func TestNewEntry(t *testing.T) {
	chord := Chord{Root: "D", Intervals: []int{0, 3, 7}, Numeral: "ii"}
	e1 := NewEntry(chord, 0, 4)
	e2 := NewEntry(chord, 4, 4)
	assert.NotEmpty(t, e1.ID)
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.Equal(t, "D", e1.Root)
	e1.Intervals[0] = 99
	assert.Equal(t, 0, chord.Intervals[0], "entry does not alias the chord")
}

func TestClampBPM(t *testing.T) {
	assert.Equal(t, 90, Progression{BPM: 90}.ClampBPM())
	assert.Equal(t, DefaultBPM, Progression{}.ClampBPM())
	assert.Equal(t, DefaultBPM, Progression{BPM: -10}.ClampBPM())
}

func TestSecondsPerEighth(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, SecondsPerEighth(120))
	assert.Equal(t, 500*time.Millisecond, SecondsPerEighth(60))
	assert.Equal(t, 250*time.Millisecond, SecondsPerEighth(0), "non-positive tempo falls back")
}

func TestFunctionString(t *testing.T) {
	assert.Equal(t, "tonic", FunctionTonic.String())
	assert.Equal(t, "borrowed", FunctionBorrowed.String())
	assert.Equal(t, "unknown", Function(99).String())
}
