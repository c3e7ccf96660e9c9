package theory

import (
	"fmt"
	"sort"
	"strconv"
)

// ScaleDegreeLabel returns a display label ("1", "b3", "5", ...) for any of
// the twelve chromatic positions relative to the key and mode. Chromatic
// (non-scale) tones are labeled with the nearest scale degree and an
// accidental: flat of the degree a semitone above, or sharp of the degree a
// semitone below when no degree sits above.
func ScaleDegreeLabel(chromaticPosition int, key string, mode Mode) (string, error) {
	spec, ok := modes[mode]
	if !ok {
		return "", fmt.Errorf("unknown mode %q", mode)
	}
	keyIndex, err := ChromaticIndex(key)
	if err != nil {
		return "", err
	}
	rel := mod(chromaticPosition-keyIndex, 12)
	for degree, interval := range spec.intervals {
		if interval == rel {
			return strconv.Itoa(degree + 1), nil
		}
	}
	for degree, interval := range spec.intervals {
		if interval-rel == 1 {
			return "b" + strconv.Itoa(degree+1), nil
		}
	}
	for degree, interval := range spec.intervals {
		if rel-interval == 1 {
			return "#" + strconv.Itoa(degree+1), nil
		}
	}
	// unreachable for any seven-tone mode, but keep the function total
	return "?", nil
}

// ChordName derives a display name for a root and interval set, e.g. "Cmaj7",
// "Dsus4" or "G7". It reads the same interval sets the modifier engine
// computes, so names stay consistent with what is played. Priority: extension
// stacks, then seventh, then sus/quality, then additions.
func ChordName(root string, intervals []int) string {
	has := make(map[int]bool, len(intervals))
	for _, iv := range intervals {
		has[iv] = true
	}
	sorted := append([]int(nil), intervals...)
	sort.Ints(sorted)

	name := root
	third := ""
	switch {
	case has[4]:
		third = "major"
	case has[3]:
		third = "minor"
	}
	quality := ""
	switch {
	case third == "minor" && has[6] && !has[7]:
		quality = "dim"
	case third == "major" && has[8] && !has[7]:
		quality = "aug"
	case third == "minor":
		quality = "m"
	}
	name += quality

	seventh := ""
	switch {
	case has[11]:
		seventh = "maj7"
	case has[10]:
		seventh = "7"
	}
	switch {
	case seventh != "" && has[21]:
		name += extensionName(seventh, "13")
	case seventh != "" && has[17]:
		name += extensionName(seventh, "11")
	case seventh != "" && has[14]:
		name += extensionName(seventh, "9")
	case seventh != "":
		name += seventh
	}

	if third == "" {
		switch {
		case has[5]:
			name += "sus4"
		case has[2]:
			name += "sus2"
		}
	}
	if seventh == "" {
		if has[9] {
			name += "6"
		}
		if has[14] {
			name += "add9"
		}
	}
	if has[17] && seventh == "" {
		name += "add11"
	}
	if !has[7] && third != "" && quality != "dim" && quality != "aug" {
		name += "(no5)"
	}
	return name
}

// extensionName folds a seventh and an extension into one suffix: a dominant
// seventh plus 9 is just "9", a major seventh plus 9 is "maj9".
func extensionName(seventh, extension string) string {
	if seventh == "maj7" {
		return "maj" + extension
	}
	return extension
}
