package midi

import "github.com/chordium/chordium/gesture"

type (
	// PadRouter routes controller note events. Notes mapped to a modifier
	// label are forwarded to the gesture classifier as pointer events, so
	// releasing a pad before the long-press delay taps the modifier and
	// holding it locks it. Unmapped notes invoke the chord callback.
	PadRouter struct {
		pads       map[uint8]string
		classifier *gesture.Classifier
		chord      func(note uint8, on bool)
	}
)

// NewPadRouter creates a router. chord may be nil when unmapped notes should
// be ignored.
func NewPadRouter(pads map[uint8]string, classifier *gesture.Classifier, chord func(note uint8, on bool)) *PadRouter {
	return &PadRouter{pads: pads, classifier: classifier, chord: chord}
}

// Route dispatches one controller event. The note number doubles as the
// pointer id, which gives every pad its own tap/long-press state machine.
func (r *PadRouter) Route(e Event) {
	if label, ok := r.pads[e.Note]; ok {
		if e.On {
			r.classifier.PointerDown(gesture.PointerID(e.Note), label)
		} else {
			r.classifier.PointerUp(gesture.PointerID(e.Note))
		}
		return
	}
	if r.chord != nil {
		r.chord(e.Note, e.On)
	}
}
