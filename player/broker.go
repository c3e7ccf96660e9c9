// Package player schedules a chord progression for timed playback: it
// advances a playhead in eighth-note ticks and triggers an injected audio
// capability at the correct offsets, without cumulative drift.
package player

type (
	// Broker carries notifications from the scheduler to the UI. It is
	// one-way, one channel per recipient; all sends from the scheduler are
	// non-blocking so a stalled consumer can never stall playback.
	Broker struct {
		ToUI chan MsgToUI
	}

	// MsgToUI is a message to the UI. Time updates are not boxed to avoid
	// allocations on every tick; infrequent payloads like ChordSelection
	// travel in Data.
	MsgToUI struct {
		HasTime        bool
		Index          int // current entry index
		EighthPosition int // eighth-note units from progression start
		PlaybackEnded  bool

		Data any
	}

	// ChordSelection is emitted whenever a chord is played or recomputed,
	// for keyboard/UI highlighting.
	ChordSelection struct {
		Root      string
		Intervals []int
		Numeral   string
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToUI: make(chan MsgToUI, 1024),
	}
}

// TrySend sends a value to a channel if it is not full. It is guaranteed to
// be non-blocking; returns false if the value was dropped.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}
