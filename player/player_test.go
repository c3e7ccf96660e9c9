package player

import (
	"testing"
	"time"

	"github.com/chordium/chordium"
	"github.com/stretchr/testify/assert"
)

type recordedChord struct {
	freqs    []float64
	duration time.Duration
}

// recordingPlayer captures every chord the scheduler triggers.
type recordingPlayer struct {
	chords []recordedChord
}

func (r *recordingPlayer) PlayNote(frequency float64, duration time.Duration, gain float64) {
	r.PlayChord([]float64{frequency}, duration, gain)
}

func (r *recordingPlayer) PlayChord(frequencies []float64, duration time.Duration, gain float64) {
	r.chords = append(r.chords, recordedChord{freqs: frequencies, duration: duration})
}

// manualTicker is a TickerFactory whose ticks are driven by the test.
type manualTicker struct {
	tick      func()
	interval  time.Duration
	cancelled int
	armed     int
}

func (m *manualTicker) factory(interval time.Duration, tick func()) func() {
	m.tick = tick
	m.interval = interval
	m.armed++
	return func() { m.cancelled++ }
}

func testProgression() chordium.Progression {
	return chordium.Progression{
		Key:  "C",
		Mode: "major",
		BPM:  120,
		Entries: []chordium.ProgressionEntry{
			{ID: "a", Root: "C", Intervals: []int{0, 4, 7}, Numeral: "I", Position: 0, Duration: 4},
			{ID: "b", Root: "G", Intervals: []int{0, 4, 7}, Numeral: "V", Position: 4, Duration: 4},
		},
	}
}

func newTestScheduler(opts ...Option) (*Scheduler, *Broker, *recordingPlayer, *manualTicker) {
	broker := NewBroker()
	play := &recordingPlayer{}
	ticker := &manualTicker{}
	s := NewScheduler(broker, play, append([]Option{WithTickerFactory(ticker.factory)}, opts...)...)
	return s, broker, play, ticker
}

// drain empties the broker channel, returning the selections and the number
// of ended signals seen.
func drain(broker *Broker) (selections []ChordSelection, ended int) {
	for {
		select {
		case msg := <-broker.ToUI:
			if msg.PlaybackEnded {
				ended++
			}
			if sel, ok := msg.Data.(ChordSelection); ok {
				selections = append(selections, sel)
			}
		default:
			return selections, ended
		}
	}
}

func TestPlayTriggersFirstEntryImmediately(t *testing.T) {
	s, broker, play, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	assert.True(t, s.Playing())
	assert.Equal(t, 250*time.Millisecond, ticker.interval)

	assert.Len(t, play.chords, 1)
	assert.Len(t, play.chords[0].freqs, 3)
	assert.Equal(t, time.Second, play.chords[0].duration) // 4 eighths at 120 BPM

	selections, ended := drain(broker)
	assert.Equal(t, []ChordSelection{{Root: "C", Intervals: []int{0, 4, 7}, Numeral: "I"}}, selections)
	assert.Zero(t, ended)
}

func TestPlaybackAdvancesAndEndsExactlyOnce(t *testing.T) {
	s, broker, play, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))

	for i := 0; i < 3; i++ {
		ticker.tick()
	}
	assert.Len(t, play.chords, 1, "no retrigger within an entry")
	assert.Equal(t, 0, s.Index())

	ticker.tick() // entry boundary
	assert.Len(t, play.chords, 2)
	assert.Equal(t, 1, s.Index())

	for i := 0; i < 4; i++ {
		ticker.tick()
	}
	assert.False(t, s.Playing())
	assert.Equal(t, 1, ticker.cancelled)

	selections, ended := drain(broker)
	assert.Equal(t, 1, ended, "end is signalled exactly once")
	assert.Equal(t, "I", selections[0].Numeral)
	assert.Equal(t, "V", selections[1].Numeral)
	assert.Len(t, selections, 2)

	// a tick queued before the cancellation took effect is stale
	ticker.tick()
	_, ended = drain(broker)
	assert.Zero(t, ended)
	assert.Len(t, play.chords, 2)
}

func TestLoopWrapsToFirstEntry(t *testing.T) {
	s, _, play, ticker := newTestScheduler()
	p := testProgression()
	p.Loop = true
	assert.NoError(t, s.Play(p))

	for i := 0; i < 8; i++ {
		ticker.tick()
	}
	assert.True(t, s.Playing())
	assert.Equal(t, 0, s.Index())
	assert.Len(t, play.chords, 3, "first entry is retriggered on wrap")
	assert.Zero(t, ticker.cancelled)
}

func TestStop(t *testing.T) {
	s, broker, play, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	drain(broker)

	s.Stop()
	assert.False(t, s.Playing())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 1, ticker.cancelled)
	s.Stop()
	assert.Equal(t, 1, ticker.cancelled, "stop is idempotent")

	ticker.tick() // stale
	assert.Len(t, play.chords, 1)
	selections, ended := drain(broker)
	assert.Empty(t, selections)
	assert.Zero(t, ended)
}

func TestPlayWhilePlayingCancelsOldStream(t *testing.T) {
	s, _, play, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	staleTick := ticker.tick

	assert.NoError(t, s.Play(testProgression()))
	assert.Equal(t, 1, ticker.cancelled)
	assert.Equal(t, 2, ticker.armed)
	assert.Len(t, play.chords, 2)

	staleTick()
	assert.Equal(t, 0, s.Index(), "tick of the replaced stream is discarded")
}

func TestPlayEmptyProgressionIsNoop(t *testing.T) {
	s, broker, play, ticker := newTestScheduler()
	assert.NoError(t, s.Play(chordium.Progression{}))
	assert.False(t, s.Playing())
	assert.Zero(t, ticker.armed)
	assert.Empty(t, play.chords)
	selections, ended := drain(broker)
	assert.Empty(t, selections)
	assert.Zero(t, ended)
}

func TestPlayInvalidProgression(t *testing.T) {
	s, _, _, _ := newTestScheduler()
	p := testProgression()
	p.Entries[0].Duration = 0
	assert.Error(t, s.Play(p))
	assert.False(t, s.Playing())
}

func TestPlaySortsEntriesByPosition(t *testing.T) {
	s, broker, _, ticker := newTestScheduler()
	p := testProgression()
	p.Entries[0], p.Entries[1] = p.Entries[1], p.Entries[0]
	assert.NoError(t, s.Play(p))
	for i := 0; i < 4; i++ {
		ticker.tick()
	}
	selections, _ := drain(broker)
	assert.Equal(t, "I", selections[0].Numeral)
	assert.Equal(t, "V", selections[1].Numeral)
}

func TestTempoFallback(t *testing.T) {
	s, _, _, ticker := newTestScheduler()
	p := testProgression()
	p.BPM = 0
	assert.NoError(t, s.Play(p))
	assert.Equal(t, chordium.SecondsPerEighth(chordium.DefaultBPM), ticker.interval)
}

func TestUnvoiceableEntryIsSkipped(t *testing.T) {
	s, broker, play, ticker := newTestScheduler()
	p := testProgression()
	p.Entries[0].Root = "X"
	assert.NoError(t, s.Play(p))
	assert.Empty(t, play.chords)
	assert.True(t, s.Playing(), "playhead advances past an unvoiceable entry")

	for i := 0; i < 4; i++ {
		ticker.tick()
	}
	assert.Len(t, play.chords, 1)
	selections, _ := drain(broker)
	assert.Equal(t, []ChordSelection{{Root: "G", Intervals: []int{0, 4, 7}, Numeral: "V"}}, selections)
}

func TestPanickingPlayerDoesNotStopPlayback(t *testing.T) {
	broker := NewBroker()
	ticker := &manualTicker{}
	s := NewScheduler(broker, panickingPlayer{}, WithTickerFactory(ticker.factory))
	assert.NoError(t, s.Play(testProgression()))
	assert.True(t, s.Playing())
	for i := 0; i < 4; i++ {
		ticker.tick()
	}
	assert.Equal(t, 1, s.Index())
}

type panickingPlayer struct{}

func (panickingPlayer) PlayNote(frequency float64, duration time.Duration, gain float64) {
	panic("no device")
}

func (panickingPlayer) PlayChord(frequencies []float64, duration time.Duration, gain float64) {
	panic("no device")
}

func TestRemoveEntry(t *testing.T) {
	s, _, _, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	assert.True(t, s.RemoveEntry("b"))
	assert.False(t, s.Playing())
	assert.Equal(t, 1, ticker.cancelled)
	assert.False(t, s.RemoveEntry("b"))
	assert.False(t, s.RemoveEntry("nope"))
}

func TestClear(t *testing.T) {
	s, _, _, _ := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	s.Clear()
	assert.False(t, s.Playing())
	assert.False(t, s.RemoveEntry("a"))
}

func TestTimeUpdates(t *testing.T) {
	s, broker, _, ticker := newTestScheduler()
	assert.NoError(t, s.Play(testProgression()))
	ticker.tick()
	ticker.tick()

	var positions []int
	for {
		select {
		case msg := <-broker.ToUI:
			if msg.HasTime {
				positions = append(positions, msg.EighthPosition)
			}
		default:
			assert.Equal(t, []int{0, 1, 2}, positions)
			return
		}
	}
}

func TestTrySend(t *testing.T) {
	c := make(chan int, 1)
	assert.True(t, TrySend(c, 1))
	assert.False(t, TrySend(c, 2), "full channel drops instead of blocking")
	assert.Equal(t, 1, <-c)
}
