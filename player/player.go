package player

import (
	"sync"
	"time"

	"github.com/chordium/chordium"
	"github.com/chordium/chordium/theory"
	"go.uber.org/zap"
)

type (
	// Scheduler owns the playhead of one progression. It advances in whole
	// eighth-note units: elapsed time is the count of ticks received, never a
	// re-measured wall-clock delta, so rounding can not compound over long
	// progressions. At most one tick stream exists at a time; starting
	// playback while playing cancels the previous stream first, and a stale
	// tick from a cancelled stream is discarded by its generation number.
	Scheduler struct {
		mu         sync.Mutex
		broker     *Broker
		player     chordium.ChordPlayer
		log        *zap.Logger
		newTicker  TickerFactory
		baseOctave int
		gain       float64

		playing  bool
		entries  []chordium.ProgressionEntry
		bpm      int
		loop     bool
		index    int
		elapsed  int // ticks within the current entry
		position int // ticks from progression start
		stopTick func()
		gen      int
	}

	// TickerFactory arms a recurring tick and returns a function cancelling
	// it. After the cancel function returns, no further tick call may be
	// made. Tests inject manual tickers; the default is driftFreeTicker.
	TickerFactory func(interval time.Duration, tick func()) (cancel func())

	// Option configures a Scheduler.
	Option func(*Scheduler)
)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// WithTickerFactory overrides how the recurring tick is created.
func WithTickerFactory(f TickerFactory) Option {
	return func(s *Scheduler) { s.newTicker = f }
}

// WithBaseOctave sets the octave chords are voiced at. The default is 4.
func WithBaseOctave(octave int) Option {
	return func(s *Scheduler) { s.baseOctave = octave }
}

// WithGain sets the playback gain 0..1. The default is 0.5.
func WithGain(gain float64) Option {
	return func(s *Scheduler) { s.gain = gain }
}

// NewScheduler creates a scheduler sending notifications to broker and audio
// to play. A nil play falls back to the silent chordium.NopPlayer.
func NewScheduler(broker *Broker, play chordium.ChordPlayer, opts ...Option) *Scheduler {
	s := &Scheduler{
		broker:     broker,
		player:     play,
		log:        zap.NewNop(),
		newTicker:  driftFreeTicker,
		baseOctave: 4,
		gain:       0.5,
	}
	if s.player == nil {
		s.player = chordium.NopPlayer{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// driftFreeTicker ticks at absolute target timestamps computed from the
// start time, so a late tick does not push all following ticks later.
func driftFreeTicker(interval time.Duration, tick func()) func() {
	done := make(chan struct{})
	go func() {
		start := time.Now()
		for n := 1; ; n++ {
			t := time.NewTimer(time.Until(start.Add(time.Duration(n) * interval)))
			select {
			case <-done:
				t.Stop()
				return
			case <-t.C:
				tick()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Play starts playback of the progression from the beginning. An empty
// progression is a no-op. A non-positive tempo falls back to
// chordium.DefaultBPM. If the scheduler is already playing, the previous tick
// stream is cancelled first; there are never two concurrent streams.
func (s *Scheduler) Play(progression chordium.Progression) error {
	if err := progression.Validate(); err != nil {
		return err
	}
	sorted := progression.Sorted()
	if len(sorted.Entries) == 0 {
		return nil
	}
	s.mu.Lock()
	cancel := s.invalidateLocked()
	s.entries = sorted.Entries
	s.bpm = sorted.ClampBPM()
	s.loop = sorted.Loop
	s.playing = true
	s.index = 0
	s.elapsed = 0
	s.position = 0
	gen := s.gen
	s.triggerLocked(s.entries[0])
	s.sendTimeLocked()
	s.stopTick = s.newTicker(chordium.SecondsPerEighth(s.bpm), func() { s.tick(gen) })
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

// tick advances the playhead by one eighth-note unit. Ticks from a cancelled
// stream carry a stale generation and are ignored.
func (s *Scheduler) tick(gen int) {
	s.mu.Lock()
	if !s.playing || gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	s.position++
	if s.elapsed < s.entries[s.index].Duration {
		s.sendTimeLocked()
		s.mu.Unlock()
		return
	}
	s.elapsed = 0
	s.index++
	if s.index < len(s.entries) {
		s.triggerLocked(s.entries[s.index])
		s.sendTimeLocked()
		s.mu.Unlock()
		return
	}
	if s.loop {
		s.index = 0
		s.position = 0
		s.triggerLocked(s.entries[0])
		s.sendTimeLocked()
		s.mu.Unlock()
		return
	}
	// progression end without loop: reset the playhead and signal the end
	// exactly once
	cancel := s.invalidateLocked()
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	TrySend(s.broker.ToUI, MsgToUI{PlaybackEnded: true})
}

// Stop cancels the pending tick and resets the playhead to the start. No
// tick fires after Stop returns, even one already queued. Idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.invalidateLocked()
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// RemoveEntry stops playback and removes the entry with the given id from
// the scheduled progression, so no stale tick can reference it.
func (s *Scheduler) RemoveEntry(id string) bool {
	s.Stop()
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Clear stops playback and drops the scheduled progression.
func (s *Scheduler) Clear() {
	s.Stop()
	s.mu.Lock()
	s.entries = nil
	s.mu.Unlock()
}

// Playing reports whether the playhead is running.
func (s *Scheduler) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Index returns the current entry index of the playhead.
func (s *Scheduler) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// invalidateLocked resets the playhead to idle and bumps the generation so
// that any queued tick of the old stream is discarded. It returns the cancel
// function of the old stream, to be called outside the lock.
func (s *Scheduler) invalidateLocked() func() {
	s.gen++
	s.playing = false
	s.index = 0
	s.elapsed = 0
	s.position = 0
	cancel := s.stopTick
	s.stopTick = nil
	return cancel
}

// triggerLocked plays one entry through the audio capability and emits the
// chord-selection event. A failing capability is logged and otherwise
// ignored; playhead state advances regardless.
func (s *Scheduler) triggerLocked(entry chordium.ProgressionEntry) {
	freqs, err := theory.ChordFrequencies(entry.Root, entry.Intervals, s.baseOctave)
	if err != nil {
		s.log.Warn("cannot voice entry", zap.String("id", entry.ID), zap.Error(err))
		return
	}
	duration := time.Duration(entry.Duration) * chordium.SecondsPerEighth(s.bpm)
	s.playChord(freqs, duration)
	TrySend(s.broker.ToUI, MsgToUI{Data: ChordSelection{
		Root:      entry.Root,
		Intervals: append([]int(nil), entry.Intervals...),
		Numeral:   entry.Numeral,
	}})
}

func (s *Scheduler) playChord(freqs []float64, duration time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("playback capability failed", zap.Any("reason", r))
		}
	}()
	s.player.PlayChord(freqs, duration, s.gain)
}

func (s *Scheduler) sendTimeLocked() {
	TrySend(s.broker.ToUI, MsgToUI{HasTime: true, Index: s.index, EighthPosition: s.position})
}
