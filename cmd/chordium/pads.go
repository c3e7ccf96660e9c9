package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/chordium/chordium/gesture"
	"github.com/chordium/chordium/midi"
	"github.com/chordium/chordium/modifier"
	"github.com/chordium/chordium/oto"
	"github.com/chordium/chordium/theory"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	padsKey    string
	padsMode   string
	padsDevice string
	padsOctave int
)

// degree keys: white keys of one octave starting at middle C select the
// seven diatonic chords.
const degreeBase = 60

var degreeOffsets = []int{0, 2, 4, 5, 7, 9, 11}

// modifier pads: the octave below middle C, one pad per catalog entry.
var padLabels = map[uint8]string{
	48: "sus2", 49: "sus4", 50: "dim", 51: "aug",
	52: "7", 53: "maj7", 54: "9", 55: "11",
	56: "13", 57: "6", 58: "add9", 59: "no5",
}

func init() {
	padsCmd.Flags().StringVarP(&padsKey, "key", "k", "C", "tonic of the key")
	padsCmd.Flags().StringVarP(&padsMode, "mode", "m", "major", "mode of the key")
	padsCmd.Flags().StringVarP(&padsDevice, "device", "d", "", "MIDI input name prefix (default: first input)")
	padsCmd.Flags().IntVar(&padsOctave, "octave", 4, "base octave for chord voicings")
	rootCmd.AddCommand(padsCmd)
}

var padsCmd = &cobra.Command{
	Use:   "pads",
	Short: "Play chords and modifiers from a MIDI controller",
	Long: `Play chords from a MIDI controller. White keys from middle C select the
seven diatonic chords of the key. The octave below holds one pad per
modifier: release a pad quickly to try the modifier once, hold it to lock
it in.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()

		mode, err := theory.ParseMode(padsMode)
		if err != nil {
			return err
		}
		chords, err := theory.ScaleChords(padsKey, mode)
		if err != nil {
			return err
		}
		audio, err := oto.NewContext(log)
		if err != nil {
			return fmt.Errorf("could not acquire audio context: %w", err)
		}

		mctx := midi.NewContext(log)
		defer mctx.Close()
		if err := mctx.TryToOpenBy(padsDevice, padsDevice == ""); err != nil {
			return err
		}

		// The engine and the current chord are touched both from this loop
		// and from gesture timer callbacks, hence the mutex.
		var mu sync.Mutex
		current := chords[0]
		playChord := func(intervals []int) {
			freqs, err := theory.ChordFrequencies(current.Root, intervals, padsOctave)
			if err != nil {
				log.Warn("cannot voice chord", zap.Error(err))
				return
			}
			audio.PlayChord(freqs, time.Second, 0.5)
			fmt.Printf("%-5s %s\n", current.Numeral, theory.ChordName(current.Root, intervals))
		}
		engine := modifier.NewEngine(current.Intervals, playChord)
		classifier := gesture.NewClassifier(func(ev gesture.Event) {
			mu.Lock()
			defer mu.Unlock()
			if ev.Kind == gesture.LongPress {
				engine.OnLongPress(ev.Label)
			} else {
				engine.OnTap(ev.Label)
			}
		})
		defer classifier.Close()

		router := midi.NewPadRouter(padLabels, classifier, func(note uint8, on bool) {
			if !on {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for degree, offset := range degreeOffsets {
				if int(note)-degreeBase == offset {
					// chord context change: modifier state does not survive
					current = chords[degree]
					engine.Reset(current.Intervals)
					playChord(engine.Intervals())
					return
				}
			}
		})

		fmt.Printf("playing in %s %s, ctrl-c to quit\n", padsKey, mode)
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		for {
			select {
			case e := <-mctx.Events():
				router.Route(e)
			case <-interrupt:
				return nil
			}
		}
	},
}
