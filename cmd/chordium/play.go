package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/chordium/chordium"
	"github.com/chordium/chordium/oto"
	"github.com/chordium/chordium/player"
	"github.com/chordium/chordium/theory"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var (
	playLoop   bool
	playOctave int
	playSilent bool
)

func init() {
	playCmd.Flags().BoolVarP(&playLoop, "loop", "l", false, "loop the progression until interrupted")
	playCmd.Flags().IntVar(&playOctave, "octave", 4, "base octave for chord voicings")
	playCmd.Flags().BoolVar(&playSilent, "silent", false, "do not open an audio device, just print the playhead")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play progression.yml",
	Short: "Play a chord progression file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer log.Sync()

		progression, err := loadProgression(args[0])
		if err != nil {
			return err
		}
		if playLoop {
			progression.Loop = true
		}

		var play chordium.ChordPlayer = chordium.NopPlayer{}
		if !playSilent {
			audio, err := oto.NewContext(log)
			if err != nil {
				return fmt.Errorf("could not acquire audio context: %w", err)
			}
			play = audio
		}

		broker := player.NewBroker()
		scheduler := player.NewScheduler(broker, play,
			player.WithLogger(log), player.WithBaseOctave(playOctave))
		if err := scheduler.Play(progression); err != nil {
			return err
		}

		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		for {
			select {
			case msg := <-broker.ToUI:
				if msg.PlaybackEnded {
					fmt.Println("done")
					return nil
				}
				if sel, ok := msg.Data.(player.ChordSelection); ok {
					fmt.Printf("%-5s %s\n", sel.Numeral, theory.ChordName(sel.Root, sel.Intervals))
				}
			case <-interrupt:
				scheduler.Stop()
				return nil
			}
		}
	},
}

// loadProgression reads a progression yaml file and resolves key-relative
// entries: an entry given only as a roman numeral gets its root and
// intervals from the diatonic set of the file's key, falling back to the
// borrowed-chord table.
func loadProgression(filename string) (chordium.Progression, error) {
	var p chordium.Progression
	data, err := os.ReadFile(filename)
	if err != nil {
		return p, fmt.Errorf("could not read file %v: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("the progression could not be parsed: %w", err)
	}
	if p.Key == "" {
		p.Key = "C"
	}
	mode := theory.Major
	if p.Mode != "" {
		if mode, err = theory.ParseMode(p.Mode); err != nil {
			return p, err
		}
	}
	diatonic, err := theory.ScaleChords(p.Key, mode)
	if err != nil {
		return p, err
	}
	borrowed, err := theory.BorrowedChords(p.Key, mode)
	if err != nil {
		return p, err
	}
	for i := range p.Entries {
		e := &p.Entries[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if len(e.Intervals) > 0 && e.Root != "" {
			continue
		}
		chord, ok := chordByNumeral(e.Numeral, diatonic, borrowed)
		if !ok {
			return p, fmt.Errorf("entry %d: unknown numeral %q in %s %s", i, e.Numeral, p.Key, mode)
		}
		e.Root = chord.Root
		e.Intervals = append([]int(nil), chord.Intervals...)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

func chordByNumeral(numeral string, diatonic []chordium.Chord, borrowed []theory.Borrowed) (chordium.Chord, bool) {
	for _, c := range diatonic {
		if c.Numeral == numeral {
			return c, true
		}
	}
	for _, b := range borrowed {
		if b.Numeral == numeral {
			return b.Chord, true
		}
	}
	return chordium.Chord{}, false
}
