package main

import (
	"fmt"
	"os"

	"github.com/chordium/chordium/theory"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	chordsKey      string
	chordsMode     string
	chordsBorrowed bool
	chordsYAML     bool
)

func init() {
	chordsCmd.Flags().StringVarP(&chordsKey, "key", "k", "C", "tonic of the key")
	chordsCmd.Flags().StringVarP(&chordsMode, "mode", "m", "major", "mode of the key")
	chordsCmd.Flags().BoolVarP(&chordsBorrowed, "borrowed", "b", false, "also list borrowed (modal interchange) chords")
	chordsCmd.Flags().BoolVar(&chordsYAML, "yaml", false, "output as yaml instead of a table")
	rootCmd.AddCommand(chordsCmd)
}

var chordsCmd = &cobra.Command{
	Use:   "chords",
	Short: "Print the chords of a key and mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := theory.ParseMode(chordsMode)
		if err != nil {
			return err
		}
		chords, err := theory.ScaleChords(chordsKey, mode)
		if err != nil {
			return err
		}
		if chordsYAML {
			return yaml.NewEncoder(os.Stdout).Encode(chords)
		}
		fmt.Printf("%s %s\n", chordsKey, mode)
		for _, c := range chords {
			fmt.Printf("  %-5s %-8s %-12s %v\n", c.Numeral, theory.ChordName(c.Root, c.Intervals), c.Function, c.Intervals)
		}
		if !chordsBorrowed {
			return nil
		}
		borrowed, err := theory.BorrowedChords(chordsKey, mode)
		if err != nil {
			return err
		}
		fmt.Println("borrowed:")
		for _, b := range borrowed {
			fmt.Printf("  %-5s %-8s %-12s %v\n", b.Numeral, theory.ChordName(b.Root, b.Intervals), b.Mood, b.Intervals)
		}
		return nil
	},
}
