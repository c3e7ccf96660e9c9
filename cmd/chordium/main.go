package main

import (
	"fmt"
	"os"

	"github.com/chordium/chordium/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "chordium",
	Short:   "Explore and play chords in a key",
	Long:    "Chordium derives the diatonic and borrowed chords of a key and mode, applies harmonic modifiers with automatic conflict resolution, and schedules chord progressions for timed playback.",
	Version: version.VersionOrHash,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
