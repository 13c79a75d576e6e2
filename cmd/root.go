package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stepsynth",
	Short: "A polyphonic synthesizer with a built-in step sequencer",
	Long: `stepsynth is a polyphonic software synthesizer with an integrated step sequencer,
played from the terminal keyboard and built with Bubbletea.

A control thread translates keypresses and scheduled sequencer steps into musical
events; a realtime audio thread mixes a pool of voices into PCM and hands it to
the audio device.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
