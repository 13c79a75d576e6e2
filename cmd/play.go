package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/icco/stepsynth/internal/audio"
	"github.com/icco/stepsynth/internal/backend"
	"github.com/icco/stepsynth/internal/sequencer"
	"github.com/icco/stepsynth/internal/tui"
)

const playSampleRate = 44100

var (
	playBPM      float64
	playVoices   int
	playPatterns bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Run the synth, optional step sequencer and terminal keyboard",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&playBPM, "bpm", 120, "sequencer tempo in beats per minute")
	playCmd.Flags().IntVar(&playVoices, "voices", audio.DefaultVoiceCount, "synth polyphony (voice pool size)")
	playCmd.Flags().BoolVar(&playPatterns, "sequencer", true, "run the built-in kick/hat pattern alongside the keyboard")
	rootCmd.AddCommand(playCmd)
}

// instruments builds the small built-in preset bank: a pitched lead for the
// terminal keyboard, and a percussive kick/hat pair for the sequencer.
func instruments() []audio.Instrument {
	lead := audio.NewInstrument().
		Pitched().
		Env(0.01, 0.08, 0.6, 0.25).
		Osc(audio.Saw, 0.6).
		Osc(audio.Square, 0.2).
		LFO(audio.Sine, 5, 0.02).
		Build()

	kick := audio.NewInstrument().
		Percussive(55).
		Env(0.001, 0.18, 0, 0).
		Osc(audio.Sine, 1.0).
		Build()

	hat := audio.NewInstrument().
		Percussive(0).
		Env(0.001, 0.04, 0, 0).
		Osc(audio.Noise, 0.5).
		Build()

	return []audio.Instrument{lead, kick, hat}
}

const (
	leadInstrument = 0
	kickInstrument = 1
	hatInstrument  = 2
)

func runPlay(cmd *cobra.Command, args []string) error {
	events := audio.NewEventQueue()
	synth := audio.NewSynth(playSampleRate, playVoices, instruments(), events)

	engine, err := backend.New(playSampleRate, synth.Process)
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	engine.Start()
	defer engine.Stop()

	var seq *sequencer.Sequencer
	if playPatterns {
		seq = sequencer.New(playBPM, 4, 4, events)
		seq.AddChannel(kickInstrument, "x.......x.......")
		seq.AddChannel(hatInstrument, "..x...x...x...x.")
	}

	model := tui.New(synth, events, seq, leadInstrument)
	program := tea.NewProgram(model)
	if seq != nil {
		seq.Start(time.Now())
	}

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}
