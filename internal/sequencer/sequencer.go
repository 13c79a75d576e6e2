// Package sequencer drives a fixed-length beat grid, emitting Trigger events
// onto the audio event queue at a drift-free cadence.
package sequencer

import (
	"fmt"
	"time"

	"github.com/icco/stepsynth/internal/audio"
)

// channel binds one instrument to a pattern of hits across the grid.
type channel struct {
	instrumentID int
	mask         uint16
}

// Sequencer is a monotonic-time beat clock. It owns no audio state; it only
// produces Trigger events on the control thread's side of the event channel.
// Runs entirely on the control thread — never touched by the audio thread.
type Sequencer struct {
	bpm          float64
	beats        int
	subBeats     int
	totalBeats   int
	beatDuration time.Duration
	currentBeat  int
	lastTime     time.Time
	channels     []channel
	events       *audio.EventQueue
}

// New builds a sequencer for a beats*subBeats grid at the given tempo,
// wired to send Trigger events onto events. Call Start before the first
// Update.
func New(bpm float64, beats, subBeats int, events *audio.EventQueue) *Sequencer {
	total := beats * subBeats
	beatSeconds := 60.0 / bpm / float64(subBeats)
	return &Sequencer{
		bpm:          bpm,
		beats:        beats,
		subBeats:     subBeats,
		totalBeats:   total,
		beatDuration: time.Duration(beatSeconds * float64(time.Second)),
		events:       events,
	}
}

// AddChannel registers a pattern of hits for instrumentID. pattern must have
// exactly TotalBeats() characters; 'x' marks a hit, anything else a rest,
// read left-to-right as bit 0 upward (LSB-first). A pattern length mismatch
// is a configuration error and therefore fatal: the pattern is a program
// constant, not runtime input, so AddChannel panics rather than returning
// an error.
func (s *Sequencer) AddChannel(instrumentID int, pattern string) {
	if len(pattern) != s.totalBeats {
		panic(fmt.Sprintf("sequencer: pattern length %d does not match grid length %d", len(pattern), s.totalBeats))
	}
	var mask uint16
	for i, c := range pattern {
		if c == 'x' {
			mask |= 1 << uint(i)
		}
	}
	s.channels = append(s.channels, channel{instrumentID: instrumentID, mask: mask})
}

// TotalBeats returns the number of grid cells (beats * subBeats).
func (s *Sequencer) TotalBeats() int {
	return s.totalBeats
}

// CurrentBeat returns the grid cell that will fire on the next Update pass.
func (s *Sequencer) CurrentBeat() int {
	return s.currentBeat
}

// Start arms the clock against now. Must be called once before the first
// Update.
func (s *Sequencer) Start(now time.Time) {
	s.lastTime = now
	s.currentBeat = 0
}

// Update advances the beat clock to now, firing every beat boundary crossed
// since the last call. It accumulates lastTime by whole beatDuration
// increments rather than resetting it to now, so a stall (e.g. a slow
// control-loop iteration) is caught up on the next call instead of losing
// beats.
func (s *Sequencer) Update(now time.Time) {
	for now.Sub(s.lastTime) >= s.beatDuration {
		for _, c := range s.channels {
			if c.mask&(1<<uint(s.currentBeat)) != 0 {
				s.events.Send(audio.Event{Kind: audio.Trigger, InstrumentID: c.instrumentID})
			}
		}
		s.lastTime = s.lastTime.Add(s.beatDuration)
		s.currentBeat = (s.currentBeat + 1) % s.totalBeats
	}
}
