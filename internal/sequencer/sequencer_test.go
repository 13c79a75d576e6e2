package sequencer

import (
	"testing"
	"time"

	"github.com/icco/stepsynth/internal/audio"
)

func TestAddChannelPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on pattern length mismatch")
		}
	}()
	s := New(120, 4, 4, audio.NewEventQueue())
	s.AddChannel(0, "xxxx")
}

func TestAddChannelBuildsLSBFirstMask(t *testing.T) {
	s := New(120, 1, 4, audio.NewEventQueue())
	s.AddChannel(0, "x..x")

	ch := s.channels[0]
	if ch.mask != 0b1001 {
		t.Fatalf("expected mask 0b1001 for pattern %q, got %04b", "x..x", ch.mask)
	}
}

func TestSequencerFiresOnPatternBits(t *testing.T) {
	events := audio.NewEventQueue()
	s := New(120, 1, 4, events)
	s.AddChannel(7, "x..x")

	base := time.Unix(0, 0)
	s.Start(base)

	var hits []int
	now := base
	for beat := 0; beat < 4; beat++ {
		now = now.Add(s.beatDuration)
		s.Update(now)
		for {
			e, ok := events.TryRecv()
			if !ok {
				break
			}
			if e.Kind != audio.Trigger || e.InstrumentID != 7 {
				t.Fatalf("unexpected event %+v", e)
			}
			hits = append(hits, beat)
		}
	}
	if len(hits) != 2 || hits[0] != 0 || hits[1] != 3 {
		t.Fatalf("expected hits at beats [0,3], got %v", hits)
	}
}

func TestSequencerIsDriftFree(t *testing.T) {
	events := audio.NewEventQueue()
	s := New(240, 1, 4, events)
	s.AddChannel(0, "x...")

	base := time.Unix(0, 0)
	s.Start(base)

	// Advance by 3.5 beat-durations in one jump (simulating a stalled
	// control loop), then by one more beat.
	s.Update(base.Add(3*s.beatDuration + s.beatDuration/2))

	count := 0
	for {
		if _, ok := events.TryRecv(); !ok {
			break
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 trigger (beat 0 hit once in 3 elapsed beats), got %d", count)
	}
	if s.CurrentBeat() != 3 {
		t.Fatalf("expected currentBeat=3 after 3 whole beats elapsed, got %d", s.CurrentBeat())
	}

	// The remaining half beat plus one more full beat should cross the
	// next boundary (beat 3, a rest) without losing the fractional carry.
	s.Update(base.Add(3*s.beatDuration + s.beatDuration/2 + s.beatDuration))
	if s.CurrentBeat() != 0 {
		t.Fatalf("expected wraparound to beat 0, got %d", s.CurrentBeat())
	}
}

func TestSequencerWrapsAroundGrid(t *testing.T) {
	events := audio.NewEventQueue()
	s := New(600, 1, 2, events) // totalBeats = 2, fast tempo for a short test
	s.AddChannel(0, "x.")

	base := time.Unix(0, 0)
	s.Start(base)

	now := base
	hitCount := 0
	for i := 0; i < 6; i++ {
		now = now.Add(s.beatDuration)
		s.Update(now)
		for {
			if _, ok := events.TryRecv(); !ok {
				break
			}
			hitCount++
		}
	}
	if hitCount != 3 {
		t.Fatalf("expected 3 hits over 6 beats on a 2-beat pattern with 1 active bit, got %d", hitCount)
	}
}
