package audio

// maxEventsPerBlock bounds the per-block event drain so an adversarial
// flood of events can't push Process beyond O(maxEventsPerBlock +
// len(buf)*numVoices) — the only admission control the audio thread needs,
// since it must never allocate, lock or block.
const maxEventsPerBlock = 128

// masterGain is a fixed attenuation applied to the mixed output. There is no
// limiter or per-voice normalization: clipping responsibility lies with the
// preset author.
const masterGain = 0.2

// DefaultVoiceCount is the polyphony used when a caller doesn't otherwise
// specify one.
const DefaultVoiceCount = 32

// Synth is the voice pool: a fixed-size array of voices, the instrument
// bank they're built from, and the event queue that bridges it to the
// control thread. All Synth methods except Process are safe to call only
// from the audio thread that owns it — there is no internal locking,
// because the voice pool is never shared.
type Synth struct {
	voices      []*Voice
	instruments []Instrument
	sampleRate  float64
	events      *EventQueue
}

// NewSynth builds a synth with numVoices pooled voices sized to the largest
// instrument in instruments, and wires it to events as its event source.
func NewSynth(sampleRate float64, numVoices int, instruments []Instrument, events *EventQueue) *Synth {
	maxOscs, maxLFOs := presetCapacity(instruments)
	voices := make([]*Voice, numVoices)
	for i := range voices {
		voices[i] = newVoice(sampleRate, maxOscs, maxLFOs)
	}
	return &Synth{
		voices:      voices,
		instruments: instruments,
		sampleRate:  sampleRate,
		events:      events,
	}
}

func presetCapacity(instruments []Instrument) (maxOscs, maxLFOs int) {
	for _, in := range instruments {
		if len(in.Oscs) > maxOscs {
			maxOscs = len(in.Oscs)
		}
		if len(in.LFOs) > maxLFOs {
			maxLFOs = len(in.LFOs)
		}
	}
	return maxOscs, maxLFOs
}

// ActiveVoices returns the number of currently sounding voices. Intended for
// tests and status displays, not the audio path.
func (s *Synth) ActiveVoices() int {
	n := 0
	for _, v := range s.voices {
		if v.active {
			n++
		}
	}
	return n
}

// findVoiceSlot scans in index order for the first inactive voice. If all
// voices are active, it steals the one with the lowest envelope amplitude
// (ties broken by first-found index) — cheap, deterministic voice stealing
// with no crossfade.
func (s *Synth) findVoiceSlot() *Voice {
	for _, v := range s.voices {
		if !v.active {
			return v
		}
	}

	quietest := s.voices[0]
	for _, v := range s.voices[1:] {
		if v.env.amp < quietest.env.amp {
			quietest = v
		}
	}
	return quietest
}

func (s *Synth) noteOn(instrumentID int, note uint8) {
	if instrumentID < 0 || instrumentID >= len(s.instruments) {
		return
	}
	instrument := &s.instruments[instrumentID]
	freq := instrument.Kind.Freq
	if !instrument.Kind.Percussive {
		freq = NoteFrequency(note)
	}
	v := s.findVoiceSlot()
	v.allocate(instrumentID, instrument, note, freq)
}

// noteOff releases every active voice currently bound to (instrumentID,
// note). Percussive instruments are one-shot: a noteOff addressed at one is
// a no-op, and its voices run through their own envelope untouched.
func (s *Synth) noteOff(instrumentID int, note uint8) {
	if instrumentID < 0 || instrumentID >= len(s.instruments) || s.instruments[instrumentID].Kind.Percussive {
		return
	}
	for _, v := range s.voices {
		if v.active && v.instrumentID == instrumentID && v.note == note {
			v.env.NoteOff()
		}
	}
}

func (s *Synth) trigger(instrumentID int) {
	if instrumentID < 0 || instrumentID >= len(s.instruments) {
		return
	}
	instrument := &s.instruments[instrumentID]
	v := s.findVoiceSlot()
	v.allocate(instrumentID, instrument, 0, instrument.Kind.Freq)
}

func (s *Synth) drainEvents() {
	for i := 0; i < maxEventsPerBlock; i++ {
		e, ok := s.events.TryRecv()
		if !ok {
			return
		}
		switch e.Kind {
		case NoteOn:
			s.noteOn(e.InstrumentID, e.Note)
		case NoteOff:
			s.noteOff(e.InstrumentID, e.Note)
		case Trigger:
			s.trigger(e.InstrumentID)
		}
	}
}

// Process drains up to maxEventsPerBlock queued events, then fills buf with
// one sample per output frame: the sum of every active voice's sample,
// scaled by masterGain.
// This is the audio thread's entire per-block contract: no allocation, no
// locking, no syscalls.
func (s *Synth) Process(buf []float32) {
	s.drainEvents()

	dt := 1.0 / s.sampleRate
	for i := range buf {
		var mix float64
		for _, v := range s.voices {
			if v.active {
				mix += v.MixSample(dt)
			}
		}
		buf[i] = float32(masterGain * mix)
	}
}
