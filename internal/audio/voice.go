package audio

// Voice is a per-note runtime instance of an Instrument: it owns its
// oscillators, LFOs and envelope, and produces one mixed sample per call to
// MixSample. Voices are pooled by Synth and reused across notes — allocate
// reconfigures a voice in place instead of constructing a new one, so that
// steady-state note-on never allocates on the audio thread.
type Voice struct {
	instrumentID int
	active       bool
	note         uint8
	freq         float64
	sampleRate   float64
	env          Envelope
	oscs         []Osc
	lfos         []Osc
}

// newVoice builds an inactive voice whose oscs/lfos slices are preallocated
// to maxOscs/maxLFOs capacity — the largest counts across the instrument
// bank — so that allocate() never needs to grow them.
func newVoice(sampleRate float64, maxOscs, maxLFOs int) *Voice {
	return &Voice{
		sampleRate: sampleRate,
		oscs:       make([]Osc, 0, maxOscs),
		lfos:       make([]Osc, 0, maxLFOs),
	}
}

// Active reports whether the voice is currently sounding.
func (v *Voice) Active() bool {
	return v.active
}

// InstrumentID returns the preset this voice is currently bound to.
func (v *Voice) InstrumentID() int {
	return v.instrumentID
}

// Note returns the key index this voice was triggered with (meaningless for
// percussive voices).
func (v *Voice) Note() uint8 {
	return v.note
}

// allocate (re)binds the voice to instrument at note/freq, rebuilding the
// envelope and repopulating oscs/lfos from the instrument's lists in place.
// Capacity was reserved at construction, so this never allocates.
func (v *Voice) allocate(instrumentID int, instrument *Instrument, note uint8, freq float64) {
	v.instrumentID = instrumentID
	v.note = note
	v.freq = freq
	v.active = true
	v.env.Reset(instrument.Shape)

	v.oscs = v.oscs[:0]
	for _, c := range instrument.Oscs {
		var o Osc
		o.reset(c.Waveform, freq, v.sampleRate, c.Gain, defaultSeed(freq*float64(len(v.oscs)+1)))
		v.oscs = append(v.oscs, o)
	}

	v.lfos = v.lfos[:0]
	for _, c := range instrument.LFOs {
		var o Osc
		o.reset(c.Waveform, c.FreqHz, v.sampleRate, c.Depth, defaultSeed(c.FreqHz*float64(len(v.lfos)+3)))
		v.lfos = append(v.lfos, o)
	}
}

// MixSample advances the voice's envelope, LFOs and oscillators by one
// sample and returns the voice's contribution to the mix. When the envelope
// finishes mid-call, the voice is deactivated and 0 is returned: the sample
// that finishes contributes silence, not the last nonzero amplitude.
func (v *Voice) MixSample(dt float64) float64 {
	amp := v.env.Next(dt)
	if v.env.IsFinished() {
		v.active = false
		return 0
	}

	var lfoSum float64
	for i := range v.lfos {
		lfoSum += v.lfos[i].Next()
	}

	var s float64
	for i := range v.oscs {
		v.oscs[i].ModFreq(lfoSum)
		s += v.oscs[i].Next()
	}

	return amp * s
}
