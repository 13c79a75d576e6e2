package audio

// InstrumentKind distinguishes a pitched instrument (frequency comes from
// the note played) from a percussive/one-shot instrument (frequency is
// fixed at preset time and note-on carries no pitch).
type InstrumentKind struct {
	Percussive bool
	Freq       float64
}

// OscConfig is one oscillator slot in an Instrument's signal chain.
type OscConfig struct {
	Waveform Waveform
	Gain     float64
}

// LFOConfig is one low-frequency modulator slot. Depth plays the role of
// Osc.gain: the LFO's summed, depth-scaled output frequency-modulates every
// oscillator in the voice (see Voice.MixSample).
type LFOConfig struct {
	Waveform Waveform
	FreqHz   float64
	Depth    float64
}

// Instrument is the immutable declarative preset consumed at note-on to
// instantiate a Voice. Built via InstrumentBuilder; never mutated after
// construction.
type Instrument struct {
	Kind  InstrumentKind
	Shape EnvelopeShape
	Oscs  []OscConfig
	LFOs  []LFOConfig
}

// InstrumentBuilder chains configuration calls and terminates in Build.
type InstrumentBuilder struct {
	inst Instrument
}

// NewInstrument starts a builder with the default envelope shape (hold=true,
// pitched kind).
func NewInstrument() *InstrumentBuilder {
	return &InstrumentBuilder{inst: Instrument{Shape: DefaultEnvelopeShape}}
}

// Pitched selects the pitched kind: note-on resolves frequency from the
// played note.
func (b *InstrumentBuilder) Pitched() *InstrumentBuilder {
	b.inst.Kind = InstrumentKind{}
	return b
}

// Percussive selects the percussive kind at a fixed frequency and forces
// the envelope to one-shot (hold=false): percussive instruments ignore
// note-off.
func (b *InstrumentBuilder) Percussive(freqHz float64) *InstrumentBuilder {
	b.inst.Kind = InstrumentKind{Percussive: true, Freq: freqHz}
	b.inst.Shape.Hold = false
	return b
}

// Env sets the envelope shape's timing and sustain level, leaving hold
// untouched — so it can be called either before or after Percussive/Oneshot
// without clobbering their hold=false.
func (b *InstrumentBuilder) Env(attack, decay, sustain, release float64) *InstrumentBuilder {
	b.inst.Shape = EnvelopeShape{
		Attack:  attack,
		Decay:   decay,
		Sustain: sustain,
		Release: release,
		Hold:    b.inst.Shape.Hold,
	}
	return b
}

// Oneshot forces hold=false on the current envelope shape: Decay falls
// straight through to Release instead of settling into Sustain.
func (b *InstrumentBuilder) Oneshot() *InstrumentBuilder {
	b.inst.Shape.Hold = false
	return b
}

// Osc appends an oscillator to the instrument's signal chain.
func (b *InstrumentBuilder) Osc(waveform Waveform, gain float64) *InstrumentBuilder {
	b.inst.Oscs = append(b.inst.Oscs, OscConfig{Waveform: waveform, Gain: gain})
	return b
}

// LFO appends a low-frequency modulator to the instrument.
func (b *InstrumentBuilder) LFO(waveform Waveform, freqHz, depth float64) *InstrumentBuilder {
	b.inst.LFOs = append(b.inst.LFOs, LFOConfig{Waveform: waveform, FreqHz: freqHz, Depth: depth})
	return b
}

// Build consumes the builder and returns the finished, immutable preset.
func (b *InstrumentBuilder) Build() Instrument {
	return b.inst
}
