package audio

import "math"

// Osc is a phase accumulator that emits one waveform sample per call to
// Next, scaled by gain. LFOs are plain Oscs too — a voice's frequency
// modulation bus is just the summed output of a list of Oscs (see Voice).
type Osc struct {
	waveform      Waveform
	phase         float64
	baseIncrement float64
	increment     float64
	gain          float64
	rng           uint64
}

// NewOsc builds an oscillator for freqHz at sampleRate, scaled by gain.
func NewOsc(waveform Waveform, freqHz, sampleRate, gain float64) Osc {
	var o Osc
	o.reset(waveform, freqHz, sampleRate, gain, defaultSeed(freqHz))
	return o
}

// reset reinitializes o in place — used by Voice.allocate to reconfigure a
// pooled oscillator slot without allocating.
func (o *Osc) reset(waveform Waveform, freqHz, sampleRate, gain float64, seed uint64) {
	inc := freqHz / sampleRate
	o.waveform = waveform
	o.phase = 0
	o.baseIncrement = inc
	o.increment = inc
	o.gain = gain
	o.rng = seed
}

// ModFreq overwrites increment for the next Next() call: base_increment *
// (1 + lfo). Callers are responsible for keeping 1+lfo positive; a
// non-positive value runs the oscillator backward or holds it still rather
// than producing an error.
func (o *Osc) ModFreq(lfo float64) {
	o.increment = o.baseIncrement * (1 + lfo)
}

// Next evaluates the waveform at the current phase, advances phase by
// increment (wrapped into [0,1) regardless of increment's magnitude or
// sign), and returns the scaled sample.
func (o *Osc) Next() float64 {
	v := o.waveform.sample(o.phase, &o.rng)
	o.phase += o.increment
	o.phase -= math.Floor(o.phase)
	return v * o.gain
}

// defaultSeed derives a non-zero xorshift seed from the oscillator's
// frequency so that distinct oscillators don't produce identical noise
// sequences purely by chance of construction order.
func defaultSeed(freqHz float64) uint64 {
	bits := math.Float64bits(freqHz)
	seed := bits ^ 0x9E3779B97F4A7C15
	if seed == 0 {
		seed = 1
	}
	return seed
}
