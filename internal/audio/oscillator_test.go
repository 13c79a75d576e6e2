package audio

import (
	"math"
	"testing"
)

func TestOscPhaseStaysInBounds(t *testing.T) {
	increments := []float64{0, 0.0001, 0.5, 1, 1.9, 37.123, 1e6}
	for _, inc := range increments {
		o := NewOsc(Sine, 0, 1, 1)
		o.increment = inc
		for i := 0; i < 1000; i++ {
			o.Next()
			if o.phase < 0 || o.phase >= 1 {
				t.Fatalf("increment %v: phase out of bounds after %d calls: %v", inc, i, o.phase)
			}
		}
	}
}

func TestWaveformRangeExceptNoise(t *testing.T) {
	waveforms := []Waveform{Sine, Square, Triangle, Saw}
	for _, w := range waveforms {
		for i := 0; i <= 1000; i++ {
			p := float64(i) / 1000
			var rng uint64
			v := w.sample(p, &rng)
			if v < -1 || v > 1 {
				t.Fatalf("%v at phase %v: value %v out of [-1,1]", w, p, v)
			}
		}
	}
}

func TestNoiseRange(t *testing.T) {
	var rng uint64 = 12345
	for i := 0; i < 10000; i++ {
		v := Noise.sample(0, &rng)
		if v < -1 || v >= 1 {
			t.Fatalf("noise sample %v out of [-1,1)", v)
		}
	}
}

func TestOscModFreqScalesIncrement(t *testing.T) {
	o := NewOsc(Sine, 440, 44100, 1)
	base := o.baseIncrement
	o.ModFreq(0.5)
	if math.Abs(o.increment-base*1.5) > 1e-12 {
		t.Fatalf("expected increment %v, got %v", base*1.5, o.increment)
	}
	o.ModFreq(0)
	if o.increment != base {
		t.Fatalf("ModFreq(0) should restore base increment, got %v want %v", o.increment, base)
	}
}

func TestOscGainScalesOutput(t *testing.T) {
	full := NewOsc(Square, 1, 4, 1)
	half := NewOsc(Square, 1, 4, 0.5)
	for i := 0; i < 4; i++ {
		a, b := full.Next(), half.Next()
		if math.Abs(a/2-b) > 1e-9 {
			t.Fatalf("gain 0.5 should halve output: full=%v half=%v", a, b)
		}
	}
}
