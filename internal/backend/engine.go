// Package backend adapts the Synth's Process callback to a real audio
// device via oto for continuous PCM playback.
package backend

import (
	"math"

	"github.com/ebitengine/oto/v3"
)

const (
	channelCount = 1 // mono: Process fills one f32 sample per frame
	bytesPerF32  = 4
)

// Engine owns the oto context and player, and hands freshly-generated
// sample buffers to process at whatever cadence the device callback runs
// at. The adapter's sole job is format conversion (mono f32 -> oto's LE byte
// stream) plus lifecycle management; it holds no DSP state of its own.
type Engine struct {
	ctx    *oto.Context
	player *oto.Player
	reader *sampleReader
}

// New opens an audio device at sampleRate and registers process as the
// sample source. process must fill buf with one mono f32 sample per frame
// in [-1, 1]; it is called from oto's own realtime thread and must not
// allocate, lock, or take syscalls.
func New(sampleRate int, process func(buf []float32)) (*Engine, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	reader := &sampleReader{process: process}
	e := &Engine{
		ctx:    ctx,
		reader: reader,
		player: ctx.NewPlayer(reader),
	}
	return e, nil
}

// Start begins playback. Safe to call once; calling Start again on an
// already-playing engine is a no-op at oto's level.
func (e *Engine) Start() {
	e.player.Play()
}

// Stop halts playback. The underlying process callback stops being invoked
// once Stop returns; oto v3's player has no separate Close step (deprecated
// as of v3.4 per upstream), so there is nothing further to release.
func (e *Engine) Stop() {
	e.player.Pause()
}

// sampleReader implements io.Reader over a process callback, converting
// each produced float32 into oto's little-endian byte layout.
type sampleReader struct {
	process func(buf []float32)
	scratch []float32
}

// Read fills buf with audio bytes by calling process for the requested
// number of frames and encoding the result as FormatFloat32LE.
func (r *sampleReader) Read(buf []byte) (int, error) {
	frames := len(buf) / bytesPerF32
	if cap(r.scratch) < frames {
		r.scratch = make([]float32, frames)
	}
	samples := r.scratch[:frames]

	r.process(samples)

	for i, s := range samples {
		bits := math.Float32bits(s)
		off := i * bytesPerF32
		buf[off] = byte(bits)
		buf[off+1] = byte(bits >> 8)
		buf[off+2] = byte(bits >> 16)
		buf[off+3] = byte(bits >> 24)
	}

	return frames * bytesPerF32, nil
}
