package audio

import "math"

// A4NoteIndex is the contiguous keyboard note index that sounds at 440 Hz.
// Anchored to match the prototype this system was distilled from
// (jocades/synthrs), whose 18-key FREQ_MAP runs from -9 to +8 semitones
// around A4 at index 9.
const A4NoteIndex = 9

// NoteFrequency converts a contiguous keyboard note index to Hz using equal
// temperament: 440 * 2^((note-A4NoteIndex)/12).
func NoteFrequency(note uint8) float64 {
	semitones := float64(int(note) - A4NoteIndex)
	return 440.0 * math.Pow(2, semitones/12)
}
