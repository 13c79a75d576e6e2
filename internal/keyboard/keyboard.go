// Package keyboard maps terminal keypresses onto the contiguous 0..17
// note-index surface the synth expects, behind a scancode-polling interface
// that mirrors how an OS-level keyboard poll would be consumed.
package keyboard

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Source is an is_key_down(scancode)-shaped polling contract. Scancode here
// is a note index (0..17) or QuitKey, not a platform scancode —
// internal/audio and internal/sequencer never depend on this package at
// all, only internal/tui does.
type Source interface {
	IsKeyDown(scancode uint16) bool
}

// QuitKey is the scancode bound to the terminal's quit key: the control
// loop exits once it reads as held down.
const QuitKey uint16 = 0xFFFF

// noteKeys is the physical key sequence bound to note indices 0..17,
// following the same lower-row/upper-row tracker layout
// oisee-abytetracker's keyToNote uses for the identical problem.
var noteKeys = []string{
	"z", "s", "x", "d", "c", "v", "g", "b", "h", "n", "j", "m",
	"q", "2", "w", "3", "e", "r",
}

var keyToNoteIndex = func() map[string]uint16 {
	m := make(map[string]uint16, len(noteKeys))
	for i, k := range noteKeys {
		m[k] = uint16(i)
	}
	return m
}()

// heldTimeout is how long a key is reported "down" after its last observed
// keypress message. Terminals deliver discrete press events, not a
// continuous down/up state, so TermSource approximates held-ness rather
// than tracking it exactly.
const heldTimeout = 120 * time.Millisecond

// TermSource is a Source backed by Bubble Tea key messages. Feed it every
// tea.KeyMsg the program receives via Observe; IsKeyDown then answers
// whether that scancode's key was seen within the last heldTimeout window.
type TermSource struct {
	mu       sync.Mutex
	lastSeen map[uint16]time.Time
}

// NewTermSource builds an empty TermSource; no keys are reported down until
// Observe has been called.
func NewTermSource() *TermSource {
	return &TermSource{lastSeen: make(map[uint16]time.Time)}
}

// Observe records msg's keypress time against whatever scancode it maps to,
// if any. Call this from the Bubble Tea program's Update on every
// tea.KeyMsg.
func (t *TermSource) Observe(msg tea.KeyMsg) {
	now := time.Now()
	s := msg.String()

	t.mu.Lock()
	defer t.mu.Unlock()

	if s == "q" {
		t.lastSeen[QuitKey] = now
		return
	}
	if idx, ok := keyToNoteIndex[s]; ok {
		t.lastSeen[idx] = now
	}
}

// IsKeyDown reports whether scancode's key was observed within the last
// heldTimeout window.
func (t *TermSource) IsKeyDown(scancode uint16) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastSeen[scancode]
	if !ok {
		return false
	}
	return time.Since(last) < heldTimeout
}

// NoteIndexCount is the number of contiguous note indices the layout covers.
func NoteIndexCount() int {
	return len(noteKeys)
}
