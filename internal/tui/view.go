// Package tui renders a minimal status view of the running synth and feeds
// terminal keypresses into the keyboard adapter. It owns no DSP state; it
// only polls and displays.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/icco/stepsynth/internal/audio"
	"github.com/icco/stepsynth/internal/keyboard"
	"github.com/icco/stepsynth/internal/sequencer"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	beatStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAFF"))
)

// tickMsg drives the control-thread loop: keyboard poll, sequencer update,
// status redraw, at roughly a 2ms cadence.
type tickMsg time.Time

const tickInterval = 2 * time.Millisecond

// Model is the Bubble Tea program driving the demo. It translates observed
// keypresses and elapsed time into audio.Event sends on events: the
// control-thread half of the keyboard-poll/sequencer-to-event-channel data
// flow.
type Model struct {
	synth      *audio.Synth
	events     *audio.EventQueue
	seq        *sequencer.Sequencer
	keys       *keyboard.TermSource
	instrument int
	heldNotes  map[uint16]bool
	quit       bool
	width      int
}

// New builds a Model wired to synth's event queue, an optional sequencer
// (nil if the demo has none running), and instrumentID as the instrument
// the terminal keyboard plays.
func New(synth *audio.Synth, events *audio.EventQueue, seq *sequencer.Sequencer, instrumentID int) Model {
	return Model{
		synth:      synth,
		events:     events,
		seq:        seq,
		keys:       keyboard.NewTermSource(),
		instrument: instrumentID,
		heldNotes:  make(map[uint16]bool),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model: it observes keypresses, advances the
// sequencer, diffs held-note state into NoteOn/NoteOff events, and quits
// when QuitKey has been held.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quit = true
			return m, tea.Quit
		}
		m.keys.Observe(msg)
		return m, nil

	case tickMsg:
		if m.keys.IsKeyDown(keyboard.QuitKey) {
			m.quit = true
			return m, tea.Quit
		}

		now := time.Time(msg)
		if m.seq != nil {
			m.seq.Update(now)
		}
		m.pollKeyboard()
		return m, tick()
	}

	return m, nil
}

// pollKeyboard diffs the current down-set against the previous one,
// emitting NoteOn for newly-down notes and NoteOff for newly-up ones — the
// bridge between discrete terminal keypresses and the NoteOn/NoteOff event
// pair the synth expects.
func (m *Model) pollKeyboard() {
	for idx := uint16(0); idx < uint16(keyboard.NoteIndexCount()); idx++ {
		down := m.keys.IsKeyDown(idx)
		was := m.heldNotes[idx]
		if down && !was {
			m.events.Send(audio.Event{Kind: audio.NoteOn, InstrumentID: m.instrument, Note: uint8(idx)})
		} else if was && !down {
			m.events.Send(audio.Event{Kind: audio.NoteOff, InstrumentID: m.instrument, Note: uint8(idx)})
		}
		m.heldNotes[idx] = down
	}
}

// View renders a one-screen status: active voice count and the
// sequencer's current grid position, if any.
func (m Model) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("stepsynth"))
	b.WriteString("\n\n")

	b.WriteString(noteStyle.Render(fmt.Sprintf("active voices: %d", m.synth.ActiveVoices())))
	b.WriteString("\n")

	if m.seq != nil {
		b.WriteString(beatStyle.Render(fmt.Sprintf("beat: %d / %d", m.seq.CurrentBeat(), m.seq.TotalBeats())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("play: z s x d c v g b h n j m q 2 w 3 e r  ·  quit: q"))
	b.WriteString("\n")

	return b.String()
}
