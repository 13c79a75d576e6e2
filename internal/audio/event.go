package audio

// EventKind tags the three things a producer can ask the synth to do.
type EventKind int

const (
	NoteOn EventKind = iota
	NoteOff
	Trigger
)

// Event is the plain-data message passed from the control thread (keyboard,
// sequencer) to the audio thread (Synth.Process). Trigger carries no note:
// it is for one-shot, unpitched instruments.
type Event struct {
	Kind         EventKind
	InstrumentID int
	Note         uint8
}

// eventQueueCapacity is a convention, not a hard contract: events are rare
// relative to sample rate, so producers should never actually observe the
// queue as full in practice.
const eventQueueCapacity = 4096

// EventQueue is a non-blocking, multi-producer/single-consumer FIFO
// bridging the control and audio threads. Send never blocks the consumer;
// TryRecv never blocks or allocates. A buffered channel gives us exactly
// this for free — no user-level locking, ordering preserved per producer —
// which is the idiomatic Go answer to "lock-free SPSC queue" here.
type EventQueue struct {
	ch chan Event
}

// NewEventQueue builds a queue with room for eventQueueCapacity in-flight
// events.
func NewEventQueue() *EventQueue {
	return &EventQueue{ch: make(chan Event, eventQueueCapacity)}
}

// Send enqueues e without blocking. If the queue is full the event is
// dropped rather than blocking or erroring; the next sequencer beat or
// keypress is cheap to re-send.
func (q *EventQueue) Send(e Event) {
	select {
	case q.ch <- e:
	default:
	}
}

// TryRecv returns the next event without blocking. ok is false when the
// queue is empty; it never blocks or allocates, so it is safe to call from
// the audio thread.
func (q *EventQueue) TryRecv() (Event, bool) {
	select {
	case e := <-q.ch:
		return e, true
	default:
		return Event{}, false
	}
}
