package audio

import "testing"

func TestEventQueueFIFOOrder(t *testing.T) {
	q := NewEventQueue()
	sent := []Event{
		{Kind: NoteOn, InstrumentID: 0, Note: 1},
		{Kind: NoteOn, InstrumentID: 0, Note: 2},
		{Kind: NoteOff, InstrumentID: 0, Note: 1},
		{Kind: Trigger, InstrumentID: 3},
	}
	for _, e := range sent {
		q.Send(e)
	}

	var received []Event
	for {
		e, ok := q.TryRecv()
		if !ok {
			break
		}
		received = append(received, e)
	}

	if len(received) != len(sent) {
		t.Fatalf("expected %d events, got %d", len(sent), len(received))
	}
	for i, e := range received {
		if e != sent[i] {
			t.Fatalf("event %d out of order: got %+v, want %+v", i, e, sent[i])
		}
	}
}

func TestEventQueueTryRecvEmptyIsDistinguishable(t *testing.T) {
	q := NewEventQueue()
	e, ok := q.TryRecv()
	if ok {
		t.Fatalf("expected empty queue, got %+v", e)
	}
}

func TestEventQueueNoteOnBeforeNoteOffSameProducer(t *testing.T) {
	q := NewEventQueue()
	q.Send(Event{Kind: NoteOn, InstrumentID: 0, Note: 5})
	q.Send(Event{Kind: NoteOff, InstrumentID: 0, Note: 5})

	first, _ := q.TryRecv()
	second, _ := q.TryRecv()
	if first.Kind != NoteOn || second.Kind != NoteOff {
		t.Fatalf("expected NoteOn then NoteOff, got %v then %v", first.Kind, second.Kind)
	}
}

func TestEventQueueDropsOnFullRatherThanBlocking(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < eventQueueCapacity+10; i++ {
		q.Send(Event{Kind: Trigger, InstrumentID: i})
	}

	count := 0
	for {
		if _, ok := q.TryRecv(); !ok {
			break
		}
		count++
	}
	if count != eventQueueCapacity {
		t.Fatalf("expected exactly %d surviving events, got %d", eventQueueCapacity, count)
	}
}
