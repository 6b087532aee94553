package simulator

import (
	"testing"
)

func TestEventQueueBasicOperations(t *testing.T) {
	q := NewEventQueue()

	t.Run("new queue is empty", func(t *testing.T) {
		if q.Len() != 0 {
			t.Errorf("Expected empty queue, got length %d", q.Len())
		}

		event := q.Pop()
		if event != nil {
			t.Error("Expected nil from empty queue")
		}
	})

	t.Run("push and pop single event", func(t *testing.T) {
		q := NewEventQueue()
		q.Push(NewProcessStartEvent(10.0, 1))

		if q.Len() != 1 {
			t.Errorf("Expected length 1, got %d", q.Len())
		}

		popped := q.Pop()
		if popped == nil {
			t.Fatal("Expected event, got nil")
		}
		if popped.Timestamp() != 10.0 {
			t.Errorf("Expected timestamp 10.0, got %.1f", popped.Timestamp())
		}
		if q.Len() != 0 {
			t.Errorf("Expected empty queue after pop, got length %d", q.Len())
		}
	})
}

func TestEventQueueOrdering(t *testing.T) {
	q := NewEventQueue()

	// Push events in non-chronological order
	for _, ts := range []float64{15.0, 5.0, 20.0, 1.0, 10.0} {
		q.Push(NewProcessStartEvent(ts, 1))
	}

	if q.Len() != 5 {
		t.Fatalf("Expected 5 events, got %d", q.Len())
	}

	expected := []float64{1.0, 5.0, 10.0, 15.0, 20.0}
	for i, want := range expected {
		event := q.Pop()
		if event == nil {
			t.Fatalf("Expected event at position %d, got nil", i)
		}
		if event.Timestamp() != want {
			t.Errorf("At position %d: expected timestamp %.1f, got %.1f",
				i, want, event.Timestamp())
		}
	}
}

func TestEventQueuePeek(t *testing.T) {
	t.Run("peek empty queue", func(t *testing.T) {
		q := NewEventQueue()
		if q.Peek() != nil {
			t.Error("Expected nil from empty queue")
		}
	})

	t.Run("peek does not remove event", func(t *testing.T) {
		q := NewEventQueue()
		q.Push(NewProcessStartEvent(10.0, 1))
		q.Push(NewProcessStartEvent(5.0, 2))

		for i := 0; i < 3; i++ {
			event := q.Peek()
			if event == nil {
				t.Fatalf("Peek %d: expected event, got nil", i)
			}
			if event.Timestamp() != 5.0 {
				t.Errorf("Peek %d: expected timestamp 5.0, got %.1f", i, event.Timestamp())
			}
			if q.Len() != 2 {
				t.Errorf("Peek %d: expected length 2, got %d", i, q.Len())
			}
		}

		popped := q.Pop()
		if popped == nil || popped.Timestamp() != 5.0 {
			t.Error("Pop after peek should return same event")
		}
	})
}

// Events carrying the same timestamp must come out in insertion order; this
// is what keeps runs reproducible.
func TestEventQueueSameTimestampInsertionOrder(t *testing.T) {
	q := NewEventQueue()

	for pid := 1; pid <= 5; pid++ {
		q.Push(NewProcessStartEvent(10.0, pid))
	}
	// An earlier event between the ties must not disturb their order
	q.Push(NewProcessStartEvent(1.0, 99))

	first := q.Pop()
	if first.(*ProcessStartEvent).PID() != 99 {
		t.Fatalf("Expected PID 99 first, got %d", first.(*ProcessStartEvent).PID())
	}

	for pid := 1; pid <= 5; pid++ {
		event := q.Pop().(*ProcessStartEvent)
		if event.PID() != pid {
			t.Errorf("Expected PID %d, got %d", pid, event.PID())
		}
	}
}

func TestEventQueueDifferentEventTypes(t *testing.T) {
	q := NewEventQueue()
	req := &Request{PID: 1, Sector: 1250, Kind: RequestRead}

	q.Push(NewProcessStartEvent(10.0, 1))
	q.Push(NewSeekCompleteEvent(5.0, req))
	q.Push(NewProcessTerminatedEvent(15.0, 1))
	q.Push(NewCacheMissEvent(8.0, 1, 1250))

	timestamps := []float64{5.0, 8.0, 10.0, 15.0}
	kinds := []EventKind{EventSeekComplete, EventCacheMiss, EventProcessStart, EventProcessTerminated}

	for i := range timestamps {
		event := q.Pop()
		if event == nil {
			t.Fatalf("Expected event at position %d, got nil", i)
		}
		if event.Timestamp() != timestamps[i] {
			t.Errorf("Position %d: expected timestamp %.1f, got %.1f",
				i, timestamps[i], event.Timestamp())
		}
		if event.Kind() != kinds[i] {
			t.Errorf("Position %d: expected kind %s, got %s",
				i, kinds[i], event.Kind())
		}
	}
}

func TestEventQueueStressTest(t *testing.T) {
	q := NewEventQueue()

	n := 1000
	for i := 0; i < n; i++ {
		q.Push(NewProcessStartEvent(float64((i*7)%n), 1))
	}

	if q.Len() != n {
		t.Fatalf("Expected %d events, got %d", n, q.Len())
	}

	lastTimestamp := -1.0
	for i := 0; i < n; i++ {
		event := q.Pop()
		if event == nil {
			t.Fatalf("Expected event at position %d, got nil", i)
		}
		if event.Timestamp() < lastTimestamp {
			t.Errorf("Order violation at position %d: %.1f < %.1f",
				i, event.Timestamp(), lastTimestamp)
		}
		lastTimestamp = event.Timestamp()
	}
}
