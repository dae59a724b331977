package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/weekplan/pkg/task"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsTaskChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	tk := &task.Task{Name: "hello", Anchor: task.DateOf(time.Now()), Start: "09:00", End: "10:00"}
	if err := p.Store(tk); err != nil {
		t.Fatalf("store task: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventTasksChanged || evt.Type == EventInvalidated {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for task change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	th := newEventThrottle(10 * time.Millisecond)
	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }

	for i := 0; i < 5; i++ {
		th.Enqueue(Event{Type: EventTasksChanged}, send)
	}
	select {
	case ev := <-got:
		if ev.Type != EventTasksChanged {
			t.Fatalf("unexpected event %s", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flush")
	}
	time.Sleep(30 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("expected a single coalesced event, got %d more", len(got))
	}
}

func TestEventThrottleStopSuppressesFlush(t *testing.T) {
	th := newEventThrottle(5 * time.Millisecond)
	got := make(chan Event, 1)
	th.Enqueue(Event{Type: EventInvalidated}, func(ev Event) { got <- ev })
	th.Stop()
	time.Sleep(20 * time.Millisecond)
	if len(got) != 0 {
		t.Fatalf("expected no events after stop")
	}
}
