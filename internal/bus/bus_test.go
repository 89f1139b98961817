package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("lead.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindLeadCreated, Timestamp: time.Now(), Payload: LeadRef{ID: 1}})

	select {
	case evt := <-ch:
		if evt.Kind != KindLeadCreated {
			t.Errorf("got kind %q, want %q", evt.Kind, KindLeadCreated)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("import.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindLeadDeleted})
	b.Publish(Event{Kind: KindImportFinished})

	select {
	case evt := <-ch:
		if evt.Kind != KindImportFinished {
			t.Errorf("got kind %q, want %q", evt.Kind, KindImportFinished)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// Ensure the lead event was not delivered.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected: no more events.
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("lead.", 10)
	unsub()

	b.Publish(Event{Kind: KindLeadUpdated})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected.
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("lead.", 1)
	defer unsub()

	// Fill buffer.
	b.Publish(Event{Kind: KindLeadCreated})
	// This should be dropped (non-blocking).
	b.Publish(Event{Kind: KindLeadUpdated})

	evt := <-ch
	if evt.Kind != KindLeadCreated {
		t.Errorf("got %q, want %q", evt.Kind, KindLeadCreated)
	}
}
