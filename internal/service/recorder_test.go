package service

import (
	"context"
	"testing"
	"time"

	"github.com/enerlink/enerlink/internal/models"
)

func TestRecorder_ProcessesJob(t *testing.T) {
	store := &mockActivityStore{}
	r := NewRecorder(store, testLog(), 10)

	ctx, cancel := context.WithCancel(context.Background())
	go r.Run(ctx)

	clientID := "c1"
	r.Enqueue(&RecordJob{
		Actor:       testActor(),
		ClientID:    &clientID,
		EventKind:   models.EventCreation,
		EntityKind:  models.EntityClient,
		EntityID:    "c1",
		EntityLabel: "Acme",
	})

	time.Sleep(50 * time.Millisecond)
	cancel()

	inserted := store.getInserted()
	if len(inserted) != 1 {
		t.Fatalf("expected 1 inserted entry, got %d", len(inserted))
	}

	e := inserted[0]
	if e.EventKind != models.EventCreation {
		t.Errorf("EventKind = %q, want %q", e.EventKind, models.EventCreation)
	}
	if e.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", e.UserID)
	}
	if e.EntityLabel != "Acme" {
		t.Errorf("EntityLabel = %q, want Acme", e.EntityLabel)
	}
}

func TestRecorder_DropsWhenFull(t *testing.T) {
	store := &mockActivityStore{}

	// Queue size 2, don't start the worker so it can't drain.
	r := NewRecorder(store, testLog(), 2)

	r.Enqueue(&RecordJob{EventKind: models.EventEdit})
	r.Enqueue(&RecordJob{EventKind: models.EventEdit})

	// This should be dropped (non-blocking).
	done := make(chan struct{})
	go func() {
		r.Enqueue(&RecordJob{EventKind: models.EventEdit})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
}

func TestRecorder_DrainsOnShutdown(t *testing.T) {
	store := &mockActivityStore{}
	r := NewRecorder(store, testLog(), 10)

	for i := 0; i < 5; i++ {
		r.Enqueue(&RecordJob{EventKind: models.EventEdit, EntityKind: models.EntityClient, EntityID: "x"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if got := len(store.getInserted()); got != 5 {
		t.Errorf("drained entries = %d, want 5", got)
	}
}
