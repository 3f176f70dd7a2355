package events

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type recordingObserver struct {
	name   string
	err    error
	events []Event
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Notify(_ context.Context, e Event) error {
	o.events = append(o.events, e)
	return o.err
}

func TestFanoutDeliversToAllObservers(t *testing.T) {
	a := &recordingObserver{name: "a"}
	b := &recordingObserver{name: "b"}
	f := NewFanout(zap.NewNop(), a, b)

	f.Publish(context.Background(), Event{Type: EventEntityCreated})

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("observers got %d/%d events, want 1/1", len(a.events), len(b.events))
	}
}

func TestFanoutIsolatesFailures(t *testing.T) {
	failing := &recordingObserver{name: "failing", err: errors.New("boom")}
	after := &recordingObserver{name: "after"}
	f := NewFanout(zap.NewNop(), failing, after)

	f.Publish(context.Background(), Event{Type: EventStockLow})

	if len(after.events) != 1 {
		t.Errorf("observer after a failing one got %d events, want 1", len(after.events))
	}
}

func TestFanoutWithNoObservers(t *testing.T) {
	f := NewFanout(zap.NewNop())
	// Must not panic.
	f.Publish(context.Background(), Event{Type: EventBackupCompleted})
}
