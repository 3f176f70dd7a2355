package events

import (
	"context"

	"go.uber.org/zap"
)

// Observer is a best-effort consumer of domain events: the audit mirror,
// the webhook notifier, the spreadsheet bridge, the live-push publisher.
type Observer interface {
	Name() string
	Notify(ctx context.Context, event Event) error
}

// Fanout delivers an event to every observer after the primary operation
// has committed. Each observer runs inside its own failure boundary: an
// error is logged and swallowed, and the remaining observers still run.
// The primary operation never learns about observer failures.
type Fanout struct {
	observers []Observer
	log       *zap.Logger
}

func NewFanout(log *zap.Logger, observers ...Observer) *Fanout {
	return &Fanout{observers: observers, log: log}
}

func (f *Fanout) Publish(ctx context.Context, event Event) {
	for _, o := range f.observers {
		if err := o.Notify(ctx, event); err != nil {
			f.log.Warn("observer failed",
				zap.String("observer", o.Name()),
				zap.String("event", event.Type),
				zap.Error(err))
		}
	}
}

// PublisherObserver adapts a stream Publisher to the Observer interface.
type PublisherObserver struct {
	publisher Publisher
	stream    string
}

func NewPublisherObserver(publisher Publisher, stream string) *PublisherObserver {
	return &PublisherObserver{publisher: publisher, stream: stream}
}

func (o *PublisherObserver) Name() string { return "stream:" + o.stream }

func (o *PublisherObserver) Notify(ctx context.Context, event Event) error {
	return o.publisher.Publish(ctx, o.stream, event)
}
