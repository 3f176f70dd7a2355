package events

import "context"

// Event types
const (
	EventEntityCreated    = "entity_created"
	EventEntityUpdated    = "entity_updated"
	EventEntityDeleted    = "entity_deleted"
	EventLeaveDecided     = "leave_decided"
	EventStockLow         = "stock_low"
	EventBackupCompleted  = "backup_completed"
	EventRestoreCompleted = "restore_completed"
)

// StreamDomain carries every domain event; the websocket hub subscribes
// to it.
const StreamDomain = "events:domain"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
