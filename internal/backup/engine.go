package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/events"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

// DocumentStore is the slice of the document store the backup and
// restore engines need: name discovery, full reads, wipes and verbatim
// bulk writes.
type DocumentStore interface {
	Collections(ctx context.Context) ([]string, error)
	FindAll(ctx context.Context, collection string) ([]docstore.Document, error)
	DeleteAll(ctx context.Context, collection string) (int64, error)
	InsertMany(ctx context.Context, collection string, docs []docstore.Document) error
}

// SnapshotHistory persists snapshot records for the history endpoint.
type SnapshotHistory interface {
	Insert(ctx context.Context, snap *models.BackupSnapshot) error
	List(ctx context.Context, f repositories.SnapshotFilter) ([]models.SnapshotInfo, error)
}

// Actor identifies who triggered a backup or restore.
type Actor = audit.Actor

type CreateOptions struct {
	ScheduleID  string
	IsAutomatic bool
}

// Engine produces full-store snapshots. Collections are discovered at
// run time, so new entity types are picked up without code changes.
// Each collection is read in one pass with no cross-collection
// transaction: a snapshot is only consistent per collection as of the
// moment that collection was read.
type Engine struct {
	store     DocumentStore
	snapshots SnapshotHistory
	audit     *audit.Service
	observers *events.Fanout
	log       *zap.Logger
}

func NewEngine(
	store DocumentStore,
	snapshots SnapshotHistory,
	auditSvc *audit.Service,
	observers *events.Fanout,
	log *zap.Logger,
) *Engine {
	return &Engine{
		store:     store,
		snapshots: snapshots,
		audit:     auditSvc,
		observers: observers,
		log:       log,
	}
}

// Create captures every collection. A store failure during enumeration
// or reading aborts with no partial snapshot. History persistence is
// best-effort: the snapshot is also handed back to the caller for
// client-side download, so a failed history write only costs the
// history row.
func (e *Engine) Create(ctx context.Context, actor Actor, opts CreateOptions) (*models.BackupSnapshot, error) {
	names, err := e.store.Collections(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerate collections: %w", err)
	}

	collections := make(map[string][]docstore.Document, len(names))
	totalDocuments := 0
	for _, name := range names {
		docs, err := e.store.FindAll(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("read collection %s: %w", name, err)
		}
		collections[name] = docs
		totalDocuments += len(docs)
	}

	snap := &models.BackupSnapshot{
		ID:            uuid.New().String(),
		Version:       models.SnapshotVersion,
		Timestamp:     time.Now().UTC(),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		Collections:   collections,
		IsAutomatic:   opts.IsAutomatic,
		ScheduleID:    opts.ScheduleID,
		Status:        models.BackupStatusCompleted,
		Metadata: models.BackupMetadata{
			TotalCollections: len(names),
			TotalDocuments:   totalDocuments,
		},
	}

	if err := e.snapshots.Insert(ctx, snap); err != nil {
		e.log.Error("snapshot history write failed, returning in-memory snapshot",
			zap.String("snapshot_id", snap.ID),
			zap.Error(err))
	}

	if e.audit != nil {
		e.audit.Record(ctx, models.ActivityLogEntry{
			Action:          models.ActionCreate,
			EntityType:      "Backup",
			EntityID:        snap.ID,
			EntityName:      fmt.Sprintf("Backup %s", snap.Timestamp.Format(time.RFC3339)),
			PerformedBy:     actor.ID,
			PerformedByName: actor.Name,
			IPAddress:       actor.IPAddress,
			UserAgent:       actor.UserAgent,
			Metadata: map[string]any{
				"totalCollections": snap.Metadata.TotalCollections,
				"totalDocuments":   snap.Metadata.TotalDocuments,
				"isAutomatic":      opts.IsAutomatic,
			},
		})
	}

	if e.observers != nil {
		e.observers.Publish(ctx, events.Event{
			Type: events.EventBackupCompleted,
			Payload: map[string]any{
				"snapshotId":       snap.ID,
				"totalCollections": snap.Metadata.TotalCollections,
				"totalDocuments":   snap.Metadata.TotalDocuments,
				"isAutomatic":      opts.IsAutomatic,
			},
		})
	}

	return snap, nil
}

// History lists persisted snapshot metadata, never payloads.
func (e *Engine) History(ctx context.Context, f repositories.SnapshotFilter) ([]models.SnapshotInfo, error) {
	return e.snapshots.List(ctx, f)
}
