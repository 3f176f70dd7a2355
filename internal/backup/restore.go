package backup

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidSnapshot rejects a snapshot before anything is written.
// Every other restore error means the store may be in a mixed state.
var ErrInvalidSnapshot = errors.New("invalid backup: missing collections")

// Restorer writes a snapshot back into the store. Restore is
// schema-agnostic: documents go in verbatim, original ids included, even
// if they predate the current model shapes. That is deliberate — it
// keeps old snapshots usable after a lossy migration.
type Restorer struct {
	store DocumentStore
	audit *audit.Service
	log   *zap.Logger
}

func NewRestorer(store DocumentStore, auditSvc *audit.Service, log *zap.Logger) *Restorer {
	return &Restorer{store: store, audit: auditSvc, log: log}
}

// Restore applies each snapshot collection in turn: optional clear, then
// bulk insert when non-empty. Collections absent from the snapshot are
// left untouched. There is no cross-collection rollback: a failure on
// collection N leaves collections 1..N-1 already restored, and the error
// names the collection that failed.
func (r *Restorer) Restore(ctx context.Context, snap *models.BackupSnapshot, clearExisting bool, actor Actor) ([]string, error) {
	if snap == nil || snap.Collections == nil {
		return nil, ErrInvalidSnapshot
	}

	names := make([]string, 0, len(snap.Collections))
	for name := range snap.Collections {
		names = append(names, name)
	}
	sort.Strings(names)

	var restored []string
	for _, name := range names {
		docs := snap.Collections[name]

		if clearExisting {
			if _, err := r.store.DeleteAll(ctx, name); err != nil {
				return restored, fmt.Errorf("clear collection %s: %w", name, err)
			}
		}
		if len(docs) == 0 {
			continue
		}
		if err := r.store.InsertMany(ctx, name, docs); err != nil {
			return restored, fmt.Errorf("restore collection %s: %w", name, err)
		}
		restored = append(restored, name)
	}

	if r.audit != nil {
		r.audit.Record(ctx, models.ActivityLogEntry{
			Action:          models.ActionCreate,
			EntityType:      "Restore",
			EntityID:        snap.ID,
			EntityName:      "Database restore",
			PerformedBy:     actor.ID,
			PerformedByName: actor.Name,
			IPAddress:       actor.IPAddress,
			UserAgent:       actor.UserAgent,
			Metadata: map[string]any{
				"restoredCollections": restored,
				"clearExisting":       clearExisting,
				"snapshotVersion":     snap.Version,
				"snapshotTimestamp":   snap.Timestamp,
			},
		})
	}

	return restored, nil
}
