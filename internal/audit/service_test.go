package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

type fakeActivityStore struct {
	entries   []models.ActivityLogEntry
	insertErr error
	deleteErr error
}

func (f *fakeActivityStore) Insert(_ context.Context, entry *models.ActivityLogEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityStore) List(_ context.Context, _ repositories.ActivityFilter) ([]models.ActivityLogEntry, error) {
	return f.entries, nil
}

func (f *fakeActivityStore) DeleteAll(_ context.Context) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

func (f *fakeActivityStore) Analytics(_ context.Context, _ int) (*models.ActivityAnalytics, error) {
	return &models.ActivityAnalytics{Total: int64(len(f.entries))}, nil
}

func seededStore(n int) *fakeActivityStore {
	store := &fakeActivityStore{}
	for i := 0; i < n; i++ {
		store.entries = append(store.entries, models.ActivityLogEntry{
			Action:          models.ActionCreate,
			EntityType:      "Employee",
			PerformedBy:     "u1",
			PerformedByName: "Admin",
		})
	}
	return store
}

func TestPurgeReportsCountAndRecordsItself(t *testing.T) {
	store := seededStore(3)
	svc := NewService(store, zap.NewNop())

	deleted, err := svc.Purge(context.Background(), "u1", "Admin", "10.0.0.1", "cli")
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	if len(store.entries) != 1 {
		t.Fatalf("log has %d entries after purge, want exactly the purge record", len(store.entries))
	}
	record := store.entries[0]
	if record.Action != models.ActionDelete {
		t.Errorf("Action = %q, want %q", record.Action, models.ActionDelete)
	}
	if record.EntityType != "ActivityLog" {
		t.Errorf("EntityType = %q, want ActivityLog", record.EntityType)
	}
	if record.EntityID != "all" {
		t.Errorf("EntityID = %q, want all", record.EntityID)
	}
	if got := record.Metadata["deletedCount"]; got != int64(3) {
		t.Errorf("Metadata[deletedCount] = %v, want 3", got)
	}
	if record.PerformedBy != "u1" || record.PerformedByName != "Admin" {
		t.Errorf("performer = %s/%s, want u1/Admin", record.PerformedBy, record.PerformedByName)
	}
}

func TestPurgeEmptyLogStillRecordsItself(t *testing.T) {
	store := seededStore(0)
	svc := NewService(store, zap.NewNop())

	deleted, err := svc.Purge(context.Background(), "u1", "Admin", "", "")
	if err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
	if len(store.entries) != 1 {
		t.Errorf("log has %d entries, want 1 purge record", len(store.entries))
	}
}

func TestPurgeSurfacesDeleteFailure(t *testing.T) {
	store := seededStore(2)
	store.deleteErr = errors.New("store down")
	svc := NewService(store, zap.NewNop())

	if _, err := svc.Purge(context.Background(), "u1", "Admin", "", ""); err == nil {
		t.Error("expected error when wipe fails")
	}
	if len(store.entries) != 2 {
		t.Errorf("log mutated despite failed wipe: %d entries", len(store.entries))
	}
}

func TestRecordDropsEntryMissingMandatoryFields(t *testing.T) {
	store := seededStore(0)
	svc := NewService(store, zap.NewNop())

	svc.Record(context.Background(), models.ActivityLogEntry{
		Action:     models.ActionCreate,
		EntityType: "Employee",
		// no performer
	})

	if len(store.entries) != 0 {
		t.Errorf("entry without performer was stored: %v", store.entries)
	}
}

func TestRecordDefaultsNetworkContext(t *testing.T) {
	store := seededStore(0)
	svc := NewService(store, zap.NewNop())

	svc.Record(context.Background(), models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "Employee",
		PerformedBy:     "u1",
		PerformedByName: "Admin",
	})

	if len(store.entries) != 1 {
		t.Fatalf("entry not stored")
	}
	if store.entries[0].IPAddress != "unknown" || store.entries[0].UserAgent != "unknown" {
		t.Errorf("network context = %s/%s, want unknown/unknown",
			store.entries[0].IPAddress, store.entries[0].UserAgent)
	}
}

func TestRecordSwallowsInsertFailure(t *testing.T) {
	store := seededStore(0)
	store.insertErr = errors.New("store down")
	svc := NewService(store, zap.NewNop())

	// Must not panic or surface the error; Record has no return value.
	svc.Record(context.Background(), models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "Employee",
		PerformedBy:     "u1",
		PerformedByName: "Admin",
	})
}
