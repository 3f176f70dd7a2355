package backup

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"testing"

	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

type fakeStore struct {
	collections map[string][]docstore.Document
	readErr     error
	writeErr    error
	cleared     []string
}

func (f *fakeStore) Collections(_ context.Context) ([]string, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeStore) FindAll(_ context.Context, collection string) ([]docstore.Document, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.collections[collection], nil
}

func (f *fakeStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	n := int64(len(f.collections[collection]))
	f.cleared = append(f.cleared, collection)
	delete(f.collections, collection)
	return n, nil
}

func (f *fakeStore) InsertMany(_ context.Context, collection string, docs []docstore.Document) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.collections == nil {
		f.collections = map[string][]docstore.Document{}
	}
	f.collections[collection] = append(f.collections[collection], docs...)
	return nil
}

type fakeHistory struct {
	inserted []*models.BackupSnapshot
	err      error
}

func (h *fakeHistory) Insert(_ context.Context, snap *models.BackupSnapshot) error {
	if h.err != nil {
		return h.err
	}
	h.inserted = append(h.inserted, snap)
	return nil
}

func (h *fakeHistory) List(_ context.Context, _ repositories.SnapshotFilter) ([]models.SnapshotInfo, error) {
	return nil, nil
}

func docs(n int) []docstore.Document {
	out := make([]docstore.Document, n)
	for i := range out {
		out[i] = docstore.Document{"id": fmt.Sprintf("doc-%d", i), "n": float64(i)}
	}
	return out
}

func TestEngineCreateComputesTotals(t *testing.T) {
	store := &fakeStore{collections: map[string][]docstore.Document{
		"users":  docs(3),
		"leaves": docs(5),
	}}
	engine := NewEngine(store, &fakeHistory{}, nil, nil, zap.NewNop())

	snap, err := engine.Create(context.Background(), Actor{ID: "u1", Name: "Admin"}, CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if snap.Metadata.TotalCollections != 2 {
		t.Errorf("TotalCollections = %d, want 2", snap.Metadata.TotalCollections)
	}
	if snap.Metadata.TotalDocuments != 8 {
		t.Errorf("TotalDocuments = %d, want 8", snap.Metadata.TotalDocuments)
	}
	if len(snap.Collections["users"]) != 3 || len(snap.Collections["leaves"]) != 5 {
		t.Errorf("collection sizes = %d/%d, want 3/5",
			len(snap.Collections["users"]), len(snap.Collections["leaves"]))
	}
	if snap.Status != models.BackupStatusCompleted {
		t.Errorf("Status = %q, want %q", snap.Status, models.BackupStatusCompleted)
	}
	if snap.Version != models.SnapshotVersion {
		t.Errorf("Version = %q, want %q", snap.Version, models.SnapshotVersion)
	}
}

func TestEngineCreateAbortsOnStoreError(t *testing.T) {
	store := &fakeStore{readErr: errors.New("store down")}
	engine := NewEngine(store, &fakeHistory{}, nil, nil, zap.NewNop())

	snap, err := engine.Create(context.Background(), Actor{}, CreateOptions{})
	if err == nil {
		t.Fatal("expected error when store is unavailable")
	}
	if snap != nil {
		t.Errorf("got partial snapshot %v, want nil", snap)
	}
}

func TestEngineCreateSurvivesHistoryFailure(t *testing.T) {
	store := &fakeStore{collections: map[string][]docstore.Document{"users": docs(1)}}
	engine := NewEngine(store, &fakeHistory{err: errors.New("history down")}, nil, nil, zap.NewNop())

	snap, err := engine.Create(context.Background(), Actor{}, CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if snap == nil || snap.Metadata.TotalDocuments != 1 {
		t.Errorf("snapshot not returned despite history failure: %v", snap)
	}
}

func TestRestoreRejectsMissingCollections(t *testing.T) {
	restorer := NewRestorer(&fakeStore{}, nil, zap.NewNop())

	if _, err := restorer.Restore(context.Background(), &models.BackupSnapshot{}, false, Actor{}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("snapshot without collections: err = %v, want ErrInvalidSnapshot", err)
	}
	if _, err := restorer.Restore(context.Background(), nil, false, Actor{}); !errors.Is(err, ErrInvalidSnapshot) {
		t.Errorf("nil snapshot: err = %v, want ErrInvalidSnapshot", err)
	}
}

func TestRestoreStoreFailureIsNotValidation(t *testing.T) {
	target := &fakeStore{writeErr: errors.New("store down")}
	restorer := NewRestorer(target, nil, zap.NewNop())

	snap := &models.BackupSnapshot{
		Collections: map[string][]docstore.Document{"users": docs(1)},
	}

	_, err := restorer.Restore(context.Background(), snap, false, Actor{})
	if err == nil {
		t.Fatal("expected error when store rejects writes")
	}
	if errors.Is(err, ErrInvalidSnapshot) {
		t.Error("mid-restore store failure must not look like snapshot validation")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	source := &fakeStore{collections: map[string][]docstore.Document{
		"users":     docs(3),
		"inventory": docs(2),
	}}
	engine := NewEngine(source, &fakeHistory{}, nil, nil, zap.NewNop())

	snap, err := engine.Create(context.Background(), Actor{}, CreateOptions{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	target := &fakeStore{collections: map[string][]docstore.Document{
		"users": docs(1), // stale data to be cleared
	}}
	restorer := NewRestorer(target, nil, zap.NewNop())

	restored, err := restorer.Restore(context.Background(), snap, true, Actor{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	wantRestored := []string{"inventory", "users"}
	if !reflect.DeepEqual(restored, wantRestored) {
		t.Errorf("restored = %v, want %v", restored, wantRestored)
	}
	for name, want := range source.collections {
		if !reflect.DeepEqual(target.collections[name], want) {
			t.Errorf("collection %s = %v, want %v", name, target.collections[name], want)
		}
	}
}

func TestRestoreSkipsEmptyCollections(t *testing.T) {
	target := &fakeStore{collections: map[string][]docstore.Document{}}
	restorer := NewRestorer(target, nil, zap.NewNop())

	snap := &models.BackupSnapshot{
		Collections: map[string][]docstore.Document{
			"users":  docs(2),
			"leaves": {},
		},
	}

	restored, err := restorer.Restore(context.Background(), snap, false, Actor{})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if !reflect.DeepEqual(restored, []string{"users"}) {
		t.Errorf("restored = %v, want [users]", restored)
	}
	if _, ok := target.collections["leaves"]; ok {
		t.Error("empty snapshot collection should not be created")
	}
}

func TestRestoreWithoutClearKeepsExisting(t *testing.T) {
	target := &fakeStore{collections: map[string][]docstore.Document{
		"users": {docstore.Document{"id": "existing"}},
	}}
	restorer := NewRestorer(target, nil, zap.NewNop())

	snap := &models.BackupSnapshot{
		Collections: map[string][]docstore.Document{
			"users": {docstore.Document{"id": "restored"}},
		},
	}

	if _, err := restorer.Restore(context.Background(), snap, false, Actor{}); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(target.cleared) != 0 {
		t.Errorf("cleared collections %v, want none", target.cleared)
	}
	if len(target.collections["users"]) != 2 {
		t.Errorf("users has %d docs, want 2 (existing + restored)", len(target.collections["users"]))
	}
}
