package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/staffdesk/backend/internal/backup"
	"github.com/staffdesk/backend/internal/docstore"
	"go.uber.org/zap"
)

type fakeRestoreStore struct {
	collections map[string][]docstore.Document
	writeErr    error
}

func (f *fakeRestoreStore) Collections(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for name := range f.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeRestoreStore) FindAll(_ context.Context, collection string) ([]docstore.Document, error) {
	return f.collections[collection], nil
}

func (f *fakeRestoreStore) DeleteAll(_ context.Context, collection string) (int64, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	n := int64(len(f.collections[collection]))
	delete(f.collections, collection)
	return n, nil
}

func (f *fakeRestoreStore) InsertMany(_ context.Context, collection string, docs []docstore.Document) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.collections == nil {
		f.collections = map[string][]docstore.Document{}
	}
	f.collections[collection] = append(f.collections[collection], docs...)
	return nil
}

func restoreApp(store *fakeRestoreStore) *fiber.App {
	log := zap.NewNop()
	restorer := backup.NewRestorer(store, nil, log)
	handler := NewBackupHandler(nil, restorer, nil, nil, nil, log)

	app := fiber.New()
	app.Post("/restore", handler.Restore)
	return app
}

func TestRestoreHandlerAppliesInlineSnapshot(t *testing.T) {
	store := &fakeRestoreStore{collections: map[string][]docstore.Document{}}
	app := restoreApp(store)

	body := `{"backup":{"version":"1.0","collections":{"users":[{"id":"u-1"}]}},"clearExisting":false}`
	req := httptest.NewRequest("POST", "/restore", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var out struct {
		OK   bool `json:"ok"`
		Data struct {
			RestoredCollections []string `json:"restoredCollections"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !out.OK || len(out.Data.RestoredCollections) != 1 || out.Data.RestoredCollections[0] != "users" {
		t.Errorf("response = %s", raw)
	}
	if len(store.collections["users"]) != 1 {
		t.Errorf("users collection = %v, want one document", store.collections["users"])
	}
}

func TestRestoreHandlerEmptyBodyReachesValidation(t *testing.T) {
	app := restoreApp(&fakeRestoreStore{})

	// No body and no content type: the request must fail snapshot
	// validation, not body parsing.
	req := httptest.NewRequest("POST", "/restore", nil)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), backup.ErrInvalidSnapshot.Error()) {
		t.Errorf("body = %s, want snapshot validation error", raw)
	}
}

func TestRestoreHandlerStoreFailureIsServerError(t *testing.T) {
	store := &fakeRestoreStore{writeErr: errors.New("store down")}
	app := restoreApp(store)

	body := `{"backup":{"version":"1.0","collections":{"users":[{"id":"u-1"}]}},"clearExisting":true}`
	req := httptest.NewRequest("POST", "/restore", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for a mid-restore store failure", resp.StatusCode)
	}
}
