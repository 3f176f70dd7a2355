package audit

import (
	"testing"
	"time"

	"github.com/staffdesk/backend/internal/docstore"
)

func TestDetectChanges(t *testing.T) {
	tests := []struct {
		name     string
		oldRec   docstore.Document
		newRec   docstore.Document
		excluded []string
		want     []string // changed field names, in output order
	}{
		{
			name:   "single field changed",
			oldRec: docstore.Document{"name": "Ann", "department": "IT"},
			newRec: docstore.Document{"name": "Ann", "department": "HR"},
			want:   []string{"department"},
		},
		{
			name:   "multiple fields sorted",
			oldRec: docstore.Document{"name": "Ann", "department": "IT", "position": "tech"},
			newRec: docstore.Document{"name": "Bea", "department": "HR", "position": "tech"},
			want:   []string{"department", "name"},
		},
		{
			name:     "excluded fields omitted",
			oldRec:   docstore.Document{"name": "Ann", "updatedAt": "x"},
			newRec:   docstore.Document{"name": "Bea", "updatedAt": "y"},
			excluded: []string{"updatedAt"},
			want:     []string{"name"},
		},
		{
			name:   "field absent in old reported",
			oldRec: docstore.Document{"name": "Ann"},
			newRec: docstore.Document{"name": "Ann", "phone": "555"},
			want:   []string{"phone"},
		},
		{
			name:   "nested structures compared structurally",
			oldRec: docstore.Document{"tags": []string{"a", "b"}},
			newRec: docstore.Document{"tags": []any{"a", "b"}},
			want:   nil,
		},
		{
			name:   "nested structure changed",
			oldRec: docstore.Document{"tags": []any{"a", "b"}},
			newRec: docstore.Document{"tags": []any{"a", "c"}},
			want:   []string{"tags"},
		},
		{
			name:   "numeric types compare by value",
			oldRec: docstore.Document{"stock": 5},
			newRec: docstore.Document{"stock": float64(5)},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changes := DetectChanges(tt.oldRec, tt.newRec, tt.excluded)
			if len(changes) != len(tt.want) {
				t.Fatalf("got %d changes %v, want fields %v", len(changes), changes, tt.want)
			}
			for i, c := range changes {
				if c.Field != tt.want[i] {
					t.Errorf("change[%d].Field = %q, want %q", i, c.Field, tt.want[i])
				}
			}
		})
	}
}

func TestDetectChangesIdenticalRecords(t *testing.T) {
	rec := docstore.Document{
		"name":     "Ann",
		"stock":    12,
		"tags":     []any{"x", "y"},
		"hireDate": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"meta":     map[string]any{"a": 1, "b": []any{true, nil}},
	}
	if changes := DetectChanges(rec, rec, nil); len(changes) != 0 {
		t.Errorf("DetectChanges(x, x) = %v, want empty", changes)
	}
}

func TestDetectChangesOldNewValues(t *testing.T) {
	oldRec := docstore.Document{"department": "IT"}
	newRec := docstore.Document{"department": "HR"}

	changes := DetectChanges(oldRec, newRec, nil)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].OldValue != "IT" || changes[0].NewValue != "HR" {
		t.Errorf("change = %+v, want old IT new HR", changes[0])
	}
}

func TestDetectChangesMissingOldValueIsNil(t *testing.T) {
	changes := DetectChanges(docstore.Document{}, docstore.Document{"phone": "555"}, nil)
	if len(changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(changes))
	}
	if changes[0].OldValue != nil {
		t.Errorf("OldValue = %v, want nil", changes[0].OldValue)
	}
}
