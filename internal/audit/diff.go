package audit

import (
	"encoding/json"
	"reflect"
	"sort"

	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

// DetectChanges compares two snapshots of the same logical record and
// returns one FieldChange per field of newRec whose structural value
// differs from oldRec. Excluded fields (ids, timestamps, secrets) and
// unchanged fields are omitted. A field missing from oldRec is reported
// as changed with a nil old value. Fields are emitted in sorted order so
// the diff is deterministic. Pure function, no I/O.
func DetectChanges(oldRec, newRec docstore.Document, excluded []string) []models.FieldChange {
	skip := make(map[string]bool, len(excluded))
	for _, f := range excluded {
		skip[f] = true
	}

	fields := make([]string, 0, len(newRec))
	for f := range newRec {
		if !skip[f] {
			fields = append(fields, f)
		}
	}
	sort.Strings(fields)

	var changes []models.FieldChange
	for _, f := range fields {
		oldVal := normalize(oldRec[f])
		newVal := normalize(newRec[f])
		if !reflect.DeepEqual(oldVal, newVal) {
			changes = append(changes, models.FieldChange{
				Field:    f,
				OldValue: oldVal,
				NewValue: newVal,
			})
		}
	}
	return changes
}

// normalize reduces a value to its JSON shape so that equivalent nested
// structures compare equal regardless of their Go representation.
func normalize(v any) any {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return v
	}
	return out
}
