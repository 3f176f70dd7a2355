package repositories

import "errors"

// ErrNotOwned marks access to a record that belongs to someone else.
// Handlers map it to a not-found response to avoid leaking existence.
var ErrNotOwned = errors.New("record not owned by caller")
