package models

import "time"

// Activity actions
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionLogin   = "login"
	ActionLogout  = "logout"
	ActionView    = "view"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

func IsValidAction(a string) bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionLogin,
		ActionLogout, ActionView, ActionApprove, ActionReject:
		return true
	}
	return false
}

// FieldChange is one before/after pair in an update diff.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue any    `json:"oldValue"`
	NewValue any    `json:"newValue"`
}

// ActivityLogEntry is append-only: once written it is never mutated, and
// the only delete path is the admin bulk purge, which itself writes a
// purge entry.
type ActivityLogEntry struct {
	ID              string         `json:"id,omitempty"`
	Action          string         `json:"action"`
	EntityType      string         `json:"entityType"`
	EntityID        string         `json:"entityId,omitempty"`
	EntityName      string         `json:"entityName,omitempty"`
	PerformedBy     string         `json:"performedBy"`
	PerformedByName string         `json:"performedByName"`
	Changes         []FieldChange  `json:"changes,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	IPAddress       string         `json:"ipAddress,omitempty"`
	UserAgent       string         `json:"userAgent,omitempty"`
	CreatedAt       string         `json:"createdAt,omitempty"`
}

// ActivityAnalytics aggregates the log for the reporting endpoint.
type ActivityAnalytics struct {
	Total        int64            `json:"total"`
	ByAction     map[string]int64 `json:"byAction"`
	ByEntityType map[string]int64 `json:"byEntityType"`
	TopActors    []ActorCount     `json:"topActors"`
	DailyTrend   []DayCount       `json:"dailyTrend"`
	HourlyCounts []HourCount      `json:"hourlyCounts"`
	TopEntities  []EntityCount    `json:"topEntities"`
}

type ActorCount struct {
	PerformedBy     string `json:"performedBy"`
	PerformedByName string `json:"performedByName"`
	Count           int64  `json:"count"`
}

type DayCount struct {
	Day   time.Time `json:"day"`
	Count int64     `json:"count"`
}

type HourCount struct {
	Hour  int   `json:"hour"`
	Count int64 `json:"count"`
}

type EntityCount struct {
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	EntityName string `json:"entityName"`
	Count      int64  `json:"count"`
}
