package models

import (
	"time"

	"github.com/staffdesk/backend/internal/docstore"
)

// SnapshotVersion tags the snapshot wire format.
const SnapshotVersion = "1.0"

// Backup statuses
const (
	BackupStatusCompleted  = "completed"
	BackupStatusFailed     = "failed"
	BackupStatusInProgress = "in-progress"
)

// Schedule frequencies
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

func IsValidFrequency(f string) bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// BackupSnapshot is a full point-in-time export of every collection. Once
// completed it is immutable. Collections holds documents verbatim, so a
// snapshot survives schema changes on both the backup and restore side.
type BackupSnapshot struct {
	ID            string                           `json:"id,omitempty"`
	Version       string                           `json:"version"`
	Timestamp     time.Time                        `json:"timestamp"`
	CreatedBy     string                           `json:"createdBy,omitempty"`
	CreatedByName string                           `json:"createdByName,omitempty"`
	Collections   map[string][]docstore.Document   `json:"collections"`
	IsAutomatic   bool                             `json:"isAutomatic"`
	ScheduleID    string                           `json:"scheduleId,omitempty"`
	Status        string                           `json:"status"`
	Metadata      BackupMetadata                   `json:"metadata"`
}

type BackupMetadata struct {
	TotalCollections int `json:"totalCollections"`
	TotalDocuments   int `json:"totalDocuments"`
}

// SnapshotInfo is a history row: snapshot metadata without the payload.
type SnapshotInfo struct {
	ID               string    `json:"id"`
	Version          string    `json:"version"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatedByName    string    `json:"createdByName,omitempty"`
	IsAutomatic      bool      `json:"isAutomatic"`
	ScheduleID       string    `json:"scheduleId,omitempty"`
	Status           string    `json:"status"`
	TotalCollections int       `json:"totalCollections"`
	TotalDocuments   int       `json:"totalDocuments"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BackupSchedule describes when a backup should next run. There is no
// embedded executor: an external invoker polls NextRun and calls the
// backup endpoint.
type BackupSchedule struct {
	ID            string     `json:"id,omitempty"`
	Frequency     string     `json:"frequency"`
	Time          string     `json:"time"` // HH:MM wall clock
	DayOfWeek     *int       `json:"dayOfWeek,omitempty"`
	DayOfMonth    *int       `json:"dayOfMonth,omitempty"`
	IsActive      bool       `json:"isActive"`
	NextRun       *time.Time `json:"nextRun,omitempty"`
	LastRun       *time.Time `json:"lastRun,omitempty"`
	RetentionDays int        `json:"retentionDays,omitempty"`
	Collections   []string   `json:"collections,omitempty"`
	CreatedBy     string     `json:"createdBy,omitempty"`
	CreatedAt     string     `json:"createdAt,omitempty"`
	UpdatedAt     string     `json:"updatedAt,omitempty"`
}
