package audit

import (
	"context"
	"fmt"

	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

// Actor carries the acting principal plus best-effort request network
// context into audit entries.
type Actor struct {
	ID        string
	Name      string
	IPAddress string
	UserAgent string
}

// ActivityStore is the slice of the activity repository the service
// needs. *repositories.ActivityRepo satisfies it.
type ActivityStore interface {
	Insert(ctx context.Context, entry *models.ActivityLogEntry) error
	List(ctx context.Context, f repositories.ActivityFilter) ([]models.ActivityLogEntry, error)
	DeleteAll(ctx context.Context) (int64, error)
	Analytics(ctx context.Context, trendDays int) (*models.ActivityAnalytics, error)
}

// Service owns the append-only activity log. Record is best-effort by
// design: the primary operation has already committed when it runs, so
// a failed audit write is logged for operators and swallowed.
type Service struct {
	repo ActivityStore
	log  *zap.Logger
}

func NewService(repo ActivityStore, log *zap.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Record appends one entry. Missing mandatory fields make the entry
// undiagnosable later, so those are the only failures surfaced.
func (s *Service) Record(ctx context.Context, entry models.ActivityLogEntry) {
	if entry.Action == "" || entry.EntityType == "" || entry.PerformedBy == "" || entry.PerformedByName == "" {
		s.log.Warn("activity entry dropped, mandatory field missing",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType))
		return
	}
	if entry.IPAddress == "" {
		entry.IPAddress = "unknown"
	}
	if entry.UserAgent == "" {
		entry.UserAgent = "unknown"
	}

	if err := s.repo.Insert(ctx, &entry); err != nil {
		s.log.Error("activity log write failed",
			zap.String("action", entry.Action),
			zap.String("entity_type", entry.EntityType),
			zap.Error(err))
	}
}

func (s *Service) List(ctx context.Context, f repositories.ActivityFilter) ([]models.ActivityLogEntry, error) {
	return s.repo.List(ctx, f)
}

// Purge deletes every entry, then writes exactly one entry documenting
// the purge with the pre-deletion count. A reader who queries after the
// purge never sees an empty log.
func (s *Service) Purge(ctx context.Context, actorID, actorName, ip, userAgent string) (int64, error) {
	deleted, err := s.repo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("purge activity log: %w", err)
	}

	record := models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "ActivityLog",
		EntityID:        "all",
		EntityName:      "Activity log",
		PerformedBy:     actorID,
		PerformedByName: actorName,
		Metadata:        map[string]any{"deletedCount": deleted},
		IPAddress:       ip,
		UserAgent:       userAgent,
	}
	if err := s.repo.Insert(ctx, &record); err != nil {
		return deleted, fmt.Errorf("record purge entry: %w", err)
	}

	return deleted, nil
}

func (s *Service) Analytics(ctx context.Context, trendDays int) (*models.ActivityAnalytics, error) {
	return s.repo.Analytics(ctx, trendDays)
}
