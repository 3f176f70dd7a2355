package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

// scheduleDiffExcluded: bookkeeping fields that should not show up in a
// schedule's audit diff.
var scheduleDiffExcluded = []string{"id", "createdAt", "updatedAt", "nextRun", "lastRun"}

// ScheduleService manages backup schedules. NextRun is recomputed on
// every relevant mutation and on every read of an active schedule; it is
// never trusted from storage.
type ScheduleService struct {
	repo  *repositories.ScheduleRepo
	audit *audit.Service
	log   *zap.Logger
	now   func() time.Time
}

func NewScheduleService(repo *repositories.ScheduleRepo, auditSvc *audit.Service, log *zap.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, audit: auditSvc, log: log, now: time.Now}
}

func (s *ScheduleService) Create(ctx context.Context, actor Actor, schedule *models.BackupSchedule) error {
	if err := ValidateSchedule(*schedule); err != nil {
		return err
	}

	schedule.CreatedBy = actor.ID
	if schedule.IsActive {
		next, err := NextRun(*schedule, s.now())
		if err != nil {
			return err
		}
		schedule.NextRun = &next
	}

	if err := s.repo.Create(ctx, schedule); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "BackupSchedule",
		EntityID:        schedule.ID,
		EntityName:      fmt.Sprintf("%s backup at %s", schedule.Frequency, schedule.Time),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}

// List recomputes nextRun per read for active schedules; inactive ones
// report no nextRun.
func (s *ScheduleService) List(ctx context.Context) ([]models.BackupSchedule, error) {
	schedules, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range schedules {
		if !schedules[i].IsActive {
			schedules[i].NextRun = nil
			continue
		}
		next, err := NextRun(schedules[i], now)
		if err != nil {
			s.log.Warn("next run computation failed",
				zap.String("schedule_id", schedules[i].ID),
				zap.Error(err))
			schedules[i].NextRun = nil
			continue
		}
		schedules[i].NextRun = &next
	}
	return schedules, nil
}

func (s *ScheduleService) GetByID(ctx context.Context, id uuid.UUID) (*models.BackupSchedule, error) {
	return s.repo.GetByID(ctx, id)
}

type ScheduleUpdate struct {
	Frequency     *string
	Time          *string
	DayOfWeek     *int
	DayOfMonth    *int
	IsActive      *bool
	RetentionDays *int
	Collections   []string
}

func (s *ScheduleService) Update(ctx context.Context, id uuid.UUID, actor Actor, u ScheduleUpdate) (*models.BackupSchedule, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	timingChanged := false
	if u.Frequency != nil && *u.Frequency != updated.Frequency {
		updated.Frequency = *u.Frequency
		timingChanged = true
	}
	if u.Time != nil && *u.Time != updated.Time {
		updated.Time = *u.Time
		timingChanged = true
	}
	if u.DayOfWeek != nil {
		updated.DayOfWeek = u.DayOfWeek
		timingChanged = true
	}
	if u.DayOfMonth != nil {
		updated.DayOfMonth = u.DayOfMonth
		timingChanged = true
	}
	if u.IsActive != nil {
		updated.IsActive = *u.IsActive
	}
	if u.RetentionDays != nil {
		updated.RetentionDays = *u.RetentionDays
	}
	if u.Collections != nil {
		updated.Collections = u.Collections
	}

	if err := ValidateSchedule(updated); err != nil {
		return nil, err
	}

	if updated.IsActive && (timingChanged || existing.NextRun == nil) {
		next, err := NextRun(updated, s.now())
		if err != nil {
			return nil, err
		}
		updated.NextRun = &next
	}
	if !updated.IsActive {
		updated.NextRun = nil
	}

	oldDoc, _ := docstore.Encode(existing)
	newDoc, _ := docstore.Encode(&updated)
	changes := audit.DetectChanges(oldDoc, newDoc, scheduleDiffExcluded)

	if err := s.repo.Update(ctx, id, &updated); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionUpdate,
		EntityType:      "BackupSchedule",
		EntityID:        updated.ID,
		EntityName:      fmt.Sprintf("%s backup at %s", updated.Frequency, updated.Time),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes:         changes,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return &updated, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID, actor Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "BackupSchedule",
		EntityID:        existing.ID,
		EntityName:      fmt.Sprintf("%s backup at %s", existing.Frequency, existing.Time),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}

// TouchLastRun records an observed execution. The external invoker calls
// this through the backup endpoint when it triggers a scheduled run.
func (s *ScheduleService) TouchLastRun(ctx context.Context, id uuid.UUID, ranAt time.Time) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	existing.LastRun = &ranAt
	return s.repo.Update(ctx, id, existing)
}
