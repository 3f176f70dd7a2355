package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/events"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

var employeeDiffExcluded = []string{"id", "createdAt", "updatedAt"}

type EmployeeService struct {
	repo      *repositories.EmployeeRepo
	audit     *audit.Service
	observers *events.Fanout
	log       *zap.Logger
}

func NewEmployeeService(
	repo *repositories.EmployeeRepo,
	auditSvc *audit.Service,
	observers *events.Fanout,
	log *zap.Logger,
) *EmployeeService {
	return &EmployeeService{repo: repo, audit: auditSvc, observers: observers, log: log}
}

func (s *EmployeeService) Create(ctx context.Context, actor audit.Actor, e *models.Employee) error {
	if e.Name == "" || e.Email == "" {
		return fmt.Errorf("name and email are required")
	}
	if e.Status == "" {
		e.Status = models.EmployeeStatusActive
	}
	if !models.IsValidEmployeeStatus(e.Status) {
		return fmt.Errorf("invalid status %q", e.Status)
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "Employee",
		EntityID:        e.ID,
		EntityName:      e.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityCreated,
		Payload: map[string]any{"entityType": "Employee", "entityId": e.ID, "name": e.Name},
	})

	return nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) List(ctx context.Context, f repositories.EmployeeFilter) ([]models.Employee, error) {
	return s.repo.List(ctx, f)
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, actor audit.Actor, e *models.Employee) (*models.Employee, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	e.ID = existing.ID
	e.CreatedAt = existing.CreatedAt
	if e.Status == "" {
		e.Status = existing.Status
	}
	if !models.IsValidEmployeeStatus(e.Status) {
		return nil, fmt.Errorf("invalid status %q", e.Status)
	}

	oldDoc, _ := docstore.Encode(existing)
	newDoc, _ := docstore.Encode(e)
	changes := audit.DetectChanges(oldDoc, newDoc, employeeDiffExcluded)

	if err := s.repo.Update(ctx, id, e); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionUpdate,
		EntityType:      "Employee",
		EntityID:        e.ID,
		EntityName:      e.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes:         changes,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityUpdated,
		Payload: map[string]any{"entityType": "Employee", "entityId": e.ID, "name": e.Name},
	})

	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "Employee",
		EntityID:        existing.ID,
		EntityName:      existing.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityDeleted,
		Payload: map[string]any{"entityType": "Employee", "entityId": existing.ID, "name": existing.Name},
	})

	return nil
}
