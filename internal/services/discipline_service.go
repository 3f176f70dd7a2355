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

var disciplineDiffExcluded = []string{"id", "createdAt", "updatedAt"}

type DisciplineService struct {
	repo         *repositories.DisciplineRepo
	employeeRepo *repositories.EmployeeRepo
	audit        *audit.Service
	observers    *events.Fanout
	log          *zap.Logger
}

func NewDisciplineService(
	repo *repositories.DisciplineRepo,
	employeeRepo *repositories.EmployeeRepo,
	auditSvc *audit.Service,
	observers *events.Fanout,
	log *zap.Logger,
) *DisciplineService {
	return &DisciplineService{
		repo:         repo,
		employeeRepo: employeeRepo,
		audit:        auditSvc,
		observers:    observers,
		log:          log,
	}
}

func (s *DisciplineService) Create(ctx context.Context, actor audit.Actor, a *models.DisciplinaryAction) error {
	if !models.IsValidDisciplineCategory(a.Category) {
		return fmt.Errorf("invalid category %q", a.Category)
	}
	if a.Description == "" {
		return fmt.Errorf("description is required")
	}

	empID, err := uuid.Parse(a.EmployeeID)
	if err != nil {
		return fmt.Errorf("invalid employee id")
	}
	emp, err := s.employeeRepo.GetByID(ctx, empID)
	if err != nil {
		return fmt.Errorf("employee not found")
	}
	a.EmployeeName = emp.Name
	a.IssuedBy = actor.ID
	a.IssuedByName = actor.Name

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "DisciplinaryAction",
		EntityID:        a.ID,
		EntityName:      fmt.Sprintf("%s for %s", a.Category, a.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityCreated,
		Payload: map[string]any{"entityType": "DisciplinaryAction", "entityId": a.ID, "employee": a.EmployeeName},
	})

	return nil
}

func (s *DisciplineService) GetByID(ctx context.Context, id uuid.UUID) (*models.DisciplinaryAction, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DisciplineService) List(ctx context.Context, f repositories.DisciplineFilter) ([]models.DisciplinaryAction, error) {
	return s.repo.List(ctx, f)
}

func (s *DisciplineService) Update(ctx context.Context, id uuid.UUID, actor audit.Actor, a *models.DisciplinaryAction) (*models.DisciplinaryAction, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if a.Category == "" {
		a.Category = existing.Category
	}
	if !models.IsValidDisciplineCategory(a.Category) {
		return nil, fmt.Errorf("invalid category %q", a.Category)
	}
	a.ID = existing.ID
	a.EmployeeID = existing.EmployeeID
	a.EmployeeName = existing.EmployeeName
	a.IssuedBy = existing.IssuedBy
	a.IssuedByName = existing.IssuedByName
	a.CreatedAt = existing.CreatedAt
	if a.Description == "" {
		a.Description = existing.Description
	}

	oldDoc, _ := docstore.Encode(existing)
	newDoc, _ := docstore.Encode(a)
	changes := audit.DetectChanges(oldDoc, newDoc, disciplineDiffExcluded)

	if err := s.repo.Update(ctx, id, a); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionUpdate,
		EntityType:      "DisciplinaryAction",
		EntityID:        a.ID,
		EntityName:      fmt.Sprintf("%s for %s", a.Category, a.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes:         changes,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return a, nil
}

func (s *DisciplineService) Delete(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "DisciplinaryAction",
		EntityID:        existing.ID,
		EntityName:      fmt.Sprintf("%s for %s", existing.Category, existing.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}
