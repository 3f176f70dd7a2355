package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/audit"
	"github.com/staffdesk/backend/internal/events"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

type LeaveService struct {
	repo          *repositories.LeaveRepo
	employeeRepo  *repositories.EmployeeRepo
	notifications *NotificationService
	audit         *audit.Service
	observers     *events.Fanout
	log           *zap.Logger
}

func NewLeaveService(
	repo *repositories.LeaveRepo,
	employeeRepo *repositories.EmployeeRepo,
	notifications *NotificationService,
	auditSvc *audit.Service,
	observers *events.Fanout,
	log *zap.Logger,
) *LeaveService {
	return &LeaveService{
		repo:          repo,
		employeeRepo:  employeeRepo,
		notifications: notifications,
		audit:         auditSvc,
		observers:     observers,
		log:           log,
	}
}

func (s *LeaveService) Request(ctx context.Context, actor audit.Actor, l *models.Leave) error {
	if !models.IsValidLeaveType(l.Type) {
		return fmt.Errorf("invalid leave type %q", l.Type)
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return fmt.Errorf("startDate and endDate are required")
	}
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("endDate must not precede startDate")
	}

	if l.EmployeeID != "" {
		id, err := uuid.Parse(l.EmployeeID)
		if err != nil {
			return fmt.Errorf("invalid employee id")
		}
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("employee not found")
		}
		l.EmployeeName = emp.Name
	} else {
		l.EmployeeID = actor.ID
		l.EmployeeName = actor.Name
	}
	l.Status = models.LeaveStatusPending

	if err := s.repo.Create(ctx, l); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "Leave",
		EntityID:        l.ID,
		EntityName:      fmt.Sprintf("%s leave for %s", l.Type, l.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityCreated,
		Payload: map[string]any{"entityType": "Leave", "entityId": l.ID, "employee": l.EmployeeName},
	})

	return nil
}

func (s *LeaveService) GetByID(ctx context.Context, id uuid.UUID) (*models.Leave, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LeaveService) List(ctx context.Context, f repositories.LeaveFilter) ([]models.Leave, error) {
	return s.repo.List(ctx, f)
}

// Decide approves or rejects a pending request and notifies the
// requester.
func (s *LeaveService) Decide(ctx context.Context, id uuid.UUID, actor audit.Actor, approve bool, note string) (*models.Leave, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := models.LeaveStatusApproved
	action := models.ActionApprove
	if !approve {
		target = models.LeaveStatusRejected
		action = models.ActionReject
	}
	if !models.IsValidLeaveTransition(l.Status, target) {
		return nil, fmt.Errorf("leave is %s, cannot %s", l.Status, target)
	}

	now := time.Now().UTC()
	previous := l.Status
	l.Status = target
	l.DecidedBy = actor.ID
	l.DecidedByName = actor.Name
	l.DecidedAt = &now
	l.DecisionNote = note

	if err := s.repo.Update(ctx, id, l); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          action,
		EntityType:      "Leave",
		EntityID:        l.ID,
		EntityName:      fmt.Sprintf("%s leave for %s", l.Type, l.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes: []models.FieldChange{
			{Field: "status", OldValue: previous, NewValue: target},
		},
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type: events.EventLeaveDecided,
		Payload: map[string]any{
			"leaveId": l.ID, "employee": l.EmployeeName,
			"status": target, "decidedBy": actor.Name,
		},
	})

	s.notifications.Notify(ctx, models.Notification{
		RecipientID: l.EmployeeID,
		Kind:        models.NotificationLeaveDecided,
		Title:       fmt.Sprintf("Leave request %s", target),
		Body:        note,
		EntityType:  "Leave",
		EntityID:    l.ID,
	})

	return l, nil
}

// Cancel lets the requester withdraw a still-pending request.
func (s *LeaveService) Cancel(ctx context.Context, id uuid.UUID, actor audit.Actor) (*models.Leave, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.EmployeeID != actor.ID {
		return nil, fmt.Errorf("leave not found")
	}
	if !models.IsValidLeaveTransition(l.Status, models.LeaveStatusCancelled) {
		return nil, fmt.Errorf("leave is %s, cannot cancel", l.Status)
	}

	previous := l.Status
	l.Status = models.LeaveStatusCancelled

	if err := s.repo.Update(ctx, id, l); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionUpdate,
		EntityType:      "Leave",
		EntityID:        l.ID,
		EntityName:      fmt.Sprintf("%s leave for %s", l.Type, l.EmployeeName),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes: []models.FieldChange{
			{Field: "status", OldValue: previous, NewValue: models.LeaveStatusCancelled},
		},
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	})

	return l, nil
}
