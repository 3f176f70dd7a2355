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

var inventoryDiffExcluded = []string{"id", "createdAt", "updatedAt"}

type InventoryService struct {
	repo              *repositories.InventoryRepo
	notifications     *NotificationService
	audit             *audit.Service
	observers         *events.Fanout
	lowStockThreshold int
	log               *zap.Logger
}

func NewInventoryService(
	repo *repositories.InventoryRepo,
	notifications *NotificationService,
	auditSvc *audit.Service,
	observers *events.Fanout,
	lowStockThreshold int,
	log *zap.Logger,
) *InventoryService {
	return &InventoryService{
		repo:              repo,
		notifications:     notifications,
		audit:             auditSvc,
		observers:         observers,
		lowStockThreshold: lowStockThreshold,
		log:               log,
	}
}

func (s *InventoryService) Create(ctx context.Context, actor audit.Actor, item *models.InventoryItem) error {
	if item.Name == "" {
		return fmt.Errorf("name is required")
	}
	if item.CurrentStock < 0 {
		return fmt.Errorf("currentStock must not be negative")
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "InventoryItem",
		EntityID:        item.ID,
		EntityName:      item.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})
	s.observers.Publish(ctx, events.Event{
		Type:    events.EventEntityCreated,
		Payload: map[string]any{"entityType": "InventoryItem", "entityId": item.ID, "name": item.Name},
	})

	return nil
}

func (s *InventoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *InventoryService) List(ctx context.Context, f repositories.InventoryFilter) ([]models.InventoryItem, error) {
	return s.repo.List(ctx, f)
}

func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, actor audit.Actor, item *models.InventoryItem) (*models.InventoryItem, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.CurrentStock < 0 {
		return nil, fmt.Errorf("currentStock must not be negative")
	}

	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	if item.Name == "" {
		item.Name = existing.Name
	}

	oldDoc, _ := docstore.Encode(existing)
	newDoc, _ := docstore.Encode(item)
	changes := audit.DetectChanges(oldDoc, newDoc, inventoryDiffExcluded)

	if err := s.repo.Update(ctx, id, item); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionUpdate,
		EntityType:      "InventoryItem",
		EntityID:        item.ID,
		EntityName:      item.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes:         changes,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return item, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID, actor audit.Actor) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionDelete,
		EntityType:      "InventoryItem",
		EntityID:        existing.ID,
		EntityName:      existing.Name,
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		IPAddress:       actor.IPAddress,
		UserAgent:       actor.UserAgent,
	})

	return nil
}

// Withdraw deducts stock and records the withdrawal. An over-withdrawal
// is rejected before anything is written. Items that drop to or below
// their minimum stock level raise a low-stock alert for managers.
func (s *InventoryService) Withdraw(ctx context.Context, itemID uuid.UUID, actor audit.Actor, quantity int, purpose string) (*models.Withdrawal, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	before := item.CurrentStock
	if err := item.ApplyWithdrawal(quantity); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, itemID, item); err != nil {
		return nil, err
	}

	w := &models.Withdrawal{
		ItemID:          item.ID,
		ItemName:        item.Name,
		Quantity:        quantity,
		Purpose:         purpose,
		WithdrawnBy:     actor.ID,
		WithdrawnByName: actor.Name,
		StockAfter:      item.CurrentStock,
	}
	if err := s.repo.CreateWithdrawal(ctx, w); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, models.ActivityLogEntry{
		Action:          models.ActionCreate,
		EntityType:      "Withdrawal",
		EntityID:        w.ID,
		EntityName:      fmt.Sprintf("%d %s of %s", quantity, item.Unit, item.Name),
		PerformedBy:     actor.ID,
		PerformedByName: actor.Name,
		Changes: []models.FieldChange{
			{Field: "currentStock", OldValue: before, NewValue: item.CurrentStock},
		},
		IPAddress: actor.IPAddress,
		UserAgent: actor.UserAgent,
	})

	if item.LowStock(s.lowStockThreshold) {
		s.observers.Publish(ctx, events.Event{
			Type: events.EventStockLow,
			Payload: map[string]any{
				"itemId": item.ID, "name": item.Name,
				"currentStock": item.CurrentStock, "minStock": item.MinStock,
			},
		})
		s.notifications.Notify(ctx, models.Notification{
			Kind:       models.NotificationLowStock,
			Title:      fmt.Sprintf("Low stock: %s", item.Name),
			Body:       fmt.Sprintf("%s is down to %d %s", item.Name, item.CurrentStock, item.Unit),
			EntityType: "InventoryItem",
			EntityID:   item.ID,
		})
	}

	return w, nil
}

func (s *InventoryService) ListWithdrawals(ctx context.Context, f repositories.WithdrawalFilter) ([]models.Withdrawal, error) {
	return s.repo.ListWithdrawals(ctx, f)
}
