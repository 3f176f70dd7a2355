package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/events"
	"github.com/staffdesk/backend/internal/models"
	"github.com/staffdesk/backend/internal/repositories"
	"go.uber.org/zap"
)

// NotificationService stores in-app notifications and pushes them to
// connected clients through the event stream. Notify is best-effort:
// callers fire it after their primary commit and ignore failures.
type NotificationService struct {
	repo      *repositories.NotificationRepo
	publisher events.Publisher
	log       *zap.Logger
}

func NewNotificationService(
	repo *repositories.NotificationRepo,
	publisher events.Publisher,
	log *zap.Logger,
) *NotificationService {
	return &NotificationService{repo: repo, publisher: publisher, log: log}
}

func (s *NotificationService) Notify(ctx context.Context, n models.Notification) {
	if n.Kind == "" {
		n.Kind = models.NotificationGeneral
	}
	if err := s.repo.Create(ctx, &n); err != nil {
		s.log.Warn("notification write failed",
			zap.String("kind", n.Kind),
			zap.String("recipient", n.RecipientID),
			zap.Error(err))
		return
	}

	err := s.publisher.Publish(ctx, events.StreamDomain, events.Event{
		Type: "notification",
		Payload: map[string]any{
			"id":          n.ID,
			"recipientId": n.RecipientID,
			"kind":        n.Kind,
			"title":       n.Title,
			"body":        n.Body,
		},
	})
	if err != nil {
		s.log.Warn("notification push failed", zap.Error(err))
	}
}

func (s *NotificationService) ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.repo.ListForRecipient(ctx, recipientID, unreadOnly, limit, offset)
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return s.repo.UnreadCount(ctx, recipientID)
}

// MarkRead only succeeds for the notification's own recipient.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID, recipientID uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientID != recipientID.String() {
		return repositories.ErrNotOwned
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	return s.repo.MarkAllRead(ctx, recipientID)
}
