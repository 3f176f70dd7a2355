package repositories

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type NotificationRepo struct {
	store *docstore.Store
}

func NewNotificationRepo(store *docstore.Store) *NotificationRepo {
	return &NotificationRepo{store: store}
}

func (r *NotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	doc, err := docstore.Encode(n)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionNotifications, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, n)
}

func (r *NotificationRepo) ListForRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	filter := docstore.Filter{
		Conds:  []docstore.Cond{{Field: "recipientId", Value: recipientID.String()}},
		Limit:  limit,
		Offset: offset,
	}
	if unreadOnly {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "read", Value: strconv.FormatBool(false)})
	}

	docs, err := r.store.Find(ctx, models.CollectionNotifications, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Notification](docs)
}

func (r *NotificationRepo) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	return r.store.CountWhere(ctx, models.CollectionNotifications, docstore.Filter{
		Conds: []docstore.Cond{
			{Field: "recipientId", Value: recipientID.String()},
			{Field: "read", Value: strconv.FormatBool(false)},
		},
	})
}

func (r *NotificationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	doc, err := r.store.Get(ctx, models.CollectionNotifications, id)
	if err != nil {
		return nil, err
	}
	var n models.Notification
	if err := docstore.Decode(doc, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, id uuid.UUID) error {
	n, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	n.Read = true
	doc, err := docstore.Encode(n)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionNotifications, id, doc)
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	notifications, err := r.ListForRecipient(ctx, recipientID, true, 200, 0)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		id, err := uuid.Parse(n.ID)
		if err != nil {
			continue
		}
		if err := r.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
