package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type LeaveRepo struct {
	store *docstore.Store
}

func NewLeaveRepo(store *docstore.Store) *LeaveRepo {
	return &LeaveRepo{store: store}
}

func (r *LeaveRepo) Create(ctx context.Context, l *models.Leave) error {
	doc, err := docstore.Encode(l)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionLeaves, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, l)
}

func (r *LeaveRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Leave, error) {
	doc, err := r.store.Get(ctx, models.CollectionLeaves, id)
	if err != nil {
		return nil, err
	}
	var l models.Leave
	if err := docstore.Decode(doc, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

type LeaveFilter struct {
	EmployeeID *string
	Status     *string
	Type       *string
	Limit      int
	Offset     int
}

func (r *LeaveRepo) List(ctx context.Context, f LeaveFilter) ([]models.Leave, error) {
	filter := docstore.Filter{Limit: f.Limit, Offset: f.Offset}
	if f.EmployeeID != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "employeeId", Value: *f.EmployeeID})
	}
	if f.Status != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "status", Value: *f.Status})
	}
	if f.Type != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "type", Value: *f.Type})
	}

	docs, err := r.store.Find(ctx, models.CollectionLeaves, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Leave](docs)
}

func (r *LeaveRepo) Update(ctx context.Context, id uuid.UUID, l *models.Leave) error {
	doc, err := docstore.Encode(l)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionLeaves, id, doc)
}
