package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type DisciplineRepo struct {
	store *docstore.Store
}

func NewDisciplineRepo(store *docstore.Store) *DisciplineRepo {
	return &DisciplineRepo{store: store}
}

func (r *DisciplineRepo) Create(ctx context.Context, a *models.DisciplinaryAction) error {
	doc, err := docstore.Encode(a)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionDiscipline, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, a)
}

func (r *DisciplineRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.DisciplinaryAction, error) {
	doc, err := r.store.Get(ctx, models.CollectionDiscipline, id)
	if err != nil {
		return nil, err
	}
	var a models.DisciplinaryAction
	if err := docstore.Decode(doc, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

type DisciplineFilter struct {
	EmployeeID *string
	Category   *string
	Limit      int
	Offset     int
}

func (r *DisciplineRepo) List(ctx context.Context, f DisciplineFilter) ([]models.DisciplinaryAction, error) {
	filter := docstore.Filter{Limit: f.Limit, Offset: f.Offset}
	if f.EmployeeID != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "employeeId", Value: *f.EmployeeID})
	}
	if f.Category != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "category", Value: *f.Category})
	}

	docs, err := r.store.Find(ctx, models.CollectionDiscipline, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.DisciplinaryAction](docs)
}

func (r *DisciplineRepo) Update(ctx context.Context, id uuid.UUID, a *models.DisciplinaryAction) error {
	doc, err := docstore.Encode(a)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionDiscipline, id, doc)
}

func (r *DisciplineRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, models.CollectionDiscipline, id)
}
