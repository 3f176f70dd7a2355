package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type EmployeeRepo struct {
	store *docstore.Store
}

func NewEmployeeRepo(store *docstore.Store) *EmployeeRepo {
	return &EmployeeRepo{store: store}
}

func (r *EmployeeRepo) Create(ctx context.Context, e *models.Employee) error {
	doc, err := docstore.Encode(e)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionEmployees, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, e)
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Employee, error) {
	doc, err := r.store.Get(ctx, models.CollectionEmployees, id)
	if err != nil {
		return nil, err
	}
	var e models.Employee
	if err := docstore.Decode(doc, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

type EmployeeFilter struct {
	Department *string
	Status     *string
	Search     string
	Limit      int
	Offset     int
}

func (r *EmployeeRepo) List(ctx context.Context, f EmployeeFilter) ([]models.Employee, error) {
	filter := docstore.Filter{Limit: f.Limit, Offset: f.Offset}
	if f.Department != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "department", Value: *f.Department})
	}
	if f.Status != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "status", Value: *f.Status})
	}
	if f.Search != "" {
		filter.SearchFields = []string{"name", "email", "position"}
		filter.SearchTerm = f.Search
	}

	docs, err := r.store.Find(ctx, models.CollectionEmployees, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Employee](docs)
}

func (r *EmployeeRepo) Update(ctx context.Context, id uuid.UUID, e *models.Employee) error {
	doc, err := docstore.Encode(e)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionEmployees, id, doc)
}

func (r *EmployeeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, models.CollectionEmployees, id)
}
