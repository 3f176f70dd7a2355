package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type InventoryRepo struct {
	store *docstore.Store
}

func NewInventoryRepo(store *docstore.Store) *InventoryRepo {
	return &InventoryRepo{store: store}
}

func (r *InventoryRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	doc, err := docstore.Encode(item)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionInventory, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, item)
}

func (r *InventoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventoryItem, error) {
	doc, err := r.store.Get(ctx, models.CollectionInventory, id)
	if err != nil {
		return nil, err
	}
	var item models.InventoryItem
	if err := docstore.Decode(doc, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

type InventoryFilter struct {
	Category *string
	Search   string
	Limit    int
	Offset   int
}

func (r *InventoryRepo) List(ctx context.Context, f InventoryFilter) ([]models.InventoryItem, error) {
	filter := docstore.Filter{Limit: f.Limit, Offset: f.Offset}
	if f.Category != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "category", Value: *f.Category})
	}
	if f.Search != "" {
		filter.SearchFields = []string{"name", "category"}
		filter.SearchTerm = f.Search
	}

	docs, err := r.store.Find(ctx, models.CollectionInventory, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.InventoryItem](docs)
}

func (r *InventoryRepo) Update(ctx context.Context, id uuid.UUID, item *models.InventoryItem) error {
	doc, err := docstore.Encode(item)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionInventory, id, doc)
}

func (r *InventoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, models.CollectionInventory, id)
}

// Withdrawals live in their own collection so withdrawal history
// survives item deletion.

func (r *InventoryRepo) CreateWithdrawal(ctx context.Context, w *models.Withdrawal) error {
	doc, err := docstore.Encode(w)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionWithdrawals, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, w)
}

type WithdrawalFilter struct {
	ItemID      *string
	WithdrawnBy *string
	Limit       int
	Offset      int
}

func (r *InventoryRepo) ListWithdrawals(ctx context.Context, f WithdrawalFilter) ([]models.Withdrawal, error) {
	filter := docstore.Filter{Limit: f.Limit, Offset: f.Offset}
	if f.ItemID != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "itemId", Value: *f.ItemID})
	}
	if f.WithdrawnBy != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "withdrawnBy", Value: *f.WithdrawnBy})
	}

	docs, err := r.store.Find(ctx, models.CollectionWithdrawals, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.Withdrawal](docs)
}
