package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

type BlacklistRepo struct {
	store *docstore.Store
}

func NewBlacklistRepo(store *docstore.Store) *BlacklistRepo {
	return &BlacklistRepo{store: store}
}

func (r *BlacklistRepo) Create(ctx context.Context, e *models.BlacklistEntry) error {
	doc, err := docstore.Encode(e)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionBlacklist, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, e)
}

func (r *BlacklistRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BlacklistEntry, error) {
	doc, err := r.store.Get(ctx, models.CollectionBlacklist, id)
	if err != nil {
		return nil, err
	}
	var e models.BlacklistEntry
	if err := docstore.Decode(doc, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *BlacklistRepo) List(ctx context.Context, search string, limit, offset int) ([]models.BlacklistEntry, error) {
	filter := docstore.Filter{Limit: limit, Offset: offset}
	if search != "" {
		filter.SearchFields = []string{"subjectName", "idNumber", "reason"}
		filter.SearchTerm = search
	}

	docs, err := r.store.Find(ctx, models.CollectionBlacklist, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.BlacklistEntry](docs)
}

func (r *BlacklistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, models.CollectionBlacklist, id)
}
