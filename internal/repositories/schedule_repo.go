package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

// ScheduleRepo keeps backup schedules in the document store: they are
// configuration data and get backed up along with everything else.
type ScheduleRepo struct {
	store *docstore.Store
}

func NewScheduleRepo(store *docstore.Store) *ScheduleRepo {
	return &ScheduleRepo{store: store}
}

func (r *ScheduleRepo) Create(ctx context.Context, s *models.BackupSchedule) error {
	doc, err := docstore.Encode(s)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionBackupSchedules, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, s)
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BackupSchedule, error) {
	doc, err := r.store.Get(ctx, models.CollectionBackupSchedules, id)
	if err != nil {
		return nil, err
	}
	var s models.BackupSchedule
	if err := docstore.Decode(doc, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepo) List(ctx context.Context) ([]models.BackupSchedule, error) {
	docs, err := r.store.FindAll(ctx, models.CollectionBackupSchedules)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.BackupSchedule](docs)
}

func (r *ScheduleRepo) Update(ctx context.Context, id uuid.UUID, s *models.BackupSchedule) error {
	doc, err := docstore.Encode(s)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, models.CollectionBackupSchedules, id, doc)
}

func (r *ScheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, models.CollectionBackupSchedules, id)
}
