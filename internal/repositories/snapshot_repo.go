package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staffdesk/backend/internal/models"
)

// SnapshotRepo stores backup history in its own table, outside the
// document store, so a snapshot never embeds earlier snapshots.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

func (r *SnapshotRepo) Insert(ctx context.Context, snap *models.BackupSnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(snap.ID)
	if err != nil {
		return fmt.Errorf("snapshot id: %w", err)
	}

	var createdBy any
	if snap.CreatedBy != "" {
		createdBy = snap.CreatedBy
	}
	var scheduleID any
	if snap.ScheduleID != "" {
		scheduleID = snap.ScheduleID
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO backup_snapshots
			(id, version, created_by, created_by_name, is_automatic, schedule_id,
			 status, total_collections, total_documents, snapshot, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, id, snap.Version, createdBy, snap.CreatedByName, snap.IsAutomatic, scheduleID,
		snap.Status, snap.Metadata.TotalCollections, snap.Metadata.TotalDocuments,
		raw, snap.Timestamp)
	return err
}

func (r *SnapshotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BackupSnapshot, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT snapshot FROM backup_snapshots WHERE id = $1
	`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("snapshot not found")
	}
	if err != nil {
		return nil, err
	}

	var snap models.BackupSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

type SnapshotFilter struct {
	IsAutomatic *bool
	Status      *string
	Limit       int
	Offset      int
}

// List returns history metadata only, never the payloads.
func (r *SnapshotRepo) List(ctx context.Context, f SnapshotFilter) ([]models.SnapshotInfo, error) {
	query := `
		SELECT id, version, COALESCE(created_by::text, ''), created_by_name,
		       is_automatic, COALESCE(schedule_id::text, ''), status,
		       total_collections, total_documents, created_at
		FROM backup_snapshots
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.IsAutomatic != nil {
		where = append(where, fmt.Sprintf("is_automatic = $%d", argIdx))
		args = append(args, *f.IsAutomatic)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []models.SnapshotInfo
	for rows.Next() {
		var info models.SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Version, &info.CreatedBy, &info.CreatedByName,
			&info.IsAutomatic, &info.ScheduleID, &info.Status,
			&info.TotalCollections, &info.TotalDocuments, &info.CreatedAt); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
