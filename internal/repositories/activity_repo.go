package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/staffdesk/backend/internal/docstore"
	"github.com/staffdesk/backend/internal/models"
)

// ActivityRepo persists audit entries in the document store (so they are
// part of every backup) and runs its aggregations directly in SQL.
type ActivityRepo struct {
	store *docstore.Store
	pool  *pgxpool.Pool
}

func NewActivityRepo(store *docstore.Store, pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{store: store, pool: pool}
}

func (r *ActivityRepo) Insert(ctx context.Context, entry *models.ActivityLogEntry) error {
	doc, err := docstore.Encode(entry)
	if err != nil {
		return err
	}
	doc, err = r.store.Insert(ctx, models.CollectionActivityLogs, doc)
	if err != nil {
		return err
	}
	return docstore.Decode(doc, entry)
}

type ActivityFilter struct {
	Action      *string
	EntityType  *string
	PerformedBy *string
	Search      string
	Since       *time.Time
	Until       *time.Time
	Limit       int
	Offset      int
}

// List returns entries newest-first.
func (r *ActivityRepo) List(ctx context.Context, f ActivityFilter) ([]models.ActivityLogEntry, error) {
	filter := docstore.Filter{
		Since:  f.Since,
		Until:  f.Until,
		Limit:  f.Limit,
		Offset: f.Offset,
	}
	if f.Action != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "action", Value: *f.Action})
	}
	if f.EntityType != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "entityType", Value: *f.EntityType})
	}
	if f.PerformedBy != nil {
		filter.Conds = append(filter.Conds, docstore.Cond{Field: "performedBy", Value: *f.PerformedBy})
	}
	if f.Search != "" {
		filter.SearchFields = []string{"entityName", "action", "entityType"}
		filter.SearchTerm = f.Search
	}

	docs, err := r.store.Find(ctx, models.CollectionActivityLogs, filter)
	if err != nil {
		return nil, err
	}
	return docstore.DecodeAll[models.ActivityLogEntry](docs)
}

func (r *ActivityRepo) Count(ctx context.Context) (int64, error) {
	return r.store.Count(ctx, models.CollectionActivityLogs)
}

// DeleteAll wipes the log and reports how many entries were removed.
func (r *ActivityRepo) DeleteAll(ctx context.Context) (int64, error) {
	return r.store.DeleteAll(ctx, models.CollectionActivityLogs)
}

// Analytics aggregates the log in SQL. trendDays bounds the daily trend
// window; top lists are capped at five rows each.
func (r *ActivityRepo) Analytics(ctx context.Context, trendDays int) (*models.ActivityAnalytics, error) {
	a := &models.ActivityAnalytics{
		ByAction:     map[string]int64{},
		ByEntityType: map[string]int64{},
	}

	var err error
	if a.Total, err = r.Count(ctx); err != nil {
		return nil, err
	}

	if err := r.countsBy(ctx, "action", a.ByAction); err != nil {
		return nil, err
	}
	if err := r.countsBy(ctx, "entityType", a.ByEntityType); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT doc->>'performedBy', MAX(doc->>'performedByName'), COUNT(*) AS n
		FROM documents WHERE collection = $1 AND doc->>'performedBy' IS NOT NULL
		GROUP BY 1 ORDER BY n DESC LIMIT 5
	`, models.CollectionActivityLogs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ac models.ActorCount
		if err := rows.Scan(&ac.PerformedBy, &ac.PerformedByName, &ac.Count); err != nil {
			return nil, err
		}
		a.TopActors = append(a.TopActors, ac)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if trendDays <= 0 {
		trendDays = 30
	}
	since := time.Now().UTC().AddDate(0, 0, -trendDays)
	trendRows, err := r.pool.Query(ctx, `
		SELECT date_trunc('day', created_at) AS day, COUNT(*)
		FROM documents WHERE collection = $1 AND created_at >= $2
		GROUP BY 1 ORDER BY 1
	`, models.CollectionActivityLogs, since)
	if err != nil {
		return nil, err
	}
	defer trendRows.Close()
	for trendRows.Next() {
		var dc models.DayCount
		if err := trendRows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		a.DailyTrend = append(a.DailyTrend, dc)
	}
	if err := trendRows.Err(); err != nil {
		return nil, err
	}

	hourRows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour, COUNT(*)
		FROM documents WHERE collection = $1
		GROUP BY 1 ORDER BY 1
	`, models.CollectionActivityLogs)
	if err != nil {
		return nil, err
	}
	defer hourRows.Close()
	for hourRows.Next() {
		var hc models.HourCount
		if err := hourRows.Scan(&hc.Hour, &hc.Count); err != nil {
			return nil, err
		}
		a.HourlyCounts = append(a.HourlyCounts, hc)
	}
	if err := hourRows.Err(); err != nil {
		return nil, err
	}

	entityRows, err := r.pool.Query(ctx, `
		SELECT doc->>'entityType', doc->>'entityId', MAX(COALESCE(doc->>'entityName', '')), COUNT(*) AS n
		FROM documents WHERE collection = $1 AND doc->>'entityId' IS NOT NULL
		GROUP BY 1, 2 ORDER BY n DESC LIMIT 5
	`, models.CollectionActivityLogs)
	if err != nil {
		return nil, err
	}
	defer entityRows.Close()
	for entityRows.Next() {
		var ec models.EntityCount
		if err := entityRows.Scan(&ec.EntityType, &ec.EntityID, &ec.EntityName, &ec.Count); err != nil {
			return nil, err
		}
		a.TopEntities = append(a.TopEntities, ec)
	}
	if err := entityRows.Err(); err != nil {
		return nil, err
	}

	return a, nil
}

func (r *ActivityRepo) countsBy(ctx context.Context, field string, out map[string]int64) error {
	rows, err := r.pool.Query(ctx, `
		SELECT COALESCE(doc->>`+"'"+field+"'"+`, ''), COUNT(*)
		FROM documents WHERE collection = $1 GROUP BY 1
	`, models.CollectionActivityLogs)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return err
		}
		out[key] = n
	}
	return rows.Err()
}
