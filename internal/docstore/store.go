package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Document is a schema-agnostic record: a JSON object held as an untyped
// map. Typed models round-trip through Encode/Decode.
type Document = map[string]any

var ErrNotFound = errors.New("document not found")

// Store persists documents in a single JSONB table keyed by
// (collection, id). Collections are not declared anywhere; they exist as
// soon as the first document lands, which is what lets the backup engine
// discover new entity types without code changes.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(pool *pgxpool.Pool, log *zap.Logger) *Store {
	return &Store{pool: pool, log: log}
}

// Collections enumerates every collection that currently holds at least
// one document.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT collection FROM documents ORDER BY collection`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// FindAll returns every document in a collection in insertion order.
func (s *Store) FindAll(ctx context.Context, collection string) ([]Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT doc FROM documents WHERE collection = $1 ORDER BY created_at, id
	`, collection)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows)
}

func (s *Store) Get(ctx context.Context, collection string, id uuid.UUID) (Document, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `
		SELECT doc FROM documents WHERE collection = $1 AND id = $2
	`, collection, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return unmarshalDoc(raw)
}

// Insert persists a new document, stamping id and createdAt when absent.
// The stamped document is returned.
func (s *Store) Insert(ctx context.Context, collection string, doc Document) (Document, error) {
	id, err := docID(doc)
	if err != nil || id == uuid.Nil {
		id = uuid.New()
		doc["id"] = id.String()
	}
	createdAt := docTime(doc, "createdAt")
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
		doc["createdAt"] = createdAt.Format(time.RFC3339Nano)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (collection, id, doc, created_at) VALUES ($1, $2, $3, $4)
	`, collection, id, raw, createdAt)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// InsertMany bulk-inserts documents verbatim, preserving whatever ids and
// timestamps they carry. This is the restore path: no stamping, no
// validation against current model shapes.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, doc := range docs {
		id, err := docID(doc)
		if err != nil || id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := docTime(doc, "createdAt")
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal document for %s: %w", collection, err)
		}
		batch.Queue(`
			INSERT INTO documents (collection, id, doc, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (collection, id) DO UPDATE SET doc = EXCLUDED.doc
		`, collection, id, raw, createdAt)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range docs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// Update replaces the stored document, stamping updatedAt.
func (s *Store) Update(ctx context.Context, collection string, id uuid.UUID, doc Document) error {
	doc["updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE documents SET doc = $3 WHERE collection = $1 AND id = $2
	`, collection, id, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection string, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM documents WHERE collection = $1 AND id = $2
	`, collection, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll wipes a collection and reports how many documents it held.
func (s *Store) DeleteAll(ctx context.Context, collection string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE collection = $1`, collection)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) Count(ctx context.Context, collection string) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM documents WHERE collection = $1
	`, collection).Scan(&n)
	return n, err
}

func scanDocs(rows pgx.Rows) ([]Document, error) {
	var docs []Document
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		doc, err := unmarshalDoc(raw)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func unmarshalDoc(raw []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func docID(doc Document) (uuid.UUID, error) {
	s, _ := doc["id"].(string)
	if s == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(s)
}

func docTime(doc Document, field string) time.Time {
	s, _ := doc[field].(string)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}
