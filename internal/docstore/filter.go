package docstore

import (
	"context"
	"fmt"
	"time"
)

// Cond matches a top-level document field against an exact value.
type Cond struct {
	Field string
	Value string
}

// Filter narrows a collection scan. All conditions are ANDed. SearchTerm,
// when set, matches case-insensitively against any of SearchFields.
type Filter struct {
	Conds        []Cond
	SearchFields []string
	SearchTerm   string
	Since        *time.Time
	Until        *time.Time
	Limit        int
	Offset       int
}

// Find returns matching documents newest-first.
func (s *Store) Find(ctx context.Context, collection string, f Filter) ([]Document, error) {
	query, args := buildFilterQuery("SELECT doc FROM documents", collection, f)

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDocs(rows)
}

// CountWhere counts documents matching the filter, ignoring pagination.
func (s *Store) CountWhere(ctx context.Context, collection string, f Filter) (int64, error) {
	query, args := buildFilterQuery("SELECT COUNT(*) FROM documents", collection, f)

	var n int64
	err := s.pool.QueryRow(ctx, query, args...).Scan(&n)
	return n, err
}

func buildFilterQuery(selectClause, collection string, f Filter) (string, []any) {
	query := selectClause + " WHERE collection = $1"
	args := []any{collection}
	argIdx := 2

	for _, c := range f.Conds {
		query += fmt.Sprintf(" AND doc->>%s = $%d", quoteLiteral(c.Field), argIdx)
		args = append(args, c.Value)
		argIdx++
	}

	if f.SearchTerm != "" && len(f.SearchFields) > 0 {
		query += " AND ("
		for i, field := range f.SearchFields {
			if i > 0 {
				query += " OR "
			}
			query += fmt.Sprintf("doc->>%s ILIKE $%d", quoteLiteral(field), argIdx)
		}
		query += ")"
		args = append(args, "%"+f.SearchTerm+"%")
		argIdx++
	}

	if f.Since != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *f.Since)
		argIdx++
	}
	if f.Until != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *f.Until)
		argIdx++
	}

	return query, args
}

// quoteLiteral embeds a field name as a SQL string literal. Field names
// come from code, never from request input, but quoting keeps a stray
// quote from breaking the statement.
func quoteLiteral(s string) string {
	out := "'"
	for _, r := range s {
		if r == '\'' {
			out += "''"
		} else {
			out += string(r)
		}
	}
	return out + "'"
}
