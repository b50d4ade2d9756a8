package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/storefront-api/internal/apperror"
)

// DocumentsSchema creates the single table the MySQL backend uses. Each row
// is one JSON document of one collection.
const DocumentsSchema = `CREATE TABLE IF NOT EXISTS documents (
    collection VARCHAR(64) NOT NULL,
    id         CHAR(36)    NOT NULL,
    body       JSON        NOT NULL,
    created_at TIMESTAMP(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6),
    PRIMARY KEY (collection, id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureDocumentsTable runs DocumentsSchema. It is idempotent.
func EnsureDocumentsTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, DocumentsSchema); err != nil {
		return apperror.Upstream("documents.create_table", err)
	}
	return nil
}

// MySQLRepo keeps records as JSON documents in the documents table, which
// lets a plain MySQL server stand in for the document store. Ids are random
// UUID strings. The connection must be opened with clientFoundRows=true so
// an update that changes nothing still reports the matched row.
type MySQLRepo[E any, P Identifiable[E]] struct {
	db         *sql.DB
	collection string
	newID      func() string
}

func NewMySQLRepo[E any, P Identifiable[E]](db *sql.DB, collection string) *MySQLRepo[E, P] {
	return &MySQLRepo[E, P]{db: db, collection: collection, newID: uuid.NewString}
}

func (r *MySQLRepo[E, P]) op(name string) string { return r.collection + "." + name }

func (r *MySQLRepo[E, P]) List(ctx context.Context, filter Filter) ([]E, error) {
	var b strings.Builder
	b.WriteString("SELECT body FROM documents WHERE collection = ?")
	args := []any{r.collection}

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" AND JSON_UNQUOTE(JSON_EXTRACT(body, ?)) = ?")
		args = append(args, "$."+k, fmt.Sprint(filter[k]))
	}
	b.WriteString(" ORDER BY created_at")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, apperror.Upstream(r.op("select"), err)
	}
	defer rows.Close()

	out := make([]E, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, apperror.Upstream(r.op("scan"), err)
		}
		var item E
		if err := json.Unmarshal(body, &item); err != nil {
			return nil, apperror.Upstream(r.op("decode"), err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.Upstream(r.op("rows"), err)
	}
	return out, nil
}

func (r *MySQLRepo[E, P]) Get(ctx context.Context, id string) (E, error) {
	var out E
	var body []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection = ? AND id = ?", r.collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, notFound(r.collection, id)
		}
		return out, apperror.Upstream(r.op("select"), err)
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, apperror.Upstream(r.op("decode"), err)
	}
	return out, nil
}

func (r *MySQLRepo[E, P]) Create(ctx context.Context, item E) (E, error) {
	id := r.newID()
	P(&item).SetID(id)
	body, err := json.Marshal(item)
	if err != nil {
		return item, apperror.Upstream(r.op("encode"), err)
	}
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)", r.collection, id, body); err != nil {
		return item, apperror.Upstream(r.op("insert"), err)
	}
	return item, nil
}

// Update merges fields into the stored body with JSON_MERGE_PATCH in a single
// statement, then reads the merged document back.
func (r *MySQLRepo[E, P]) Update(ctx context.Context, id string, fields map[string]any) (E, error) {
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}
	var zero E
	patch, err := json.Marshal(fields)
	if err != nil {
		return zero, apperror.Upstream(r.op("encode"), err)
	}
	res, err := r.db.ExecContext(ctx,
		"UPDATE documents SET body = JSON_MERGE_PATCH(body, ?) WHERE collection = ? AND id = ?",
		patch, r.collection, id)
	if err != nil {
		return zero, apperror.Upstream(r.op("update"), err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return zero, apperror.Upstream(r.op("update"), err)
	} else if n == 0 {
		return zero, notFound(r.collection, id)
	}
	return r.Get(ctx, id)
}

func (r *MySQLRepo[E, P]) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?", r.collection, id)
	if err != nil {
		return apperror.Upstream(r.op("delete"), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperror.Upstream(r.op("delete"), err)
	}
	if n == 0 {
		return notFound(r.collection, id)
	}
	return nil
}

func (r *MySQLRepo[E, P]) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE collection = ?", r.collection); err != nil {
		return apperror.Upstream(r.op("clear"), err)
	}
	return nil
}

func (r *MySQLRepo[E, P]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM documents WHERE collection = ?", r.collection).Scan(&n); err != nil {
		return 0, apperror.Upstream(r.op("count"), err)
	}
	return n, nil
}
