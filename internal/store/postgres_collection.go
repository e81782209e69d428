package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/jjenkins/bulletin/internal/model"
)

// PostgresCollection stores documents in a JSONB column, one row per document
type PostgresCollection struct {
	db    *sql.DB
	table string
}

// NewPostgresCollection creates a PostgresCollection backed by the named table
func NewPostgresCollection(db *sql.DB, name string) *PostgresCollection {
	return &PostgresCollection{db: db, table: pq.QuoteIdentifier(name)}
}

// EnsureTable creates the backing table if it does not exist
func (c *PostgresCollection) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          BIGSERIAL PRIMARY KEY,
			doc         JSONB NOT NULL,
			inserted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, c.table)

	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create table %s: %w", c.table, err)
	}

	return nil
}

// InsertMany writes all records with a single multi-row INSERT
func (c *PostgresCollection) InsertMany(ctx context.Context, records []model.CourseRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(records))
	args := make([]any, len(records))
	for i, rec := range records {
		placeholders[i] = fmt.Sprintf("($%d::jsonb)", i+1)
		args[i] = string(rec)
	}

	query := fmt.Sprintf("INSERT INTO %s (doc) VALUES %s", c.table, strings.Join(placeholders, ", "))

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %d documents: %w", len(records), err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return len(records), nil
	}
	return int(n), nil
}

// Find retrieves up to limit documents in insertion order
func (c *PostgresCollection) Find(ctx context.Context, limit int64) ([]model.CourseRecord, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s ORDER BY id LIMIT $1`, c.table)

	rows, err := c.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	defer rows.Close()

	var docs []model.CourseRecord
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, model.CourseRecord(doc))
	}

	return docs, rows.Err()
}

// Count returns the number of stored documents
func (c *PostgresCollection) Count(ctx context.Context) (int64, error) {
	var count int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.table)
	if err := c.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// Close releases the connection pool
func (c *PostgresCollection) Close(_ context.Context) error {
	return c.db.Close()
}
