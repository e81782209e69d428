package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jjenkins/bulletin/internal/model"
)

// CourseCollection is the collection ingested courses are written to
const CourseCollection = "course"

// Collection is a schema-less group of documents
type Collection interface {
	// InsertMany writes all records in one batch and returns how many were stored.
	InsertMany(ctx context.Context, records []model.CourseRecord) (int, error)
	// Find returns up to limit stored documents as JSON, oldest first.
	Find(ctx context.Context, limit int64) ([]model.CourseRecord, error)
	// Count returns the number of stored documents.
	Count(ctx context.Context) (int64, error)
	Close(ctx context.Context) error
}

// Open connects to the store named by uri and returns the named collection.
// mongodb:// and mongodb+srv:// use MongoDB; postgres:// and postgresql:// use
// a JSONB table in PostgreSQL.
func Open(ctx context.Context, uri, collection string) (Collection, error) {
	scheme, err := schemeOf(uri)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "mongodb", "mongodb+srv":
		return NewMongoCollection(ctx, uri, collection)
	case "postgres", "postgresql":
		db, err := NewDB(uri)
		if err != nil {
			return nil, err
		}
		coll := NewPostgresCollection(db, collection)
		if err := coll.EnsureTable(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return coll, nil
	default:
		return nil, fmt.Errorf("unsupported connection string scheme %q", scheme)
	}
}

func schemeOf(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		// mongodb URIs with several hosts are not valid net/url URLs.
		if i := strings.Index(uri, "://"); i > 0 {
			return strings.ToLower(uri[:i]), nil
		}
		return "", fmt.Errorf("invalid connection string: %w", err)
	}
	if u.Scheme == "" {
		return "", fmt.Errorf("connection string has no scheme")
	}
	return strings.ToLower(u.Scheme), nil
}
