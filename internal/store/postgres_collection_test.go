package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/bulletin/internal/model"
)

func newMockCollection(t *testing.T) (*PostgresCollection, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresCollection(db, CourseCollection), mock, db
}

func TestPostgresCollection_EnsureTable(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "course"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, coll.EnsureTable(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_InsertManySingleStatement(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	records := []model.CourseRecord{
		model.CourseRecord(`{"id": 1}`),
		model.CourseRecord(`{"id": 2}`),
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "course" (doc) VALUES ($1::jsonb), ($2::jsonb)`)).
		WithArgs(`{"id": 1}`, `{"id": 2}`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	n, err := coll.InsertMany(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_InsertManyFailureRollsBack(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "course"`).
		WillReturnError(errors.New("invalid input syntax for type json"))
	mock.ExpectRollback()

	n, err := coll.InsertMany(context.Background(), []model.CourseRecord{model.CourseRecord(`{`)})
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Contains(t, err.Error(), "failed to insert 1 documents")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_InsertManyEmpty(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	n, err := coll.InsertMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Find(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	rows := sqlmock.NewRows([]string{"doc"}).
		AddRow([]byte(`{"id": 1}`)).
		AddRow([]byte(`{"id": 2}`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT doc FROM "course" ORDER BY id LIMIT $1`)).
		WithArgs(int64(10)).
		WillReturnRows(rows)

	docs, err := coll.Find(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.JSONEq(t, `{"id": 1}`, string(docs[0]))
	assert.JSONEq(t, `{"id": 2}`, string(docs[1]))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCollection_Count(t *testing.T) {
	coll, mock, _ := newMockCollection(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "course"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := coll.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
