package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/jjenkins/bulletin/internal/errors"
	"github.com/jjenkins/bulletin/internal/model"
)

// Searcher fetches class search results from the bulletin API
type Searcher interface {
	Search(ctx context.Context, req model.IngestionRequest) ([]model.CourseRecord, error)
}

// DocumentWriter is the one storage operation ingestion needs
type DocumentWriter interface {
	InsertMany(ctx context.Context, records []model.CourseRecord) (int, error)
}

// Importer fetches one subject grouping for one term and stores the results
type Importer struct {
	client   Searcher
	logger   *zap.Logger
	newID    func() string
	progress func(fetched int)
}

// NewImporter creates a new Importer
func NewImporter(client Searcher, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		client: client,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// WithProgress returns a copy of the Importer that calls fn with the number of
// fetched courses just before they are written.
func (i *Importer) WithProgress(fn func(fetched int)) *Importer {
	cp := *i
	cp.progress = fn
	return &cp
}

// Ingest runs a single search and writes every returned record to coll in one
// batch. Records are stored exactly as received. Nothing is retried.
func (i *Importer) Ingest(ctx context.Context, req model.IngestionRequest, coll DocumentWriter) (*model.Outcome, error) {
	outcome := &model.Outcome{RunID: i.newID()}
	log := i.logger.With(
		zap.String("run_id", outcome.RunID),
		zap.String("subject_grouping", req.SubjectCode),
		zap.String("srcdb", req.TermCode),
	)

	log.Info("fetching courses from bulletin API")
	records, err := i.client.Search(ctx, req)
	if err != nil {
		log.Error("course search failed",
			zap.String("kind", string(apperrors.KindOf(err))),
			zap.Error(err))
		return nil, err
	}

	outcome.Fetched = len(records)
	if len(records) == 0 {
		log.Info("no courses found")
		outcome.Status = model.OutcomeNoCourses
		return outcome, nil
	}

	log.Info("inserting courses", zap.Int("count", len(records)))
	if i.progress != nil {
		i.progress(len(records))
	}
	n, err := coll.InsertMany(ctx, records)
	if err != nil {
		log.Error("course insert failed", zap.Error(err))
		return nil, apperrors.Storage(err, "Error inserting into the database")
	}

	outcome.Status = model.OutcomeInserted
	outcome.Inserted = n
	log.Info("insertion complete", zap.Int("inserted", n))

	return outcome, nil
}
