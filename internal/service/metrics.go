package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/jjenkins/bulletin/internal/model"
)

// DefaultMetricsSample caps how many documents are read to build a summary
const DefaultMetricsSample = 1000

// CourseReader is the read side of the course collection
type CourseReader interface {
	Find(ctx context.Context, limit int64) ([]model.CourseRecord, error)
	Count(ctx context.Context) (int64, error)
}

// MetricsService summarizes what has been ingested
type MetricsService struct {
	coll   CourseReader
	parser *Parser
	sample int64
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(coll CourseReader) *MetricsService {
	return &MetricsService{
		coll:   coll,
		parser: NewParser(),
		sample: DefaultMetricsSample,
	}
}

// Calculate counts stored courses and breaks a sample of them down by subject
// and term. Counts by subject only cover the sampled documents.
func (m *MetricsService) Calculate(ctx context.Context) (*model.CourseMetrics, error) {
	metrics := &model.CourseMetrics{}

	total, err := m.coll.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}
	metrics.TotalCourses = total
	if total == 0 {
		return metrics, nil
	}

	records, err := m.coll.Find(ctx, m.sample)
	if err != nil {
		return nil, fmt.Errorf("failed to load courses: %w", err)
	}

	listings := m.parser.ParseAll(records)
	metrics.Sampled = len(listings)

	bySubject := make(map[string]int)
	terms := make(map[string]struct{})
	for _, l := range listings {
		subject := SubjectOf(l.Code)
		if subject == "" {
			subject = "(unknown)"
		}
		bySubject[subject]++
		if l.Term != "" {
			terms[l.Term] = struct{}{}
		}
	}

	for subject, n := range bySubject {
		metrics.Subjects = append(metrics.Subjects, model.SubjectCount{Subject: subject, Count: n})
	}
	sort.Slice(metrics.Subjects, func(i, j int) bool {
		if metrics.Subjects[i].Count != metrics.Subjects[j].Count {
			return metrics.Subjects[i].Count > metrics.Subjects[j].Count
		}
		return metrics.Subjects[i].Subject < metrics.Subjects[j].Subject
	})

	for term := range terms {
		metrics.Terms = append(metrics.Terms, term)
	}
	sort.Strings(metrics.Terms)

	return metrics, nil
}
