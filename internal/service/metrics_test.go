package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/bulletin/internal/model"
)

type fakeReader struct {
	records  []model.CourseRecord
	count    int64
	countErr error
	findErr  error
	limit    int64
}

func (f *fakeReader) Find(_ context.Context, limit int64) ([]model.CourseRecord, error) {
	f.limit = limit
	return f.records, f.findErr
}

func (f *fakeReader) Count(context.Context) (int64, error) {
	return f.count, f.countErr
}

func TestMetricsService_Calculate(t *testing.T) {
	reader := &fakeReader{
		count: 4,
		records: []model.CourseRecord{
			model.CourseRecord(`{"code":"ECON-UA 1","srcdb":"1252"}`),
			model.CourseRecord(`{"code":"DS-GA 1001","srcdb":"1248"}`),
			model.CourseRecord(`{"code":"DS-GA 1003","srcdb":"1248"}`),
			model.CourseRecord(`{"title":"no code"}`),
		},
	}

	metrics, err := NewMetricsService(reader).Calculate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(DefaultMetricsSample), reader.limit)
	assert.Equal(t, int64(4), metrics.TotalCourses)
	assert.Equal(t, 4, metrics.Sampled)
	assert.Equal(t, []model.SubjectCount{
		{Subject: "DS-GA", Count: 2},
		{Subject: "(unknown)", Count: 1},
		{Subject: "ECON-UA", Count: 1},
	}, metrics.Subjects)
	assert.Equal(t, []string{"1248", "1252"}, metrics.Terms)
}

func TestMetricsService_EmptyCollectionSkipsFind(t *testing.T) {
	reader := &fakeReader{findErr: errors.New("should not be called")}

	metrics, err := NewMetricsService(reader).Calculate(context.Background())
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalCourses)
	assert.Empty(t, metrics.Subjects)
	assert.Zero(t, reader.limit)
}

func TestMetricsService_Errors(t *testing.T) {
	_, err := NewMetricsService(&fakeReader{countErr: errors.New("down")}).Calculate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count courses")

	_, err = NewMetricsService(&fakeReader{count: 1, findErr: errors.New("down")}).Calculate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load courses")
}
