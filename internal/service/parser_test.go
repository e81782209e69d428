package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/bulletin/internal/model"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	listing, err := p.Parse(model.CourseRecord(`{"key":"1","code":"DS-GA 1001","title":"Intro to Data Science","crn":7123,"instr":" B. Smith ","srcdb":"1248","meets":[{"day":1}]}`))
	require.NoError(t, err)

	assert.Equal(t, "DS-GA 1001", listing.Code)
	assert.Equal(t, "Intro to Data Science", listing.Title)
	assert.Equal(t, "7123", listing.CRN)
	assert.Equal(t, "B. Smith", listing.Instructor)
	assert.Equal(t, "1248", listing.Term)
	assert.Len(t, listing.Checksum, 32)
}

func TestParser_ParseMissingAndOddFields(t *testing.T) {
	p := NewParser()

	listing, err := p.Parse(model.CourseRecord(`{"code":null,"title":{"en":"x"},"crn":[1]}`))
	require.NoError(t, err)
	assert.Equal(t, model.CourseListing{Checksum: listing.Checksum}, *listing)
}

func TestParser_ChecksumFollowsBytes(t *testing.T) {
	p := NewParser()

	a, err := p.Parse(model.CourseRecord(`{"id": 1}`))
	require.NoError(t, err)
	b, err := p.Parse(model.CourseRecord(`{"id":1}`))
	require.NoError(t, err)

	assert.NotEqual(t, a.Checksum, b.Checksum)
}

func TestParser_ParseAllSkipsNonObjects(t *testing.T) {
	listings := NewParser().ParseAll([]model.CourseRecord{
		model.CourseRecord(`{"code":"ECON-UA 1"}`),
		model.CourseRecord(`42`),
		model.CourseRecord(`{"code":"ECON-UA 2"}`),
	})

	require.Len(t, listings, 2)
	assert.Equal(t, "ECON-UA 1", listings[0].Code)
	assert.Equal(t, "ECON-UA 2", listings[1].Code)
}

func TestSubjectOf(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"DS-GA 1001", "DS-GA"},
		{"CORE-UA 500 ", "CORE-UA"},
		{"ECON", "ECON"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, SubjectOf(tt.code))
		})
	}
}
