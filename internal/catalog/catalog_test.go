package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjenkins/bulletin/internal/model"
)

func TestSubjectGroupings(t *testing.T) {
	want := []model.SubjectGrouping{
		{Name: "Data Science", Code: "A4"},
		{Name: "Economics", Code: "A51"},
	}

	first := SubjectGroupings()
	require.Equal(t, want, first)

	// Callers get their own copy.
	first[0].Code = "changed"
	assert.Equal(t, want, SubjectGroupings())
}

func TestTermCode(t *testing.T) {
	tests := []struct {
		input string
		code  string
		found bool
	}{
		{"Fall 2024", "1248", true},
		{"Spring 2025", "1252", true},
		{"  Fall 2024\t", "1248", true},
		{"\nSpring 2025 ", "1252", true},
		{"Winter 2024", "", false},
		{"fall 2024", "", false},
		{"Fall  2024", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			code, ok := TermCode(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"Fall 2024", "Spring 2025"}, Terms())
}
