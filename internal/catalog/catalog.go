// Package catalog holds the subject groupings and terms the bulletin API understands.
package catalog

import (
	"sort"
	"strings"

	"github.com/jjenkins/bulletin/internal/model"
)

var subjectGroupings = []model.SubjectGrouping{
	{Name: "Data Science", Code: "A4"},
	{Name: "Economics", Code: "A51"},
}

var termCodes = map[string]string{
	"Fall 2024":   "1248",
	"Spring 2025": "1252",
}

// SubjectGroupings returns the selectable subject groupings in display order
func SubjectGroupings() []model.SubjectGrouping {
	out := make([]model.SubjectGrouping, len(subjectGroupings))
	copy(out, subjectGroupings)
	return out
}

// TermCode resolves a term name such as "Fall 2024" to its srcdb code.
// Surrounding whitespace is ignored; the match is otherwise exact.
func TermCode(raw string) (string, bool) {
	code, ok := termCodes[strings.TrimSpace(raw)]
	return code, ok
}

// Terms returns the known term names, sorted
func Terms() []string {
	names := make([]string, 0, len(termCodes))
	for name := range termCodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
