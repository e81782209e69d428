package model

import "encoding/json"

// SubjectGrouping is a category the bulletin API filters class search results by
type SubjectGrouping struct {
	Name string
	Code string
}

// Term is an academic term and the srcdb code the bulletin API expects for it
type Term struct {
	Name string
	Code string
}

// CourseRecord is one search result exactly as the bulletin API returned it
type CourseRecord = json.RawMessage

// IngestionRequest identifies what a single run fetches
type IngestionRequest struct {
	SubjectCode string
	TermCode    string
}

// OutcomeStatus names the terminal branch an ingestion took
type OutcomeStatus string

const (
	OutcomeInserted  OutcomeStatus = "inserted"
	OutcomeNoCourses OutcomeStatus = "no_courses"
)

// Outcome reports what an ingestion did
type Outcome struct {
	RunID    string
	Status   OutcomeStatus
	Fetched  int
	Inserted int
}

// CourseListing holds the handful of fields shown when browsing stored courses.
// Any of them may be empty; the API does not promise a record layout.
type CourseListing struct {
	Code       string
	Title      string
	CRN        string
	Instructor string
	Term       string
	Checksum   string
}

// SubjectCount is the number of stored courses whose code starts with Subject
type SubjectCount struct {
	Subject string
	Count   int
}

// CourseMetrics summarizes the course collection
type CourseMetrics struct {
	TotalCourses int64
	Sampled      int
	Subjects     []SubjectCount
	Terms        []string
}
