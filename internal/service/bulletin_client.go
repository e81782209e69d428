package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"

	apperrors "github.com/jjenkins/bulletin/internal/errors"
	"github.com/jjenkins/bulletin/internal/model"
)

const (
	// DefaultBaseURL is the NYU bulletin class search API
	DefaultBaseURL = "https://bulletins.nyu.edu/class-search/api"

	subjectGroupingField = "subject_grouping"
)

// BulletinClient handles communication with the bulletin class search API
type BulletinClient struct {
	client *resty.Client
}

// NewBulletinClient creates a client for the API rooted at baseURL
func NewBulletinClient(baseURL string) *BulletinClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &BulletinClient{client: client}
}

// searchRequest is the FOSE search payload
type searchRequest struct {
	Other    searchOther       `json:"other"`
	Criteria []searchCriterion `json:"criteria"`
}

type searchOther struct {
	SrcDB string `json:"srcdb"`
}

type searchCriterion struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// Search runs one class search for a subject grouping in a term and returns the
// results exactly as received.
func (c *BulletinClient) Search(ctx context.Context, req model.IngestionRequest) ([]model.CourseRecord, error) {
	body := searchRequest{
		Other:    searchOther{SrcDB: req.TermCode},
		Criteria: []searchCriterion{{Field: subjectGroupingField, Value: req.SubjectCode}},
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":               "fose",
			"route":              "search",
			subjectGroupingField: req.SubjectCode,
		}).
		SetBody(body).
		Post("/")
	if err != nil {
		return nil, apperrors.Transport(err, "Error fetching courses")
	}

	if !resp.IsSuccess() {
		return nil, apperrors.Transport(
			fmt.Errorf("unexpected status code: %d", resp.StatusCode()),
			"Error fetching courses")
	}

	return decodeSearchResponse(resp.Body())
}

// decodeSearchResponse pulls the results array out of a search response. Any
// "error" key, even a null one, marks the response as failed.
func decodeSearchResponse(raw []byte) ([]model.CourseRecord, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperrors.Protocol(err, "failed to parse search response")
	}
	if envelope == nil {
		return nil, apperrors.Protocol(nil, "failed to parse search response: not a JSON object")
	}

	if apiErr, ok := envelope["error"]; ok {
		return nil, apperrors.Protocol(nil, "API Error: %s", errorText(apiErr))
	}

	resultsRaw, ok := envelope["results"]
	if !ok {
		return nil, nil
	}

	var results []json.RawMessage
	if err := json.Unmarshal(resultsRaw, &results); err != nil {
		return nil, apperrors.Protocol(err, "failed to parse search results")
	}

	records := make([]model.CourseRecord, len(results))
	for i, r := range results {
		records[i] = model.CourseRecord(r)
	}
	return records, nil
}

// errorText renders the API's error value, unquoting plain strings
func errorText(raw json.RawMessage) string {
	var s *string
	if err := json.Unmarshal(raw, &s); err == nil && s != nil {
		return *s
	}
	return string(raw)
}
