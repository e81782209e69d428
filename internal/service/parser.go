package service

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jjenkins/bulletin/internal/model"
)

// Parser pulls display fields out of stored course records
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

// courseFields are the keys the class search API uses for the columns we show.
// Values are decoded loosely because the API mixes strings and numbers.
type courseFields struct {
	Code  json.RawMessage `json:"code"`
	Title json.RawMessage `json:"title"`
	CRN   json.RawMessage `json:"crn"`
	Instr json.RawMessage `json:"instr"`
	Srcdb json.RawMessage `json:"srcdb"`
}

// Parse extracts a listing from one record. The record must be a JSON object;
// missing keys leave the matching listing field empty.
func (p *Parser) Parse(record model.CourseRecord) (*model.CourseListing, error) {
	var fields courseFields
	if err := json.Unmarshal(record, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse course record: %w", err)
	}

	return &model.CourseListing{
		Code:       scalarText(fields.Code),
		Title:      scalarText(fields.Title),
		CRN:        scalarText(fields.CRN),
		Instructor: scalarText(fields.Instr),
		Term:       scalarText(fields.Srcdb),
		Checksum:   p.calculateChecksum(record),
	}, nil
}

// ParseAll parses every record, skipping any that are not objects
func (p *Parser) ParseAll(records []model.CourseRecord) []model.CourseListing {
	listings := make([]model.CourseListing, 0, len(records))
	for _, r := range records {
		l, err := p.Parse(r)
		if err != nil {
			continue
		}
		listings = append(listings, *l)
	}
	return listings
}

// SubjectOf returns the subject part of a course code, e.g. "DS-GA" for
// "DS-GA 1001". Codes without a space are returned unchanged.
func SubjectOf(code string) string {
	code = strings.TrimSpace(code)
	if i := strings.LastIndex(code, " "); i > 0 {
		return strings.TrimSpace(code[:i])
	}
	return code
}

// scalarText renders strings without quotes and numbers or booleans as written.
// Objects, arrays and null render as empty.
func scalarText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	switch raw[0] {
	case '{', '[', 'n':
		return ""
	}
	return string(raw)
}

// calculateChecksum computes MD5 hash of the stored document
func (p *Parser) calculateChecksum(record model.CourseRecord) string {
	hash := md5.Sum(record)
	return hex.EncodeToString(hash[:])
}
