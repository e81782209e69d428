// Package console runs the interactive prompt that picks a subject grouping and
// term and hands them to the importer.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	apperrors "github.com/jjenkins/bulletin/internal/errors"
	"github.com/jjenkins/bulletin/internal/model"
)

// State is a step of the prompt flow
type State int

const (
	SelectingSubject State = iota
	SelectingTerm
	Ingesting
	Done
)

func (s State) String() string {
	switch s {
	case SelectingSubject:
		return "selecting_subject"
	case SelectingTerm:
		return "selecting_term"
	case Ingesting:
		return "ingesting"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// ProgressFunc is told how many courses were fetched before they are stored
type ProgressFunc func(fetched int)

// IngestFunc runs one ingestion for the resolved codes, calling progress once
// the courses are fetched and before they are written.
type IngestFunc func(ctx context.Context, req model.IngestionRequest, progress ProgressFunc) (*model.Outcome, error)

// TermLookup resolves user-typed term names to codes
type TermLookup func(raw string) (string, bool)

// Driver walks the user from subject selection to a single ingestion
type Driver struct {
	in       *bufio.Reader
	out      io.Writer
	subjects []model.SubjectGrouping
	termCode TermLookup
	ingest   IngestFunc

	state     State
	subject   model.SubjectGrouping
	term      model.Term
	announced bool
}

// NewDriver creates a Driver reading answers from in and writing prompts to out
func NewDriver(in io.Reader, out io.Writer, subjects []model.SubjectGrouping, termCode TermLookup, ingest IngestFunc) *Driver {
	return &Driver{
		in:       bufio.NewReader(in),
		out:      out,
		subjects: subjects,
		termCode: termCode,
		ingest:   ingest,
		state:    SelectingSubject,
	}
}

// State reports where the driver is in the flow
func (d *Driver) State() State {
	return d.state
}

// Run drives the prompt to completion. Every failure is printed before it is
// returned; an unknown term or an empty result set is not a failure.
func (d *Driver) Run(ctx context.Context) (*model.Outcome, error) {
	if len(d.subjects) == 0 {
		d.println("No subject groupings found. Exiting.")
		d.state = Done
		return nil, nil
	}

	var outcome *model.Outcome
	for d.state != Done {
		var err error
		switch d.state {
		case SelectingSubject:
			err = d.selectSubject()
		case SelectingTerm:
			err = d.selectTerm()
		case Ingesting:
			outcome, err = d.runIngest(ctx)
		}
		if err != nil {
			d.state = Done
			return nil, err
		}
	}

	return outcome, nil
}

func (d *Driver) selectSubject() error {
	d.println("Available subject groupings:")
	for i, s := range d.subjects {
		d.printf("%d. %s\n", i+1, s.Name)
	}

	for {
		line, err := d.prompt("\nEnter the number of the subject grouping you want to search: ")
		if err != nil {
			return err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			d.println("Please enter a valid number.")
			continue
		}
		if choice < 1 || choice > len(d.subjects) {
			d.println("Invalid choice. Please try again.")
			continue
		}

		d.subject = d.subjects[choice-1]
		d.state = SelectingTerm
		return nil
	}
}

// selectTerm asks once. Unlike the subject prompt an unknown answer ends the run.
func (d *Driver) selectTerm() error {
	line, err := d.prompt("Enter the term (e.g., Fall 2024): ")
	if err != nil {
		return err
	}

	code, ok := d.termCode(line)
	if !ok {
		d.println("Invalid term. Exiting.")
		d.state = Done
		return nil
	}

	d.term = model.Term{Name: strings.TrimSpace(line), Code: code}
	d.state = Ingesting
	return nil
}

func (d *Driver) runIngest(ctx context.Context) (*model.Outcome, error) {
	d.state = Done

	outcome, err := d.ingest(ctx, model.IngestionRequest{
		SubjectCode: d.subject.Code,
		TermCode:    d.term.Code,
	}, d.reportFetched)
	if err != nil {
		d.println(err.Error())
		return nil, err
	}

	switch {
	case outcome == nil || outcome.Status == model.OutcomeNoCourses:
		d.println("No courses found.")
	default:
		if !d.announced {
			d.reportFetched(outcome.Fetched)
		}
		d.println("Insertion complete.")
	}

	return outcome, nil
}

func (d *Driver) reportFetched(fetched int) {
	d.announced = true
	d.printf("Found %d courses. Inserting into the database...\n", fetched)
}

// prompt writes msg and reads one line without its terminator. A final line
// with no newline still counts; end of input with nothing typed is an error.
func (d *Driver) prompt(msg string) (string, error) {
	d.printf("%s", msg)

	line, err := d.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if err == io.EOF {
			if line != "" {
				return line, nil
			}
			inputErr := apperrors.Input("No input received. Exiting.")
			d.println("\n" + inputErr.Error())
			return "", inputErr
		}
		inputErr := apperrors.Input("Failed to read input: %v", err)
		d.println(inputErr.Error())
		return "", inputErr
	}

	return line, nil
}

func (d *Driver) println(s string) {
	fmt.Fprintln(d.out, s)
}

func (d *Driver) printf(format string, args ...any) {
	fmt.Fprintf(d.out, format, args...)
}
