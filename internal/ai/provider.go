package ai

import (
	"context"
	"errors"

	"github.com/fieldsheet/fieldsheet/internal/timesheet"
)

// Request is the payload handed to a summarization provider: the
// inclusive period and the day records it covers.
type Request struct {
	Start string
	End   string
	Days  []*timesheet.DayRecord
}

// Summary is the structured response we ask the model for. A provider
// that only gets free text back fills Text and leaves Highlights empty.
type Summary struct {
	Text       string   `json:"summary"`
	Highlights []string `json:"highlights,omitempty"`
}

// Provider produces a natural-language summary of a timesheet period.
type Provider interface {
	Summarize(ctx context.Context, req Request) (*Summary, error)
}

var (
	// ErrUnavailable means the summarization service could not be reached.
	ErrUnavailable = errors.New("summarization service unavailable")
	// ErrTimeout means the request exceeded its deadline.
	ErrTimeout = errors.New("summarization request timed out")
	// ErrEmptySummary means the service answered without usable text.
	ErrEmptySummary = errors.New("summarization returned no usable text")
)
