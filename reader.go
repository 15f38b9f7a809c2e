package newspro

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reader asks an Analyzer for text and formats the answer.
type Reader struct {
	analyzer  Analyzer
	formatter Formatter
	now       func() time.Time
}

// NewReader creates a Reader with the given analyzer and formatter.
func NewReader(analyzer Analyzer, formatter Formatter) *Reader {
	return &Reader{analyzer: analyzer, formatter: formatter, now: time.Now}
}

// Read validates req, runs the analyzer and formats its answer. The
// returned Analysis keeps the raw text so the document can be rebuilt
// later without another analyzer call.
func (r *Reader) Read(ctx context.Context, req AnalysisRequest) (Analysis, Document, error) {
	if err := req.Validate(); err != nil {
		return Analysis{}, Document{}, err
	}
	if err := ctx.Err(); err != nil {
		return Analysis{}, Document{}, err
	}

	text, err := r.analyzer.Analyze(ctx, req)
	if err != nil {
		return Analysis{}, Document{}, fmt.Errorf("%s: %w", req.Kind, err)
	}
	if strings.TrimSpace(text) == "" {
		return Analysis{}, Document{}, fmt.Errorf("%s: %w", req.Kind, ErrEmptyResponse)
	}

	a := Analysis{
		ID:        uuid.NewString(),
		Request:   req,
		Model:     req.Model,
		Text:      text,
		CreatedAt: r.now(),
	}
	return a, r.formatter.Format(text), nil
}

// Render formats a previously stored analysis.
func (r *Reader) Render(a Analysis) Document {
	return r.formatter.Format(a.Text)
}
