// Package mock provides test doubles for newspro interfaces using function fields.
package mock

import (
	"context"

	"github.com/gknews/newspro"
)

// Interface compliance checks.
var (
	_ newspro.Analyzer  = (*Analyzer)(nil)
	_ newspro.Formatter = (*Formatter)(nil)
)

// Analyzer is a test double for newspro.Analyzer.
// Set AnalyzeFn before calling Analyze.
type Analyzer struct {
	AnalyzeFn func(ctx context.Context, req newspro.AnalysisRequest) (string, error)
}

// Analyze delegates to AnalyzeFn.
func (a *Analyzer) Analyze(ctx context.Context, req newspro.AnalysisRequest) (string, error) {
	return a.AnalyzeFn(ctx, req)
}

// Formatter is a test double for newspro.Formatter.
// Set FormatFn before calling Format.
type Formatter struct {
	FormatFn func(source string) newspro.Document
}

// Format delegates to FormatFn.
func (f *Formatter) Format(source string) newspro.Document {
	return f.FormatFn(source)
}
