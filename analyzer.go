package newspro

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// AnalysisKind selects what the analyzer is asked to produce.
type AnalysisKind int

const (
	AnalyzeContent AnalysisKind = iota // Analyze a title and description.
	AnalyzeURL                         // Analyze the article behind a URL.
	ContinueURL                        // Continue writing the article behind a URL.
)

var analysisKindNames = [...]string{
	AnalyzeContent: "analyze_content",
	AnalyzeURL:     "analyze_url",
	ContinueURL:    "continue_url",
}

// String returns the stable name of the kind.
func (k AnalysisKind) String() string {
	if k < 0 || int(k) >= len(analysisKindNames) {
		return fmt.Sprintf("AnalysisKind(%d)", int(k))
	}
	return analysisKindNames[k]
}

// ParseAnalysisKind is the inverse of [AnalysisKind.String].
func ParseAnalysisKind(s string) (AnalysisKind, error) {
	for i, name := range analysisKindNames {
		if name == s {
			return AnalysisKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown analysis kind %q: %w", s, ErrValidation)
}

// AnalysisRequest describes one call to an Analyzer.
type AnalysisRequest struct {
	Kind        AnalysisKind
	Title       string
	Description string
	URL         string
	Model       string // provider-specific; empty = provider default
}

// Validate checks that the request carries what its kind needs.
func (r AnalysisRequest) Validate() error {
	switch r.Kind {
	case AnalyzeContent:
		if strings.TrimSpace(r.Title) == "" && strings.TrimSpace(r.Description) == "" {
			return fmt.Errorf("title or description is required: %w", ErrValidation)
		}
	case AnalyzeURL, ContinueURL:
		u, err := url.Parse(strings.TrimSpace(r.URL))
		if err != nil {
			return fmt.Errorf("invalid url %q: %w", r.URL, ErrValidation)
		}
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("url must be absolute http(s), got %q: %w", r.URL, ErrValidation)
		}
	default:
		return fmt.Errorf("unknown analysis kind %d: %w", int(r.Kind), ErrValidation)
	}
	return nil
}

// Analyzer is the AI content provider. It returns loosely formatted
// markdown-like text for the request.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) (string, error)
}

// Analysis is a completed analyzer response.
type Analysis struct {
	ID        string
	Request   AnalysisRequest
	Model     string
	Text      string
	CreatedAt time.Time
}
