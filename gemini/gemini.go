// Package gemini implements [newspro.Analyzer] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK: each analysis is a single
// non-streaming GenerateContent call whose prompt comes from
// [newspro.Prompt].
package gemini

// DefaultModel is the model used when no WithModel option is given.
const DefaultModel = "gemini-2.0-flash"

const defaultMaxTokens = 8192
