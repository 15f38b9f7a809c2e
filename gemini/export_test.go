package gemini

import (
	"context"

	"google.golang.org/genai"
)

// GenerateFunc stands in for the SDK's Models.GenerateContent.
type GenerateFunc = func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// NewWithGenerate creates a Client that calls fn instead of the API.
func NewWithGenerate(fn GenerateFunc, opts ...Option) *Client {
	return newClient(fn, opts...)
}
