package gemini

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gknews/newspro"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ newspro.Analyzer = (*Client)(nil)

type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client implements [newspro.Analyzer] for the Google Gemini API.
type Client struct {
	generate    generateFunc
	model       string
	temperature *float32
	logger      *slog.Logger
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is [DefaultModel].
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Client) { c.temperature = &t }
}

// WithLogger sets the logger used for request diagnostics. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return newClient(gc.Models.GenerateContent, opts...), nil
}

func newClient(fn generateFunc, opts ...Option) *Client {
	c := &Client{
		generate: fn,
		model:    DefaultModel,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Analyze sends the prompt for req and returns the model's markdown reply.
// A request model overrides the client default.
func (c *Client) Analyze(ctx context.Context, req newspro.AnalysisRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = c.model
	}
	prompt := newspro.Prompt(req)
	c.logger.DebugContext(ctx, "gemini request", "kind", req.Kind.String(), "model", model, "prompt_chars", len(prompt))

	resp, err := c.generate(ctx, model, genai.Text(prompt), c.Config())
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	text, err := ExtractText(resp)
	if err != nil {
		c.logger.WarnContext(ctx, "gemini returned no text", "model", model, "error", err)
		return "", err
	}
	c.logger.DebugContext(ctx, "gemini response", "model", model, "chars", len(text))
	return text, nil
}

// Config returns the generation config sent with every request.
func (c *Client) Config() *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: defaultMaxTokens,
	}
	if c.temperature != nil {
		temp := *c.temperature
		config.Temperature = &temp
	}
	return config
}

// ExtractText concatenates the non-thought text parts of the first
// candidate. A blocked prompt, a missing candidate or a blank reply is
// reported as [newspro.ErrEmptyResponse].
// Exported for testing.
func ExtractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("gemini: %w", newspro.ErrEmptyResponse)
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		return "", fmt.Errorf("gemini: prompt blocked (%s): %w", fb.BlockReason, newspro.ErrEmptyResponse)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("gemini: no candidates: %w", newspro.ErrEmptyResponse)
	}
	cand := resp.Candidates[0]
	var sb strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			sb.WriteString(p.Text)
		}
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		if cand.FinishReason != "" && cand.FinishReason != genai.FinishReasonStop {
			return "", fmt.Errorf("gemini: finish reason %s: %w", cand.FinishReason, newspro.ErrEmptyResponse)
		}
		return "", fmt.Errorf("gemini: %w", newspro.ErrEmptyResponse)
	}
	return text, nil
}
