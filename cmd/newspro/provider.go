package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gknews/newspro"
	"github.com/gknews/newspro/gemini"
)

// newAnalyzer constructs the Gemini analyzer. The key was resolved from
// the flag or GEMINI_API_KEY by parseConfig.
func newAnalyzer(ctx context.Context, cfg config, logger *slog.Logger) (newspro.Analyzer, error) {
	if cfg.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set (use -api-key flag or environment variable): %w", newspro.ErrValidation)
	}
	opts := []gemini.Option{gemini.WithLogger(logger)}
	if cfg.model != "" {
		opts = append(opts, gemini.WithModel(cfg.model))
	}
	client, err := gemini.New(ctx, cfg.apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
