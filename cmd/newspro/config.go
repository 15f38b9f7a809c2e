package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gknews/newspro"
	"github.com/gknews/newspro/gemini"
)

// config is the parsed command line. Environment values are resolved
// into it by parseConfig so nothing below reads the environment.
type config struct {
	engine      string
	format      string
	width       int
	tui         bool
	analyzeURL  string
	continueURL string
	title       string
	description string
	savePath    string
	loadPath    string
	model       string
	apiKey      string
	logLevel    slog.Level
	args        []string
}

// parseConfig parses args (without the program name). getenv supplies
// defaults for the Gemini key, model and log level. The model falls back
// to [gemini.DefaultModel] so requests always name the model that served
// them.
func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (config, error) {
	var (
		cfg      config
		logLevel string
	)
	flags := flag.NewFlagSet("newspro", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(flags.Output(), "Usage: newspro [flags] [file|glob ...]")
		flags.PrintDefaults()
	}
	flags.StringVar(&cfg.engine, "engine", "builtin", "Formatter: builtin, commonmark")
	flags.StringVar(&cfg.format, "format", "ansi", "Output: ansi, json, text")
	flags.IntVar(&cfg.width, "width", 80, "Wrap width")
	flags.BoolVar(&cfg.tui, "tui", false, "Open the interactive viewer")
	flags.StringVar(&cfg.analyzeURL, "analyze-url", "", "Ask Gemini to analyze the article at URL")
	flags.StringVar(&cfg.continueURL, "continue-url", "", "Ask Gemini to continue the article at URL")
	flags.StringVar(&cfg.title, "title", "", "Title of content to analyze")
	flags.StringVar(&cfg.description, "description", "", "Description of content to analyze")
	flags.StringVar(&cfg.savePath, "save", "", "Save the analysis snapshot to PATH")
	flags.StringVar(&cfg.loadPath, "load", "", "Render a saved analysis snapshot from PATH")
	flags.StringVar(&cfg.model, "model", envOr(getenv, "GEMINI_MODEL", gemini.DefaultModel), "Gemini model ID")
	flags.StringVar(&cfg.apiKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY)")
	flags.StringVar(&logLevel, "log-level", envOr(getenv, "LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")
	if err := flags.Parse(args); err != nil {
		return config{}, err
	}
	cfg.args = flags.Args()

	if cfg.apiKey == "" {
		cfg.apiKey = getenv("GEMINI_API_KEY")
	}
	if err := cfg.logLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return config{}, fmt.Errorf("invalid log level %q: %w", logLevel, newspro.ErrValidation)
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c config) validate() error {
	switch c.engine {
	case "builtin", "commonmark":
	default:
		return fmt.Errorf("unknown engine %q: must be \"builtin\" or \"commonmark\": %w", c.engine, newspro.ErrValidation)
	}
	switch c.format {
	case "ansi", "json", "text":
	default:
		return fmt.Errorf("unknown format %q: must be \"ansi\", \"json\" or \"text\": %w", c.format, newspro.ErrValidation)
	}
	if strings.TrimSpace(c.model) == "" {
		return fmt.Errorf("model must not be empty: %w", newspro.ErrValidation)
	}
	if c.width < 0 {
		return fmt.Errorf("width must not be negative: %w", newspro.ErrValidation)
	}

	sources := 0
	for _, set := range []bool{
		c.analyzeURL != "",
		c.continueURL != "",
		c.title != "" || c.description != "",
		c.loadPath != "",
		len(c.args) > 0,
	} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("choose one of -analyze-url, -continue-url, -title/-description, -load or files: %w", newspro.ErrValidation)
	}
	if c.savePath != "" && !c.analyzing() {
		return fmt.Errorf("-save needs an analysis flag: %w", newspro.ErrValidation)
	}
	if c.tui && c.format == "json" {
		return fmt.Errorf("-tui cannot be combined with -format json: %w", newspro.ErrValidation)
	}
	return nil
}

// analyzing reports whether the command asks the analyzer for content.
func (c config) analyzing() bool {
	return c.analyzeURL != "" || c.continueURL != "" || c.title != "" || c.description != ""
}

// request builds the analysis request for the analysis flags.
func (c config) request() newspro.AnalysisRequest {
	req := newspro.AnalysisRequest{Model: c.model}
	switch {
	case c.analyzeURL != "":
		req.Kind = newspro.AnalyzeURL
		req.URL = c.analyzeURL
	case c.continueURL != "":
		req.Kind = newspro.ContinueURL
		req.URL = c.continueURL
	default:
		req.Kind = newspro.AnalyzeContent
		req.Title = strings.TrimSpace(c.title)
		req.Description = strings.TrimSpace(c.description)
	}
	return req
}
