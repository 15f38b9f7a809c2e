// Command newspro formats markdown news content for the terminal.
//
// Usage:
//
//	newspro [flags] [file|glob ...]
//	GEMINI_API_KEY=... newspro -analyze-url https://example.com/story
//
// With no files and no analysis flags, markdown is read from stdin.
// A .env file in the working directory is loaded before flags are parsed.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/gknews/newspro"
	"github.com/gknews/newspro/ansi"
	bt "github.com/gknews/newspro/bubbletea"
	"github.com/gknews/newspro/fs"
	"github.com/gknews/newspro/goldmark"
	newsjson "github.com/gknews/newspro/json"
	painter "github.com/gknews/newspro/lipgloss"
	"github.com/gknews/newspro/markdown"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		getenv:      os.Getenv,
		newAnalyzer: newAnalyzer,
	}
	if err := a.run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "newspro: %v\n", err)
		os.Exit(1)
	}
}

// app holds the process boundary so tests can drive run without a
// terminal or network.
type app struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	getenv      func(string) string
	newAnalyzer func(ctx context.Context, cfg config, logger *slog.Logger) (newspro.Analyzer, error)
}

// source is one piece of markdown to format, with a name for titles and
// log lines.
type source struct {
	name string
	text string
}

func (a *app) run(ctx context.Context, args []string) error {
	cfg, err := parseConfig(args, a.getenv, a.stderr)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: cfg.logLevel}))
	logger.Debug("configured", "engine", cfg.engine, "format", cfg.format, "width", cfg.width)

	formatter := ansi.Formatter{Formatter: newFormatter(cfg.engine)}

	switch {
	case cfg.analyzing():
		return a.analyze(ctx, cfg, formatter, logger)

	case cfg.loadPath != "":
		analysis, err := newsjson.Load(cfg.loadPath)
		if err != nil {
			return fmt.Errorf("load analysis: %w", err)
		}
		logger.Info("loaded analysis", "id", analysis.ID, "kind", analysis.Request.Kind.String())
		src := source{name: analysisTitle(analysis.Request), text: analysis.Text}
		return a.output(ctx, cfg, formatter, []source{src})

	default:
		sources, err := a.sources(cfg.args)
		if err != nil {
			return err
		}
		for _, s := range sources {
			logger.Debug("read source", "name", s.name, "bytes", len(s.text))
		}
		return a.output(ctx, cfg, formatter, sources)
	}
}

func (a *app) analyze(ctx context.Context, cfg config, formatter newspro.Formatter, logger *slog.Logger) error {
	req := cfg.request()
	if err := req.Validate(); err != nil {
		return err
	}
	analyzer, err := a.newAnalyzer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	reader := newspro.NewReader(analyzer, formatter)

	read := func(ctx context.Context) (newspro.Analysis, newspro.Document, error) {
		analysis, doc, err := reader.Read(ctx, req)
		if err != nil {
			return newspro.Analysis{}, newspro.Document{}, err
		}
		logger.Info("analysis complete", "id", analysis.ID, "model", analysis.Model, "kind", req.Kind.String(), "chars", len(analysis.Text))
		if cfg.savePath != "" {
			if err := newsjson.Save(cfg.savePath, analysis); err != nil {
				return newspro.Analysis{}, newspro.Document{}, fmt.Errorf("save analysis: %w", err)
			}
			logger.Info("saved analysis", "path", cfg.savePath)
		}
		return analysis, doc, nil
	}

	if cfg.tui {
		// The viewer formats the loaded text itself with the same formatter.
		load := func(ctx context.Context) (string, error) {
			analysis, _, err := read(ctx)
			return analysis.Text, err
		}
		m := bt.New(load, formatter, newspro.DefaultTheme()).WithTitle(analysisTitle(req))
		if err := bt.Run(ctx, m); err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		return nil
	}

	_, doc, err := read(ctx)
	if err != nil {
		return err
	}
	return a.write(cfg, []newspro.Document{doc})
}

// sources expands file arguments, or reads stdin when there are none.
func (a *app) sources(args []string) ([]source, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []source{{name: "stdin", text: string(data)}}, nil
	}
	paths, err := fs.Expand(args)
	if err != nil {
		return nil, err
	}
	sources := make([]source, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		sources = append(sources, source{name: filepath.Base(p), text: string(data)})
	}
	return sources, nil
}

// output formats sources and either prints them or opens the viewer.
func (a *app) output(ctx context.Context, cfg config, formatter newspro.Formatter, sources []source) error {
	if cfg.tui {
		names := make([]string, len(sources))
		texts := make([]string, len(sources))
		for i, s := range sources {
			names[i] = s.name
			texts[i] = s.text
		}
		joined := strings.Join(texts, newspro.BlockSeparator)
		load := func(context.Context) (string, error) { return joined, nil }
		m := bt.New(load, formatter, newspro.DefaultTheme()).WithTitle(strings.Join(names, ", "))
		if err := bt.Run(ctx, m); err != nil {
			return fmt.Errorf("TUI: %w", err)
		}
		return nil
	}

	docs := make([]newspro.Document, len(sources))
	for i, s := range sources {
		docs[i] = formatter.Format(s.text)
	}
	return a.write(cfg, docs)
}

// write prints documents in the configured format. JSON output is one
// envelope per document.
func (a *app) write(cfg config, docs []newspro.Document) error {
	if cfg.format == "json" {
		for _, doc := range docs {
			data, err := newsjson.MarshalDocument(doc)
			if err != nil {
				return fmt.Errorf("marshal document: %w", err)
			}
			if _, err := fmt.Fprintf(a.stdout, "%s\n", data); err != nil {
				return err
			}
		}
		return nil
	}

	p := newPainter(cfg.format, a.stdout)
	for i, doc := range docs {
		out := p.Paint(doc, cfg.width)
		if out == "" {
			continue
		}
		if i > 0 {
			out = "\n" + out
		}
		if _, err := fmt.Fprintln(a.stdout, out); err != nil {
			return err
		}
	}
	return nil
}

func newFormatter(engine string) newspro.Formatter {
	if engine == "commonmark" {
		return goldmark.Formatter{}
	}
	return markdown.Formatter{}
}

// newPainter returns a painter for w. The text format forces the Ascii
// profile; ansi detects the terminal's color support.
func newPainter(format string, w io.Writer) *painter.Painter {
	r := lg.NewRenderer(w)
	if format == "text" {
		r.SetColorProfile(termenv.Ascii)
	}
	return painter.New(newspro.DefaultTheme(), painter.WithRenderer(r))
}

func analysisTitle(req newspro.AnalysisRequest) string {
	switch req.Kind {
	case newspro.AnalyzeURL:
		return "Analysis: " + req.URL
	case newspro.ContinueURL:
		return "Continued: " + req.URL
	default:
		if req.Title != "" {
			return req.Title
		}
		return "Analysis"
	}
}
