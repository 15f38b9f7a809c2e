package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gknews/newspro"
	"github.com/gknews/newspro/gemini"
	newsjson "github.com/gknews/newspro/json"
	"github.com/gknews/newspro/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// testApp returns an app reading stdin and capturing stdout. Analysis
// requests are answered by reply.
func testApp(stdin string, reply func(newspro.AnalysisRequest) (string, error)) (*app, *bytes.Buffer) {
	var stdout bytes.Buffer
	a := &app{
		stdin:  strings.NewReader(stdin),
		stdout: &stdout,
		stderr: &bytes.Buffer{},
		getenv: env(nil),
		newAnalyzer: func(context.Context, config, *slog.Logger) (newspro.Analyzer, error) {
			return &mock.Analyzer{AnalyzeFn: func(_ context.Context, req newspro.AnalysisRequest) (string, error) {
				return reply(req)
			}}, nil
		},
	}
	return a, &stdout
}

func noAnalysis(newspro.AnalysisRequest) (string, error) {
	return "", errors.New("analyzer should not be called")
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("# Title\n\nHello **world**", noAnalysis)
		require.NoError(t, a.run(context.Background(), []string{"-format", "text"}))
		assert.Equal(t, "Title\n\nHello world\n", out.String())
	})

	t.Run("json format", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("# Title\n\n- a\n- b", noAnalysis)
		require.NoError(t, a.run(context.Background(), []string{"-format", "json"}))

		doc, err := newsjson.UnmarshalDocument(out.Bytes())
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 2)
		assert.Equal(t, newspro.BlockHeading1, doc.Blocks[0].Kind)
		assert.Equal(t, newspro.BlockUnorderedList, doc.Blocks[1].Kind)
	})

	t.Run("commonmark engine", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("Some *nested **strong** text*", noAnalysis)
		require.NoError(t, a.run(context.Background(), []string{"-format", "text", "-engine", "commonmark"}))
		assert.Equal(t, "Some nested strong text\n", out.String())
	})

	t.Run("empty input prints nothing", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("  \n\n ", noAnalysis)
		require.NoError(t, a.run(context.Background(), []string{"-format", "text"}))
		assert.Empty(t, out.String())
	})
}

func TestRun_Files(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "feed"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed", "b.md"), []byte("beta"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "feed", "a.md"), []byte("alpha"), 0o644))

	t.Run("glob expands in sorted order", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("", noAnalysis)
		err := a.run(context.Background(), []string{"-format", "text", filepath.Join(dir, "**", "*.md")})
		require.NoError(t, err)
		assert.Equal(t, "alpha\n\nbeta\n", out.String())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp("", noAnalysis)
		err := a.run(context.Background(), []string{filepath.Join(dir, "missing.md")})
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("pattern without matches", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp("", noAnalysis)
		err := a.run(context.Background(), []string{filepath.Join(dir, "*.txt")})
		require.ErrorIs(t, err, newspro.ErrValidation)
	})
}

func TestRun_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("url analysis is printed and saved", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "snap", "analysis.json")
		var got newspro.AnalysisRequest
		a, out := testApp("", func(req newspro.AnalysisRequest) (string, error) {
			got = req
			return "## Key points\n\n- **Rates** rose", nil
		})

		err := a.run(context.Background(), []string{
			"-format", "text", "-model", "m1",
			"-analyze-url", "https://news.example/story",
			"-save", path,
		})
		require.NoError(t, err)
		assert.Equal(t, newspro.AnalyzeURL, got.Kind)
		assert.Equal(t, "https://news.example/story", got.URL)
		assert.Equal(t, "m1", got.Model)
		assert.Equal(t, "Key points\n\n• Rates rose\n", out.String())

		saved, err := newsjson.Load(path)
		require.NoError(t, err)
		assert.Equal(t, newspro.AnalyzeURL, saved.Request.Kind)
		assert.Equal(t, "## Key points\n\n- **Rates** rose", saved.Text)
		assert.Equal(t, "m1", saved.Model)
		assert.NotEmpty(t, saved.ID)
	})

	t.Run("snapshot records the default model", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "analysis.json")
		var got newspro.AnalysisRequest
		a, _ := testApp("", func(req newspro.AnalysisRequest) (string, error) {
			got = req
			return "Done.", nil
		})
		err := a.run(context.Background(), []string{"-analyze-url", "https://news.example/story", "-save", path})
		require.NoError(t, err)
		assert.Equal(t, gemini.DefaultModel, got.Model)

		saved, err := newsjson.Load(path)
		require.NoError(t, err)
		assert.Equal(t, gemini.DefaultModel, saved.Model)
		assert.Equal(t, gemini.DefaultModel, saved.Request.Model)
	})

	t.Run("reply is sanitized for output and saved raw", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "analysis.json")
		raw := "\x1b]0;pwned\x07**Safe** \x1b[31mreply\x1b[0m"
		a, out := testApp("", func(newspro.AnalysisRequest) (string, error) {
			return raw, nil
		})
		err := a.run(context.Background(), []string{"-format", "json", "-analyze-url", "https://news.example/story", "-save", path})
		require.NoError(t, err)

		doc, err := newsjson.UnmarshalDocument(out.Bytes())
		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
		assert.Equal(t, []newspro.StyledRun{{Text: "Safe", Bold: true}, {Text: " reply"}}, doc.Blocks[0].Runs)

		saved, err := newsjson.Load(path)
		require.NoError(t, err)
		assert.Equal(t, raw, saved.Text)
	})

	t.Run("content analysis", func(t *testing.T) {
		t.Parallel()
		var got newspro.AnalysisRequest
		a, out := testApp("", func(req newspro.AnalysisRequest) (string, error) {
			got = req
			return "Fine.", nil
		})
		err := a.run(context.Background(), []string{"-format", "text", "-title", " Markets ", "-description", "Stocks fell"})
		require.NoError(t, err)
		assert.Equal(t, newspro.AnalyzeContent, got.Kind)
		assert.Equal(t, "Markets", got.Title)
		assert.Equal(t, "Stocks fell", got.Description)
		assert.Equal(t, "Fine.\n", out.String())
	})

	t.Run("continue url", func(t *testing.T) {
		t.Parallel()
		var got newspro.AnalysisRequest
		a, _ := testApp("", func(req newspro.AnalysisRequest) (string, error) {
			got = req
			return "More.", nil
		})
		require.NoError(t, a.run(context.Background(), []string{"-continue-url", "https://news.example/x"}))
		assert.Equal(t, newspro.ContinueURL, got.Kind)
	})

	t.Run("invalid url fails before the analyzer is built", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp("", noAnalysis)
		a.newAnalyzer = func(context.Context, config, *slog.Logger) (newspro.Analyzer, error) {
			t.Fatal("analyzer constructed for invalid request")
			return nil, nil
		}
		err := a.run(context.Background(), []string{"-analyze-url", "not a url"})
		require.ErrorIs(t, err, newspro.ErrValidation)
	})

	t.Run("analyzer error", func(t *testing.T) {
		t.Parallel()
		a, out := testApp("", func(newspro.AnalysisRequest) (string, error) {
			return "", errors.New("quota exceeded")
		})
		err := a.run(context.Background(), []string{"-analyze-url", "https://news.example/x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quota exceeded")
		assert.Empty(t, out.String())
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()
		a, _ := testApp("", noAnalysis)
		a.newAnalyzer = newAnalyzer
		err := a.run(context.Background(), []string{"-analyze-url", "https://news.example/x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY not set")
	})
}

func TestRun_Load(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "analysis.json")
	require.NoError(t, newsjson.Save(path, newspro.Analysis{
		ID:        "a1",
		Request:   newspro.AnalysisRequest{Kind: newspro.AnalyzeContent, Title: "T"},
		Text:      "Saved *text*",
		CreatedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}))

	a, out := testApp("", noAnalysis)
	require.NoError(t, a.run(context.Background(), []string{"-format", "text", "-load", path}))
	assert.Equal(t, "Saved text\n", out.String())

	a, _ = testApp("", noAnalysis)
	err := a.run(context.Background(), []string{"-load", filepath.Join(t.TempDir(), "missing.json")})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := parseConfig(nil, env(nil), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "builtin", cfg.engine)
		assert.Equal(t, "ansi", cfg.format)
		assert.Equal(t, 80, cfg.width)
		assert.Equal(t, slog.LevelWarn, cfg.logLevel)
		assert.Equal(t, gemini.DefaultModel, cfg.model)
		assert.Empty(t, cfg.apiKey)
		assert.False(t, cfg.analyzing())
	})

	t.Run("environment defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := parseConfig(nil, env(map[string]string{
			"GEMINI_API_KEY": "gk-env",
			"GEMINI_MODEL":   "gemini-env",
			"LOG_LEVEL":      "debug",
		}), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "gk-env", cfg.apiKey)
		assert.Equal(t, "gemini-env", cfg.model)
		assert.Equal(t, slog.LevelDebug, cfg.logLevel)
	})

	t.Run("flags override environment", func(t *testing.T) {
		t.Parallel()
		cfg, err := parseConfig(
			[]string{"-api-key", "gk-flag", "-model", "m-flag", "-log-level", "error"},
			env(map[string]string{"GEMINI_API_KEY": "gk-env", "GEMINI_MODEL": "m-env", "LOG_LEVEL": "debug"}),
			&bytes.Buffer{},
		)
		require.NoError(t, err)
		assert.Equal(t, "gk-flag", cfg.apiKey)
		assert.Equal(t, "m-flag", cfg.model)
		assert.Equal(t, slog.LevelError, cfg.logLevel)
	})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown engine", args: []string{"-engine", "pandoc"}, want: "unknown engine"},
		{name: "unknown format", args: []string{"-format", "html"}, want: "unknown format"},
		{name: "bad log level", args: []string{"-log-level", "loud"}, want: "invalid log level"},
		{name: "negative width", args: []string{"-width", "-1"}, want: "width"},
		{name: "empty model", args: []string{"-model", " "}, want: "model"},
		{name: "two sources", args: []string{"-analyze-url", "https://a.example", "-load", "x.json"}, want: "choose one"},
		{name: "url and files", args: []string{"-continue-url", "https://a.example", "a.md"}, want: "choose one"},
		{name: "save without analysis", args: []string{"-save", "x.json", "a.md"}, want: "-save needs"},
		{name: "tui with json", args: []string{"-tui", "-format", "json"}, want: "-tui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := parseConfig(tt.args, env(nil), &bytes.Buffer{})
			require.ErrorIs(t, err, newspro.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("unknown flag", func(t *testing.T) {
		t.Parallel()
		var stderr bytes.Buffer
		_, err := parseConfig([]string{"-nope"}, env(nil), &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Usage: newspro")
	})
}

func TestConfig_Request(t *testing.T) {
	t.Parallel()

	cfg := config{analyzeURL: "https://a.example", model: "m"}
	assert.Equal(t, newspro.AnalysisRequest{Kind: newspro.AnalyzeURL, URL: "https://a.example", Model: "m"}, cfg.request())

	cfg = config{continueURL: "https://a.example"}
	assert.Equal(t, newspro.ContinueURL, cfg.request().Kind)

	cfg = config{description: "d"}
	assert.Equal(t, newspro.AnalysisRequest{Kind: newspro.AnalyzeContent, Description: "d"}, cfg.request())
}

func TestNewAnalyzer(t *testing.T) {
	t.Parallel()

	t.Run("with key", func(t *testing.T) {
		t.Parallel()
		an, err := newAnalyzer(context.Background(), config{apiKey: "gk-test", model: "m"}, slog.Default())
		require.NoError(t, err)
		assert.NotNil(t, an)
	})

	t.Run("without key", func(t *testing.T) {
		t.Parallel()
		_, err := newAnalyzer(context.Background(), config{}, slog.Default())
		require.ErrorIs(t, err, newspro.ErrValidation)
	})
}

func TestAnalysisTitle(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Analysis: https://a.example", analysisTitle(newspro.AnalysisRequest{Kind: newspro.AnalyzeURL, URL: "https://a.example"}))
	assert.Equal(t, "Continued: https://a.example", analysisTitle(newspro.AnalysisRequest{Kind: newspro.ContinueURL, URL: "https://a.example"}))
	assert.Equal(t, "Markets", analysisTitle(newspro.AnalysisRequest{Kind: newspro.AnalyzeContent, Title: "Markets"}))
	assert.Equal(t, "Analysis", analysisTitle(newspro.AnalysisRequest{Kind: newspro.AnalyzeContent}))
}

func TestRun_SanitizesInput(t *testing.T) {
	t.Parallel()
	a, out := testApp("\x1b]0;pwned\x07Safe \x1b[31mtext\x1b[0m", noAnalysis)
	require.NoError(t, a.run(context.Background(), []string{"-format", "text"}))
	assert.Equal(t, "Safe text\n", out.String())
}
