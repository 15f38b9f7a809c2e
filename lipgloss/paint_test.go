package lipgloss_test

import (
	"io"
	"strings"
	"testing"

	lg "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/gknews/newspro"
	"github.com/gknews/newspro/lipgloss"
	"github.com/gknews/newspro/markdown"
	"github.com/muesli/termenv"
	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func painter(profile termenv.Profile) *lipgloss.Painter {
	r := lg.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return lipgloss.New(newspro.DefaultTheme(), lipgloss.WithRenderer(r))
}

func TestPaint(t *testing.T) {
	t.Parallel()

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", painter(termenv.Ascii).Paint(newspro.Document{}, 80))
	})

	t.Run("plain layout", func(t *testing.T) {
		t.Parallel()
		src := "# Title\n\nSome **bold** and [docs](https://e.example) text\n\n- one\n- two\n\n3. first\n\n> quoted\n\n```go\nx := 1\ny := 2\n```"
		got := painter(termenv.Ascii).Paint(markdown.Format(src), 80)
		want := "Title\n\n" +
			"Some bold and docs (https://e.example) text\n\n" +
			"• one\n• two\n\n" +
			"1. first\n\n" +
			"❝ quoted\n\n" +
			"go\n│ x := 1\n│ y := 2"
		assert.Equal(t, want, got)
	})

	t.Run("code span keeps padding", func(t *testing.T) {
		t.Parallel()
		got := painter(termenv.Ascii).Paint(markdown.Format("run `make` now"), 80)
		assert.Contains(t, got, " make ")
		assert.True(t, strings.HasPrefix(got, "run"))
	})

	t.Run("heading is styled differently from paragraph", func(t *testing.T) {
		t.Parallel()
		p := painter(termenv.ANSI)
		heading := p.Paint(markdown.Format("# Title"), 80)
		paragraph := p.Paint(markdown.Format("Title"), 80)
		assert.Equal(t, "Title", ansi.Strip(heading))
		assert.NotEqual(t, heading, paragraph)
	})

	t.Run("styled runs emit escape codes", func(t *testing.T) {
		t.Parallel()
		got := painter(termenv.ANSI).Paint(markdown.Format("**bold** ~~gone~~ *it*"), 80)
		assert.Contains(t, got, "\x1b[")
		assert.Equal(t, "bold gone it", ansi.Strip(got))
	})

	t.Run("paragraph wraps to width", func(t *testing.T) {
		t.Parallel()
		long := "word1 word2 word3 word4 word5 word6 word7 word8 word9 word10 word11 word12"
		got := painter(termenv.Ascii).Paint(markdown.Format(long), 30)
		lines := strings.Split(got, "\n")
		assert.Greater(t, len(lines), 1)
		for _, l := range lines {
			assert.LessOrEqual(t, uniseg.StringWidth(l), 30)
		}
		assert.Contains(t, got, "word12")
	})

	t.Run("list continuation lines are indented", func(t *testing.T) {
		t.Parallel()
		src := "- this is a very long list item that should wrap and have continuation lines properly indented"
		got := painter(termenv.Ascii).Paint(markdown.Format(src), 30)
		lines := strings.Split(got, "\n")
		require.Greater(t, len(lines), 1)
		assert.True(t, strings.HasPrefix(lines[0], newspro.BulletGlyph))
		for _, line := range lines[1:] {
			assert.True(t, strings.HasPrefix(line, "  "), "continuation line should be indented: %q", line)
		}
	})

	t.Run("code block is not reflowed", func(t *testing.T) {
		t.Parallel()
		src := "```\nfmt.Println(\"hello world, this line is long\")\n```"
		got := painter(termenv.Ascii).Paint(markdown.Format(src), 20)
		assert.Equal(t, "│ fmt.Println(\"hello world, this line is long\")", got)
	})

	t.Run("blank edge lines of a paragraph are not painted", func(t *testing.T) {
		t.Parallel()
		got := painter(termenv.Ascii).Paint(markdown.Format("a\n\n\nb\n"), 80)
		assert.Equal(t, "a\n\nb", got)
	})

	t.Run("width zero defaults to 80", func(t *testing.T) {
		t.Parallel()
		got := painter(termenv.Ascii).Paint(markdown.Format("hello world"), 0)
		assert.Equal(t, "hello world", got)
	})

	t.Run("package level paint", func(t *testing.T) {
		t.Parallel()
		got := lipgloss.Paint(markdown.Format("hello"), 80, newspro.DefaultTheme())
		assert.Equal(t, "hello", ansi.Strip(got))
	})
}
