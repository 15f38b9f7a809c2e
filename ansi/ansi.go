// Package ansi cleans untrusted text before it reaches the terminal.
//
// Markdown from files, stdin or the analyzer is passed through [Sanitize]
// so embedded escape sequences cannot restyle or move the cursor of the
// terminal the document is painted on. [Formatter] applies it in front of
// any other formatter.
package ansi

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/gknews/newspro"
)

// Interface compliance check.
var _ newspro.Formatter = Formatter{}

// Formatter sanitizes source before handing it to the wrapped formatter.
type Formatter struct {
	Formatter newspro.Formatter
}

// Format implements [newspro.Formatter].
func (f Formatter) Format(source string) newspro.Document {
	return f.Formatter.Format(Sanitize(source))
}

// Sanitize strips ANSI escape sequences and control characters from s.
// Tabs and newlines are kept. CRLF and lone CR line endings become LF.
func Sanitize(s string) string {
	s = xansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isControl reports C0 controls other than tab and newline, DEL and C1
// controls.
func isControl(r rune) bool {
	switch {
	case r == '\t' || r == '\n':
		return false
	case r < 0x20, r == 0x7f:
		return true
	case r >= 0x80 && r <= 0x9f:
		return true
	}
	return false
}
