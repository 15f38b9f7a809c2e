package newspro

import (
	"fmt"
	"strings"
)

// formattingRules lists the markup the builtin formatter understands, so
// the generated text renders cleanly.
const formattingRules = `Format the answer with this markup only:
- "# ", "## " or "### " at the start of a block for headings
- "- " for bullet items and "1. " for numbered items, one item per line
- "> " for quoted lines
- **bold**, *italic*, ` + "`code`" + `, [label](url) and ~~strikethrough~~ inside text
Separate blocks with one blank line. Do not nest styles.`

// Prompt returns the instruction text sent to the analyzer for req.
func Prompt(req AnalysisRequest) string {
	var b strings.Builder
	switch req.Kind {
	case AnalyzeContent:
		b.WriteString("Analyze the following news article. Summarize the key points, ")
		b.WriteString("explain the context and note anything the reader should verify.\n\n")
		if t := strings.TrimSpace(req.Title); t != "" {
			fmt.Fprintf(&b, "Title: %s\n", t)
		}
		if d := strings.TrimSpace(req.Description); d != "" {
			fmt.Fprintf(&b, "Description: %s\n", d)
		}
	case AnalyzeURL:
		fmt.Fprintf(&b, "Read the news article at %s and analyze it. ", strings.TrimSpace(req.URL))
		b.WriteString("Summarize the key points, explain the context and note anything the reader should verify.\n")
	case ContinueURL:
		fmt.Fprintf(&b, "Read the news article at %s and continue it ", strings.TrimSpace(req.URL))
		b.WriteString("in the same voice, covering likely follow-up developments. Mark speculation clearly.\n")
	}
	b.WriteString("\n")
	b.WriteString(formattingRules)
	return b.String()
}
