package markdown

import (
	"regexp"
	"strings"

	"github.com/gknews/newspro"
)

// rawBlock is a classified block before inline extraction. Headings,
// paragraphs and code use text; quotes and lists use lines.
type rawBlock struct {
	kind  newspro.BlockKind
	text  string
	lines []string
	lang  string
}

// blockRule matches a non-blank block candidate with its leading
// whitespace removed.
type blockRule struct {
	kind  newspro.BlockKind
	match func(s string) (rawBlock, bool)
}

// blockRules are tried in order; the first match wins. Anything left over
// is a paragraph.
var blockRules = []blockRule{
	{newspro.BlockHeading1, headingRule("# ")},
	{newspro.BlockHeading2, headingRule("## ")},
	{newspro.BlockHeading3, headingRule("### ")},
	{newspro.BlockQuote, matchQuote},
	{newspro.BlockUnorderedList, matchUnordered},
	{newspro.BlockOrderedList, matchOrdered},
	{newspro.BlockCode, matchCode},
}

var orderedItem = regexp.MustCompile(`^\d+\.\s`)

const fence = "```"

// knownLanguages are the fence tags stripped from code blocks.
var knownLanguages = map[string]bool{
	"go": true, "golang": true, "kotlin": true, "java": true, "swift": true,
	"js": true, "javascript": true, "ts": true, "typescript": true,
	"python": true, "py": true, "html": true, "css": true, "json": true,
	"yaml": true, "yml": true, "sql": true, "bash": true, "sh": true,
	"shell": true, "c": true, "cpp": true, "rust": true, "ruby": true,
	"xml": true, "markdown": true, "md": true, "text": true,
}

// segment splits source on blank-line boundaries and classifies each
// non-blank candidate.
func segment(source string) []rawBlock {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	var blocks []rawBlock
	for _, candidate := range strings.Split(source, "\n\n") {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		blocks = append(blocks, classify(candidate))
	}
	return blocks
}

// classify matches candidate against blockRules. A paragraph keeps the
// candidate untouched, surrounding whitespace included.
func classify(candidate string) rawBlock {
	s := strings.TrimLeft(candidate, " \t\n")
	for _, rule := range blockRules {
		if rb, ok := rule.match(s); ok {
			rb.kind = rule.kind
			return rb
		}
	}
	return rawBlock{kind: newspro.BlockParagraph, text: candidate}
}

func headingRule(prefix string) func(string) (rawBlock, bool) {
	return func(s string) (rawBlock, bool) {
		rest, ok := strings.CutPrefix(s, prefix)
		if !ok {
			return rawBlock{}, false
		}
		return rawBlock{text: strings.TrimSpace(rest)}, true
	}
}

// matchQuote requires every line, blank ones included, to carry "> ".
// Trailing newlines do not start a line.
func matchQuote(s string) (rawBlock, bool) {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		rest, ok := strings.CutPrefix(strings.TrimLeft(line, " \t"), "> ")
		if !ok {
			return rawBlock{}, false
		}
		out = append(out, strings.TrimSpace(rest))
	}
	return rawBlock{lines: out}, true
}

func matchUnordered(s string) (rawBlock, bool) {
	return matchItems(s, func(line string) (string, bool) {
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ") {
			return line[2:], true
		}
		return "", false
	})
}

func matchOrdered(s string) (rawBlock, bool) {
	return matchItems(s, func(line string) (string, bool) {
		loc := orderedItem.FindStringIndex(line)
		if loc == nil {
			return "", false
		}
		return line[loc[1]:], true
	})
}

// matchItems applies item to every non-blank line and collects the items
// when all of them match.
func matchItems(s string, item func(line string) (string, bool)) (rawBlock, bool) {
	var items []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rest, ok := item(strings.TrimLeft(line, " \t"))
		if !ok {
			return rawBlock{}, false
		}
		items = append(items, strings.TrimSpace(rest))
	}
	if len(items) == 0 {
		return rawBlock{}, false
	}
	return rawBlock{lines: items}, true
}

func matchCode(s string) (rawBlock, bool) {
	s = strings.TrimRight(s, " \t\n")
	if len(s) < 2*len(fence) || !strings.HasPrefix(s, fence) || !strings.HasSuffix(s, fence) {
		return rawBlock{}, false
	}
	body := s[len(fence) : len(s)-len(fence)]
	var lang string
	first, rest, multiline := strings.Cut(body, "\n")
	tag := strings.TrimSpace(first)
	switch {
	case knownLanguages[strings.ToLower(tag)]:
		lang = tag
		body = rest
	case multiline && tag == "":
		body = rest
	}
	body = strings.TrimRight(strings.TrimLeft(body, "\n"), " \t\n")
	return rawBlock{text: body, lang: lang}, true
}
