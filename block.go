package newspro

import "fmt"

// BlockKind classifies a top-level, blank-line-delimited unit of text.
type BlockKind int

const (
	BlockParagraph BlockKind = iota
	BlockHeading1
	BlockHeading2
	BlockHeading3
	BlockQuote
	BlockUnorderedList
	BlockOrderedList
	BlockCode
)

var blockKindNames = [...]string{
	BlockParagraph:     "paragraph",
	BlockHeading1:      "heading1",
	BlockHeading2:      "heading2",
	BlockHeading3:      "heading3",
	BlockQuote:         "quote",
	BlockUnorderedList: "unordered_list",
	BlockOrderedList:   "ordered_list",
	BlockCode:          "code",
}

// String returns the stable name of the kind.
func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
	return blockKindNames[k]
}

// HeadingLevel returns 1-3 for heading kinds and 0 otherwise.
func (k BlockKind) HeadingLevel() int {
	switch k {
	case BlockHeading1:
		return 1
	case BlockHeading2:
		return 2
	case BlockHeading3:
		return 3
	}
	return 0
}

// ParseBlockKind is the inverse of [BlockKind.String].
func ParseBlockKind(s string) (BlockKind, error) {
	for i, name := range blockKindNames {
		if name == s {
			return BlockKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown block kind %q: %w", s, ErrValidation)
}
