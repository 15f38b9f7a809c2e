package newspro

import "fmt"

// RunKind separates content from the structure injected around it.
type RunKind int

const (
	RunText      RunKind = iota // Content taken from the source text.
	RunMarker                   // Bullet, item number or quote glyph.
	RunBreak                    // Line break between list items or quote lines.
	RunSeparator                // Boundary between blocks; see Document.Runs.
)

var runKindNames = [...]string{
	RunText:      "text",
	RunMarker:    "marker",
	RunBreak:     "break",
	RunSeparator: "separator",
}

// String returns the stable name of the kind.
func (k RunKind) String() string {
	if k < 0 || int(k) >= len(runKindNames) {
		return fmt.Sprintf("RunKind(%d)", int(k))
	}
	return runKindNames[k]
}

// ParseRunKind is the inverse of [RunKind.String].
func ParseRunKind(s string) (RunKind, error) {
	for i, name := range runKindNames {
		if name == s {
			return RunKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown run kind %q: %w", s, ErrValidation)
}

// StyledRun is the smallest unit of output text with a fixed set of
// attributes. It carries no rendering technology; painters decide what
// each attribute looks like.
type StyledRun struct {
	Text          string
	Bold          bool
	Italic        bool
	Monospace     bool
	Strikethrough bool
	LinkURL       string // empty when the run is not a link
	Heading       int    // 1-3 for heading preset runs, 0 otherwise
	Kind          RunKind
}

// Plain reports whether the run carries no style attributes.
func (r StyledRun) Plain() bool {
	return !r.Bold && !r.Italic && !r.Monospace && !r.Strikethrough &&
		r.LinkURL == "" && r.Heading == 0
}
