package json

import (
	"fmt"

	"github.com/gknews/newspro"
)

type blockDTO struct {
	Kind     string   `json:"kind"`
	Language string   `json:"language,omitempty"`
	Runs     []runDTO `json:"runs"`
}

// runDTO is the JSON representation of a StyledRun. Zero attributes are
// omitted, and an omitted kind means text.
type runDTO struct {
	Text          string `json:"text"`
	Kind          string `json:"kind,omitempty"`
	Bold          bool   `json:"bold,omitempty"`
	Italic        bool   `json:"italic,omitempty"`
	Monospace     bool   `json:"monospace,omitempty"`
	Strikethrough bool   `json:"strikethrough,omitempty"`
	Link          string `json:"link,omitempty"`
	Heading       int    `json:"heading,omitempty"`
}

func marshalBlock(b newspro.Block) blockDTO {
	dto := blockDTO{
		Kind:     b.Kind.String(),
		Language: b.Language,
		Runs:     make([]runDTO, len(b.Runs)),
	}
	for i, r := range b.Runs {
		rd := runDTO{
			Text:          r.Text,
			Bold:          r.Bold,
			Italic:        r.Italic,
			Monospace:     r.Monospace,
			Strikethrough: r.Strikethrough,
			Link:          r.LinkURL,
			Heading:       r.Heading,
		}
		if r.Kind != newspro.RunText {
			rd.Kind = r.Kind.String()
		}
		dto.Runs[i] = rd
	}
	return dto
}

func unmarshalBlock(dto blockDTO) (newspro.Block, error) {
	kind, err := newspro.ParseBlockKind(dto.Kind)
	if err != nil {
		return newspro.Block{}, err
	}
	b := newspro.Block{Kind: kind, Language: dto.Language}
	for i, rd := range dto.Runs {
		r, err := unmarshalRun(rd)
		if err != nil {
			return newspro.Block{}, fmt.Errorf("run %d: %w", i, err)
		}
		b.Runs = append(b.Runs, r)
	}
	return b, nil
}

func unmarshalRun(rd runDTO) (newspro.StyledRun, error) {
	kind := newspro.RunText
	if rd.Kind != "" {
		k, err := newspro.ParseRunKind(rd.Kind)
		if err != nil {
			return newspro.StyledRun{}, err
		}
		kind = k
	}
	if rd.Heading < 0 || rd.Heading > 3 {
		return newspro.StyledRun{}, fmt.Errorf("heading level %d out of range: %w", rd.Heading, newspro.ErrValidation)
	}
	return newspro.StyledRun{
		Text:          rd.Text,
		Bold:          rd.Bold,
		Italic:        rd.Italic,
		Monospace:     rd.Monospace,
		Strikethrough: rd.Strikethrough,
		LinkURL:       rd.Link,
		Heading:       rd.Heading,
		Kind:          kind,
	}, nil
}
