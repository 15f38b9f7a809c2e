// Package json serializes newspro documents and analysis snapshots.
//
// Both formats are versioned envelopes. Enumerations are written as their
// string names so files stay readable and survive reordering of constants.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gknews/newspro"
)

const version = 1

// documentEnvelope is the v1 wire format for a formatted document.
type documentEnvelope struct {
	Version int        `json:"version"`
	Blocks  []blockDTO `json:"blocks"`
}

// analysisEnvelope is the v1 wire format for a saved analysis.
type analysisEnvelope struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title,omitempty"`
	Desc      string    `json:"description,omitempty"`
	URL       string    `json:"url,omitempty"`
	Model     string    `json:"model,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// MarshalDocument serializes a Document in v1 envelope format.
func MarshalDocument(doc newspro.Document) ([]byte, error) {
	env := documentEnvelope{
		Version: version,
		Blocks:  make([]blockDTO, len(doc.Blocks)),
	}
	for i, b := range doc.Blocks {
		env.Blocks[i] = marshalBlock(b)
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalDocument deserializes a Document from v1 envelope format.
func UnmarshalDocument(data []byte) (newspro.Document, error) {
	var env documentEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return newspro.Document{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return newspro.Document{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	var doc newspro.Document
	for i, dto := range env.Blocks {
		b, err := unmarshalBlock(dto)
		if err != nil {
			return newspro.Document{}, fmt.Errorf("block %d: %w", i, err)
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc, nil
}

// MarshalAnalysis serializes an Analysis in v1 envelope format.
func MarshalAnalysis(a newspro.Analysis) ([]byte, error) {
	env := analysisEnvelope{
		Version:   version,
		ID:        a.ID,
		Kind:      a.Request.Kind.String(),
		Title:     a.Request.Title,
		Desc:      a.Request.Description,
		URL:       a.Request.URL,
		Model:     a.Model,
		Text:      a.Text,
		CreatedAt: a.CreatedAt,
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalAnalysis deserializes an Analysis from v1 envelope format.
func UnmarshalAnalysis(data []byte) (newspro.Analysis, error) {
	var env analysisEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return newspro.Analysis{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return newspro.Analysis{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	kind, err := newspro.ParseAnalysisKind(env.Kind)
	if err != nil {
		return newspro.Analysis{}, err
	}
	return newspro.Analysis{
		ID: env.ID,
		Request: newspro.AnalysisRequest{
			Kind:        kind,
			Title:       env.Title,
			Description: env.Desc,
			URL:         env.URL,
			Model:       env.Model,
		},
		Model:     env.Model,
		Text:      env.Text,
		CreatedAt: env.CreatedAt,
	}, nil
}

// Save writes an Analysis to a JSON file, creating parent directories as
// needed. The file is replaced atomically.
func Save(path string, a newspro.Analysis) error {
	data, err := MarshalAnalysis(a)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads an Analysis from a JSON file.
func Load(path string) (newspro.Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return newspro.Analysis{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalAnalysis(data)
}
