package texmorph

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// Document is the persisted form of an alignment: the ordered tag list, the
// optional per-slot index overrides and the source text of each group.
type Document struct {
	Tags            AlignmentTable `toml:"tags"`
	BeforeOverrides []int          `toml:"before_overrides,omitempty"`
	AfterOverrides  []int          `toml:"after_overrides,omitempty"`
	BeforeGroups    []string       `toml:"before_groups"`
	AfterGroups     []string       `toml:"after_groups"`
}

// Validate checks the table and that it addresses exactly the stored groups
// and overrides.
func (d Document) Validate() error {
	if err := d.Tags.Validate(); err != nil {
		return err
	}
	nb, na := d.Tags.Counts()
	if nb != len(d.BeforeGroups) || na != len(d.AfterGroups) {
		return fmt.Errorf("%w: table addresses %d before and %d after groups, document has %d and %d",
			ErrGroupCountMismatch, nb, na, len(d.BeforeGroups), len(d.AfterGroups))
	}
	_, err := resolveIndexes(d.Tags, d.BeforeOverrides, d.AfterOverrides)
	return err
}

// Editor opens the document for editing. Overrides are not carried over: any
// structural edit invalidates them.
func (d Document) Editor() (*Editor, error) {
	return NewEditor(d.Tags, d.BeforeGroups, d.AfterGroups)
}

// MarshalDocument encodes d as TOML.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument decodes and validates a TOML document.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := toml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("parse document: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	return d, nil
}
