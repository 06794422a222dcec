package formdoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// ErrEmptyDocument is returned when decoding blank input.
var ErrEmptyDocument = errors.New("formdoc: document is empty")

// Document is the persisted shape of a form layout.
type Document struct {
	ID     string         `json:"id" yaml:"id"`
	Title  string         `json:"title,omitempty" yaml:"title,omitempty"`
	Fields field.Sequence `json:"fields" yaml:"fields"`
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	out := d
	out.Fields = d.Fields.Clone()
	return out
}

// Encode serialises the document as indented JSON.
func Encode(doc Document) ([]byte, error) {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("formdoc: encode %q: %w", doc.ID, err)
	}
	return append(payload, '\n'), nil
}

// EncodeYAML serialises the document as YAML.
func EncodeYAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("formdoc: encode yaml %q: %w", doc.ID, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("formdoc: encode yaml %q: %w", doc.ID, err)
	}
	return buf.Bytes(), nil
}

// Decode parses a JSON or YAML document and checks the field invariants.
func Decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, ErrEmptyDocument
	}

	doc, err := parse(data)
	if err != nil {
		return Document{}, err
	}
	doc.ID = strings.TrimSpace(doc.ID)
	normalize(doc.Fields)

	if err := field.Validate(doc.Fields); err != nil {
		return Document{}, fmt.Errorf("formdoc: document %q: %w", doc.ID, err)
	}
	return doc, nil
}

func parse(data []byte) (Document, error) {
	var doc Document
	jsonErr := json.Unmarshal(data, &doc)
	if jsonErr == nil {
		return doc, nil
	}

	doc = Document{}
	if err := yaml.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}
	return Document{}, fmt.Errorf("formdoc: invalid JSON or YAML: %w", jsonErr)
}

// normalize folds empty option lists to nil, matching what Encode emits for
// them, so a decoded document re-encodes and re-decodes to the same value.
func normalize(seq field.Sequence) {
	for i := range seq {
		if len(seq[i].Options) == 0 {
			seq[i].Options = nil
		}
	}
}
