package testsupport

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// SequentialIDs is a deterministic field.IDGenerator producing prefix-1,
// prefix-2, ... so tests can assert exact ids.
type SequentialIDs struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequentialIDs returns a generator starting at prefix-1.
func NewSequentialIDs(prefix string) *SequentialIDs {
	return &SequentialIDs{prefix: prefix}
}

// NewID implements field.IDGenerator.
func (s *SequentialIDs) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	return fmt.Sprintf("%s-%d", s.prefix, s.next)
}

// Field builds a field with the subtype defaults and a fixed id. Choice
// options receive ids derived from the field id.
func Field(id string, subtype field.Subtype) field.Field {
	kind := field.MustKindOf(subtype)
	f := field.Field{
		ID:       id,
		Subtype:  kind.Subtype,
		Type:     kind.Type,
		Label:    kind.Label,
		Required: kind.Required,
	}
	if kind.Rating {
		f.RatingCount = field.DefaultRatingCount
	}
	for i := 1; i <= kind.Options; i++ {
		f.Options = append(f.Options, field.Option{
			ID:    fmt.Sprintf("%s-opt-%d", id, i),
			Value: field.OptionLabel(i),
		})
	}
	return f
}

// Labeled is Field with an explicit label.
func Labeled(id string, subtype field.Subtype, label string) field.Field {
	f := Field(id, subtype)
	f.Label = label
	return f
}

// PageBreak builds a page field with a fixed id.
func PageBreak(id string) field.Field {
	return Labeled(id, field.SubtypePage, "Page")
}

// LoadDocument reads a JSON or YAML form document fixture.
func LoadDocument(t *testing.T, path string) formdoc.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (formdoc.Document, error) {
	if path == "" {
		return formdoc.Document{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return formdoc.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := formdoc.Decode(data)
	if err != nil {
		return formdoc.Document{}, fmt.Errorf("testsupport: decode document: %w", err)
	}
	return doc, nil
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
