package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

const documentExt = ".json"

// Dir stores one JSON document per form under a root directory. Saves write a
// temporary file next to the target and rename it into place.
type Dir struct {
	root string
}

var _ Store = (*Dir)(nil)

// NewDir returns a Store rooted at dir, creating the directory if needed.
func NewDir(dir string) (*Dir, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create %s: %w", dir, err)
	}
	return &Dir{root: dir}, nil
}

// Load reads and decodes the document stored under id.
func (d *Dir) Load(ctx context.Context, id string) (formdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return formdoc.Document{}, err
	}
	if err := checkID(id); err != nil {
		return formdoc.Document{}, err
	}

	data, err := os.ReadFile(d.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return formdoc.Document{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return formdoc.Document{}, fmt.Errorf("store: read %q: %w", id, err)
	}
	doc, err := formdoc.Decode(data)
	if err != nil {
		return formdoc.Document{}, fmt.Errorf("store: decode %q: %w", id, err)
	}
	return doc, nil
}

// Save encodes the document and atomically replaces the stored file.
func (d *Dir) Save(ctx context.Context, doc formdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(doc.ID); err != nil {
		return err
	}

	payload, err := formdoc.Encode(doc)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.root, "."+doc.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: create temp for %q: %w", doc.ID, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("store: write %q: %w", doc.ID, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("store: close %q: %w", doc.ID, err)
	}
	if err := os.Rename(tmpName, d.path(doc.ID)); err != nil {
		cleanup()
		return fmt.Errorf("store: commit %q: %w", doc.ID, err)
	}
	return nil
}

// Delete removes the stored document.
func (d *Dir) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(id); err != nil {
		return err
	}
	err := os.Remove(d.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", id, err)
	}
	return nil
}

// List returns the ids of stored documents, sorted.
func (d *Dir) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(d.root)
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", d.root, err)
	}
	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != documentExt {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, documentExt))
	}
	sort.Strings(ids)
	return ids, nil
}

func (d *Dir) path(id string) string {
	return filepath.Join(d.root, id+documentExt)
}
