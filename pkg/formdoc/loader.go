package formdoc

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Catalog holds documents loaded from a filesystem, keyed by form id. It is
// safe for concurrent readers when treated as immutable after construction.
type Catalog struct {
	docs    map[string]Document
	sources map[string]string
}

// LoadFS walks fsys and decodes every .json/.yaml/.yml file as a form
// document. Each document must declare a non-empty id that is unique across
// the tree. A nil fsys yields an empty catalogue.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	catalog := &Catalog{
		docs:    make(map[string]Document),
		sources: make(map[string]string),
	}
	if fsys == nil {
		return catalog, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDocumentFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("formdoc: read %s: %w", path, err)
		}
		doc, err := Decode(data)
		if err != nil {
			return fmt.Errorf("formdoc: file %s: %w", path, err)
		}
		if doc.ID == "" {
			return fmt.Errorf("formdoc: file %s defines an empty form id", path)
		}
		if previous, exists := catalog.sources[doc.ID]; exists {
			return fmt.Errorf("formdoc: duplicate form %q (files %s and %s)", doc.ID, previous, path)
		}

		catalog.docs[doc.ID] = doc
		catalog.sources[doc.ID] = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

// Get returns a copy of the document with the given id.
func (c *Catalog) Get(id string) (Document, bool) {
	if c == nil {
		return Document{}, false
	}
	doc, ok := c.docs[id]
	if !ok {
		return Document{}, false
	}
	return doc.Clone(), true
}

// Source returns the path the document was loaded from.
func (c *Catalog) Source(id string) string {
	if c == nil {
		return ""
	}
	return c.sources[id]
}

// IDs lists the loaded form ids in sorted order.
func (c *Catalog) IDs() []string {
	if c == nil || len(c.docs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(c.docs))
	for id := range c.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the catalogue holds any documents.
func (c *Catalog) Empty() bool {
	return c == nil || len(c.docs) == 0
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
