package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

// Memory is an in-process Store. Documents are copied on the way in and out so
// callers never share field slices with the store.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]formdoc.Document
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]formdoc.Document)}
}

// Load returns the document stored under id.
func (m *Memory) Load(ctx context.Context, id string) (formdoc.Document, error) {
	if err := ctx.Err(); err != nil {
		return formdoc.Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return formdoc.Document{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return doc.Clone(), nil
}

// Save stores the document under its id, replacing any previous version.
func (m *Memory) Save(ctx context.Context, doc formdoc.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkID(doc.ID); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[doc.ID] = doc.Clone()
	return nil
}

// Delete removes the document stored under id.
func (m *Memory) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(m.docs, id)
	return nil
}

// List returns the stored form ids, sorted.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.docs))
	for id := range m.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
