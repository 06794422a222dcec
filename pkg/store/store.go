// Package store keeps form documents keyed by form id. The whole field
// sequence is written as one unit per save; concurrent saves of the same form
// are last-write-wins.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/formdoc"
)

var (
	// ErrNotFound is returned when no document exists for a form id.
	ErrNotFound = errors.New("store: form not found")
	// ErrInvalidID is returned for empty ids or ids that cannot be used as a
	// storage key.
	ErrInvalidID = errors.New("store: invalid form id")
)

// Store persists form documents.
type Store interface {
	Load(ctx context.Context, id string) (formdoc.Document, error)
	Save(ctx context.Context, doc formdoc.Document) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}

func checkID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" || trimmed != id {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return nil
}
