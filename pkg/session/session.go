// Package session wraps the pure editor operations with the state an
// interactive builder keeps between edits: the current document, the selected
// field, and undo/redo history. A Session is safe for concurrent use.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/pages"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

const defaultHistoryLimit = 100

var (
	// ErrNothingToUndo is returned by Undo when the history is empty.
	ErrNothingToUndo = errors.New("session: nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone edit is pending.
	ErrNothingToRedo = errors.New("session: nothing to redo")
	// ErrNoStore is returned by Save when the session has no store.
	ErrNoStore = errors.New("session: no store configured")
)

type snapshot struct {
	fields   field.Sequence
	selected string
}

// Session holds one form document under edit.
type Session struct {
	mu sync.Mutex

	editor  *editor.Editor
	store   store.Store
	logger  *zap.Logger
	limit   int
	doc     formdoc.Document
	current string
	undo    []snapshot
	redo    []snapshot
	dirty   bool
}

// New starts a session over a copy of doc.
func New(doc formdoc.Document, opts ...Option) *Session {
	s := &Session{
		doc:    doc.Clone(),
		logger: zap.NewNop(),
		limit:  defaultHistoryLimit,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.editor == nil {
		s.editor = editor.New()
	}
	return s
}

// Open loads the form id from st and starts a session bound to it.
func Open(ctx context.Context, st store.Store, id string, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, ErrNoStore
	}
	doc, err := st.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session: open %q: %w", id, err)
	}
	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	s := New(doc, append(all, WithStore(st))...)
	s.logger.Debug("session opened", zap.String("form", id), zap.Int("fields", len(doc.Fields)))
	return s, nil
}

// Document returns a copy of the document under edit.
func (s *Session) Document() formdoc.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Fields returns a copy of the current field sequence.
func (s *Session) Fields() field.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Fields.Clone()
}

// Pages groups the current sequence into pages.
func (s *Session) Pages() []field.Sequence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pages.Group(s.doc.Fields.Clone())
}

// Navigator returns a page navigator over the current sequence. Later edits do
// not affect it; call Reset with Fields to refresh.
func (s *Session) Navigator() *pages.Navigator {
	return pages.NewNavigator(s.Fields())
}

// Selected returns the id of the selected field, or "" when none is.
func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Select moves the selection. An empty id clears it.
func (s *Session) Select(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != "" && s.doc.Fields.Index(id) < 0 {
		return fmt.Errorf("%w: field %q", editor.ErrReferenceNotFound, id)
	}
	s.current = id
	return nil
}

// Dirty reports whether the document changed since it was opened or saved.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// SetTitle renames the form. Title changes are not part of the undo history.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleaned := field.CleanText(title)
	if cleaned != s.doc.Title {
		s.doc.Title = cleaned
		s.dirty = true
	}
}

// Insert adds a field of the given subtype after the selection and selects it.
func (s *Session) Insert(subtype field.Subtype) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, id, err := s.editor.Insert(s.doc.Fields, subtype, s.current)
	if err != nil {
		return "", err
	}
	s.commit(next, id)
	s.logger.Debug("field inserted",
		zap.String("form", s.doc.ID),
		zap.String("field", id),
		zap.String("subtype", string(subtype)),
	)
	return id, nil
}

// Duplicate copies a field, places the copy after the selection and selects
// it.
func (s *Session) Duplicate(fieldID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, id, err := s.editor.Duplicate(s.doc.Fields, fieldID, s.current)
	if err != nil || id == "" {
		return "", err
	}
	s.commit(next, id)
	s.logger.Debug("field duplicated",
		zap.String("form", s.doc.ID),
		zap.String("source", fieldID),
		zap.String("field", id),
	)
	return id, nil
}

// Delete removes a field. Deleting the selected field clears the selection.
func (s *Session) Delete(fieldID string) error {
	return s.apply("field deleted", fieldID, func(seq field.Sequence) (field.Sequence, error) {
		return s.editor.Delete(seq, fieldID)
	})
}

// Reorder moves the field at from to position to. Moving a field onto its
// own position changes nothing and is not recorded.
func (s *Session) Reorder(from, to int) error {
	return s.apply("field moved", "", func(seq field.Sequence) (field.Sequence, error) {
		next, err := s.editor.Reorder(seq, from, to)
		if err != nil || from == to {
			return seq, err
		}
		return next, nil
	})
}

// UpdateField applies a partial update to a field.
func (s *Session) UpdateField(fieldID string, patch editor.Patch) error {
	return s.apply("field updated", fieldID, func(seq field.Sequence) (field.Sequence, error) {
		return s.editor.UpdateField(seq, fieldID, patch)
	})
}

// AddOption appends a default option to a choice field.
func (s *Session) AddOption(fieldID string) error {
	return s.apply("option added", fieldID, func(seq field.Sequence) (field.Sequence, error) {
		return s.editor.AddOption(seq, fieldID)
	})
}

// UpdateOption sets the value of an option.
func (s *Session) UpdateOption(fieldID, optionID, value string) error {
	return s.apply("option updated", fieldID, func(seq field.Sequence) (field.Sequence, error) {
		return s.editor.UpdateOption(seq, fieldID, optionID, value)
	})
}

// DeleteOption removes an option from a field.
func (s *Session) DeleteOption(fieldID, optionID string) error {
	return s.apply("option deleted", fieldID, func(seq field.Sequence) (field.Sequence, error) {
		return s.editor.DeleteOption(seq, fieldID, optionID)
	})
}

// CanUndo reports whether Undo has an edit to revert.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo has an edit to reapply.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Undo reverts the last edit, restoring the selection it had.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undo) == 0 {
		return ErrNothingToUndo
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, s.snapshot())
	s.restore(last)
	s.logger.Debug("edit undone", zap.String("form", s.doc.ID))
	return nil
}

// Redo reapplies the last undone edit.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return ErrNothingToRedo
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, s.snapshot())
	s.restore(last)
	s.logger.Debug("edit redone", zap.String("form", s.doc.ID))
	return nil
}

// Save writes the document to the session's store.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		return ErrNoStore
	}
	if err := field.Validate(s.doc.Fields); err != nil {
		return fmt.Errorf("session: save %q: %w", s.doc.ID, err)
	}
	if err := s.store.Save(ctx, s.doc.Clone()); err != nil {
		s.logger.Warn("save failed", zap.String("form", s.doc.ID), zap.Error(err))
		return fmt.Errorf("session: save %q: %w", s.doc.ID, err)
	}
	s.dirty = false
	s.logger.Info("form saved",
		zap.String("form", s.doc.ID),
		zap.Int("fields", len(s.doc.Fields)),
		zap.Int("pages", pages.Count(s.doc.Fields)),
	)
	return nil
}

// apply runs a reducer that does not move the selection. Unchanged results,
// which the lenient editor returns for missing references, leave the history
// untouched.
func (s *Session) apply(event, fieldID string, op func(field.Sequence) (field.Sequence, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.doc.Fields)
	if err != nil {
		return err
	}
	if sameSequence(next, s.doc.Fields) {
		return nil
	}
	selected := s.current
	if selected != "" && next.Index(selected) < 0 {
		selected = ""
	}
	s.commit(next, selected)
	s.logger.Debug(event, zap.String("form", s.doc.ID), zap.String("field", fieldID))
	return nil
}

func (s *Session) commit(next field.Sequence, selected string) {
	s.undo = append(s.undo, s.snapshot())
	if len(s.undo) > s.limit {
		s.undo = s.undo[len(s.undo)-s.limit:]
	}
	s.redo = nil
	s.doc.Fields = next
	s.current = selected
	s.dirty = true
}

func (s *Session) snapshot() snapshot {
	return snapshot{fields: s.doc.Fields, selected: s.current}
}

func (s *Session) restore(snap snapshot) {
	s.doc.Fields = snap.fields
	s.current = snap.selected
	s.dirty = true
}

// sameSequence reports whether two sequences share their backing array. The
// editor returns its input unchanged for no-op edits and a fresh slice
// otherwise.
func sameSequence(a, b field.Sequence) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}
