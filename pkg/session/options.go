package session

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/store"
)

// Option configures a Session.
type Option func(*Session)

// WithEditor sets the editor used for edits, e.g. one with strict references
// or a deterministic id generator.
func WithEditor(ed *editor.Editor) Option {
	return func(s *Session) {
		if ed != nil {
			s.editor = ed
		}
	}
}

// WithStore binds the session to a store for Save.
func WithStore(st store.Store) Option {
	return func(s *Session) {
		s.store = st
	}
}

// WithLogger sets the structured logger. Sessions log nothing by default.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistoryLimit caps how many edits Undo can revert.
func WithHistoryLimit(limit int) Option {
	return func(s *Session) {
		if limit > 0 {
			s.limit = limit
		}
	}
}
