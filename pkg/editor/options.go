package editor

import "github.com/goliatone/go-formbuilder/pkg/field"

// Option configures an Editor.
type Option func(*Editor)

// WithIDGenerator overrides the generator used for new field and option ids.
func WithIDGenerator(ids field.IDGenerator) Option {
	return func(e *Editor) {
		if ids != nil {
			e.ids = ids
		}
	}
}

// WithStrictReferences makes operations addressed at missing ids fail with
// ErrReferenceNotFound instead of returning the sequence unchanged.
func WithStrictReferences() Option {
	return func(e *Editor) {
		e.strict = true
	}
}
