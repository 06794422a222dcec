// Package formbuilder is the entry point for building and running paginated
// forms. It re-exports the core types and offers constructors for the common
// paths: editing a field list, splitting it into pages, and keeping an
// editing session bound to a store.
package formbuilder

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/editor"
	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/pages"
	"github.com/goliatone/go-formbuilder/pkg/session"
	"github.com/goliatone/go-formbuilder/pkg/store"
	"github.com/goliatone/go-formbuilder/pkg/submission"
)

// Field is one entry of a form's ordered field list.
type Field = field.Field

// Option is an entry of a choice field.
type Option = field.Option

// Sequence is the ordered field list of a form.
type Sequence = field.Sequence

// Subtype identifies the kind of a field.
type Subtype = field.Subtype

// Document is the persisted form layout.
type Document = formdoc.Document

// Patch lists field attributes to change in UpdateField.
type Patch = editor.Patch

// SubmissionResult reports submission problems per field id.
type SubmissionResult = submission.Result

// NewEditor exposes the editor constructor from the top-level module.
func NewEditor(options ...editor.Option) *editor.Editor {
	return editor.New(options...)
}

// Paginate splits a field list into pages at each page break.
func Paginate(seq Sequence) []Sequence {
	return pages.Group(seq)
}

// NewNavigator returns a page cursor over seq.
func NewNavigator(seq Sequence) *pages.Navigator {
	return pages.NewNavigator(seq)
}

// NewSession starts an editing session over doc.
func NewSession(doc Document, options ...session.Option) *session.Session {
	return session.New(doc, options...)
}

// OpenSession loads a form from st and starts a session that saves back to it.
func OpenSession(ctx context.Context, st store.Store, formID string, options ...session.Option) (*session.Session, error) {
	return session.Open(ctx, st, formID, options...)
}

// ValidateSubmission checks answers keyed by field id against a form.
func ValidateSubmission(doc Document, values map[string]any) SubmissionResult {
	return submission.Validate(doc.Fields, values)
}
