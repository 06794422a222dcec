package editor

import (
	"fmt"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Editor applies edit operations to field sequences.
type Editor struct {
	ids    field.IDGenerator
	strict bool
}

// New constructs an Editor. Without options it mints ULIDs and treats missing
// references as no-ops.
func New(options ...Option) *Editor {
	e := &Editor{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	if e.ids == nil {
		e.ids = field.DefaultIDs()
	}
	return e
}

// Insert creates a field of the given subtype with its defaults and places it
// right after selectedID. Page fields, and inserts without a selection that
// matches a field in seq, are appended instead. The new field id is returned
// so the caller can move its selection.
func (e *Editor) Insert(seq field.Sequence, subtype field.Subtype, selectedID string) (field.Sequence, string, error) {
	created, err := field.New(subtype, e.ids, seq.PageBreaks())
	if err != nil {
		return seq, "", err
	}
	return place(seq, created, selectedID), created.ID, nil
}

// Duplicate copies the field identified by fieldID under a fresh id and places
// the copy with the same rule as Insert. Options are copied by value and get
// fresh ids so the copy never shares option ids with the original.
func (e *Editor) Duplicate(seq field.Sequence, fieldID, selectedID string) (field.Sequence, string, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		out, err := e.missing(seq, "field", fieldID)
		return out, "", err
	}

	copied := seq[idx].Clone()
	copied.ID = e.ids.NewID()
	for i := range copied.Options {
		copied.Options[i].ID = e.ids.NewID()
	}
	return place(seq, copied, selectedID), copied.ID, nil
}

// Delete removes the field with the given id.
func (e *Editor) Delete(seq field.Sequence, fieldID string) (field.Sequence, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		return e.missing(seq, "field", fieldID)
	}
	out := make(field.Sequence, 0, len(seq)-1)
	out = append(out, seq[:idx]...)
	return append(out, seq[idx+1:]...), nil
}

// Reorder moves the field at from to position to. The field is removed first
// and then inserted at to, so to is an index into the shortened list.
func (e *Editor) Reorder(seq field.Sequence, from, to int) (field.Sequence, error) {
	if from < 0 || from >= len(seq) {
		return seq, fmt.Errorf("%w: from %d (length %d)", ErrIndexOutOfRange, from, len(seq))
	}
	if to < 0 || to >= len(seq) {
		return seq, fmt.Errorf("%w: to %d (length %d)", ErrIndexOutOfRange, to, len(seq))
	}

	moved := seq[from]
	rest := make(field.Sequence, 0, len(seq))
	rest = append(rest, seq[:from]...)
	rest = append(rest, seq[from+1:]...)

	out := make(field.Sequence, 0, len(seq))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	return append(out, rest[to:]...), nil
}

// UpdateField applies patch to the field with the given id. Text attributes
// are cleaned of markup, rating counts are clamped to 1..10, and replacement
// options with empty or repeated ids are given fresh ones.
func (e *Editor) UpdateField(seq field.Sequence, fieldID string, patch Patch) (field.Sequence, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		return e.missing(seq, "field", fieldID)
	}
	if patch.Empty() {
		return seq, nil
	}

	target := seq[idx].Clone()
	kind, _ := field.KindOf(target.Subtype)

	if patch.RatingCount != nil && !kind.Rating {
		return seq, fmt.Errorf("%w: rating count on %q", ErrAttributeNotSupported, target.Subtype)
	}
	if patch.Options != nil && !kind.Choice {
		return seq, fmt.Errorf("%w: options on %q", ErrAttributeNotSupported, target.Subtype)
	}

	if patch.Label != nil {
		target.Label = field.CleanText(*patch.Label)
	}
	if patch.Description != nil {
		target.Description = field.CleanText(*patch.Description)
	}
	if patch.ShowDescription != nil {
		target.ShowDescription = *patch.ShowDescription
	}
	if patch.Required != nil {
		target.Required = *patch.Required
	}
	if patch.RatingCount != nil {
		target.RatingCount = field.ClampRating(*patch.RatingCount)
	}
	if patch.Options != nil {
		target.Options = e.normalizeOptions(*patch.Options)
	}

	return replaceAt(seq, idx, target), nil
}

// AddOption appends "Option n+1" to the option list of a choice field.
func (e *Editor) AddOption(seq field.Sequence, fieldID string) (field.Sequence, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		return e.missing(seq, "field", fieldID)
	}
	target := seq[idx].Clone()
	if kind, _ := field.KindOf(target.Subtype); !kind.Choice {
		return seq, fmt.Errorf("%w: options on %q", ErrAttributeNotSupported, target.Subtype)
	}
	target.Options = append(target.Options, field.Option{
		ID:    e.ids.NewID(),
		Value: field.OptionLabel(len(target.Options) + 1),
	})
	return replaceAt(seq, idx, target), nil
}

// UpdateOption replaces the value of an option. The value is trimmed.
func (e *Editor) UpdateOption(seq field.Sequence, fieldID, optionID, value string) (field.Sequence, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		return e.missing(seq, "field", fieldID)
	}
	target := seq[idx].Clone()
	optIdx := target.OptionIndex(optionID)
	if optIdx < 0 {
		return e.missing(seq, "option", optionID)
	}
	target.Options[optIdx].Value = field.CleanText(value)
	return replaceAt(seq, idx, target), nil
}

// DeleteOption removes an option from a field.
func (e *Editor) DeleteOption(seq field.Sequence, fieldID, optionID string) (field.Sequence, error) {
	idx := seq.Index(fieldID)
	if idx < 0 {
		return e.missing(seq, "field", fieldID)
	}
	target := seq[idx]
	optIdx := target.OptionIndex(optionID)
	if optIdx < 0 {
		return e.missing(seq, "option", optionID)
	}
	var options []field.Option
	options = append(options, target.Options[:optIdx]...)
	target.Options = append(options, target.Options[optIdx+1:]...)
	return replaceAt(seq, idx, target), nil
}

func (e *Editor) missing(seq field.Sequence, kind, id string) (field.Sequence, error) {
	if e.strict {
		return seq, fmt.Errorf("%w: %s %q", ErrReferenceNotFound, kind, id)
	}
	return seq, nil
}

func (e *Editor) normalizeOptions(options []field.Option) []field.Option {
	if len(options) == 0 {
		return nil
	}
	out := make([]field.Option, 0, len(options))
	seen := make(map[string]struct{}, len(options))
	for _, opt := range options {
		id := opt.ID
		if _, dup := seen[id]; dup || id == "" {
			id = e.ids.NewID()
		}
		seen[id] = struct{}{}
		out = append(out, field.Option{ID: id, Value: field.CleanText(opt.Value)})
	}
	return out
}

func place(seq field.Sequence, created field.Field, selectedID string) field.Sequence {
	out := make(field.Sequence, 0, len(seq)+1)
	idx := seq.Index(selectedID)
	if idx < 0 || created.Subtype == field.SubtypePage {
		out = append(out, seq...)
		return append(out, created)
	}
	out = append(out, seq[:idx+1]...)
	out = append(out, created)
	return append(out, seq[idx+1:]...)
}

func replaceAt(seq field.Sequence, idx int, f field.Field) field.Sequence {
	out := make(field.Sequence, len(seq))
	copy(out, seq)
	out[idx] = f
	return out
}
