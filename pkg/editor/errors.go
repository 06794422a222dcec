package editor

import (
	"errors"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

var (
	// ErrReferenceNotFound is returned in strict mode when a field or option
	// id is not present.
	ErrReferenceNotFound = errors.New("editor: reference not found")
	// ErrIndexOutOfRange is returned by Reorder for indices outside the
	// sequence.
	ErrIndexOutOfRange = errors.New("editor: index out of range")
	// ErrAttributeNotSupported is returned when an update targets an
	// attribute the field's subtype does not carry (options on a text field,
	// a rating count on a choice field).
	ErrAttributeNotSupported = errors.New("editor: attribute not supported by subtype")
	// ErrUnknownSubtype aliases field.ErrUnknownSubtype for callers that only
	// import the editor.
	ErrUnknownSubtype = field.ErrUnknownSubtype
)
