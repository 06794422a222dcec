// Package editor implements the field-list reducers behind the form builder:
// insert, duplicate, delete, reorder, partial field updates and option edits.
//
// Every operation takes a sequence and returns a new one; the argument is never
// written to. Unchanged fields are passed through by value and may share their
// option slices with the input, so callers should treat sequences as immutable
// and always replace their reference with the returned value. The transient
// "selected field id" cursor is an explicit parameter rather than editor state.
//
// Operations addressed at a field or option id that is not present are no-ops
// by default and return the input unchanged with a nil error. WithStrictReferences
// switches them to ErrReferenceNotFound. Reorder always rejects indices outside
// the sequence with ErrIndexOutOfRange.
package editor
