// Package formdoc encodes a form's field sequence as the single document the
// persistence layer stores per form id. Documents round-trip exactly through
// Encode and Decode; Decode also accepts YAML so fixtures and hand-written
// forms can use either format. LoadFS builds a catalogue from a directory of
// such documents.
package formdoc
