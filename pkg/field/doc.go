// Package field defines the records that make up a form's ordered field
// sequence. A Field is a flat, JSON/YAML friendly struct so the whole sequence
// can be persisted as one document; the per-subtype behaviour (which attributes
// are meaningful, what defaults apply, whether the field collects input) is
// looked up through KindOf so every consumer can switch over Subtype instead of
// probing optional attributes.
//
// Page-break fields are structural delimiters. They carry the TypePageBreak
// sentinel in Type, which is what page grouping keys off; Subtype "page" and
// the sentinel Type are kept in lockstep by New and checked by Validate.
package field
