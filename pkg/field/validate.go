package field

import (
	"errors"
	"fmt"
)

// InvariantError reports a single broken sequence invariant.
type InvariantError struct {
	Index    int
	FieldID  string
	OptionID string
	Reason   string
}

func (e *InvariantError) Error() string {
	if e.OptionID != "" {
		return fmt.Sprintf("field: %s (field %q at %d, option %q)", e.Reason, e.FieldID, e.Index, e.OptionID)
	}
	return fmt.Sprintf("field: %s (field %q at %d)", e.Reason, e.FieldID, e.Index)
}

// Validate checks the sequence invariants: unique non-empty field ids, known
// subtypes, unique option ids per field, options only on choice kinds, page
// fields carrying the page-break type, and rating scales within bounds. All
// violations are returned joined; nil means the sequence is well formed.
func Validate(seq Sequence) error {
	var errs []error
	add := func(idx int, f Field, optionID, reason string) {
		errs = append(errs, &InvariantError{Index: idx, FieldID: f.ID, OptionID: optionID, Reason: reason})
	}

	seen := make(map[string]struct{}, len(seq))
	for idx, f := range seq {
		if f.ID == "" {
			add(idx, f, "", "empty id")
		} else if _, dup := seen[f.ID]; dup {
			add(idx, f, "", "duplicate id")
		} else {
			seen[f.ID] = struct{}{}
		}

		kind, ok := KindOf(f.Subtype)
		if !ok {
			add(idx, f, "", fmt.Sprintf("unknown subtype %q", f.Subtype))
			continue
		}
		if kind.Subtype != f.Subtype {
			add(idx, f, "", fmt.Sprintf("subtype %q must be stored as %q", f.Subtype, kind.Subtype))
		}

		// A non-page field carrying the page-break type is tolerated; grouping
		// splits on type alone.
		if f.Subtype == SubtypePage && f.Type != TypePageBreak {
			add(idx, f, "", "page field must use the page-break type")
		}

		if !kind.Choice && len(f.Options) > 0 {
			add(idx, f, "", fmt.Sprintf("subtype %q cannot carry options", f.Subtype))
		}
		if kind.Rating {
			if f.RatingCount < 1 || f.RatingCount > MaxRatingCount {
				add(idx, f, "", fmt.Sprintf("rating count %d out of range 1..%d", f.RatingCount, MaxRatingCount))
			}
		} else if f.RatingCount != 0 {
			add(idx, f, "", fmt.Sprintf("subtype %q cannot carry a rating count", f.Subtype))
		}

		optionIDs := make(map[string]struct{}, len(f.Options))
		for _, opt := range f.Options {
			if opt.ID == "" {
				add(idx, f, opt.ID, "empty option id")
				continue
			}
			if _, dup := optionIDs[opt.ID]; dup {
				add(idx, f, opt.ID, "duplicate option id")
				continue
			}
			optionIDs[opt.ID] = struct{}{}
		}
	}

	return errors.Join(errs...)
}
