package field

import (
	"errors"
	"fmt"
)

// ErrUnknownSubtype is returned when a subtype has no kind descriptor.
var ErrUnknownSubtype = errors.New("field: unknown subtype")

// New builds a field of the given subtype populated with its defaults. The
// pageBreaks count is the number of page fields already present in the
// sequence; it only affects the label of new page fields ("Page n+2", since
// the first page has no break of its own).
func New(subtype Subtype, ids IDGenerator, pageBreaks int) (Field, error) {
	kind, ok := KindOf(subtype)
	if !ok {
		return Field{}, fmt.Errorf("%w: %q", ErrUnknownSubtype, subtype)
	}
	if ids == nil {
		ids = DefaultIDs()
	}

	f := Field{
		ID:       ids.NewID(),
		Subtype:  kind.Subtype,
		Type:     kind.Type,
		Label:    kind.Label,
		Required: kind.Required,
	}
	if kind.Subtype == SubtypePage {
		f.Label = fmt.Sprintf("Page %d", pageBreaks+2)
	}
	if kind.Rating {
		f.RatingCount = DefaultRatingCount
	}
	for i := 0; i < kind.Options; i++ {
		f.Options = append(f.Options, Option{
			ID:    ids.NewID(),
			Value: OptionLabel(i + 1),
		})
	}
	return f, nil
}

// OptionLabel is the placeholder value of the n-th option (1-based).
func OptionLabel(n int) string {
	return fmt.Sprintf("Option %d", n)
}

// ClampRating bounds a rating count to 1..MaxRatingCount.
func ClampRating(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxRatingCount {
		return MaxRatingCount
	}
	return count
}
