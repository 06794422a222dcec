package editor

import "github.com/goliatone/go-formbuilder/pkg/field"

// Patch lists the mutable attributes of a field. Nil members are left as is.
type Patch struct {
	Label           *string
	Description     *string
	ShowDescription *bool
	Required        *bool
	RatingCount     *int
	// Options replaces the whole option list when non-nil.
	Options *[]field.Option
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Label == nil && p.Description == nil && p.ShowDescription == nil &&
		p.Required == nil && p.RatingCount == nil && p.Options == nil
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
