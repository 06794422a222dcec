package field

import (
	"fmt"
	"sort"
)

// Kind describes the attributes and defaults that apply to a subtype.
type Kind struct {
	// Subtype is the canonical subtype stored on created fields. Aliases such
	// as SubtypeName resolve to SubtypeShortAnswer.
	Subtype  Subtype
	Label    string
	Type     Type
	Required bool
	// Options is the number of placeholder options seeded on creation. Zero
	// for kinds that never carry options.
	Options int
	Choice  bool
	Multi   bool
	Rating  bool
	// Input reports whether the field collects a submission value.
	Input bool
}

const untitledQuestion = "Untitled Question"

// KindOf returns the kind descriptor for a subtype.
func KindOf(subtype Subtype) (Kind, bool) {
	switch subtype {
	case SubtypeHeading:
		return Kind{Subtype: subtype, Label: "Untitled Heading", Type: TypeText}, true
	case SubtypeShortAnswer, SubtypeLongAnswer, SubtypeNumber, SubtypeDate, SubtypeFileUpload:
		return Kind{Subtype: subtype, Label: untitledQuestion, Type: TypeText, Input: true}, true
	case SubtypeEmail:
		return Kind{Subtype: subtype, Label: "Email", Type: TypeEmail, Required: true, Input: true}, true
	case SubtypeName:
		return Kind{Subtype: SubtypeShortAnswer, Label: "Full name", Type: TypeText, Required: true, Input: true}, true
	case SubtypePhone:
		return Kind{Subtype: subtype, Label: "Phone number", Type: TypeTel, Input: true}, true
	case SubtypeAddress:
		return Kind{Subtype: SubtypeShortAnswer, Label: "Address", Type: TypeText, Input: true}, true
	case SubtypeWebsite:
		return Kind{Subtype: SubtypeShortAnswer, Label: "Website", Type: TypeText, Input: true}, true
	case SubtypeSingleChoice, SubtypeDropdown:
		return Kind{Subtype: subtype, Label: untitledQuestion, Type: TypeText, Options: 3, Choice: true, Input: true}, true
	case SubtypeMultipleChoice:
		return Kind{Subtype: subtype, Label: untitledQuestion, Type: TypeText, Options: 3, Choice: true, Multi: true, Input: true}, true
	case SubtypeRating:
		return Kind{Subtype: subtype, Label: untitledQuestion, Type: TypeText, Rating: true, Input: true}, true
	case SubtypePage:
		return Kind{Subtype: subtype, Type: TypePageBreak}, true
	default:
		return Kind{}, false
	}
}

// MustKindOf panics when the subtype is unknown.
func MustKindOf(subtype Subtype) Kind {
	kind, ok := KindOf(subtype)
	if !ok {
		panic(fmt.Errorf("field: unknown subtype %q", subtype))
	}
	return kind
}

// Subtypes lists every subtype accepted by KindOf, sorted.
func Subtypes() []Subtype {
	out := []Subtype{
		SubtypeHeading, SubtypeShortAnswer, SubtypeLongAnswer, SubtypeNumber,
		SubtypeEmail, SubtypeName, SubtypePhone, SubtypeAddress, SubtypeWebsite,
		SubtypeSingleChoice, SubtypeMultipleChoice, SubtypeDropdown, SubtypeDate,
		SubtypeRating, SubtypeFileUpload, SubtypePage,
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
