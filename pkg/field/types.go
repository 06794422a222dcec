package field

// Subtype identifies the semantic kind of a field.
type Subtype string

const (
	SubtypeHeading        Subtype = "heading"
	SubtypeShortAnswer    Subtype = "short_answer"
	SubtypeLongAnswer     Subtype = "long_answer"
	SubtypeNumber         Subtype = "number"
	SubtypeEmail          Subtype = "email"
	SubtypeName           Subtype = "name"
	SubtypePhone          Subtype = "phone"
	SubtypeAddress        Subtype = "address"
	SubtypeWebsite        Subtype = "website"
	SubtypeSingleChoice   Subtype = "single_choice"
	SubtypeMultipleChoice Subtype = "multiple_choice"
	SubtypeDropdown       Subtype = "dropdown"
	SubtypeDate           Subtype = "date"
	SubtypeRating         Subtype = "rating"
	SubtypeFileUpload     Subtype = "file_upload"
	SubtypePage           Subtype = "page"
)

// Type is the runtime input classification of a field.
type Type string

const (
	TypeText  Type = "text"
	TypeEmail Type = "email"
	TypeTel   Type = "tel"
	// TypePageBreak marks a field as a page delimiter. Grouping keys off this
	// value, not off SubtypePage.
	TypePageBreak Type = "fb-page-break"
)

const (
	// DefaultRatingCount is the scale assigned to new rating fields.
	DefaultRatingCount = 5
	// MaxRatingCount caps the rating scale.
	MaxRatingCount = 10
)

// Option is one entry of a choice field. IDs are stable across value edits.
type Option struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Field is one entry in a form's ordered field sequence.
type Field struct {
	ID              string   `json:"id" yaml:"id"`
	Subtype         Subtype  `json:"subtype" yaml:"subtype"`
	Type            Type     `json:"type" yaml:"type"`
	Label           string   `json:"label" yaml:"label"`
	Description     string   `json:"description,omitempty" yaml:"description,omitempty"`
	ShowDescription bool     `json:"showDescription,omitempty" yaml:"showDescription,omitempty"`
	Required        bool     `json:"required" yaml:"required"`
	Options         []Option `json:"options,omitempty" yaml:"options,omitempty"`
	RatingCount     int      `json:"ratingCount,omitempty" yaml:"ratingCount,omitempty"`
}

// IsPageBreak reports whether the field splits the sequence into pages.
func (f Field) IsPageBreak() bool {
	return f.Type == TypePageBreak
}

// Clone returns a copy of the field that shares no memory with the receiver.
func (f Field) Clone() Field {
	out := f
	if f.Options != nil {
		out.Options = append([]Option(nil), f.Options...)
	}
	return out
}

// OptionIndex returns the position of the option with the given id, or -1.
func (f Field) OptionIndex(id string) int {
	for idx, opt := range f.Options {
		if opt.ID == id {
			return idx
		}
	}
	return -1
}

// Sequence is the ordered list of fields defining a form's layout.
type Sequence []Field

// Clone deep-copies the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for idx, f := range s {
		out[idx] = f.Clone()
	}
	return out
}

// Index returns the position of the field with the given id, or -1.
func (s Sequence) Index(id string) int {
	if id == "" {
		return -1
	}
	for idx, f := range s {
		if f.ID == id {
			return idx
		}
	}
	return -1
}

// Find returns the field with the given id.
func (s Sequence) Find(id string) (Field, bool) {
	idx := s.Index(id)
	if idx < 0 {
		return Field{}, false
	}
	return s[idx], true
}

// PageBreaks counts the fields of subtype page.
func (s Sequence) PageBreaks() int {
	count := 0
	for _, f := range s {
		if f.Subtype == SubtypePage {
			count++
		}
	}
	return count
}

// IDs lists field ids in order.
func (s Sequence) IDs() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	for idx, f := range s {
		out[idx] = f.ID
	}
	return out
}
