package submission

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

const (
	emailPattern = `^[^@\s]+@[^@\s]+\.[^@\s]+$`
	datePattern  = `^\d{4}-\d{2}-\d{2}$`
)

// Schema returns the object schema for a submission of seq. Structural fields
// (headings and page breaks) are omitted. The returned schema is freshly
// built on every call.
func Schema(seq field.Sequence) *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	for _, f := range seq {
		prop := Property(f)
		if prop == nil {
			continue
		}
		root.WithProperty(f.ID, prop)
		if f.Required {
			root.Required = append(root.Required, f.ID)
		}
	}
	return root
}

// Property returns the schema of a single field's value, or nil when the field
// collects nothing.
func Property(f field.Field) *openapi3.Schema {
	var prop *openapi3.Schema

	switch f.Subtype {
	case field.SubtypeHeading, field.SubtypePage:
		return nil
	case field.SubtypeShortAnswer, field.SubtypeLongAnswer, field.SubtypeName,
		field.SubtypeAddress, field.SubtypeWebsite, field.SubtypePhone, field.SubtypeFileUpload:
		prop = requiredString(f)
	case field.SubtypeEmail:
		prop = requiredString(f).WithFormat("email").WithPattern(emailPattern)
	case field.SubtypeDate:
		prop = requiredString(f).WithFormat("date").WithPattern(datePattern)
	case field.SubtypeNumber:
		prop = openapi3.NewFloat64Schema()
	case field.SubtypeRating:
		count := f.RatingCount
		if count <= 0 {
			count = field.DefaultRatingCount
		}
		prop = openapi3.NewIntegerSchema().WithMin(1).WithMax(float64(field.ClampRating(count)))
	case field.SubtypeSingleChoice, field.SubtypeDropdown:
		prop = choice(f)
	case field.SubtypeMultipleChoice:
		prop = openapi3.NewArraySchema().WithItems(choice(f)).WithUniqueItems(true)
		if f.Required {
			prop = prop.WithMinItems(1)
		}
	default:
		return nil
	}

	prop.Title = strings.TrimSpace(f.Label)
	prop.Description = strings.TrimSpace(f.Description)
	return prop
}

func requiredString(f field.Field) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	if f.Required {
		s = s.WithMinLength(1)
	}
	return s
}

func choice(f field.Field) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	values := make([]any, 0, len(f.Options))
	seen := make(map[string]struct{}, len(f.Options))
	for _, opt := range f.Options {
		if _, dup := seen[opt.Value]; dup {
			continue
		}
		seen[opt.Value] = struct{}{}
		values = append(values, opt.Value)
	}
	if len(values) > 0 {
		s = s.WithEnum(values...)
	}
	return s
}
