package field_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

func TestValidate_WellFormed(t *testing.T) {
	seq := field.Sequence{
		{ID: "a", Subtype: field.SubtypeShortAnswer, Type: field.TypeText, Label: "Name"},
		{ID: "b", Subtype: field.SubtypePage, Type: field.TypePageBreak, Label: "Page 2"},
		{ID: "c", Subtype: field.SubtypeSingleChoice, Type: field.TypeText, Options: []field.Option{{ID: "o1", Value: "Yes"}, {ID: "o2", Value: "No"}}},
		{ID: "d", Subtype: field.SubtypeRating, Type: field.TypeText, RatingCount: 10},
	}
	if err := field.Validate(seq); err != nil {
		t.Fatalf("expected valid sequence, got %v", err)
	}
	if err := field.Validate(nil); err != nil {
		t.Fatalf("empty sequence must be valid, got %v", err)
	}
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	seq := field.Sequence{
		{ID: "a", Subtype: field.SubtypeShortAnswer, Type: field.TypeText},
		{ID: "a", Subtype: field.SubtypeEmail, Type: field.TypeEmail},
		{ID: "p", Subtype: field.SubtypePage, Type: field.TypeText, Options: []field.Option{{ID: "x", Value: "nope"}}},
		{ID: "c", Subtype: field.SubtypeDropdown, Type: field.TypeText, Options: []field.Option{{ID: "o", Value: "1"}, {ID: "o", Value: "2"}}},
		{ID: "r", Subtype: field.SubtypeRating, Type: field.TypeText, RatingCount: 11},
		{ID: "n", Subtype: field.SubtypeName, Type: field.TypeText},
		{ID: "u", Subtype: "signature", Type: field.TypeText},
	}

	err := field.Validate(seq)
	if err == nil {
		t.Fatalf("expected invariant errors")
	}

	msg := err.Error()
	for _, fragment := range []string{
		"duplicate id",
		"page field must use the page-break type",
		`subtype "page" cannot carry options`,
		"duplicate option id",
		"rating count 11 out of range",
		`subtype "name" must be stored as "short_answer"`,
		`unknown subtype "signature"`,
	} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error:\n%s", fragment, msg)
		}
	}

	var invariant *field.InvariantError
	if !errors.As(err, &invariant) {
		t.Fatalf("expected InvariantError in chain, got %T", err)
	}
}

func TestValidate_ToleratesSentinelOnNonPageField(t *testing.T) {
	seq := field.Sequence{
		{ID: "a", Subtype: field.SubtypeHeading, Type: field.TypePageBreak, Label: "Section"},
	}
	if err := field.Validate(seq); err != nil {
		t.Fatalf("sentinel type on non-page field should validate, got %v", err)
	}
}
