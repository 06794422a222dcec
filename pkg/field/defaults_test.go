package field_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func TestNew_Defaults(t *testing.T) {
	cases := []struct {
		subtype field.Subtype
		want    field.Field
	}{
		{
			subtype: field.SubtypeHeading,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeHeading, Type: field.TypeText, Label: "Untitled Heading"},
		},
		{
			subtype: field.SubtypeLongAnswer,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeLongAnswer, Type: field.TypeText, Label: "Untitled Question"},
		},
		{
			subtype: field.SubtypeEmail,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeEmail, Type: field.TypeEmail, Label: "Email", Required: true},
		},
		{
			subtype: field.SubtypeName,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeShortAnswer, Type: field.TypeText, Label: "Full name", Required: true},
		},
		{
			subtype: field.SubtypePhone,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypePhone, Type: field.TypeTel, Label: "Phone number"},
		},
		{
			subtype: field.SubtypeWebsite,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeShortAnswer, Type: field.TypeText, Label: "Website"},
		},
		{
			subtype: field.SubtypeRating,
			want:    field.Field{ID: "id-1", Subtype: field.SubtypeRating, Type: field.TypeText, Label: "Untitled Question", RatingCount: field.DefaultRatingCount},
		},
		{
			subtype: field.SubtypeDropdown,
			want: field.Field{
				ID: "id-1", Subtype: field.SubtypeDropdown, Type: field.TypeText, Label: "Untitled Question",
				Options: []field.Option{
					{ID: "id-2", Value: "Option 1"},
					{ID: "id-3", Value: "Option 2"},
					{ID: "id-4", Value: "Option 3"},
				},
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.subtype), func(t *testing.T) {
			t.Parallel()
			got, err := field.New(tc.subtype, testsupport.NewSequentialIDs("id"), 0)
			if err != nil {
				t.Fatalf("new %s: %v", tc.subtype, err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
			}
			if err := field.Validate(field.Sequence{got}); err != nil {
				t.Fatalf("defaults should satisfy invariants: %v", err)
			}
		})
	}
}

func TestNew_PageLabelCountsExistingBreaks(t *testing.T) {
	ids := testsupport.NewSequentialIDs("p")

	first, err := field.New(field.SubtypePage, ids, 0)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	if first.Label != "Page 2" {
		t.Fatalf("first break label: want %q, got %q", "Page 2", first.Label)
	}
	if first.Type != field.TypePageBreak || !first.IsPageBreak() {
		t.Fatalf("page field must carry the page-break type, got %q", first.Type)
	}

	third, err := field.New(field.SubtypePage, ids, 2)
	if err != nil {
		t.Fatalf("new page: %v", err)
	}
	if third.Label != "Page 4" {
		t.Fatalf("third break label: want %q, got %q", "Page 4", third.Label)
	}
}

func TestNew_UnknownSubtype(t *testing.T) {
	_, err := field.New("signature", nil, 0)
	if !errors.Is(err, field.ErrUnknownSubtype) {
		t.Fatalf("expected ErrUnknownSubtype, got %v", err)
	}
}

func TestKindOf_EverySubtypeResolves(t *testing.T) {
	for _, subtype := range field.Subtypes() {
		kind, ok := field.KindOf(subtype)
		if !ok {
			t.Fatalf("subtype %q has no kind", subtype)
		}
		if kind.Choice && kind.Options == 0 {
			t.Fatalf("choice subtype %q seeds no options", subtype)
		}
		if subtype == field.SubtypePage && kind.Input {
			t.Fatalf("page subtype must not collect input")
		}
	}
}

func TestClampRating(t *testing.T) {
	for input, want := range map[int]int{-3: 1, 0: 1, 4: 4, 10: 10, 42: 10} {
		if got := field.ClampRating(input); got != want {
			t.Fatalf("clamp %d: want %d, got %d", input, want, got)
		}
	}
}
