package submission_test

import (
	"encoding/json"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/field"
	"github.com/goliatone/go-formbuilder/pkg/formdoc"
	"github.com/goliatone/go-formbuilder/pkg/submission"
	"github.com/goliatone/go-formbuilder/pkg/testsupport"
)

func sampleSequence() field.Sequence {
	rating := testsupport.Field("score", field.SubtypeRating)
	rating.RatingCount = 3
	multi := testsupport.Field("topics", field.SubtypeMultipleChoice)
	multi.Required = true
	return field.Sequence{
		testsupport.Field("intro", field.SubtypeHeading),
		testsupport.Field("name", field.SubtypeName),
		testsupport.Field("mail", field.SubtypeEmail),
		testsupport.PageBreak("p1"),
		testsupport.Field("age", field.SubtypeNumber),
		testsupport.Field("when", field.SubtypeDate),
		testsupport.Field("pick", field.SubtypeDropdown),
		multi,
		rating,
	}
}

func propertyNames(t *testing.T, seq field.Sequence) []string {
	t.Helper()
	var names []string
	for name := range submission.Schema(seq).Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestSchemaProperties(t *testing.T) {
	seq := sampleSequence()
	schema := submission.Schema(seq)

	want := []string{"age", "mail", "name", "pick", "score", "topics", "when"}
	if diff := cmp.Diff(want, propertyNames(t, seq)); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "mail", "topics"}, schema.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}

	tests := []struct {
		id     string
		typ    string
		format string
	}{
		{id: "name", typ: "string"},
		{id: "mail", typ: "string", format: "email"},
		{id: "age", typ: "number"},
		{id: "when", typ: "string", format: "date"},
		{id: "pick", typ: "string"},
		{id: "topics", typ: "array"},
		{id: "score", typ: "integer"},
	}
	for _, tt := range tests {
		prop := schema.Properties[tt.id].Value
		if !prop.Type.Is(tt.typ) {
			t.Fatalf("%s: expected type %s, got %v", tt.id, tt.typ, prop.Type)
		}
		if prop.Format != tt.format {
			t.Fatalf("%s: expected format %q, got %q", tt.id, tt.format, prop.Format)
		}
	}

	score := schema.Properties["score"].Value
	if score.Min == nil || *score.Min != 1 || score.Max == nil || *score.Max != 3 {
		t.Fatalf("unexpected rating bounds: min=%v max=%v", score.Min, score.Max)
	}
	pick := schema.Properties["pick"].Value
	if diff := cmp.Diff([]any{"Option 1", "Option 2", "Option 3"}, pick.Enum); diff != "" {
		t.Fatalf("enum mismatch (-want +got):\n%s", diff)
	}
	if got := schema.Properties["name"].Value.Title; got != "Full name" {
		t.Fatalf("expected title from label, got %q", got)
	}
}

func TestSchemaEmptySequence(t *testing.T) {
	schema := submission.Schema(nil)
	if len(schema.Properties) != 0 || len(schema.Required) != 0 {
		t.Fatalf("expected empty object schema, got %+v", schema)
	}
}

func TestValidateAcceptsCompleteSubmission(t *testing.T) {
	result := submission.Validate(sampleSequence(), map[string]any{
		"name":   "Ada Lovelace",
		"mail":   "ada@example.com",
		"age":    36,
		"when":   "1843-09-01",
		"pick":   "Option 2",
		"topics": []string{"Option 1", "Option 3"},
		"score":  3,
	})
	if !result.Valid() {
		t.Fatalf("expected valid submission, got %+v", result)
	}
	if err := result.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidateReportsFieldErrors(t *testing.T) {
	result := submission.Validate(sampleSequence(), map[string]any{
		"name":   "   ",
		"mail":   "not-an-email",
		"age":    "old",
		"when":   "yesterday",
		"pick":   "Option 9",
		"topics": []string{"Option 1"},
		"score":  7,
	})
	if result.Valid() {
		t.Fatalf("expected invalid submission")
	}
	if !errors.Is(result.Err(), submission.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", result.Err())
	}

	var got []string
	for id := range result.Fields {
		got = append(got, id)
	}
	sort.Strings(got)
	want := []string{"age", "mail", "name", "pick", "score", "when"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"is required"}, result.For("name")); diff != "" {
		t.Fatalf("name messages mismatch (-want +got):\n%s", diff)
	}
	if len(result.Form) != 0 {
		t.Fatalf("expected no form-level errors, got %v", result.Form)
	}
}

func TestValidateMissingRequired(t *testing.T) {
	result := submission.Validate(sampleSequence(), nil)
	for _, id := range []string{"name", "mail", "topics"} {
		if diff := cmp.Diff([]string{"is required"}, result.For(id)); diff != "" {
			t.Fatalf("%s messages mismatch (-want +got):\n%s", id, diff)
		}
	}
	if len(result.Fields) != 3 {
		t.Fatalf("expected only required fields to fail, got %v", result.Fields)
	}
}

func TestValidateBlankOptionalAnswersAreSkipped(t *testing.T) {
	seq := field.Sequence{testsupport.Field("site", field.SubtypeWebsite), testsupport.Field("mail", field.SubtypeEmail)}
	seq[1].Required = false
	result := submission.Validate(seq, map[string]any{"site": "", "mail": ""})
	if !result.Valid() {
		t.Fatalf("expected blank optional answers to pass, got %+v", result)
	}
}

func TestMapErrors(t *testing.T) {
	seq := sampleSequence()
	result := submission.MapErrors(seq, map[string][]string{
		"/body/mail":       {"  already registered ", "already registered"},
		"#/topics/0":       {"unknown topic"},
		"data.score":       {"too high"},
		"non_field_errors": {"try again later"},
		"/unknown":         {"lost"},
		"age":              {"   "},
	})

	want := submission.Result{
		Fields: map[string][]string{
			"mail":   {"already registered"},
			"topics": {"unknown topic"},
			"score":  {"too high"},
		},
	}
	if diff := cmp.Diff(want.Fields, result.Fields); diff != "" {
		t.Fatalf("field mapping mismatch (-want +got):\n%s", diff)
	}
	gotForm := append([]string(nil), result.Form...)
	sort.Strings(gotForm)
	if diff := cmp.Diff([]string{"lost", "try again later"}, gotForm); diff != "" {
		t.Fatalf("form mapping mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorsMergesFormMessages(t *testing.T) {
	result := submission.MapErrors(sampleSequence(), map[string][]string{
		"form":     {"try again later", " closed "},
		"__all__":  {"closed"},
		"/missing": {"try again later"},
	})
	if len(result.Fields) != 0 {
		t.Fatalf("expected no field messages, got %v", result.Fields)
	}
	got := append([]string(nil), result.Form...)
	sort.Strings(got)
	if diff := cmp.Diff([]string{"closed", "try again later"}, got); diff != "" {
		t.Fatalf("form messages mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentDescribesSubmitOperation(t *testing.T) {
	doc := formdoc.Document{ID: "contact", Title: "Contact us", Fields: sampleSequence()}
	api := submission.Document(doc)

	if api.OpenAPI != "3.0.3" || api.Info.Title != "Contact us" {
		t.Fatalf("unexpected header: %s %q", api.OpenAPI, api.Info.Title)
	}
	item := api.Paths.Value(submission.SubmitPath)
	if item == nil || item.Post == nil {
		t.Fatalf("expected POST %s", submission.SubmitPath)
	}
	if item.Post.OperationID != "submit:contact" {
		t.Fatalf("unexpected operation id %q", item.Post.OperationID)
	}
	media := item.Post.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil {
		t.Fatalf("expected JSON request body schema")
	}
	if diff := cmp.Diff([]string{"name", "mail", "topics"}, media.Schema.Value.Required); diff != "" {
		t.Fatalf("request schema required mismatch (-want +got):\n%s", diff)
	}

	raw, err := json.Marshal(api)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal document: %v", err)
	}
	if _, ok := decoded["paths"].(map[string]any)[submission.SubmitPath]; !ok {
		t.Fatalf("encoded document missing submit path: %s", raw)
	}
}
