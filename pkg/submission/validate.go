package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// ErrInvalidSubmission is returned by Result.Err when problems were found.
var ErrInvalidSubmission = errors.New("submission: invalid submission")

// Err returns nil for a valid result and an error wrapping
// ErrInvalidSubmission otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return fmt.Errorf("%w: %d field(s), %d form-level message(s)", ErrInvalidSubmission, len(r.Fields), len(r.Form))
}

// Validate checks values, keyed by field id, against the schema of seq. Blank
// values (empty strings, empty lists, nil) count as unanswered.
func Validate(seq field.Sequence, values map[string]any) Result {
	payload, err := normalizeValues(values)
	if err != nil {
		return Result{Form: []string{err.Error()}}
	}

	visitErr := Schema(seq).VisitJSON(payload, openapi3.MultiErrors())
	if visitErr == nil {
		return Result{}
	}

	byPath := make(map[string][]string)
	for _, err := range flatten(visitErr) {
		path, message := describe(err)
		byPath[path] = append(byPath[path], message)
	}
	return MapErrors(seq, byPath)
}

// normalizeValues round-trips values through JSON so the validator sees plain
// JSON types, then drops blank answers.
func normalizeValues(values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	if len(values) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("submission: encode values: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("submission: decode values: %w", err)
	}
	for key, value := range out {
		if blank(value) {
			delete(out, key)
		}
	}
	return out, nil
}

func blank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func flatten(err error) []error {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		var out []error
		for _, inner := range multi {
			out = append(out, flatten(inner)...)
		}
		return out
	}
	return []error{err}
}

// describe returns the JSON pointer an error refers to and a message for it.
func describe(err error) (string, string) {
	var schemaErr *openapi3.SchemaError
	if !errors.As(err, &schemaErr) {
		return "", err.Error()
	}

	pointer := schemaErr.JSONPointer()
	if schemaErr.SchemaField == "required" {
		if len(pointer) == 0 {
			if key, ok := missingProperty(schemaErr.Reason); ok {
				pointer = []string{key}
			}
		}
		return "/" + strings.Join(pointer, "/"), "is required"
	}
	return "/" + strings.Join(pointer, "/"), schemaErr.Reason
}

func missingProperty(reason string) (string, bool) {
	const prefix = "property "
	rest, ok := strings.CutPrefix(reason, prefix)
	if !ok {
		return "", false
	}
	quoted, _, ok := strings.Cut(rest, " is missing")
	if !ok {
		return "", false
	}
	key, err := strconv.Unquote(quoted)
	if err != nil {
		return "", false
	}
	return key, true
}
