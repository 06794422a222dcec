package submission

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// Result splits submission problems into field-level messages keyed by field
// id and form-level messages.
type Result struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

// Valid reports whether no problems were found.
func (r Result) Valid() bool {
	return len(r.Fields) == 0 && len(r.Form) == 0
}

// For returns the messages attached to a field id.
func (r Result) For(fieldID string) []string {
	if len(r.Fields) == 0 {
		return nil
	}
	return r.Fields[fieldID]
}

// mergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while keeping order.
func mergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors attributes an error payload keyed by paths (field ids, dotted
// paths, or JSON pointers such as "/body/<id>/0") to the fields of seq.
// Paths that do not resolve to a field id are treated as form-level so
// messages are not lost.
func MapErrors(seq field.Sequence, payload map[string][]string) Result {
	result := Result{Fields: make(map[string][]string)}

	ids := make(map[string]struct{}, len(seq))
	for _, f := range seq {
		ids[f.ID] = struct{}{}
	}

	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		id, ok := resolvePath(rawPath, ids)
		if !ok {
			result.Form = mergeFormErrors(result.Form, normalized...)
			continue
		}
		result.Fields[id] = append(result.Fields[id], normalized...)
	}

	for id, messages := range result.Fields {
		result.Fields[id] = normalizeMessages(messages)
	}
	if len(result.Fields) == 0 {
		result.Fields = nil
	}
	return result
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func resolvePath(raw string, ids map[string]struct{}) (string, bool) {
	if isFormLevelKey(raw) {
		return "", false
	}
	segments := dropWrapperSegments(parsePathSegments(raw))
	if len(segments) == 0 {
		return "", false
	}
	if _, ok := ids[segments[0]]; ok {
		return segments[0], true
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") ||
		strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = clean[1:]
	}
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)
	clean = strings.Trim(clean, "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	for len(segments) > 0 {
		switch strings.ToLower(segments[0]) {
		case "body", "request", "payload", "data", "attributes":
			segments = segments[1:]
			continue
		}
		break
	}
	return segments
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
