package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/field"
)

// OutputFormat controls how collected answers are serialised.
type OutputFormat string

const (
	// OutputFormatJSON emits an indented JSON object keyed by field id.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits one "label: value" line per answer in
	// form order.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Format serialises answers collected for seq.
func Format(seq field.Sequence, values map[string]any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatPrettyText:
		return []byte(prettyPrint(seq, values)), nil
	case OutputFormatJSON, "":
		payload, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("prompt: encode answers: %w", err)
		}
		return append(payload, '\n'), nil
	default:
		return nil, fmt.Errorf("prompt: unknown output format %q", format)
	}
}

func prettyPrint(seq field.Sequence, values map[string]any) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	for _, f := range seq {
		v, ok := values[f.ID]
		if !ok {
			continue
		}
		seen[f.ID] = struct{}{}
		fmt.Fprintf(&b, "%s: %s\n", fieldName(f), formatValue(v))
	}

	var extra []string
	for id := range values {
		if _, ok := seen[id]; !ok {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		fmt.Fprintf(&b, "%s: %s\n", id, formatValue(values[id]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case []string:
		return strings.Join(val, ", ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
