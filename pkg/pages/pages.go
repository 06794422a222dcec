// Package pages partitions a field sequence into page groups and tracks the
// runtime's position within them.
package pages

import "github.com/goliatone/go-formbuilder/pkg/field"

// Group splits seq into pages. Each page is a contiguous run of fields ending
// with (and including) a field whose Type is field.TypePageBreak; the final
// page holds the trailing run and may be empty when seq ends on a break. A
// sequence without breaks yields one page; an empty sequence yields none.
//
// The split keys off Type, not Subtype, so any field carrying the page-break
// type ends a page.
func Group(seq field.Sequence) []field.Sequence {
	if len(seq) == 0 {
		return nil
	}

	groups := make([]field.Sequence, 0, countBreaks(seq)+1)
	current := field.Sequence{}
	for _, f := range seq {
		current = append(current, f)
		if f.IsPageBreak() {
			groups = append(groups, current)
			current = field.Sequence{}
		}
	}
	return append(groups, current)
}

// Count returns the number of pages Group would produce.
func Count(seq field.Sequence) int {
	if len(seq) == 0 {
		return 0
	}
	return countBreaks(seq) + 1
}

// PageOf returns the page index holding the field with the given id.
func PageOf(seq field.Sequence, fieldID string) (int, bool) {
	page := 0
	for _, f := range seq {
		if f.ID == fieldID {
			return page, true
		}
		if f.IsPageBreak() {
			page++
		}
	}
	return 0, false
}

func countBreaks(seq field.Sequence) int {
	n := 0
	for _, f := range seq {
		if f.IsPageBreak() {
			n++
		}
	}
	return n
}
