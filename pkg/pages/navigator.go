package pages

import "github.com/goliatone/go-formbuilder/pkg/field"

// Navigator holds the current page index over a grouped sequence. Next and
// Previous clamp at the ends instead of running past them, so repeated clicks
// on either button are harmless.
type Navigator struct {
	groups []field.Sequence
	index  int
}

// NewNavigator groups seq and positions the navigator on the first page.
func NewNavigator(seq field.Sequence) *Navigator {
	return &Navigator{groups: Group(seq)}
}

// Reset regroups after the sequence changed, keeping the current index when it
// is still in range and clamping it otherwise.
func (n *Navigator) Reset(seq field.Sequence) {
	n.groups = Group(seq)
	n.index = n.clamp(n.index)
}

// Index returns the current page index.
func (n *Navigator) Index() int {
	return n.index
}

// Count returns the number of pages.
func (n *Navigator) Count() int {
	return len(n.groups)
}

// Pages returns the page groups.
func (n *Navigator) Pages() []field.Sequence {
	return n.groups
}

// Current returns the fields of the current page, or nil when there are no
// pages.
func (n *Navigator) Current() field.Sequence {
	if len(n.groups) == 0 {
		return nil
	}
	return n.groups[n.index]
}

// Next advances one page and reports whether the index moved.
func (n *Navigator) Next() bool {
	return n.move(n.index + 1)
}

// Previous goes back one page and reports whether the index moved.
func (n *Navigator) Previous() bool {
	return n.move(n.index - 1)
}

// Seek jumps to the given page, clamped to the available range.
func (n *Navigator) Seek(index int) bool {
	return n.move(index)
}

// IsFirstPage reports whether the navigator is on the first page.
func (n *Navigator) IsFirstPage() bool {
	return n.index == 0
}

// IsLastPage reports whether the navigator is on the last page. An empty form
// has no pages and is always on its last page, so the runtime shows submit
// rather than next.
func (n *Navigator) IsLastPage() bool {
	return len(n.groups) == 0 || n.index == len(n.groups)-1
}

func (n *Navigator) move(target int) bool {
	target = n.clamp(target)
	if target == n.index {
		return false
	}
	n.index = target
	return true
}

func (n *Navigator) clamp(index int) int {
	if index < 0 || len(n.groups) == 0 {
		return 0
	}
	if index >= len(n.groups) {
		return len(n.groups) - 1
	}
	return index
}
