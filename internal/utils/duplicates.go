package utils

import (
	"strings"
)

// SeenFilter drops case-insensitive repeats while keeping first occurrences
type SeenFilter struct {
	seen map[string]struct{}
}

// NewSeenFilter creates an empty filter
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seen: make(map[string]struct{})}
}

// ShouldInclude reports whether s has not been seen before and records it.
func (f *SeenFilter) ShouldInclude(s string) bool {
	key := strings.ToLower(strings.TrimSpace(s))
	if _, ok := f.seen[key]; ok {
		return false
	}
	f.seen[key] = struct{}{}
	return true
}
