package dictionary

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index answers case-insensitive substring queries over a fixed entry list.
//
// Every rune suffix of the lower-cased name and region is inserted into a
// patricia trie with the positions of the entries it came from, so a substring
// query is a subtree visit on the query itself. Results come back in the
// original entry order; the index never ranks.
type Index struct {
	entries []Entry
	trie    *patricia.Trie
}

// NewIndex builds the suffix index. entries is copied.
func NewIndex(entries []Entry) *Index {
	ix := &Index{
		entries: append([]Entry(nil), entries...),
		trie:    patricia.NewTrie(),
	}
	for pos, e := range ix.entries {
		ix.insertSuffixes(strings.ToLower(e.Name), pos)
		if e.Region != "" {
			ix.insertSuffixes(strings.ToLower(e.Region), pos)
		}
	}
	return ix
}

func (ix *Index) insertSuffixes(lower string, pos int) {
	for i := range lower {
		key := patricia.Prefix(lower[i:])
		item := ix.trie.Get(key)
		if item == nil {
			ix.trie.Insert(key, []int{pos})
			continue
		}
		positions := item.([]int)
		if positions[len(positions)-1] == pos {
			continue
		}
		ix.trie.Set(key, append(positions, pos))
	}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Entries returns a copy of the indexed entries in source order.
func (ix *Index) Entries() []Entry {
	return append([]Entry(nil), ix.entries...)
}

// Search returns up to limit entries whose name or region contains query,
// ignoring case. An empty query matches everything. limit <= 0 means no limit.
func (ix *Index) Search(query string, limit int) []Entry {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return truncate(ix.Entries(), limit)
	}

	hits := make(map[int]struct{})
	err := ix.trie.VisitSubtree(patricia.Prefix(lower), func(_ patricia.Prefix, item patricia.Item) error {
		for _, pos := range item.([]int) {
			hits[pos] = struct{}{}
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting suffix trie: %v", err)
		return []Entry{}
	}

	positions := make([]int, 0, len(hits))
	for pos := range hits {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	result := make([]Entry, 0, len(positions))
	for _, pos := range positions {
		if limit > 0 && len(result) >= limit {
			break
		}
		result = append(result, ix.entries[pos])
	}
	return result
}

func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
