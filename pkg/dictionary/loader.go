package dictionary

import (
	"fmt"
	"strings"

	"github.com/bastiangx/citycomplete/internal/utils"
	"github.com/charmbracelet/log"
)

// LoadFile reads a city list, one entry per line:
//
//	name
//	name<TAB>region
//	name<TAB>region<TAB>id
//
// Blank lines and lines starting with '#' are ignored, repeated names keep
// their first occurrence.
func LoadFile(path string) ([]Entry, error) {
	lines, err := utils.ReadLines(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read city list %s: %w", path, err)
	}

	seen := utils.NewSeenFilter()
	entries := make([]Entry, 0, len(lines))
	for n, line := range lines {
		fields := strings.Split(line, "\t")
		e := Entry{Name: strings.TrimSpace(fields[0])}
		if len(fields) > 1 {
			e.Region = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			e.ID = strings.TrimSpace(fields[2])
		}
		if e.Name == "" {
			continue
		}
		if !seen.ShouldInclude(e.Name) {
			log.Debugf("Skipping duplicate city %q (entry %d) in %s", e.Name, n+1, path)
			continue
		}
		entries = append(entries, e)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("no cities found in %s", path)
	}
	log.Debugf("Loaded %d cities from %s", len(entries), path)
	return entries, nil
}

// Fallback returns the local fallback list: the file at path when it loads,
// the built-in Cities otherwise.
func Fallback(path string) []Entry {
	if path == "" {
		return FromNames(Cities)
	}
	entries, err := LoadFile(path)
	if err != nil {
		log.Warnf("Using built-in city list: %v", err)
		return FromNames(Cities)
	}
	return entries
}
