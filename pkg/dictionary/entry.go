// Package dictionary holds the city records suggestions are drawn from and the
// substring index used to filter them.
package dictionary

// Entry is a single suggestion record. Only Name is required; ID and Region are
// optional annotations carried through to the committed field.
type Entry struct {
	ID     string `json:"id,omitempty" msgpack:"id,omitempty"`
	Name   string `json:"name" msgpack:"n"`
	Region string `json:"region,omitempty" msgpack:"r,omitempty"`
}

// Names returns the display names of entries in order.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// FromNames wraps plain names into entries.
func FromNames(names []string) []Entry {
	entries := make([]Entry, len(names))
	for i, n := range names {
		entries[i] = Entry{Name: n}
	}
	return entries
}
