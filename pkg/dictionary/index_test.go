package dictionary

import (
	"reflect"
	"testing"
)

func TestIndexSearch(t *testing.T) {
	ix := NewIndex(FromNames(Cities))

	testCases := []struct {
		query       string
		limit       int
		expected    []string
		description string
	}{
		{"Ека", 10, []string{"Екатеринбург"}, "Single match, mixed case"},
		{"ЕКА", 10, []string{"Екатеринбург"}, "Upper case query"},
		{"zz", 10, []string{}, "No matches"},
		{"ново", 10, []string{"Новосибирск", "Новокузнецк", "Иваново"}, "Substring in the middle keeps source order"},
		{"нов", 10, []string{"Новосибирск", "Нижний Новгород", "Ульяновск", "Новокузнецк", "Иваново"}, "Word inside a multi-word name"},
		{"ск", 3, []string{"Москва", "Новосибирск", "Челябинск"}, "Limit truncates after ordering"},
		{"  сам ", 10, []string{"Самара"}, "Query is trimmed"},
		{"на-до", 10, []string{"Ростов-на-Дону"}, "Hyphenated names"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Names(ix.Search(tc.query, tc.limit))
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Search(%q, %d) = %v, want %v", tc.query, tc.limit, got, tc.expected)
			}
		})
	}
}

func TestIndexSearchEmptyQuery(t *testing.T) {
	ix := NewIndex(FromNames(Cities))

	got := ix.Search("", 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	if got[0].Name != "Москва" || got[4].Name != "Казань" {
		t.Errorf("empty query should return the head of the list, got %v", Names(got))
	}

	if all := ix.Search("", 0); len(all) != len(Cities) {
		t.Errorf("limit 0 should return all %d entries, got %d", len(Cities), len(all))
	}
}

func TestIndexMatchesRegion(t *testing.T) {
	ix := NewIndex(RegionalCities)

	got := ix.Search("татарстан", 10)
	if len(got) != 1 || got[0].Name != "Казань" || got[0].ID != "5" {
		t.Errorf("region match failed, got %+v", got)
	}

	// name and region both contain "омск": entry must appear once
	got = ix.Search("омск", 10)
	if !reflect.DeepEqual(Names(got), []string{"Омск"}) {
		t.Errorf("expected single Омск entry, got %v", Names(got))
	}
}

func TestIndexCopiesInput(t *testing.T) {
	entries := []Entry{{Name: "Тула"}}
	ix := NewIndex(entries)
	entries[0].Name = "Тверь"

	if got := ix.Search("тул", 10); len(got) != 1 || got[0].Name != "Тула" {
		t.Errorf("index should not observe caller mutations, got %v", got)
	}
	if ix.Len() != 1 {
		t.Errorf("Len() = %d, want 1", ix.Len())
	}
}
