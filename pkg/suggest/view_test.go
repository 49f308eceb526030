package suggest

import (
	"reflect"
	"testing"
)

func TestMatchRanges(t *testing.T) {
	testCases := []struct {
		text        string
		query       string
		expected    [][2]int
		description string
	}{
		{"Екатеринбург", "ека", [][2]int{{0, 3}}, "Prefix, case-insensitive"},
		{"Нижний Новгород", "нов", [][2]int{{7, 10}}, "Rune offsets, not bytes"},
		{"Кемерово", "е", [][2]int{{1, 2}, {3, 4}}, "Several matches"},
		{"аааа", "аа", [][2]int{{0, 2}, {2, 4}}, "Non-overlapping"},
		{"Омск", "zz", nil, "No match"},
		{"Омск", "", nil, "Empty query"},
		{"Ом", "Омск", nil, "Query longer than text"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := MatchRanges(tc.text, tc.query)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("MatchRanges(%q, %q) = %v, want %v", tc.text, tc.query, got, tc.expected)
			}
		})
	}
}

func TestHighlight(t *testing.T) {
	got := Highlight("Ростов-на-Дону", "на")
	expected := []Segment{
		{Text: "Ростов-"},
		{Text: "на", Match: true},
		{Text: "-Дону"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Highlight = %+v, want %+v", got, expected)
	}

	if plain := Highlight("Омск", "zz"); len(plain) != 1 || plain[0].Match || plain[0].Text != "Омск" {
		t.Errorf("no match should give the whole text unmarked, got %+v", plain)
	}
}
