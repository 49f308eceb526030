package utils

import "testing"

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		input       string
		expected    bool
		description string
	}{
		{"Москва", true, "Cyrillic letters"},
		{"Ростов-на-Дону", true, "Hyphens are separators"},
		{"Нижний Новгород", true, "Spaces are separators"},
		{"", false, "Empty"},
		{"2024", false, "Only digits"},
		{"Омск!", false, "Punctuation"},
		{"<b>", false, "Markup"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := IsValidInput(tc.input); got != tc.expected {
				t.Errorf("IsValidInput(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestRuneLen(t *testing.T) {
	testCases := []struct {
		input       string
		expected    int
		description string
	}{
		{"Мо", 2, "Two Cyrillic runes"},
		{"  Мо ", 2, "Whitespace trimmed"},
		{"ab", 2, "ASCII"},
		{"   ", 0, "Only spaces"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := RuneLen(tc.input); got != tc.expected {
				t.Errorf("RuneLen(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestEqualFold(t *testing.T) {
	pairs := [][2]rune{{'a', 'A'}, {'Е', 'е'}, {'Ё', 'ё'}, {'z', 'z'}}
	for _, p := range pairs {
		if !EqualFold(p[0], p[1]) {
			t.Errorf("EqualFold(%q, %q) = false", p[0], p[1])
		}
	}
	if EqualFold('е', 'ё') {
		t.Error("е and ё are different letters")
	}
}

func TestSeenFilter(t *testing.T) {
	f := NewSeenFilter()
	if !f.ShouldInclude("Омск") {
		t.Fatal("first occurrence should be included")
	}
	if f.ShouldInclude(" омск ") {
		t.Error("case and whitespace variants are duplicates")
	}
}
