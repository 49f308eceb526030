package dictionary

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cities.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write city list: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeList(t, "# cities\nТула\tТульская область\t71\n\nКалуга\nтула\n")

	entries, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	expected := []Entry{
		{ID: "71", Name: "Тула", Region: "Тульская область"},
		{Name: "Калуга"},
	}
	if !reflect.DeepEqual(entries, expected) {
		t.Errorf("LoadFile() = %+v, want %+v", entries, expected)
	}
}

func TestLoadFileErrors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeList(t, "# nothing here\n\n")); err == nil {
		t.Error("expected error for empty list")
	}
}

func TestFallback(t *testing.T) {
	if got := Fallback(""); len(got) != len(Cities) {
		t.Errorf("built-in fallback has %d entries, want %d", len(got), len(Cities))
	}
	if got := Fallback(filepath.Join(t.TempDir(), "missing.txt")); len(got) != len(Cities) {
		t.Errorf("missing file should fall back to built-in list, got %d entries", len(got))
	}
	if got := Fallback(writeList(t, "Сочи\n")); !reflect.DeepEqual(Names(got), []string{"Сочи"}) {
		t.Errorf("file fallback = %v", Names(got))
	}
}
