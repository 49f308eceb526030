package suggest

import (
	"testing"

	"github.com/bastiangx/citycomplete/pkg/dictionary"
)

func threeCities() []Candidate {
	return dictionary.FromNames([]string{"Москва", "Омск", "Томск"})
}

func TestSelectionClamp(t *testing.T) {
	s := NewSelection(false)
	s.Replace(threeCities())

	steps := []struct {
		move        func() bool
		changed     bool
		index       int
		description string
	}{
		{s.Prev, false, -1, "Up with nothing highlighted stays at -1"},
		{s.Next, true, 0, "Down highlights the first"},
		{s.Next, true, 1, "Down moves on"},
		{s.Next, true, 2, "Down reaches the last"},
		{s.Next, false, 2, "Down at the last stays"},
		{s.Prev, true, 1, "Up moves back"},
		{s.Prev, true, 0, "Up reaches the first"},
		{s.Prev, true, -1, "Up from the first clears the highlight"},
	}

	for _, step := range steps {
		if changed := step.move(); changed != step.changed {
			t.Errorf("%s: changed = %v, want %v", step.description, changed, step.changed)
		}
		if s.Index() != step.index {
			t.Errorf("%s: index = %d, want %d", step.description, s.Index(), step.index)
		}
	}
}

func TestSelectionWrap(t *testing.T) {
	s := NewSelection(true)
	s.Replace(threeCities())

	s.Prev()
	if s.Index() != 2 {
		t.Errorf("Up from none should wrap to the last, got %d", s.Index())
	}
	s.Next()
	if s.Index() != 0 {
		t.Errorf("Down from the last should wrap to the first, got %d", s.Index())
	}
	s.Prev()
	if s.Index() != 2 {
		t.Errorf("Up from the first should wrap to the last, got %d", s.Index())
	}
}

func TestSelectionCommit(t *testing.T) {
	s := NewSelection(false)
	s.Replace(threeCities())

	if _, ok := s.Commit(); ok {
		t.Fatal("Enter with nothing highlighted must not commit")
	}
	if !s.IsOpen() {
		t.Fatal("failed commit must keep the list open")
	}

	s.Next()
	s.Next()
	c, ok := s.Commit()
	if !ok || c.Name != "Омск" {
		t.Fatalf("expected Омск, got %+v %v", c, ok)
	}
	if s.IsOpen() || s.Index() != -1 {
		t.Error("commit should close and reset the highlight")
	}
}

func TestSelectionEmptyAndReopen(t *testing.T) {
	s := NewSelection(false)
	s.Replace(nil)

	if !s.IsOpen() {
		t.Error("empty list is still shown")
	}
	if s.Next() || s.Prev() {
		t.Error("navigation on an empty list must not move")
	}
	s.Close()
	if s.Reopen() {
		t.Error("nothing to reopen")
	}

	s.Replace(threeCities())
	s.Next()
	s.Close()
	if !s.Reopen() || s.Index() != -1 {
		t.Errorf("reopen should show the list with no highlight, index %d", s.Index())
	}
}

func TestSelectionPick(t *testing.T) {
	s := NewSelection(false)
	s.Replace(threeCities())

	if _, ok := s.Pick(3); ok {
		t.Error("out of range pick must fail")
	}
	c, ok := s.Pick(2)
	if !ok || c.Name != "Томск" {
		t.Errorf("expected Томск, got %+v", c)
	}
	if _, ok := s.Pick(0); ok {
		t.Error("pick on a closed list must fail")
	}
}
