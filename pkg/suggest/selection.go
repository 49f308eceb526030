package suggest

// Selection tracks which candidate is highlighted in the displayed list.
// The index is -1 (nothing highlighted) or a valid position; it resets to -1
// whenever the list is replaced, reopened or closed.
//
// Selection is not safe for concurrent use; the Controller guards it.
type Selection struct {
	items []Candidate
	index int
	open  bool
	wrap  bool
}

// NewSelection creates a closed selection. With wrap set, moving past either
// end continues from the other one.
func NewSelection(wrap bool) *Selection {
	return &Selection{index: -1, wrap: wrap}
}

// Replace shows a new list with nothing highlighted. An empty list is still
// open so the surface can say there are no results.
func (s *Selection) Replace(items []Candidate) {
	s.items = items
	s.index = -1
	s.open = true
}

// Reopen shows the current list again. It reports false if there is nothing
// to show.
func (s *Selection) Reopen() bool {
	if len(s.items) == 0 {
		return false
	}
	s.open = true
	s.index = -1
	return true
}

// Close hides the list without committing.
func (s *Selection) Close() {
	s.open = false
	s.index = -1
}

// IsOpen reports whether the list is shown.
func (s *Selection) IsOpen() bool {
	return s.open
}

// Index returns the highlighted position, -1 for none.
func (s *Selection) Index() int {
	return s.index
}

func (s *Selection) Len() int {
	return len(s.items)
}

func (s *Selection) Items() []Candidate {
	return s.items
}

// Next moves the highlight down. It reports whether the index changed.
func (s *Selection) Next() bool {
	n := len(s.items)
	if !s.open || n == 0 {
		return false
	}
	switch {
	case s.index < n-1:
		s.index++
	case s.wrap && s.index != 0:
		s.index = 0
	default:
		return false
	}
	return true
}

// Prev moves the highlight up, stopping at -1 unless wrapping.
func (s *Selection) Prev() bool {
	n := len(s.items)
	if !s.open || n == 0 {
		return false
	}
	if !s.wrap {
		if s.index == -1 {
			return false
		}
		s.index--
		return true
	}
	if s.index <= 0 {
		if s.index == n-1 {
			return false
		}
		s.index = n - 1
		return true
	}
	s.index--
	return true
}

// Current returns the highlighted candidate.
func (s *Selection) Current() (Candidate, bool) {
	if !s.open || s.index < 0 || s.index >= len(s.items) {
		return Candidate{}, false
	}
	return s.items[s.index], true
}

// Commit returns the highlighted candidate and closes, or does nothing when no
// candidate is highlighted.
func (s *Selection) Commit() (Candidate, bool) {
	c, ok := s.Current()
	if ok {
		s.Close()
	}
	return c, ok
}

// Pick commits the candidate at i regardless of the highlight.
func (s *Selection) Pick(i int) (Candidate, bool) {
	if !s.open || i < 0 || i >= len(s.items) {
		return Candidate{}, false
	}
	c := s.items[i]
	s.Close()
	return c, true
}
