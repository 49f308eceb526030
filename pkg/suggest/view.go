package suggest

import "github.com/bastiangx/citycomplete/internal/utils"

// ViewState is what the surface should show for a field.
type ViewState int

const (
	ViewClosed ViewState = iota
	ViewLoading
	ViewList
	ViewEmpty
	ViewError
)

func (s ViewState) String() string {
	switch s {
	case ViewClosed:
		return "closed"
	case ViewLoading:
		return "loading"
	case ViewList:
		return "list"
	case ViewEmpty:
		return "empty"
	case ViewError:
		return "error"
	default:
		return "unknown"
	}
}

// View is one render of a field's suggestion list.
type View struct {
	Field       string
	State       ViewState
	Query       string
	Items       []Candidate
	Highlighted int
	Source      Origin
	Err         error

	version uint64
}

// Segment is a run of text that either matches the query or not.
type Segment struct {
	Text  string
	Match bool
}

// MatchRanges returns the rune ranges [start, end) of every non-overlapping,
// case-insensitive occurrence of query in text, left to right.
func MatchRanges(text, query string) [][2]int {
	t, q := []rune(text), []rune(query)
	if len(q) == 0 || len(q) > len(t) {
		return nil
	}

	var ranges [][2]int
	for i := 0; i+len(q) <= len(t); {
		if runesEqualFold(t[i:i+len(q)], q) {
			ranges = append(ranges, [2]int{i, i + len(q)})
			i += len(q)
			continue
		}
		i++
	}
	return ranges
}

// Highlight splits text into matching and non-matching segments.
func Highlight(text, query string) []Segment {
	ranges := MatchRanges(text, query)
	if len(ranges) == 0 {
		return []Segment{{Text: text}}
	}

	runes := []rune(text)
	var segments []Segment
	pos := 0
	for _, r := range ranges {
		if r[0] > pos {
			segments = append(segments, Segment{Text: string(runes[pos:r[0]])})
		}
		segments = append(segments, Segment{Text: string(runes[r[0]:r[1]]), Match: true})
		pos = r[1]
	}
	if pos < len(runes) {
		segments = append(segments, Segment{Text: string(runes[pos:])})
	}
	return segments
}

func runesEqualFold(a, b []rune) bool {
	for i := range a {
		if !utils.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}
