package suggest

import (
	"time"

	"github.com/bastiangx/citycomplete/pkg/dictionary"
)

// Candidate is one suggestion: a display name plus optional id and region.
type Candidate = dictionary.Entry

// Origin tells where a CandidateList came from.
type Origin int

const (
	OriginCache Origin = iota
	OriginRemote
	OriginFallback
)

func (o Origin) String() string {
	switch o {
	case OriginCache:
		return "cache"
	case OriginRemote:
		return "remote"
	case OriginFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// CandidateList is the ordered result for one query. It is replaced wholesale,
// never edited.
type CandidateList struct {
	Query     string
	Items     []Candidate
	FetchedAt time.Time
	Source    Origin
}

// Len returns the number of candidates.
func (l CandidateList) Len() int {
	return len(l.Items)
}

// Options configures the pipeline. Zero fields take the defaults.
type Options struct {
	MinSearchLength int
	MaxResults      int
	DebounceDelay   time.Duration
	RequestTimeout  time.Duration
	CacheTTL        time.Duration
	UseRemoteSource bool
	RemoteEndpoint  string
	SearchParam     string
	WrapNavigation  bool
}

// DefaultOptions returns the stock pipeline settings.
func DefaultOptions() Options {
	return Options{
		MinSearchLength: 2,
		MaxResults:      10,
		DebounceDelay:   300 * time.Millisecond,
		RequestTimeout:  5 * time.Second,
		CacheTTL:        time.Hour,
		UseRemoteSource: false,
		RemoteEndpoint:  "http://localhost:8080/api/cities",
		SearchParam:     "query",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MinSearchLength <= 0 {
		o.MinSearchLength = d.MinSearchLength
	}
	if o.MaxResults <= 0 {
		o.MaxResults = d.MaxResults
	}
	if o.DebounceDelay <= 0 {
		o.DebounceDelay = d.DebounceDelay
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = d.RequestTimeout
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = d.CacheTTL
	}
	if o.SearchParam == "" {
		o.SearchParam = d.SearchParam
	}
	return o
}
