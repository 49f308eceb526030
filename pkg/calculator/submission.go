// Package calculator collects the two city fields and cargo values into a
// delivery calculator request and posts it.
package calculator

import (
	"errors"
	"strings"
	"time"

	"github.com/bastiangx/citycomplete/pkg/suggest"
)

var (
	ErrMissingFrom  = errors.New("departure city is required")
	ErrMissingTo    = errors.New("destination city is required")
	ErrMissingCargo = errors.New("volume or weight is required")
)

// Submission is the calculator request body.
type Submission struct {
	CityFromID     string `json:"city_from_id,omitempty"`
	CityFrom       string `json:"city_from"`
	CityFromRegion string `json:"city_from_region,omitempty"`
	CityToID       string `json:"city_to_id,omitempty"`
	CityTo         string `json:"city_to"`
	CityToRegion   string `json:"city_to_region,omitempty"`
	Volume         string `json:"volume"`
	Weight         string `json:"weight"`
	Timestamp      string `json:"timestamp"`
}

// Collect reads both fields with their annotations. Volume and weight are kept
// as typed.
func Collect(from, to *suggest.FieldBinding, volume, weight string, now time.Time) Submission {
	return Submission{
		CityFromID:     from.Annotation(suggest.AnnotationID),
		CityFrom:       from.Value(),
		CityFromRegion: from.Annotation(suggest.AnnotationRegion),
		CityToID:       to.Annotation(suggest.AnnotationID),
		CityTo:         to.Value(),
		CityToRegion:   to.Annotation(suggest.AnnotationRegion),
		Volume:         strings.TrimSpace(volume),
		Weight:         strings.TrimSpace(weight),
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
}

// Validate returns every problem with s joined together, or nil.
func (s Submission) Validate() error {
	var errs []error
	if strings.TrimSpace(s.CityFrom) == "" {
		errs = append(errs, ErrMissingFrom)
	}
	if strings.TrimSpace(s.CityTo) == "" {
		errs = append(errs, ErrMissingTo)
	}
	if s.Volume == "" && s.Weight == "" {
		errs = append(errs, ErrMissingCargo)
	}
	return errors.Join(errs...)
}
