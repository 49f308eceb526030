package suggest

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrMalformedResponse means the payload was not valid JSON.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrUnrecognizedShape means valid JSON that holds no known candidate list.
	ErrUnrecognizedShape = errors.New("unrecognized response shape")

	// ErrEmptyResult means the source answered with no usable candidates.
	ErrEmptyResult = errors.New("empty result")
)

// StatusError is returned by HTTPSource for non-2xx answers.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// FailureKind classifies why a remote lookup degraded to the fallback list.
type FailureKind int

const (
	NetworkFailure FailureKind = iota
	Timeout
	MalformedResponse
	EmptyResult
)

func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "network"
	case Timeout:
		return "timeout"
	case MalformedResponse:
		return "malformed"
	case EmptyResult:
		return "empty"
	default:
		return "unknown"
	}
}

// Classify maps a remote lookup error to its FailureKind.
func Classify(err error) FailureKind {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	case errors.Is(err, ErrMalformedResponse), errors.Is(err, ErrUnrecognizedShape):
		return MalformedResponse
	case errors.Is(err, ErrEmptyResult):
		return EmptyResult
	default:
		return NetworkFailure
	}
}
