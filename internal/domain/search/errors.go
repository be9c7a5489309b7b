package search

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is the closed failure taxonomy of a search.
type ErrorKind string

const (
	ErrorKindTimeout            ErrorKind = "timeout"
	ErrorKindNetworkUnavailable ErrorKind = "network_unavailable"
	ErrorKindNotFound           ErrorKind = "not_found"
	ErrorKindServiceUnavailable ErrorKind = "service_unavailable"
	ErrorKindMalformed          ErrorKind = "malformed"
	ErrorKindRateLimited        ErrorKind = "rate_limited"
	ErrorKindUnknown            ErrorKind = "unknown"
)

// ErrorKinds lists every kind in classification priority order.
var ErrorKinds = []ErrorKind{
	ErrorKindTimeout,
	ErrorKindNetworkUnavailable,
	ErrorKindNotFound,
	ErrorKindServiceUnavailable,
	ErrorKindMalformed,
	ErrorKindRateLimited,
	ErrorKindUnknown,
}

var (
	// ErrTimeout is returned when the cancellation timer fires before the upstream answers.
	ErrTimeout = errors.New("search request timed out")
	// ErrEmptyQuery is returned by Submit when there is nothing to search for.
	ErrEmptyQuery = errors.New("search query text is empty")
	// ErrSuperseded is returned by Submit when a newer submission replaced this one.
	ErrSuperseded = errors.New("search superseded by a newer submission")
)

// rateLimitMarkers are matched case-insensitively against failure messages.
var rateLimitMarkers = []string{"limit", "429", "quota"}

// NetworkError means the transport never got an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// StatusError is a non-2xx upstream response. Body holds the raw text, unparsed.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	status := strings.TrimSpace(e.Status)
	if status == "" {
		status = fmt.Sprintf("%d", e.StatusCode)
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return fmt.Sprintf("upstream returned status %s: %s", status, body)
	}
	return fmt.Sprintf("upstream returned status %s", status)
}

// DecodeError means a 2xx body was not valid JSON.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode upstream response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ShapeError means valid JSON matched none of the accepted response shapes.
type ShapeError struct {
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("unsupported upstream response shape: %s", e.Reason)
}

// SearchError pairs a failure with its classified kind.
type SearchError struct {
	Kind ErrorKind
	Err  error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// NewSearchError classifies err and wraps it.
func NewSearchError(err error) *SearchError {
	return &SearchError{Kind: Classify(err), Err: err}
}

// Classify maps a failure to exactly one ErrorKind. Checks run in priority
// order: timeout, network, status code, malformed body, rate-limit markers,
// unknown.
func Classify(err error) ErrorKind {
	if err == nil {
		return ErrorKindUnknown
	}

	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Kind
	}

	if errors.Is(err, ErrTimeout) {
		return ErrorKindTimeout
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return ErrorKindNetworkUnavailable
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == 404:
			return ErrorKindNotFound
		case statusErr.StatusCode >= 500:
			return ErrorKindServiceUnavailable
		case statusErr.StatusCode >= 400:
			return ErrorKindMalformed
		}
	}

	var decodeErr *DecodeError
	var shapeErr *ShapeError
	if errors.As(err, &decodeErr) || errors.As(err, &shapeErr) {
		return ErrorKindMalformed
	}

	if ContainsRateLimitMarker(err.Error()) {
		return ErrorKindRateLimited
	}

	return ErrorKindUnknown
}

// ContainsRateLimitMarker reports whether message mentions a quota or rate limit.
func ContainsRateLimitMarker(message string) bool {
	lower := strings.ToLower(message)
	for _, marker := range rateLimitMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
