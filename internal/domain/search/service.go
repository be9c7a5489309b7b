package search

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 60 * time.Second

// SearchClient sends one query upstream and returns the decoded body.
// Implementations arm a cancellation timer of timeout and fail with
// ErrTimeout when it fires.
type SearchClient interface {
	Send(ctx context.Context, query SearchQuery, timeout time.Duration) (RawResponse, error)
}

// ServiceConfig tunes the stateless pipeline.
type ServiceConfig struct {
	Timeout time.Duration
}

// SearchService runs send, normalise and partition for one query without
// holding any view state. Orchestrator and the MCP tool both build on it.
type SearchService struct {
	client  SearchClient
	timeout time.Duration
}

// NewSearchService creates a new search service.
func NewSearchService(client SearchClient, cfg ServiceConfig) *SearchService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &SearchService{
		client:  client,
		timeout: timeout,
	}
}

// Timeout is the per-call bound passed to the client.
func (s *SearchService) Timeout() time.Duration {
	return s.timeout
}

// Search performs one lookup. Failures come back as *SearchError.
func (s *SearchService) Search(ctx context.Context, query SearchQuery) (ResultBuckets, error) {
	if query.IsEmpty() {
		return ResultBuckets{}, ErrEmptyQuery
	}

	raw, err := s.client.Send(ctx, query, s.timeout)
	if err != nil {
		return ResultBuckets{}, NewSearchError(err)
	}

	records, shape, err := NormalizeWithShape(raw)
	if err != nil {
		return ResultBuckets{}, NewSearchError(err)
	}

	buckets := Partition(records)
	event := log.Debug().
		Str("operation", "search").
		Str("shape", string(shape)).
		Int("linkedin", len(buckets.LinkedIn)).
		Int("facebook", len(buckets.Facebook)).
		Int("twitter", len(buckets.Twitter))
	if len(buckets.Unknown) > 0 {
		event = event.Int("unknown_dropped", len(buckets.Unknown))
	}
	event.Msg("search results partitioned")

	return buckets, nil
}
