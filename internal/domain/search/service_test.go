package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_DefaultTimeout(t *testing.T) {
	service := NewSearchService(&fakeClient{send: respond(`[]`)}, ServiceConfig{})
	assert.Equal(t, DefaultTimeout, service.Timeout())
}

func TestSearchService_Search(t *testing.T) {
	client := &fakeClient{send: respond(`{"data":[{"name":"A","source":"Twitter"}]}`)}
	service := NewSearchService(client, ServiceConfig{})

	buckets, err := service.Search(context.Background(), NewSearchQuery("A", "", "", ""))
	require.NoError(t, err)
	assert.Len(t, buckets.Twitter, 1)
	assert.Equal(t, 1, client.callCount())
}

func TestSearchService_EmptyQuery(t *testing.T) {
	client := &fakeClient{send: respond(`[]`)}
	service := NewSearchService(client, ServiceConfig{})

	_, err := service.Search(context.Background(), SearchQuery{Text: " "})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Zero(t, client.callCount())
}

func TestSearchService_ErrorsAreClassified(t *testing.T) {
	cause := &StatusError{StatusCode: 502, Status: "502 Bad Gateway"}
	client := &fakeClient{send: func(context.Context, SearchQuery) (RawResponse, error) {
		return nil, cause
	}}
	service := NewSearchService(client, ServiceConfig{})

	_, err := service.Search(context.Background(), NewSearchQuery("A", "", "", ""))
	require.Error(t, err)

	var searchErr *SearchError
	require.True(t, errors.As(err, &searchErr))
	assert.Equal(t, ErrorKindServiceUnavailable, searchErr.Kind)
	assert.ErrorIs(t, err, cause)
}
