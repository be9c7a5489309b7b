package search

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu      sync.Mutex
	calls   []SearchQuery
	timeout time.Duration
	send    func(ctx context.Context, query SearchQuery) (RawResponse, error)
}

func (f *fakeClient) Send(ctx context.Context, query SearchQuery, timeout time.Duration) (RawResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.timeout = timeout
	f.mu.Unlock()
	return f.send(ctx, query)
}

func (f *fakeClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func respond(body string) func(context.Context, SearchQuery) (RawResponse, error) {
	return func(context.Context, SearchQuery) (RawResponse, error) {
		var raw RawResponse
		if err := json.Unmarshal([]byte(body), &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
}

type recorder struct {
	mu     sync.Mutex
	states []ViewState
}

func (r *recorder) observe(state ViewState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, state)
}

func (r *recorder) statuses() []ViewStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ViewStatus, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s.Status)
	}
	return out
}

func newTestOrchestrator(client SearchClient) (*Orchestrator, *recorder) {
	service := NewSearchService(client, ServiceConfig{Timeout: time.Second})
	orch := NewOrchestrator(service, OrchestratorConfig{})
	rec := &recorder{}
	orch.Subscribe(rec.observe)
	return orch, rec
}

func TestOrchestrator_SubmitSuccess(t *testing.T) {
	client := &fakeClient{send: respond(`{"results":[
		{"name":"A","source":"LinkedIn","link":"l"},
		{"name":"B","source":"Twitter","link":"t"},
		{"name":"C","source":"Myspace","link":"m"}
	]}`)}
	orch, rec := newTestOrchestrator(client)
	assert.Equal(t, StatusIdle, orch.State().Status)

	state, err := orch.Submit(context.Background(), NewSearchQuery("John Doe", "", "", ""))
	require.NoError(t, err)

	assert.Equal(t, []ViewStatus{StatusLoading, StatusSuccess}, rec.statuses())
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Equal(t, uint64(1), state.Generation)
	require.NotNil(t, state.Buckets)
	assert.Len(t, state.Buckets.LinkedIn, 1)
	assert.Len(t, state.Buckets.Twitter, 1)
	assert.Len(t, state.Buckets.Unknown, 1)
	assert.Nil(t, state.Failure)
	assert.Equal(t, state, orch.State())
	assert.Equal(t, time.Second, client.timeout)
}

func TestOrchestrator_SubmitFailure(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantKind    ErrorKind
		wantMessage string
	}{
		{"quota", errors.New("quota exceeded"), ErrorKindRateLimited, MessageRateLimited},
		{"connectivity", &NetworkError{Err: errors.New("connection refused")}, ErrorKindNetworkUnavailable, MessageGeneric},
		{"timeout", ErrTimeout, ErrorKindTimeout, MessageGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{send: func(context.Context, SearchQuery) (RawResponse, error) {
				return nil, tt.err
			}}
			orch, rec := newTestOrchestrator(client)

			state, err := orch.Submit(context.Background(), NewSearchQuery("Jane", "", "", ""))
			require.NoError(t, err)

			assert.Equal(t, []ViewStatus{StatusLoading, StatusFailure}, rec.statuses())
			require.NotNil(t, state.Failure)
			assert.Equal(t, tt.wantKind, state.Failure.Kind)
			assert.Equal(t, tt.wantMessage, state.Failure.Message)
			assert.Nil(t, state.Buckets)
		})
	}
}

func TestOrchestrator_MalformedResponseFails(t *testing.T) {
	client := &fakeClient{send: respond(`"just a string"`)}
	orch, _ := newTestOrchestrator(client)

	state, err := orch.Submit(context.Background(), NewSearchQuery("Jane", "", "", ""))
	require.NoError(t, err)
	require.NotNil(t, state.Failure)
	assert.Equal(t, ErrorKindMalformed, state.Failure.Kind)
}

func TestOrchestrator_EmptyQueryIsNoOp(t *testing.T) {
	client := &fakeClient{send: respond(`[]`)}
	orch, rec := newTestOrchestrator(client)

	state, err := orch.Submit(context.Background(), NewSearchQuery("   ", "Boston", "", ""))
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, StatusIdle, state.Status)
	assert.Empty(t, rec.statuses())
	assert.Zero(t, client.callCount())
}

func TestOrchestrator_EmptyQueryKeepsPreviousResults(t *testing.T) {
	client := &fakeClient{send: respond(`[{"name":"A","source":"Facebook"}]`)}
	orch, rec := newTestOrchestrator(client)

	_, err := orch.Submit(context.Background(), NewSearchQuery("A", "", "", ""))
	require.NoError(t, err)

	state, err := orch.Submit(context.Background(), SearchQuery{})
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.Equal(t, StatusSuccess, state.Status)
	assert.Len(t, rec.statuses(), 2)
	assert.Equal(t, 1, client.callCount())
}

func TestOrchestrator_NewSubmissionSupersedesOld(t *testing.T) {
	firstStarted := make(chan struct{})
	firstCancelled := make(chan struct{})

	client := &fakeClient{send: func(ctx context.Context, query SearchQuery) (RawResponse, error) {
		if query.Text == "first" {
			close(firstStarted)
			<-ctx.Done()
			close(firstCancelled)
			return nil, ctx.Err()
		}
		return respond(`[{"name":"second","source":"LinkedIn"}]`)(ctx, query)
	}}
	orch, rec := newTestOrchestrator(client)

	type result struct {
		state ViewState
		err   error
	}
	firstDone := make(chan result, 1)
	go func() {
		state, err := orch.Submit(context.Background(), NewSearchQuery("first", "", "", ""))
		firstDone <- result{state, err}
	}()
	<-firstStarted

	second, err := orch.Submit(context.Background(), NewSearchQuery("second", "", "", ""))
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, second.Status)
	assert.Equal(t, uint64(2), second.Generation)

	select {
	case <-firstCancelled:
	case <-time.After(2 * time.Second):
		t.Fatal("first submission was not cancelled")
	}

	first := <-firstDone
	assert.ErrorIs(t, first.err, ErrSuperseded)
	assert.Equal(t, uint64(2), first.state.Generation)

	assert.Equal(t, []ViewStatus{StatusLoading, StatusLoading, StatusSuccess}, rec.statuses())
	final := orch.State()
	assert.Equal(t, StatusSuccess, final.Status)
	require.NotNil(t, final.Buckets)
	assert.Equal(t, "second", final.Buckets.LinkedIn[0].Name)
}

func TestViewState_MarshalJSON(t *testing.T) {
	buckets := Partition([]SearchRecord{
		{Name: "A", Link: "l", Source: SourceLinkedIn},
		{Name: "U", Link: "u", Source: SourceUnknown, RawSource: "Myspace"},
	})
	body, err := json.Marshal(successState(3, buckets))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"status": "success",
		"generation": 3,
		"results": {
			"linkedin": [{"name":"A","link":"l","source":"LinkedIn"}],
			"facebook": [],
			"twitter": [],
			"counts": {"linkedin":1,"facebook":0,"twitter":0}
		}
	}`, string(body))

	body, err = json.Marshal(failureState(4, FailureView{Kind: ErrorKindTimeout, Message: MessageGeneric}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"failure","generation":4,"error":{"kind":"timeout","message":"`+MessageGeneric+`"}}`, string(body))

	body, err = json.Marshal(IdleState())
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"idle","generation":0}`, string(body))
}
