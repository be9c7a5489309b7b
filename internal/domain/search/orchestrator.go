package search

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Observer receives every state transition. It runs under the orchestrator
// lock and must not call back into the Orchestrator.
type Observer func(ViewState)

// OrchestratorConfig holds presentation-facing knobs.
type OrchestratorConfig struct {
	MessageMode MessageMode
}

// Orchestrator owns the single live ViewState and drives submissions through
// the SearchService. A new submission cancels the one in flight and only the
// latest generation may write the state.
type Orchestrator struct {
	service *SearchService
	mode    MessageMode

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	state      ViewState
	observers  []Observer
}

// NewOrchestrator creates an orchestrator in the Idle state.
func NewOrchestrator(service *SearchService, cfg OrchestratorConfig) *Orchestrator {
	mode := cfg.MessageMode
	if mode == "" {
		mode = MessageModeCollapsed
	}
	return &Orchestrator{
		service: service,
		mode:    mode,
		state:   IdleState(),
	}
}

// Subscribe registers an observer for subsequent transitions.
func (o *Orchestrator) Subscribe(observer Observer) {
	if observer == nil {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.observers = append(o.observers, observer)
}

// State returns the live view state.
func (o *Orchestrator) State() ViewState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Submit runs one search and returns the state it produced.
// Empty text is a no-op returning the current state and ErrEmptyQuery.
// If a newer Submit started meanwhile, the outcome is discarded and the
// latest state is returned with ErrSuperseded.
func (o *Orchestrator) Submit(ctx context.Context, query SearchQuery) (ViewState, error) {
	if query.IsEmpty() {
		return o.State(), ErrEmptyQuery
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	o.mu.Lock()
	if o.cancel != nil {
		o.cancel()
	}
	o.generation++
	generation := o.generation
	o.cancel = cancel
	o.transitionLocked(loadingState(generation))
	o.mu.Unlock()

	log.Info().
		Str("operation", "submit").
		Uint64("generation", generation).
		Msg("search submitted")

	buckets, err := o.service.Search(callCtx, query)

	var next ViewState
	if err != nil {
		failure := NewFailureView(err, o.mode)
		log.Warn().
			Err(err).
			Str("operation", "submit").
			Uint64("generation", generation).
			Str("error_kind", string(failure.Kind)).
			Msg("search failed")
		next = failureState(generation, failure)
	} else {
		next = successState(generation, buckets)
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.generation != generation {
		log.Debug().
			Uint64("generation", generation).
			Uint64("latest_generation", o.generation).
			Msg("discarding superseded search outcome")
		return o.state, ErrSuperseded
	}
	o.cancel = nil
	o.transitionLocked(next)
	return next, nil
}

func (o *Orchestrator) transitionLocked(next ViewState) {
	o.state = next
	for _, observer := range o.observers {
		observer(next)
	}
}
