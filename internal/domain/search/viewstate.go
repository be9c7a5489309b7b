package search

import "encoding/json"

// ViewStatus tags the ViewState variant.
type ViewStatus string

const (
	StatusIdle    ViewStatus = "idle"
	StatusLoading ViewStatus = "loading"
	StatusSuccess ViewStatus = "success"
	StatusFailure ViewStatus = "failure"
)

// ViewState is what the presentation layer renders. Buckets is set only for
// StatusSuccess and Failure only for StatusFailure.
type ViewState struct {
	Status     ViewStatus
	Generation uint64
	Buckets    *ResultBuckets
	Failure    *FailureView
}

// IdleState is the state before the first submission.
func IdleState() ViewState {
	return ViewState{Status: StatusIdle}
}

func loadingState(generation uint64) ViewState {
	return ViewState{Status: StatusLoading, Generation: generation}
}

func successState(generation uint64, buckets ResultBuckets) ViewState {
	return ViewState{Status: StatusSuccess, Generation: generation, Buckets: &buckets}
}

func failureState(generation uint64, failure FailureView) ViewState {
	return ViewState{Status: StatusFailure, Generation: generation, Failure: &failure}
}

type viewStateJSON struct {
	Status     ViewStatus      `json:"status"`
	Generation uint64          `json:"generation"`
	Results    *VisibleBuckets `json:"results,omitempty"`
	Error      *FailureView    `json:"error,omitempty"`
}

// MarshalJSON renders only the visible buckets; Unknown records never leave the process.
func (v ViewState) MarshalJSON() ([]byte, error) {
	out := viewStateJSON{
		Status:     v.Status,
		Generation: v.Generation,
		Error:      v.Failure,
	}
	if v.Buckets != nil {
		visible := v.Buckets.Visible()
		out.Results = &visible
	}
	return json.Marshal(out)
}
