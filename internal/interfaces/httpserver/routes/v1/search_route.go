package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/metrics"
	"github.com/personfinder/person-finder/internal/interfaces/httpserver/responses"
	"github.com/personfinder/person-finder/utils/platformerrors"
)

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query      string `json:"query"`
	Location   string `json:"location,omitempty"`
	University string `json:"university,omitempty"`
	Company    string `json:"company,omitempty"`
}

// SupersededResponse is returned when a newer submission replaced this one.
type SupersededResponse struct {
	Error string                 `json:"error"`
	State domainsearch.ViewState `json:"state"`
}

type SearchRoute struct {
	orchestrator *domainsearch.Orchestrator
}

func NewSearchRoute(orchestrator *domainsearch.Orchestrator) *SearchRoute {
	return &SearchRoute{orchestrator: orchestrator}
}

func (route *SearchRoute) RegisterRouter(router *gin.RouterGroup) {
	search := router.Group("/search")
	search.POST("", route.submit)
	search.GET("/state", route.state)
}

// submit runs one search and returns the view state it settled on.
// The search is detached from the request's cancellation so a client
// hanging up does not fail the shared state; only a newer submission
// cancels it.
func (route *SearchRoute) submit(reqCtx *gin.Context) {
	var req SearchRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "invalid search request body", "3f6d2a1e-8c4b-4e0f-9a7d-5b1c2e3f4a60")
		return
	}

	query := domainsearch.NewSearchQuery(req.Query, req.Location, req.University, req.Company)
	ctx := context.WithoutCancel(reqCtx.Request.Context())

	state, err := route.orchestrator.Submit(ctx, query)
	switch {
	case errors.Is(err, domainsearch.ErrEmptyQuery):
		responses.HandleNewError(reqCtx, platformerrors.ErrorTypeValidation, "query is required", "9b2e7c4d-1a3f-4d8e-b6c5-0e9f8a7d6c21")
		return
	case errors.Is(err, domainsearch.ErrSuperseded):
		metrics.RecordSuperseded()
		log.Debug().
			Str("operation", "submit").
			Uint64("latest_generation", state.Generation).
			Msg("search response superseded")
		reqCtx.AbortWithStatusJSON(http.StatusConflict, SupersededResponse{
			Error: err.Error(),
			State: state,
		})
		return
	case err != nil:
		responses.HandleError(reqCtx, platformerrors.AsError(reqCtx.Request.Context(), platformerrors.LayerRoute, err, "search failed"), "search failed")
		return
	}

	reqCtx.JSON(http.StatusOK, state)
}

// state returns the live view state without submitting anything.
func (route *SearchRoute) state(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, route.orchestrator.State())
}
