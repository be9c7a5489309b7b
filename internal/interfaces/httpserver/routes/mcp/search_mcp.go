package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/pkg/telemetry"
)

const ToolKeyPersonSearch = "person_search"

const personSearchDescription = "Find public social profiles of a person on LinkedIn, Facebook and Twitter. " +
	"Provide the person's name as query; location, university and company narrow the search."

// PersonSearchArgs defines the arguments for the person_search tool
type PersonSearchArgs struct {
	Query      string  `json:"query" jsonschema:"Full name of the person to look up"`
	Location   *string `json:"location,omitempty" jsonschema:"Optional city or region hint"`
	University *string `json:"university,omitempty" jsonschema:"Optional university hint"`
	Company    *string `json:"company,omitempty" jsonschema:"Optional employer hint"`
}

type personSearchPayload struct {
	Query   string                       `json:"query"`
	Results *domainsearch.VisibleBuckets `json:"results,omitempty"`
	Error   *domainsearch.FailureView    `json:"error,omitempty"`
}

// SearchMCP exposes the stateless search pipeline as an MCP tool. It never
// touches the orchestrator's shared view state.
type SearchMCP struct {
	searchService *domainsearch.SearchService
	mode          domainsearch.MessageMode
	sanitizer     *telemetry.Sanitizer
}

// NewSearchMCP creates a new search MCP handler.
func NewSearchMCP(searchService *domainsearch.SearchService, cfg domainsearch.OrchestratorConfig, sanitizer *telemetry.Sanitizer) *SearchMCP {
	mode := cfg.MessageMode
	if mode == "" {
		mode = domainsearch.MessageModeCollapsed
	}
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}
	return &SearchMCP{
		searchService: searchService,
		mode:          mode,
		sanitizer:     sanitizer,
	}
}

// RegisterTools registers the person search tool with the MCP server.
func (s *SearchMCP) RegisterTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolKeyPersonSearch,
		Description: personSearchDescription,
	}, s.personSearch)
}

func (s *SearchMCP) personSearch(ctx context.Context, _ *mcp.CallToolRequest, input PersonSearchArgs) (*mcp.CallToolResult, personSearchPayload, error) {
	startTime := time.Now()
	query := domainsearch.NewSearchQuery(input.Query, deref(input.Location), deref(input.University), deref(input.Company))
	payload := personSearchPayload{Query: query.Text}

	log.Info().
		Str("tool", ToolKeyPersonSearch).
		Str("query", s.sanitizer.SanitizeQuery(query.Text)).
		Msg("MCP tool call received")

	if query.IsEmpty() {
		failure := domainsearch.FailureView{Kind: domainsearch.ErrorKindMalformed, Message: "query is required"}
		payload.Error = &failure
		return toolError(failure.Message), payload, nil
	}

	buckets, err := s.searchService.Search(ctx, query)
	if err != nil {
		failure := domainsearch.NewFailureView(err, s.mode)
		payload.Error = &failure
		log.Warn().
			Err(err).
			Str("tool", ToolKeyPersonSearch).
			Str("error_kind", string(failure.Kind)).
			Dur("duration", time.Since(startTime)).
			Msg("person search failed")
		return toolError(fmt.Sprintf("%s (%s)", failure.Message, failure.Kind)), payload, nil
	}

	visible := buckets.Visible()
	payload.Results = &visible

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, payload, fmt.Errorf("encode person search payload: %w", err)
	}

	log.Info().
		Str("tool", ToolKeyPersonSearch).
		Int("result_count", visible.Counts.LinkedIn+visible.Counts.Facebook+visible.Counts.Twitter).
		Dur("duration", time.Since(startTime)).
		Msg("person search completed")

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(body)}},
	}, payload, nil
}

func toolError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: message}},
		IsError: true,
	}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
