package upstream

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/metrics"
	"github.com/personfinder/person-finder/pkg/observability"
	"github.com/personfinder/person-finder/pkg/telemetry"
)

// BackendFixture labels metrics and spans for the offline fixture backend.
const BackendFixture = "fixture"

// DefaultFixtureDelay mimics upstream latency during offline development.
const DefaultFixtureDelay = time.Second

// FixtureRecord is one canned record. Name and Location may be left empty
// to be filled from the query.
type FixtureRecord struct {
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Link        string `yaml:"link"`
	Source      string `yaml:"source"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
}

// fixtureFile is the YAML layout accepted by LoadFixtureFile.
type fixtureFile struct {
	Records []FixtureRecord `yaml:"records"`
}

// FixtureClient answers every query with canned records after a delay.
// It never touches the network.
type FixtureClient struct {
	delay     time.Duration
	records   []FixtureRecord
	sanitizer *telemetry.Sanitizer
}

var _ domainsearch.SearchClient = (*FixtureClient)(nil)

// NewFixtureClient creates a fixture backend. A nil records slice selects
// the built-in profile set derived from the query.
func NewFixtureClient(delay time.Duration, records []FixtureRecord, sanitizer *telemetry.Sanitizer) *FixtureClient {
	if delay < 0 {
		delay = 0
	}
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}
	return &FixtureClient{
		delay:     delay,
		records:   records,
		sanitizer: sanitizer,
	}
}

// LoadFixtureFile reads canned records from a YAML file.
func LoadFixtureFile(path string) ([]FixtureRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}
	var file fixtureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fixture file %s: %w", path, err)
	}
	if file.Records == nil {
		file.Records = []FixtureRecord{}
	}
	return file.Records, nil
}

// Send waits for the fixture delay and returns the canned records in the
// bare-array response shape. The timeout and ctx cancellation both abort
// the wait the same way they abort a real request.
func (f *FixtureClient) Send(ctx context.Context, query domainsearch.SearchQuery, timeout time.Duration) (domainsearch.RawResponse, error) {
	if timeout <= 0 {
		timeout = domainsearch.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeoutCause(ctx, timeout, domainsearch.ErrTimeout)
	defer cancel()

	sanitizedQuery := f.sanitizer.SanitizeQuery(query.Text)
	callCtx, span := observability.StartUpstreamSpan(callCtx, BackendFixture, sanitizedQuery)
	defer span.End()

	startTime := time.Now()
	log.Debug().
		Str("operation", "upstream_send").
		Str("backend", BackendFixture).
		Str("query", sanitizedQuery).
		Dur("delay", f.delay).
		Msg("serving fixture records")

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-callCtx.Done():
		var err error
		switch {
		case ctx.Err() != nil:
			err = ctx.Err()
		default:
			err = fmt.Errorf("no response within %s: %w", timeout, domainsearch.ErrTimeout)
			metrics.RecordUpstreamLatency(BackendFixture, "timeout", time.Since(startTime).Seconds())
		}
		observability.RecordError(span, err, string(domainsearch.Classify(err)))
		return nil, err
	}

	metrics.RecordUpstreamLatency(BackendFixture, "200", time.Since(startTime).Seconds())
	return f.render(query), nil
}

// render builds the decoded-JSON form of the records for query.
func (f *FixtureClient) render(query domainsearch.SearchQuery) []any {
	records := f.records
	if records == nil {
		records = defaultFixtureRecords(query)
	}

	out := make([]any, 0, len(records))
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = nameOrDefault(query.Text, "John Doe")
		}
		location := rec.Location
		if location == "" && query.Location != nil {
			location = *query.Location
		}
		item := map[string]any{
			"name":   name,
			"link":   rec.Link,
			"source": rec.Source,
		}
		if rec.Title != "" {
			item["title"] = rec.Title
		}
		if rec.Description != "" {
			item["description"] = rec.Description
		}
		if location != "" {
			item["location"] = location
		}
		out = append(out, item)
	}
	return out
}

func defaultFixtureRecords(query domainsearch.SearchQuery) []FixtureRecord {
	name := nameOrDefault(query.Text, "John Doe")
	primaryLocation := "San Francisco, CA"
	if query.Location != nil {
		primaryLocation = *query.Location
	}

	return []FixtureRecord{
		{
			Name:        name,
			Title:       "Senior Software Engineer at Google",
			Link:        "https://linkedin.com/in/johndoe",
			Source:      string(domainsearch.SourceLinkedIn),
			Description: "Passionate engineer with 10+ years of experience in distributed systems and AI. Alumnus of Stanford University.",
			Location:    primaryLocation,
		},
		{
			Name:        name,
			Title:       "Product Manager",
			Link:        "https://linkedin.com/in/johndoe2",
			Source:      string(domainsearch.SourceLinkedIn),
			Description: "Building the future of fintech. Previously at Stripe and PayPal.",
			Location:    "New York, NY",
		},
		{
			Name:        name,
			Title:       "Profile",
			Link:        "https://facebook.com/johndoe",
			Source:      string(domainsearch.SourceFacebook),
			Description: "Lives in San Francisco. Studied at Stanford.",
			Location:    "San Francisco, CA",
		},
		{
			Name:        nameOrDefault(query.Text, "John") + " D.",
			Title:       "@johndoe",
			Link:        "https://twitter.com/johndoe",
			Source:      string(domainsearch.SourceTwitter),
			Description: "Tech enthusiast. Python lover. Views are my own. #coding #life",
			Location:    "Global",
		},
		{
			Name:        "JD Dev",
			Title:       "@jd_dev",
			Link:        "https://twitter.com/jd_dev",
			Source:      string(domainsearch.SourceTwitter),
			Description: "Building cool stuff 24/7.",
			Location:    "Remote",
		},
	}
}

func nameOrDefault(text, fallback string) string {
	if text == "" {
		return fallback
	}
	return text
}
