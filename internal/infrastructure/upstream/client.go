package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	domainsearch "github.com/personfinder/person-finder/internal/domain/search"
	"github.com/personfinder/person-finder/internal/infrastructure/metrics"
	"github.com/personfinder/person-finder/pkg/observability"
	"github.com/personfinder/person-finder/pkg/telemetry"
)

// BackendWebhook labels metrics and spans for the real aggregation service.
const BackendWebhook = "webhook"

// ClientConfig captures the knobs exposed to operators for the upstream client.
type ClientConfig struct {
	URL       string
	UserAgent string

	// HTTP Client Settings
	MaxConnsPerHost int
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// Client posts search queries to the upstream aggregation webhook.
type Client struct {
	cfg       ClientConfig
	http      *resty.Client
	sanitizer *telemetry.Sanitizer
}

var _ domainsearch.SearchClient = (*Client)(nil)

// NewClient wires a pooled HTTP client for the webhook. Timeouts are armed
// per call by Send, so the resty client itself carries none.
func NewClient(cfg ClientConfig, sanitizer *telemetry.Sanitizer) *Client {
	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns == 0 {
		maxIdleConns = 100
	}
	maxConnsPerHost := cfg.MaxConnsPerHost
	if maxConnsPerHost == 0 {
		maxConnsPerHost = 50
	}
	idleConnTimeout := cfg.IdleConnTimeout
	if idleConnTimeout == 0 {
		idleConnTimeout = 90 * time.Second
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = "Person-Finder/1.0"
	}
	if sanitizer == nil {
		sanitizer = telemetry.NewSanitizer(telemetry.PIILevelNone, "")
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        maxIdleConns,
		MaxIdleConnsPerHost: 20,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	httpClient := resty.New().
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0).
		SetTransport(transport)

	return &Client{
		cfg:       cfg,
		http:      httpClient,
		sanitizer: sanitizer,
	}
}

// Send performs exactly one POST of the JSON-encoded query and decodes the
// body. When timeout elapses first the request is aborted and the error
// wraps domainsearch.ErrTimeout. Cancellation of ctx is returned as is.
func (c *Client) Send(ctx context.Context, query domainsearch.SearchQuery, timeout time.Duration) (domainsearch.RawResponse, error) {
	if timeout <= 0 {
		timeout = domainsearch.DefaultTimeout
	}
	callCtx, cancel := context.WithTimeoutCause(ctx, timeout, domainsearch.ErrTimeout)
	defer cancel()

	sanitizedQuery := c.sanitizer.SanitizeQuery(query.Text)
	callCtx, span := observability.StartUpstreamSpan(callCtx, BackendWebhook, sanitizedQuery)
	defer span.End()

	startTime := time.Now()
	status := "error"
	defer func() {
		metrics.RecordUpstreamLatency(BackendWebhook, status, time.Since(startTime).Seconds())
	}()

	log.Debug().
		Str("operation", "upstream_send").
		Str("backend", BackendWebhook).
		Str("query", sanitizedQuery).
		Interface("hints", c.sanitizer.SanitizeHints(queryHints(query))).
		Dur("timeout", timeout).
		Msg("sending search query upstream")

	resp, err := c.http.R().
		SetContext(callCtx).
		SetHeader("Content-Type", "application/json").
		SetBody(query).
		Post(c.cfg.URL)
	if err != nil {
		sendErr := c.transportError(ctx, callCtx, err, timeout)
		if errors.Is(sendErr, domainsearch.ErrTimeout) {
			status = "timeout"
		}
		observability.RecordError(span, sendErr, string(domainsearch.Classify(sendErr)))
		log.Error().
			Err(sendErr).
			Str("backend", BackendWebhook).
			Str("query", sanitizedQuery).
			Msg("upstream request failed")
		return nil, sendErr
	}

	status = strconv.Itoa(resp.StatusCode())
	if !resp.IsSuccess() {
		statusErr := &domainsearch.StatusError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       resp.String(),
		}
		observability.RecordError(span, statusErr, string(domainsearch.Classify(statusErr)))
		log.Error().
			Int("status", resp.StatusCode()).
			Str("backend", BackendWebhook).
			Str("body", c.sanitizer.SanitizeText(resp.String())).
			Msg("upstream returned error status")
		return nil, statusErr
	}

	var raw domainsearch.RawResponse
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		decodeErr := &domainsearch.DecodeError{Err: err}
		observability.RecordError(span, decodeErr, string(domainsearch.ErrorKindMalformed))
		log.Error().
			Err(err).
			Str("backend", BackendWebhook).
			Int("body_bytes", len(resp.Body())).
			Msg("failed to decode upstream response")
		return nil, decodeErr
	}

	log.Debug().
		Str("backend", BackendWebhook).
		Int("status", resp.StatusCode()).
		Dur("elapsed", time.Since(startTime)).
		Msg("upstream response decoded")

	return raw, nil
}

// transportError maps a failed round trip. The timer firing wins over a
// parent cancellation; anything else never produced a response.
func (c *Client) transportError(parent, callCtx context.Context, err error, timeout time.Duration) error {
	if errors.Is(context.Cause(callCtx), domainsearch.ErrTimeout) && parent.Err() == nil {
		return fmt.Errorf("no response within %s: %w", timeout, domainsearch.ErrTimeout)
	}
	if parentErr := parent.Err(); parentErr != nil {
		return parentErr
	}
	return &domainsearch.NetworkError{Err: err}
}

func queryHints(query domainsearch.SearchQuery) map[string]string {
	hints := map[string]string{}
	if query.Location != nil {
		hints["location"] = *query.Location
	}
	if query.University != nil {
		hints["university"] = *query.University
	}
	if query.Company != nil {
		hints["company"] = *query.Company
	}
	return hints
}
