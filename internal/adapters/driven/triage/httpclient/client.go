// Package httpclient provides the TriageClient adapter that talks to the
// remote triage service over HTTP.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/minairva-cli/internal/core/domain"
	"github.com/custodia-labs/minairva-cli/internal/core/ports/driven"
	"github.com/custodia-labs/minairva-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.TriageClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultUserAgent = "minairva/dev"

	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes = 10 << 20
)

// Config holds configuration for the triage HTTP client.
type Config struct {
	// URL is the triage endpoint (default: domain.DefaultAPIURL).
	URL string

	// UserAgent is sent with every request (default: minairva/dev).
	UserAgent string

	// RatePerSecond and RateBurst bound outbound requests.
	// Zero values fall back to the domain defaults.
	RatePerSecond float64
	RateBurst     int

	// Breaker enables the circuit breaker.
	Breaker bool

	// BreakerFailures is the number of consecutive failures that open the
	// circuit (default: 5).
	BreakerFailures uint32

	// BreakerCooldown is how long the circuit stays open (default: 30s).
	BreakerCooldown time.Duration

	// Transport is the base round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// Client posts documents to the triage service.
// Request deadlines come from the caller's context.
type Client struct {
	client    *http.Client
	url       string
	userAgent string
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker[domain.RawResult]
}

// triageRequest is the request body sent to the service.
type triageRequest struct {
	DocumentContent string `json:"document_content"`
}

// triageResponse is the success envelope returned by the service.
type triageResponse struct {
	Result json.RawMessage `json:"result"`
}

// errorResponse is the FastAPI error body.
// Detail is a string for HTTPException and a list for validation errors.
type errorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// New creates a triage client.
func New(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = domain.DefaultAPIURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = domain.DefaultRatePerSecond
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = domain.DefaultRateBurst
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = domain.DefaultBreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = domain.DefaultBreakerCooldown
	}
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	c := &Client{
		client:    &http.Client{Transport: otelhttp.NewTransport(base)},
		url:       cfg.URL,
		userAgent: cfg.UserAgent,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	}
	if cfg.Breaker {
		c.breaker = newBreaker(cfg.BreakerFailures, cfg.BreakerCooldown)
	}
	return c
}

// URL returns the triage endpoint.
func (c *Client) URL() string {
	return c.url
}

// Triage sends one document and returns the raw result object.
// Every error is a *domain.TriageError.
func (c *Client) Triage(ctx context.Context, req domain.TriageRequest) (domain.RawResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, transportError(ctxErr)
		}
		// The limiter refuses waits that would overrun the deadline.
		return nil, domain.NewTriageError(domain.KindNetworkTimeout, "rate limit wait exceeds deadline", err)
	}

	if c.breaker == nil {
		return c.do(ctx, req)
	}

	result, err := c.breaker.Execute(func() (domain.RawResult, error) {
		return c.do(ctx, req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, domain.NewTriageError(domain.KindNetwork, "triage service unavailable, circuit open", err)
	}
	return result, err
}

func (c *Client) do(ctx context.Context, req domain.TriageRequest) (domain.RawResult, error) {
	body, err := json.Marshal(triageRequest{DocumentContent: req.DocumentContent})
	if err != nil {
		return nil, domain.NewTriageError(domain.KindNetwork, "marshal request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewTriageError(domain.KindNetwork, "create request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	if req.RequestID != "" {
		httpReq.Header.Set("X-Request-ID", req.RequestID)
	}

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	logger.Debug("triage: POST %s -> %d in %s (request=%s)",
		c.url, resp.StatusCode, time.Since(start).Round(time.Millisecond), req.RequestID)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewServiceError(resp.StatusCode, parseDetail(payload))
	}
	if len(payload) > MaxBodyBytes {
		return nil, domain.NewTriageError(domain.KindMalformedResponse, "response body exceeds 10 MiB", nil)
	}

	return decodeResult(payload)
}

// decodeResult extracts the "result" object from a success body.
func decodeResult(payload []byte) (domain.RawResult, error) {
	var envelope triageResponse
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, domain.NewTriageError(domain.KindMalformedResponse, "response is not valid JSON", err)
	}

	trimmed := bytes.TrimSpace(envelope.Result)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, domain.NewTriageError(domain.KindMalformedResponse, "response has no result object", nil)
	}

	var result domain.RawResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, domain.NewTriageError(domain.KindMalformedResponse, "result is not an object", err)
	}
	return result, nil
}

// parseDetail returns the FastAPI error detail, or "" when absent.
func parseDetail(payload []byte) string {
	var body errorResponse
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err == nil {
		return strings.TrimSpace(detail)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(body.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

// transportError classifies a failure to complete the HTTP exchange.
func transportError(err error) *domain.TriageError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return domain.NewTriageError(domain.KindNetworkTimeout, "", err)
	}
	return domain.NewTriageError(domain.KindNetwork, "", err)
}
