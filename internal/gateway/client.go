// Package gateway is the typed HTTP/JSON client for the tarot backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	identityDomain "github.com/felixgeelhaar/arcana/internal/identity/domain"
	"github.com/felixgeelhaar/arcana/pkg/observability"
)

const breakerName = "arcana-api"

// CredentialSource yields the bearer credential attached to each request.
type CredentialSource interface {
	Credential() string
}

// CredentialFunc adapts a function to CredentialSource.
type CredentialFunc func() string

// Credential implements CredentialSource.
func (f CredentialFunc) Credential() string { return f() }

// Config configures the client.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	Rate            float64
	Burst           int
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:         baseURL,
		Timeout:         30 * time.Second,
		Rate:            10,
		Burst:           5,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// Client calls the backend.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	credentials CredentialSource
	limiter     *rate.Limiter
	breaker     *gobreaker.CircuitBreaker[*response]
	metrics     observability.GatewayMetrics
	logger      *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMetrics records request metrics.
func WithMetrics(m observability.GatewayMetrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Client. credentials may be nil for anonymous use.
func New(cfg Config, credentials CredentialSource, opts ...Option) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	c := &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		credentials: credentials,
		metrics:     observability.NoopMetrics{},
		logger:      slog.Default(),
	}
	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info("circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			c.metrics.RecordCircuitState(name, to.String())
		},
	})

	return c
}

// countsAsSuccess keeps client errors and cancellations from tripping the
// breaker. Only transport failures and 5xx responses count.
func countsAsSuccess(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status < http.StatusInternalServerError
	}
	return false
}

// Request describes one backend call.
type Request struct {
	Method string
	// Path is the endpoint path, e.g. "/tarot/sessions/abc".
	Path string
	// Route labels metrics, e.g. "/tarot/sessions/:id".
	Route   string
	Query   url.Values
	Body    any
	Headers map[string]string
}

type response struct {
	status int
	body   []byte
}

// Do performs req and decodes a 2xx body into out when out is non-nil.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	route := req.Route
	if route == "" {
		route = req.Path
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return &ParseError{Message: "invalid request body", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	endpoint := c.baseURL + req.Path
	if len(req.Query) > 0 {
		endpoint += "?" + req.Query.Encode()
	}

	reqID := requestID(ctx)
	ctx = observability.WithRequestID(ctx, reqID)

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", reqID)
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	token := ""
	if c.credentials != nil {
		token = c.credentials.Credential()
	}
	if identityDomain.ValidCredential(token) {
		httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(token))
	} else {
		token = ""
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	c.logger.DebugContext(ctx, "backend request",
		"method", req.Method,
		"route", route,
		"authorization", observability.MaskCredential(token),
	)

	start := time.Now()
	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.send(httpReq)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &NetworkError{Message: "backend temporarily unavailable, try again shortly", Err: ErrCircuitOpen}
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		c.metrics.RecordNetworkFailure(route)
		c.logger.WarnContext(ctx, "backend unreachable", "route", route, "error", netErr.Err)
		return err
	}
	if resp == nil {
		return err
	}
	c.metrics.RecordRequest(route, resp.status, time.Since(start))
	c.logger.DebugContext(ctx, "backend response", "route", route, "status", resp.status)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &ParseError{Message: "invalid server response", Err: err}
	}
	return nil
}

// send runs inside the breaker. Non-2xx answers are returned with their
// HTTPError so the breaker can classify them.
func (c *Client) send(req *http.Request) (*response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &NetworkError{Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp := &response{status: httpResp.StatusCode, body: raw}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return resp, responseError(httpResp.StatusCode, raw)
	}
	return resp, nil
}

func responseError(status int, body []byte) *HTTPError {
	statusText := http.StatusText(status)
	if len(bytes.TrimSpace(body)) == 0 {
		return &HTTPError{Status: status, Message: "request failed"}
	}

	var payload struct {
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return &HTTPError{Status: status, Message: fmt.Sprintf("%s (%d)", statusText, status)}
	}
	if msg := decodeMessage(payload.Message); msg != "" {
		return &HTTPError{Status: status, Message: msg}
	}
	return &HTTPError{Status: status, Message: "error: " + statusText}
}

// decodeMessage accepts a string or a list of strings.
func decodeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return strings.Join(many, "; ")
	}
	return ""
}

func requestID(ctx context.Context) string {
	if id := observability.RequestIDFromContext(ctx); id != "" {
		return id
	}
	return uuid.New().String()
}
