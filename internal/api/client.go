// Package api implements the HTTP client for the two collaborator services:
// the resume analysis service and the authentication service. Their internal
// logic is opaque to this client; only the JSON interfaces specified here
// are consumed.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"careerscope/internal/config"
	"careerscope/internal/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

// Client talks to the analysis and auth services over HTTP.
// It never retries: a failed request is reported and the caller must
// re-initiate the operation manually.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	analysisCB *Breaker
	authCB     *Breaker
	logger     *errors.Logger
}

// NewClient creates a service client from configuration
func NewClient(cfg *config.APIConfig, logger *errors.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerMin > 0 {
		// Pre-request pacing, not retry: Wait blocks until a token is
		// available or the context is done.
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), 1)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter:    limiter,
		analysisCB: NewBreaker("api-analysis", &cfg.CircuitBreaker, logger),
		authCB:     NewBreaker("api-auth", &cfg.CircuitBreaker, logger),
		logger:     logger,
	}
}

// do issues one request through the limiter and the given breaker.
// A nil error means a response was received, whatever its status code.
func (c *Client) do(ctx context.Context, req *http.Request, breaker *Breaker) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.Debug("Issuing service request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID)

	return breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req.WithContext(ctx))
	})
}

// decodeJSON decodes a response body into v, draining and closing the body
func decodeJSON(resp *http.Response, v any) error {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	return json.NewDecoder(resp.Body).Decode(v)
}

// errorDetail extracts the human-readable detail from a failure response
// body, falling back to the provided message when the body has none
func errorDetail(resp *http.Response, fallback string) string {
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var svcErr struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&svcErr); err == nil && svcErr.Detail != "" {
		return svcErr.Detail
	}
	return fallback
}

func (c *Client) endpoint(path string) string {
	return fmt.Sprintf("%s%s", c.baseURL, path)
}
