// Package api talks to the Green Path REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the client-generated id of each request.
const RequestIDHeader = "X-Request-ID"

// Config controls transport behaviour.
type Config struct {
	BaseURL string
	// Timeout bounds each attempt. Zero means no per-attempt limit.
	Timeout time.Duration
	// Retries is how many times a GET that hit a transport failure or 5xx is
	// retried. Writes are never retried.
	Retries int
	// RetryWait is the first backoff interval between retries.
	RetryWait time.Duration
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	Burst     int
}

// Client wraps the backend's JSON API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	retryWait  time.Duration
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a new backend client.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		retries:    max(cfg.Retries, 0),
		retryWait:  cfg.RetryWait,
		log:        log.With().Str("component", "api").Logger(),
	}
	if c.retryWait <= 0 {
		c.retryWait = 500 * time.Millisecond
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.Burst, 1))
	}
	return c
}

// BaseURL returns the backend root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// errDecode marks a 2xx response whose body could not be decoded.
var errDecode = errors.New("JSON decode error")

// Do sends a request and decodes a JSON response into out (if non-nil).
// Only GETs are retried; a write is sent exactly once.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	reqID := uuid.NewString()
	log := c.log.With().Str("method", method).Str("path", path).Str("request_id", reqID).Logger()

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryWait

	tries := uint(1)
	if method == http.MethodGet {
		tries += uint(c.retries)
	}

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := c.once(ctx, method, path, reqID, payload, out)
		if err == nil {
			return struct{}{}, nil
		}
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return struct{}{}, backoff.Permanent(err)
		}
		if ctx.Err() != nil || errors.Is(err, errDecode) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(tries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying request")
		}),
	)

	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}
	if err != nil {
		log.Debug().Err(err).Int("attempts", attempt).Msg("request failed")
		return err
	}
	log.Debug().Int("attempts", attempt).Msg("request ok")
	return nil
}

func (c *Client) once(ctx context.Context, method, path, reqID string, payload []byte, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit: %w", err)
		}
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", errDecode, err)
	}
	return nil
}
