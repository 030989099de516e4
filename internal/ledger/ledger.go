// Package ledger anchors document fingerprints to an external append-only
// ledger. Anchoring happens before a decision commits; the returned reference
// is persisted with the approved document.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrTransient indicates the ledger was unreachable or returned a retryable
// failure for every attempt. The decision must not commit without an anchor.
var ErrTransient = errors.New("ledger temporarily unavailable")

// Anchorer records a fingerprint on the ledger and returns its reference.
type Anchorer interface {
	Anchor(ctx context.Context, fingerprint string) (string, error)
}

// Client is an HTTP Anchorer with bounded retries. Timeouts and 5xx responses
// are retried with a fixed backoff; 4xx responses fail immediately.
type Client struct {
	cfg    Config
	logger *slog.Logger
	http   *http.Client
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger.With("system", "ledger"),
		http: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
	}
}

type anchorRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type anchorResponse struct {
	Ref string `json:"ref"`
}

func (c *Client) Anchor(ctx context.Context, fingerprint string) (string, error) {
	body, err := json.Marshal(anchorRequest{Fingerprint: fingerprint})
	if err != nil {
		return "", fmt.Errorf("encode anchor request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.cfg.RetryBackoffDuration()):
			}
		}

		ref, retryable, err := c.attempt(ctx, body)
		if err == nil {
			return ref, nil
		}
		if !retryable {
			return "", err
		}

		lastErr = err
		c.logger.Warn("anchor attempt failed",
			"attempt", attempt,
			"max_attempts", c.cfg.MaxAttempts,
			"error", err,
		)
	}

	return "", fmt.Errorf("%w: %v", ErrTransient, lastErr)
}

func (c *Client) attempt(ctx context.Context, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint+"/anchors", bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("build anchor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", false, ctx.Err()
		}
		return "", true, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode >= 500:
		return "", true, fmt.Errorf("ledger returned %d", res.StatusCode)
	case res.StatusCode >= 300:
		return "", false, fmt.Errorf("ledger rejected anchor: %d", res.StatusCode)
	}

	var payload anchorResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("decode anchor response: %w", err)
	}
	if payload.Ref == "" {
		return "", false, fmt.Errorf("ledger returned empty anchor ref")
	}

	return payload.Ref, false, nil
}
