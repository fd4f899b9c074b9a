package http

import (
	"context"
	"time"
)

// BackoffConfig controls retry behavior for a request. A zero MaxRetries disables retries.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultBackoff returns a conservative retry policy for idempotent upstream calls.
func DefaultBackoff() *BackoffConfig {
	return &BackoffConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// retryable reports whether the attempt outcome warrants another try. Transport
// errors and 5xx responses are retried, everything else is final.
func retryable(status int, err error) bool {
	if err != nil && status == 0 {
		return true
	}
	return status >= 500
}

// doRequestWithBackoff executes the request, retrying per the given config.
// A nil config performs a single attempt.
func (hc *Client) doRequestWithBackoff(ctx context.Context, method, path string, queryParams map[string]string, headers map[string]string, body any, successResp any, errorResp any, backoff *BackoffConfig) (any, any, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	success, errResp, status, err := hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
	if backoff == nil || backoff.MaxRetries <= 0 || !retryable(status, err) {
		return success, errResp, status, err
	}

	interval := backoff.InitialInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	for attempt := 1; attempt <= backoff.MaxRetries; attempt++ {
		if hc.retryLogger != nil {
			hc.retryLogger.LogRequestRetry(method, hc.buildURL(path), status, err, attempt, backoff.MaxRetries)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, nil, status, ctx.Err()
		case <-timer.C:
		}

		success, errResp, status, err = hc.doRequest(ctx, method, path, queryParams, headers, body, successResp, errorResp)
		if !retryable(status, err) {
			return success, errResp, status, err
		}

		interval *= 2
		if backoff.MaxInterval > 0 && interval > backoff.MaxInterval {
			interval = backoff.MaxInterval
		}
	}

	return success, errResp, status, err
}
