package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	bferrors "github.com/matzehuels/bookfair/pkg/errors"
)

// WithRetry repeats failed reads up to attempts times. The delay doubles
// after each attempt. Only transport failures and 5xx responses are
// retried; writes are never repeated.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.attempts, c.retryDelay = attempts, delay }
}

func retryable(err error) bool {
	var se *bferrors.StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	return bferrors.Is(err, bferrors.ErrCodeNetwork)
}

// retry runs fn until it succeeds, fails with a non-retryable error, or the
// attempts run out. It returns the last error, or ctx.Err() if cancelled.
func (c *Client) retry(ctx context.Context, fn func() error) error {
	attempts := max(c.attempts, 1)
	delay := c.retryDelay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !retryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// get performs a GET with retries.
func (c *Client) get(ctx context.Context, path string, auth authMode) ([]byte, error) {
	var data []byte
	err := c.retry(ctx, func() error {
		var err error
		data, err = c.do(ctx, request{method: http.MethodGet, path: path, auth: auth})
		return err
	})
	return data, err
}
