// Package provider holds what the external lookup adapters share.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// DefaultHTTPTimeout is the client-side timeout for adapter requests
const DefaultHTTPTimeout = 10 * time.Second

// RetryDelay is the pause before the single retry
var RetryDelay = 300 * time.Millisecond

// DoWithRetry executes a bodiless request with a single retry on 5xx or
// network errors. A 429 is returned as is.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, log *slog.Logger, word string) (*http.Response, error) {
	resp, err := client.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	log.WarnContext(ctx, "retrying request", slog.String("word", word), slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(RetryDelay):
	}

	return client.Do(req)
}
