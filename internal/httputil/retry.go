// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// retryable failures. Tests override this to avoid real sleeps.
var RetryBaseDelay = 1 * time.Second

const defaultMaxRetries = 3

// DoWithRetry executes an HTTP request and retries transport errors, HTTP 429
// (Too Many Requests), and HTTP 5xx responses with exponential backoff. The
// delay starts at RetryBaseDelay and doubles each attempt; a Retry-After
// header on the response extends the wait when the server asks for more.
//
// When maxRetries is 0 the default (3) is used. Before each retry the response
// body is drained and closed. If the context is cancelled during a backoff
// wait the function returns ctx.Err(). After exhausting retries the last
// retryable response is returned so the caller can inspect it.
//
// HTTP 403 is never retried: EDGAR serves 403 to clients without a declared
// User-Agent, so retrying cannot help and the error says so.
func DoWithRetry(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			if attempt >= maxRetries {
				return nil, fmt.Errorf("after %d retries: %w", maxRetries, err)
			}
			if werr := wait(ctx, backoffFor(attempt)); werr != nil {
				return nil, werr
			}
			continue
		}

		if resp.StatusCode == http.StatusForbidden {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return nil, fmt.Errorf("GET %s: 403 Forbidden (EDGAR requires a User-Agent identifying you with a contact address; set http.user_agent or EDGAR_CONTACT)", req.URL)
		}

		if !retryable(resp.StatusCode) {
			return resp, nil
		}

		// Out of retries; hand back the last retryable response.
		if attempt >= maxRetries {
			return resp, nil
		}

		backoff := backoffFor(attempt)
		if ra := retryAfter(resp); ra > backoff {
			backoff = ra
		}

		// Drain and close the body before retrying.
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		if werr := wait(ctx, backoff); werr != nil {
			return nil, werr
		}
	}
}

// retryable reports whether a status code warrants another attempt.
func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

// backoffFor returns the exponential delay for the given zero-based attempt.
func backoffFor(attempt int) time.Duration {
	return time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
}

// retryAfter returns the delay requested by a Retry-After header, or zero
// when the header is absent or not a positive integer second count.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
