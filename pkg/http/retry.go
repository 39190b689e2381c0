package http

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseDelay = time.Second

// RetryableTransport retries requests failing with a transport error or a transient status.
// The wait doubles after every attempt starting from BaseDelay.
type RetryableTransport struct {
	Transport  http.RoundTripper
	RetryCount int
	BaseDelay  time.Duration
}

func NewRetryableTransport(base http.RoundTripper, retryCount int) *RetryableTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &RetryableTransport{Transport: base, RetryCount: retryCount, BaseDelay: defaultBaseDelay}
}

func (t *RetryableTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		var err error
		bodyBytes, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("error reading body: %w", err)
		}
	}

	var (
		resp *http.Response
		err  error
	)
	for attempt := 0; attempt <= t.RetryCount; attempt++ {
		if attempt > 0 {
			// consume any response to reuse the connection
			drainBody(resp)
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(t.backoff(attempt - 1)):
			}
		}

		if bodyBytes != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
		resp, err = t.Transport.RoundTrip(req)
		if !shouldRetry(err, resp) {
			break
		}
	}

	return resp, err
}

func (t *RetryableTransport) backoff(retries int) time.Duration {
	base := t.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	return base << retries
}

func shouldRetry(err error, resp *http.Response) bool {
	if err != nil {
		return true
	}

	return resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusBadGateway ||
		resp.StatusCode == http.StatusServiceUnavailable ||
		resp.StatusCode == http.StatusGatewayTimeout
}

func drainBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}
}
