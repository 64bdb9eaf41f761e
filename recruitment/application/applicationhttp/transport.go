package applicationhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/Abraxas-365/hireflow/pkg/logx"
	"golang.org/x/time/rate"
)

// retryTransport retries idempotent requests on network errors and gateway
// failures, and optionally throttles every outgoing request
type retryTransport struct {
	next    http.RoundTripper
	retries int
	backoff time.Duration
	limiter *rate.Limiter
}

func newTransport(next http.RoundTripper, retries int, reqPerSec float64) *retryTransport {
	if next == nil {
		next = http.DefaultTransport
	}
	t := &retryTransport{
		next:    next,
		retries: retries,
		backoff: 200 * time.Millisecond,
	}
	if reqPerSec > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(reqPerSec), 1)
	}
	return t
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

func retryableStatus(code int) bool {
	return code == http.StatusBadGateway || code == http.StatusServiceUnavailable || code == http.StatusGatewayTimeout
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	attempts := 1
	if idempotent(req.Method) && (req.Body == nil || req.GetBody != nil) {
		attempts += t.retries
	}

	var (
		resp *http.Response
		err  error
	)
	for attempt := 1; ; attempt++ {
		if t.limiter != nil {
			if werr := t.limiter.Wait(req.Context()); werr != nil {
				return nil, werr
			}
		}

		resp, err = t.next.RoundTrip(req)
		if attempt >= attempts || req.Context().Err() != nil || !t.shouldRetry(resp, err) {
			return resp, err
		}
		if resp != nil {
			resp.Body.Close()
		}

		logx.Debugf("retrying %s %s (attempt %d/%d)", req.Method, req.URL.Path, attempt+1, attempts)
		if werr := sleep(req.Context(), t.backoff*time.Duration(attempt)); werr != nil {
			return nil, werr
		}

		if req.GetBody != nil {
			body, berr := req.GetBody()
			if berr != nil {
				return nil, berr
			}
			req = req.Clone(req.Context())
			req.Body = body
		}
	}
}

func (t *retryTransport) shouldRetry(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	return retryableStatus(resp.StatusCode)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
