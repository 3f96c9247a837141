package probe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"webmon/internal/domain"
)

type HTTPChecker struct {
	Client *http.Client
	Method string // GET or HEAD; GET when empty
}

func NewHTTPChecker(timeout time.Duration, method string) *HTTPChecker {
	if method == "" {
		method = http.MethodGet
	}
	return &HTTPChecker{
		Client: &http.Client{Timeout: timeout},
		Method: strings.ToUpper(method),
	}
}

// Check issues exactly one request against target and classifies the outcome.
// Retry policy, if any, belongs to the caller; the next scheduled pass is the
// retry at the system level.
func (h *HTTPChecker) Check(ctx context.Context, target string) domain.CheckResult {
	res := domain.CheckResult{URL: target}

	req, err := http.NewRequestWithContext(ctx, h.Method, target, nil)
	if err != nil {
		// No network attempt was made, so no latency either.
		res.Status = domain.StatusError
		res.Reason = "malformed URL: " + err.Error()
		res.CheckedAt = time.Now().UTC()
		return res
	}

	start := time.Now()
	resp, err := h.Client.Do(req)
	latency := time.Since(start).Seconds() * 1000
	res.ResponseTimeMS = &latency
	res.CheckedAt = time.Now().UTC()

	if err != nil {
		res.Status = domain.StatusError
		res.Reason = classify(err)
		return res
	}
	defer resp.Body.Close()

	code := resp.StatusCode
	res.HTTPStatus = &code
	if code >= 200 && code < 400 {
		res.Status = domain.StatusUp
	} else {
		res.Status = domain.StatusDown
		res.Reason = fmt.Sprintf("HTTP %d", code)
	}
	return res
}

// classify maps a transport error to a short failure class for the Reason
// field and alert messages.
func classify(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "timeout"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "dns failure: " + dnsErr.Err
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return "connection error: " + opErr.Err.Error()
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	if strings.Contains(err.Error(), "tls:") || strings.Contains(err.Error(), "x509:") {
		return "tls failure: " + err.Error()
	}
	return err.Error()
}
