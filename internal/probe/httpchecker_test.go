package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webmon/internal/domain"
)

func TestHTTPChecker_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	chk := NewHTTPChecker(2*time.Second, "")
	out := chk.Check(context.Background(), s.URL)
	if out.Status != domain.StatusUp {
		t.Fatalf("want UP, got %+v", out)
	}
	if out.HTTPStatus == nil || *out.HTTPStatus != 200 {
		t.Fatalf("want status 200, got %+v", out.HTTPStatus)
	}
	if out.ResponseTimeMS == nil || *out.ResponseTimeMS < 0 {
		t.Fatalf("latency should be present and >= 0, got %+v", out.ResponseTimeMS)
	}
	if out.Reason != "" {
		t.Fatalf("UP result should carry no reason, got %q", out.Reason)
	}
	if out.CheckedAt.IsZero() {
		t.Fatalf("CheckedAt not set")
	}
}

func TestHTTPChecker_RedirectCountsAsUp(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	}))
	defer s.Close()
	redir := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.URL, http.StatusFound)
	}))
	defer redir.Close()

	chk := NewHTTPChecker(2*time.Second, "")
	out := chk.Check(context.Background(), redir.URL)
	if out.Status != domain.StatusUp {
		t.Fatalf("3xx chain should classify UP, got %+v", out)
	}
}

func TestHTTPChecker_Status500(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2*time.Second, "")
	out := chk.Check(context.Background(), s.URL)
	if out.Status != domain.StatusDown {
		t.Fatalf("want DOWN, got %+v", out)
	}
	if out.HTTPStatus == nil || *out.HTTPStatus != 500 {
		t.Fatalf("want status 500, got %+v", out.HTTPStatus)
	}
	if out.Reason != "HTTP 500" {
		t.Fatalf("want reason \"HTTP 500\", got %q", out.Reason)
	}
}

func TestHTTPChecker_ClientErrorIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2*time.Second, "")
	out := chk.Check(context.Background(), s.URL)
	if out.Status != domain.StatusDown || out.Reason != "HTTP 404" {
		t.Fatalf("4xx should classify DOWN, got %+v", out)
	}
}

func TestHTTPChecker_Timeout(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(50*time.Millisecond, "")
	start := time.Now()
	out := chk.Check(context.Background(), s.URL)
	elapsed := time.Since(start)

	if out.Status != domain.StatusError {
		t.Fatalf("want ERROR on timeout, got %+v", out)
	}
	if out.HTTPStatus != nil {
		t.Fatalf("no status code expected on transport error, got %+v", out.HTTPStatus)
	}
	if out.Reason != "timeout" {
		t.Fatalf("want timeout reason, got %q", out.Reason)
	}
	if out.ResponseTimeMS == nil {
		t.Fatalf("latency should still be measured on timeout")
	}
	if elapsed > 250*time.Millisecond {
		t.Fatalf("timeout not enforced, took %s", elapsed)
	}
}

func TestHTTPChecker_ConnectionRefused(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := s.URL
	s.Close() // now nothing listens there

	chk := NewHTTPChecker(time.Second, "")
	out := chk.Check(context.Background(), addr)
	if out.Status != domain.StatusError {
		t.Fatalf("want ERROR, got %+v", out)
	}
	if out.HTTPStatus != nil {
		t.Fatalf("no status code expected, got %+v", out.HTTPStatus)
	}
	if out.Reason == "" {
		t.Fatalf("want non-empty reason")
	}
}

func TestHTTPChecker_MalformedURL(t *testing.T) {
	chk := NewHTTPChecker(time.Second, "")
	out := chk.Check(context.Background(), "http://bad host/%zz")
	if out.Status != domain.StatusError {
		t.Fatalf("want ERROR, got %+v", out)
	}
	if out.ResponseTimeMS != nil {
		t.Fatalf("no network attempt, latency should be absent: %+v", out.ResponseTimeMS)
	}
	if !strings.Contains(out.Reason, "malformed URL") {
		t.Fatalf("want malformed URL reason, got %q", out.Reason)
	}
}

func TestHTTPChecker_HeadMethod(t *testing.T) {
	var gotMethod string
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		w.WriteHeader(200)
	}))
	defer s.Close()

	chk := NewHTTPChecker(2*time.Second, "HEAD")
	out := chk.Check(context.Background(), s.URL)
	if out.Status != domain.StatusUp || gotMethod != http.MethodHead {
		t.Fatalf("want HEAD probe UP, got method=%q result=%+v", gotMethod, out)
	}
}

func TestHTTPChecker_Cancellation(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	chk := NewHTTPChecker(5*time.Second, "")
	start := time.Now()
	out := chk.Check(ctx, s.URL)
	if out.Status != domain.StatusError {
		t.Fatalf("want ERROR on cancel, got %+v", out)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("cancel should abort promptly, took %s", time.Since(start))
	}
}
