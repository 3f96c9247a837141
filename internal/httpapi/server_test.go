package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webmon/internal/domain"
	"webmon/internal/repo/memory"
)

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil, memory.New()).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "healthy") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestMetrics_ReflectsSnapshot(t *testing.T) {
	store := memory.New()
	code := 503
	ms := 77.0
	_ = store.Save(context.Background(), &domain.MonitoringBatch{
		Results: []domain.CheckResult{
			{URL: "https://down.example", Status: domain.StatusDown, HTTPStatus: &code, ResponseTimeMS: &ms},
		},
		GeneratedAt: time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
	})

	srv := httptest.NewServer(NewServer(nil, store).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	text := string(body)

	for _, want := range []string{
		`website_up{instance="down_example",url="https://down.example"} 0`,
		`website_status_code{instance="down_example",url="https://down.example"} 503`,
		`website_response_time_ms{instance="down_example",url="https://down.example"} 77`,
		"website_monitor_last_update_timestamp",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, text)
		}
	}
}

func TestMetrics_DroppedURLNotInNextScrape(t *testing.T) {
	store := memory.New()
	srv := httptest.NewServer(NewServer(nil, store).Router())
	defer srv.Close()

	scrape := func() string {
		t.Helper()
		resp, err := http.Get(srv.URL + "/metrics")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return string(body)
	}

	_ = store.Save(context.Background(), &domain.MonitoringBatch{
		Results:     []domain.CheckResult{{URL: "https://old.example", Status: domain.StatusUp}},
		GeneratedAt: time.Now(),
	})
	if text := scrape(); !strings.Contains(text, "https://old.example") {
		t.Fatalf("first scrape should carry the configured url:\n%s", text)
	}

	_ = store.Save(context.Background(), &domain.MonitoringBatch{
		Results:     []domain.CheckResult{{URL: "https://new.example", Status: domain.StatusUp}},
		GeneratedAt: time.Now(),
	})
	text := scrape()
	if strings.Contains(text, "https://old.example") {
		t.Fatalf("url removed from the snapshot must drop out of the exposition:\n%s", text)
	}
	if !strings.Contains(text, "https://new.example") {
		t.Fatalf("second scrape missing the current url:\n%s", text)
	}
}

func TestMetrics_EmptySnapshotStillServes(t *testing.T) {
	srv := httptest.NewServer(NewServer(nil, memory.New()).Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Fatalf("scrape with no data should still 200, got %d", resp.StatusCode)
	}
}
