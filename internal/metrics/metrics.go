// Package metrics maps monitoring batches onto the Prometheus series
// scraped by the metrics collaborator.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"webmon/internal/domain"
)

type Set struct {
	Up             *prometheus.GaugeVec
	ResponseTimeMS *prometheus.GaugeVec
	StatusCode     *prometheus.GaugeVec
	LastUpdate     prometheus.Gauge
}

// New builds the gauge set and registers it on reg.
func New(reg prometheus.Registerer) *Set {
	s := &Set{
		Up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "website_up",
			Help: "Whether the website is up (1) or down (0)",
		}, []string{"url", "instance"}),
		ResponseTimeMS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "website_response_time_ms",
			Help: "Response time in milliseconds",
		}, []string{"url", "instance"}),
		StatusCode: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "website_status_code",
			Help: "HTTP status code returned",
		}, []string{"url", "instance"}),
		LastUpdate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "website_monitor_last_update_timestamp",
			Help: "Unix timestamp of last monitoring update",
		}),
	}
	reg.MustRegister(s.Up, s.ResponseTimeMS, s.StatusCode, s.LastUpdate)
	return s
}

// Observe rebuilds every series from the batch. The per-URL vectors are
// reset first so URLs dropped from the configuration stop being exported.
// Absent status codes and latencies export as 0, matching the snapshot
// contract.
func (s *Set) Observe(b *domain.MonitoringBatch) {
	if b == nil {
		return
	}
	s.Up.Reset()
	s.ResponseTimeMS.Reset()
	s.StatusCode.Reset()

	for _, r := range b.Results {
		inst := instanceLabel(r.URL)

		up := 0.0
		if r.Up() {
			up = 1
		}
		s.Up.WithLabelValues(r.URL, inst).Set(up)

		ms := 0.0
		if r.ResponseTimeMS != nil {
			ms = *r.ResponseTimeMS
		}
		s.ResponseTimeMS.WithLabelValues(r.URL, inst).Set(ms)

		code := 0.0
		if r.HTTPStatus != nil {
			code = float64(*r.HTTPStatus)
		}
		s.StatusCode.WithLabelValues(r.URL, inst).Set(code)
	}
	s.LastUpdate.Set(float64(b.GeneratedAt.Unix()))
}

// instanceLabel strips the scheme and flattens separators, giving each URL
// a stable identifier-style label next to the raw url label.
func instanceLabel(url string) string {
	s := strings.TrimPrefix(url, "https://")
	s = strings.TrimPrefix(s, "http://")
	return strings.NewReplacer("/", "_", ".", "_", "-", "_").Replace(s)
}
