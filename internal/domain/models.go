package domain

import "time"

// Status classifies the outcome of one probe.
type Status string

const (
	StatusUp    Status = "UP"    // HTTP response with an acceptable status code
	StatusDown  Status = "DOWN"  // HTTP response received, failing status code
	StatusError Status = "ERROR" // request never completed (timeout, DNS, refused, bad URL)
)

// CheckResult is one probe outcome. Immutable once built; every check
// produces a fresh record.
type CheckResult struct {
	URL            string    `json:"url"`
	Status         Status    `json:"status"`
	HTTPStatus     *int      `json:"status_code"`      // nil when no response was received
	ResponseTimeMS *float64  `json:"response_time_ms"` // nil when no network attempt was made
	Reason         string    `json:"error,omitempty"`  // set whenever Status != UP
	CheckedAt      time.Time `json:"timestamp"`
}

// Up reports whether the result counts toward availability.
func (r CheckResult) Up() bool { return r.Status == StatusUp }

// Summary holds the derived counts for one pass.
type Summary struct {
	Total         int     `json:"total"`
	UpCount       int     `json:"up"`
	DownCount     int     `json:"down"`
	UptimePercent float64 `json:"uptime_percent"`
}

// MonitoringBatch is the full set of results from one monitoring pass,
// in configuration order, plus the derived summary.
type MonitoringBatch struct {
	Results     []CheckResult `json:"results"`
	Summary     Summary       `json:"summary"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// Summarize computes counts and uptime percentage over results.
// Uptime is 0 for an empty batch.
func Summarize(results []CheckResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Up() {
			s.UpCount++
		} else {
			s.DownCount++
		}
	}
	if s.Total > 0 {
		s.UptimePercent = float64(s.UpCount) / float64(s.Total) * 100
	}
	return s
}
