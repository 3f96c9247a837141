package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	URLs            []string      // monitored URLs, in order
	Timeout         time.Duration // per-request timeout
	Concurrency     int           // max in-flight probes per pass
	ProbeMethod     string        // "GET" or "HEAD"
	SnapshotPath    string        // JSON snapshot consumed by the exporter
	DatabasePath    string        // sqlite file; empty means in-memory only
	SlackWebhookURL string        // empty disables the Slack channel
	SMTPHost        string        // empty disables the email channel
	SMTPPort        int
	EmailUser       string
	EmailPassword   string
	EmailTo         string
	AlertOnRecovery bool
	AlertCooldown   time.Duration // 0 means no cooldown suppression
	LogDir          string
	ExporterAddr    string
}

func FromEnv() Config {
	urls := splitList(os.Getenv("MONITOR_URLS"))
	for i, u := range urls {
		urls[i] = normalizeURL(u)
	}

	return Config{
		URLs:            urls,
		Timeout:         envDuration("HTTP_TIMEOUT", 10*time.Second),
		Concurrency:     envInt("MAX_CONCURRENT_CHECKS", 10),
		ProbeMethod:     envString("PROBE_METHOD", "GET"),
		SnapshotPath:    envString("SNAPSHOT_PATH", "uptime_results.json"),
		DatabasePath:    os.Getenv("DATABASE_PATH"),
		SlackWebhookURL: os.Getenv("SLACK_WEBHOOK_URL"),
		SMTPHost:        os.Getenv("SMTP_HOST"),
		SMTPPort:        envInt("SMTP_PORT", 587),
		EmailUser:       os.Getenv("EMAIL_USER"),
		EmailPassword:   os.Getenv("EMAIL_PASSWORD"),
		EmailTo:         os.Getenv("EMAIL_TO"),
		AlertOnRecovery: envBool("ALERT_ON_RECOVERY", true),
		AlertCooldown:   envDuration("ALERT_COOLDOWN", 0),
		LogDir:          envString("LOG_DIR", "logs"),
		ExporterAddr:    envString("EXPORTER_ADDR", ":8000"),
	}
}

// Validate checks pass-level preconditions. It is the one place that may
// reject a run outright; probe failures later are data, not errors.
func (c Config) Validate() error {
	if len(c.URLs) == 0 {
		return fmt.Errorf("no URLs configured (set MONITOR_URLS)")
	}
	for _, raw := range c.URLs {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("malformed URL %q: %w", raw, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("malformed URL %q: need http(s)://host", raw)
		}
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if m := strings.ToUpper(c.ProbeMethod); m != "GET" && m != "HEAD" {
		return fmt.Errorf("probe method must be GET or HEAD, got %q", c.ProbeMethod)
	}
	return nil
}

// EmailConfigured reports whether all required SMTP settings are present.
func (c Config) EmailConfigured() bool {
	return c.SMTPHost != "" && c.EmailUser != "" && c.EmailPassword != "" && c.EmailTo != ""
}

// normalizeURL prefixes https:// when the scheme is missing, matching how
// operators tend to list bare hostnames.
func normalizeURL(raw string) string {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
