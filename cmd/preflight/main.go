// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"webmon/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	_ = godotenv.Load()
	cfg := config.FromEnv()

	if err := cfg.Validate(); err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("%d URL(s) configured, timeout %s, concurrency %d",
		len(cfg.URLs), cfg.Timeout, cfg.Concurrency))

	if cfg.SlackWebhookURL == "" {
		warn("SLACK_WEBHOOK_URL empty — Slack alerts disabled.")
	} else {
		ok("Slack webhook configured")
	}

	if !cfg.EmailConfigured() {
		warn("SMTP settings incomplete — email alerts disabled (need SMTP_HOST, EMAIL_USER, EMAIL_PASSWORD, EMAIL_TO).")
	} else {
		ok(fmt.Sprintf("email alerts to %s via %s:%d", cfg.EmailTo, cfg.SMTPHost, cfg.SMTPPort))
	}

	if cfg.DatabasePath == "" {
		warn("DATABASE_PATH empty — alert state resets every run; transitions may re-alert.")
	} else {
		ok("DATABASE_PATH=" + cfg.DatabasePath)
	}

	ok("preflight passed")
}
