// One monitoring pass per invocation; an external scheduler (cron) is the
// loop. Exits non-zero when configuration is invalid or persistence fails.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"webmon/internal/alert"
	"webmon/internal/config"
	"webmon/internal/logging"
	"webmon/internal/monitor"
	"webmon/internal/notify"
	"webmon/internal/probe"
	"webmon/internal/repo"
	"webmon/internal/repo/file"
	"webmon/internal/repo/sqlite"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(2)
	}

	logger, err := logging.NewLogger(cfg.LogDir, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var channels notify.Multi
	if s := notify.NewSlack(cfg.SlackWebhookURL); s != nil {
		channels = append(channels, s)
	}
	if e := notify.NewEmail(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPassword, cfg.EmailTo); e != nil {
		channels = append(channels, e)
	}
	var notifier notify.Notifier
	if len(channels) > 0 {
		notifier = channels
	} else {
		logger.Info("no_alert_channels_configured")
	}

	state := alert.NewState()
	var history repo.HistoryStore
	var stateStore repo.AlertStateStore

	if cfg.DatabasePath != "" {
		db, err := sqlite.Open(ctx, cfg.DatabasePath)
		if err != nil {
			logger.Error("sqlite_open_error", zap.Error(err))
			os.Exit(1)
		}
		defer db.Close()
		history = db
		stateStore = db
		if err := db.LoadState(ctx, state); err != nil {
			logger.Warn("alert_state_load_error", zap.Error(err))
		}
	}

	dispatcher := alert.NewDispatcher(notifier, logger, alert.Config{
		AlertOnRecovery: cfg.AlertOnRecovery,
		Cooldown:        cfg.AlertCooldown,
	})

	runner := monitor.NewRunner(
		logger,
		probe.NewHTTPChecker(cfg.Timeout, cfg.ProbeMethod),
		dispatcher,
		file.New(cfg.SnapshotPath),
		history,
		cfg.Timeout,
		cfg.Concurrency,
	)

	_, passErr := runner.RunPass(ctx, cfg.URLs, state)

	if stateStore != nil {
		if err := stateStore.SaveState(ctx, state); err != nil {
			logger.Warn("alert_state_save_error", zap.Error(err))
		}
	}

	if passErr != nil {
		// Downstream metrics depend on the snapshot; cron should see this run fail.
		os.Exit(1)
	}
}
