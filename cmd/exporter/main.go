// Prometheus exporter: serves the latest snapshot as scrapeable gauges.
// Runs resident next to the cron-invoked monitor.
package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"webmon/internal/config"
	"webmon/internal/httpapi"
	"webmon/internal/logging"
	"webmon/internal/repo/file"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir, false)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	srv := httpapi.NewServer(logger, file.New(cfg.SnapshotPath))

	logger.Info("exporter_listen",
		zap.String("addr", cfg.ExporterAddr),
		zap.String("snapshot", cfg.SnapshotPath),
	)
	if err := http.ListenAndServe(cfg.ExporterAddr, srv.Router()); err != nil {
		log.Fatal(err)
	}
}
