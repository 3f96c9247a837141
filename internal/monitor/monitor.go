// Package monitor runs one monitoring pass: probe every configured URL,
// summarize, dispatch alerts on transitions, and persist the batch.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"webmon/internal/alert"
	"webmon/internal/domain"
	"webmon/internal/probe"
	"webmon/internal/repo"
)

type Runner struct {
	Logger      *zap.Logger
	Checker     probe.Checker
	Dispatcher  *alert.Dispatcher
	Snapshot    repo.SnapshotStore // nil skips snapshot persistence
	History     repo.HistoryStore  // nil skips the append-only log
	Timeout     time.Duration
	Concurrency int
}

func NewRunner(
	logger *zap.Logger,
	checker probe.Checker,
	dispatcher *alert.Dispatcher,
	snapshot repo.SnapshotStore,
	history repo.HistoryStore,
	timeout time.Duration,
	concurrency int,
) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		Logger:      logger,
		Checker:     checker,
		Dispatcher:  dispatcher,
		Snapshot:    snapshot,
		History:     history,
		Timeout:     timeout,
		Concurrency: concurrency,
	}
}

// RunPass probes every URL, in configuration order in the batch, with at
// most Concurrency probes in flight. A down site is data, never an error;
// the returned error only reports persistence problems, and the batch is
// valid either way.
func (r *Runner) RunPass(ctx context.Context, urls []string, st *alert.State) (*domain.MonitoringBatch, error) {
	r.Logger.Info("pass_start", zap.Int("targets", len(urls)))

	results := make([]domain.CheckResult, len(urls))
	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	for i, u := range urls {
		i, u := i, u
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			cctx, cancel := context.WithTimeout(ctx, r.Timeout)
			defer cancel()

			out := r.Checker.Check(cctx, u)
			results[i] = out

			if out.Up() {
				r.Logger.Info("site_up",
					zap.String("url", u),
					zap.Float64p("latency_ms", out.ResponseTimeMS),
				)
			} else {
				r.Logger.Warn("site_down",
					zap.String("url", u),
					zap.String("status", string(out.Status)),
					zap.Intp("http_status", out.HTTPStatus),
					zap.String("reason", out.Reason),
				)
			}
		}()
	}
	wg.Wait()

	batch := &domain.MonitoringBatch{
		Results:     results,
		Summary:     domain.Summarize(results),
		GeneratedAt: time.Now().UTC(),
	}

	if r.Dispatcher != nil {
		r.Dispatcher.DispatchBatch(ctx, results, st)
	}

	var persistErr error
	if r.Snapshot != nil {
		if err := r.Snapshot.Save(ctx, batch); err != nil {
			r.Logger.Error("snapshot_write_error", zap.Error(err))
			persistErr = multierr.Append(persistErr, fmt.Errorf("save snapshot: %w", err))
		}
	}
	if r.History != nil {
		if err := r.History.Append(ctx, batch); err != nil {
			r.Logger.Error("history_append_error", zap.Error(err))
			persistErr = multierr.Append(persistErr, fmt.Errorf("append history: %w", err))
		}
	}

	r.Logger.Info("pass_complete",
		zap.Int("total", batch.Summary.Total),
		zap.Int("up", batch.Summary.UpCount),
		zap.Int("down", batch.Summary.DownCount),
		zap.Float64("uptime_percent", batch.Summary.UptimePercent),
	)

	return batch, persistErr
}
