package alert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"webmon/internal/domain"
	"webmon/internal/notify"
)

type Kind int

const (
	KindDown Kind = iota + 1
	KindRecovered
)

// Transition is a notifiable status change for one URL.
type Transition struct {
	Kind   Kind
	Result domain.CheckResult
}

type Config struct {
	AlertOnRecovery bool
	Cooldown        time.Duration // suppresses repeat down alerts; 0 disables
}

// Dispatcher decides, per result, whether a notification is due and sends
// batch-level messages over the configured channels.
type Dispatcher struct {
	Notifier notify.Notifier
	Logger   *zap.Logger
	Cfg      Config
}

func NewDispatcher(n notify.Notifier, logger *zap.Logger, cfg Config) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{Notifier: n, Logger: logger, Cfg: cfg}
}

// Evaluate compares r against the recorded state, updates the state
// unconditionally, and reports the transition to notify, if any.
//
// A down notification is due only on the transition into a non-UP status:
// no prior record, or the prior record was UP. Sustained outages stay
// silent until recovery.
func (d *Dispatcher) Evaluate(now time.Time, r domain.CheckResult, st *State) (Transition, bool) {
	prev, known := st.Get(r.URL)

	rec := Record{URL: r.URL, LastStatus: r.Status}
	if known {
		rec.LastSentAt = prev.LastSentAt
	}

	var tr Transition
	due := false

	switch {
	case !r.Up() && (!known || prev.LastStatus == domain.StatusUp):
		cooled := !known || prev.LastSentAt.IsZero() ||
			now.Sub(prev.LastSentAt) >= d.Cfg.Cooldown
		if cooled {
			tr = Transition{Kind: KindDown, Result: r}
			due = true
			rec.LastSentAt = now
		}
	case r.Up() && known && prev.LastStatus != domain.StatusUp:
		if d.Cfg.AlertOnRecovery {
			tr = Transition{Kind: KindRecovered, Result: r}
			due = true
			rec.LastSentAt = now
		}
	}

	st.set(rec)
	return tr, due
}

// DispatchBatch feeds every result through Evaluate in order and sends at
// most one combined down message and one combined recovery message for the
// whole pass. Channel failures are logged, never propagated.
func (d *Dispatcher) DispatchBatch(ctx context.Context, results []domain.CheckResult, st *State) {
	now := time.Now().UTC()

	var down, recovered []domain.CheckResult
	for _, r := range results {
		tr, due := d.Evaluate(now, r, st)
		if !due {
			continue
		}
		switch tr.Kind {
		case KindDown:
			down = append(down, tr.Result)
		case KindRecovered:
			recovered = append(recovered, tr.Result)
		}
	}

	if len(down) > 0 {
		title := fmt.Sprintf("Website Down Alert - %d site(s) affected", len(down))
		d.send(ctx, title, formatSites(down))
	}
	if len(recovered) > 0 {
		title := fmt.Sprintf("Website Recovered - %d site(s)", len(recovered))
		d.send(ctx, title, formatSites(recovered))
	}
}

func (d *Dispatcher) send(ctx context.Context, title, text string) {
	if d.Notifier == nil {
		d.Logger.Info("alert_skipped_no_channels", zap.String("title", title))
		return
	}
	if err := d.Notifier.Send(ctx, title, text); err != nil {
		d.Logger.Warn("alert_send_error", zap.String("title", title), zap.Error(err))
		return
	}
	d.Logger.Info("alert_sent", zap.String("title", title))
}

func formatSites(results []domain.CheckResult) string {
	var b strings.Builder
	for _, r := range results {
		detail := r.Reason
		if detail == "" && r.HTTPStatus != nil {
			detail = fmt.Sprintf("HTTP %d", *r.HTTPStatus)
		}
		if detail == "" {
			detail = string(r.Status)
		}
		fmt.Fprintf(&b, "- %s: %s\n  checked at %s\n", r.URL, detail, r.CheckedAt.Format(time.RFC3339))
	}
	return strings.TrimRight(b.String(), "\n")
}
