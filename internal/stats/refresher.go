// Package stats keeps the per-shop statistics row current: triggers that
// request a recomputation, the aggregator that performs it and the
// scheduler that sweeps all shops.
package stats

import (
	"context"
	"errors"
	"log/slog"

	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
)

// Trigger requests a statistics recomputation for one tenant.
type Trigger interface {
	Refresh(ctx context.Context, tenantID uint) error
}

// Refresher wraps a Trigger and never fails: statistics are advisory and
// a failed refresh must not affect the caller's outcome.
type Refresher struct {
	trigger Trigger
	logger  *slog.Logger
}

func NewRefresher(trigger Trigger, logger *slog.Logger) *Refresher {
	if trigger == nil {
		trigger = Nop{}
	}
	return &Refresher{trigger: trigger, logger: logger}
}

func (r *Refresher) Refresh(ctx context.Context, tenantID uint) {
	if err := r.trigger.Refresh(ctx, tenantID); err != nil {
		metrics.StatsRefreshFailures.Inc()
		r.logger.Warn("statistics refresh failed", "tenant_id", tenantID, "err", err)
	}
}

// Multi fans a refresh out to every trigger. All triggers run even when
// one fails.
type Multi []Trigger

func (m Multi) Refresh(ctx context.Context, tenantID uint) error {
	var errs []error
	for _, t := range m {
		if err := t.Refresh(ctx, tenantID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

type Nop struct{}

func (Nop) Refresh(context.Context, uint) error { return nil }

// LocalTrigger recomputes in process.
type LocalTrigger struct {
	agg *Aggregator
}

func NewLocalTrigger(agg *Aggregator) *LocalTrigger {
	return &LocalTrigger{agg: agg}
}

func (t *LocalTrigger) Refresh(ctx context.Context, tenantID uint) error {
	_, err := t.agg.Recompute(ctx, tenantID)
	return err
}
