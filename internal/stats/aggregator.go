package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type OperationTotals struct {
	Count      int64
	Revenue    float64
	Commission float64
	Points     int64
}

type Store interface {
	CountAppointmentsByStatus(ctx context.Context, tenantID uint) (map[string]int64, error)
	SumOperations(ctx context.Context, tenantID uint) (OperationTotals, error)
	SaveStatistics(ctx context.Context, s *models.ShopStatistics) error
	GetStatistics(ctx context.Context, tenantID uint) (*models.ShopStatistics, error)
	ListActiveTenantIDs(ctx context.Context) ([]uint, error)
}

// Aggregator rebuilds shop_statistics rows from appointments and operations.
type Aggregator struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewAggregator(store Store, logger *slog.Logger) *Aggregator {
	return &Aggregator{store: store, logger: logger, now: time.Now}
}

func (a *Aggregator) Recompute(ctx context.Context, tenantID uint) (*models.ShopStatistics, error) {
	byStatus, err := a.store.CountAppointmentsByStatus(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	ops, err := a.store.SumOperations(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("sum operations: %w", err)
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	s := &models.ShopStatistics{
		TenantID:              tenantID,
		TotalAppointments:     total,
		CompletedAppointments: byStatus[string(appointment.StatusCompleted)],
		CancelledAppointments: byStatus[string(appointment.StatusCancelled)],
		TotalOperations:       ops.Count,
		TotalRevenue:          ops.Revenue,
		TotalCommission:       ops.Commission,
		TotalPoints:           ops.Points,
		RefreshedAt:           a.now().UTC(),
	}

	if err := a.store.SaveStatistics(ctx, s); err != nil {
		return nil, fmt.Errorf("save statistics: %w", err)
	}
	return s, nil
}

// RecomputeAll sweeps every active tenant. One failing tenant does not stop
// the sweep.
func (a *Aggregator) RecomputeAll(ctx context.Context) error {
	ids, err := a.store.ListActiveTenantIDs(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := a.Recompute(ctx, id); err != nil {
			a.logger.Error("statistics recompute failed", "tenant_id", id, "err", err)
			errs = append(errs, fmt.Errorf("tenant %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

func (a *Aggregator) Get(ctx context.Context, tenantID uint) (*models.ShopStatistics, error) {
	return a.store.GetStatistics(ctx, tenantID)
}
