package appointment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	opusecase "github.com/BruksfildServices01/salon-scheduler/internal/usecase/operation"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type SetStatusInput struct {
	TenantID      uint
	ActorID       uint
	AppointmentID uint
	Status        string
}

type SetStatusResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Operations  []models.Operation  `json:"operations"`
	Changed     bool                `json:"changed"`
}

type StatsRefresher interface {
	Refresh(ctx context.Context, tenantID uint)
}

type noRefresh struct{}

func (noRefresh) Refresh(context.Context, uint) {}

// ======================================================
// USE CASE
// ======================================================

// SetStatus applies a status transition. Entering completed derives the
// appointment's operations in the same transaction, so a failed derivation
// leaves the status unchanged.
type SetStatus struct {
	uow     domain.UnitOfWork
	deriver *opusecase.Deriver
	locker  lock.Locker
	stats   StatsRefresher
	audit   audit.Sink
	policy  retry.Policy
	logger  *slog.Logger
}

func NewSetStatus(
	uow domain.UnitOfWork,
	deriver *opusecase.Deriver,
	locker lock.Locker,
	stats StatsRefresher,
	sink audit.Sink,
	policy retry.Policy,
	logger *slog.Logger,
) *SetStatus {
	if locker == nil {
		locker = lock.Nop{}
	}
	if sink == nil {
		sink = audit.Nop{}
	}
	if stats == nil {
		stats = noRefresh{}
	}
	return &SetStatus{
		uow:     uow,
		deriver: deriver,
		locker:  locker,
		stats:   stats,
		audit:   sink,
		policy:  policy,
		logger:  logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SetStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*SetStatusResult, error) {

	to := domain.Status(in.Status)
	if !to.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	// --------------------------------------------------
	// 1. Serialize concurrent changes of this appointment
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, fmt.Sprintf("appointment:%d:status", in.AppointmentID))
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, httperr.ErrBusiness("appointment_busy")
	}
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("appointment lock release failed", "appointment_id", in.AppointmentID, "err", err)
		}
	}()

	// --------------------------------------------------
	// 2. Status change + derivation, one transaction
	// --------------------------------------------------
	var res *SetStatusResult
	err = retry.Do(ctx, uc.policy, func(ctx context.Context) error {
		var txErr error
		res, txErr = uc.apply(ctx, in, to)
		return txErr
	})
	if err != nil {
		if errors.Is(err, operation.ErrCrossTenantViolation) {
			uc.logger.Error("status change rolled back: cross-tenant personnel",
				"appointment_id", in.AppointmentID,
				"tenant_id", in.TenantID,
				"err", err,
			)
		}
		return nil, err
	}

	// --------------------------------------------------
	// 3. After commit: statistics + audit
	// --------------------------------------------------
	if res.Changed || to == domain.StatusCompleted {
		uc.stats.Refresh(ctx, in.TenantID)
	}

	if res.Changed {
		uc.audit.Dispatch(audit.Event{
			TenantID: in.TenantID,
			UserID:   &in.ActorID,
			Action:   "appointment_" + string(to),
			Entity:   "appointment",
			EntityID: &res.Appointment.ID,
		})
	}
	if to == domain.StatusCompleted {
		uc.audit.Dispatch(audit.Event{
			TenantID: in.TenantID,
			UserID:   &in.ActorID,
			Action:   "operations_derived",
			Entity:   "appointment",
			EntityID: &res.Appointment.ID,
			Metadata: map[string]int{"operations": len(res.Operations)},
		})
	}

	return res, nil
}

func (uc *SetStatus) apply(
	ctx context.Context,
	in SetStatusInput,
	to domain.Status,
) (*SetStatusResult, error) {

	res := &SetStatusResult{Operations: []models.Operation{}}

	err := uc.uow.Within(ctx, func(appointments domain.Repository, operations operation.Repository) error {
		shop, err := appointments.GetTenantByID(ctx, in.TenantID)
		if err != nil {
			return err
		}

		ap, err := appointments.GetAppointment(ctx, in.TenantID, in.AppointmentID)
		if err != nil {
			return err
		}

		from := domain.Status(ap.Status)
		changed, err := domain.Transition(ap, to, timezone.NowIn(shop.Timezone))
		if err != nil {
			return err
		}

		if changed {
			if err := appointments.UpdateAppointmentStatus(ctx, ap, from); err != nil {
				return err
			}
		}

		if to == domain.StatusCompleted {
			ops, err := uc.deriver.WithRepository(operations).Derive(ctx, in.TenantID, ap)
			if err != nil {
				return err
			}
			res.Operations = ops
		}

		res.Appointment = ap
		res.Changed = changed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
