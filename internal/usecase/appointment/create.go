package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	TenantID    uint
	PersonnelID uint
	ActorID     *uint

	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	// ServiceIDs keeps the booking order of the lines.
	ServiceIDs []uint

	Date  string
	Time  string
	Notes string

	BookedByStaff bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCreateAppointment(
	repo domain.Repository,
	sink audit.Sink,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: sink,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	// --------------------------------------------------
	// 1. Shop
	// --------------------------------------------------
	shop, err := uc.repo.GetTenantByID(ctx, in.TenantID)
	if err != nil {
		return nil, err
	}
	if !shop.Active {
		return nil, httperr.ErrBusiness("tenant_inactive")
	}

	// --------------------------------------------------
	// 2. Date / time in the shop's timezone
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(shop.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	// --------------------------------------------------
	// 3. Minimum advance
	// --------------------------------------------------
	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 60
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Services, in booking order
	// --------------------------------------------------
	var total time.Duration
	lines := make([]models.AppointmentService, 0, len(in.ServiceIDs))

	for i, id := range in.ServiceIDs {
		svc, err := uc.repo.GetService(ctx, in.TenantID, id)
		if err != nil {
			return nil, err
		}
		if !svc.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}

		total += time.Duration(svc.DurationMin) * time.Minute
		lines = append(lines, models.AppointmentService{
			ServiceID: svc.ID,
			Position:  i,
		})
	}

	end := start.Add(total)

	// --------------------------------------------------
	// 5. Personnel + working hours
	// --------------------------------------------------
	personnel, err := uc.repo.GetPersonnel(ctx, in.TenantID, in.PersonnelID)
	if err != nil {
		return nil, err
	}
	if !personnel.Active {
		return nil, httperr.ErrBusiness("personnel_not_found")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, personnel.ID, int(start.Weekday()))
	if err != nil {
		return nil, err
	}
	if !domain.WithinWorkingHours(wh, start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// 6. Customer (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		in.TenantID,
		in.CustomerName,
		in.CustomerPhone,
		in.CustomerEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Time conflict
	// --------------------------------------------------
	if err := uc.repo.AssertNoTimeConflict(
		ctx,
		personnel.ID,
		start,
		end,
	); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Create
	// --------------------------------------------------
	ap := &models.Appointment{
		TenantID:    in.TenantID,
		CustomerID:  &customer.ID,
		PersonnelID: &personnel.ID,
		StartTime:   start,
		EndTime:     end,
		Status:      string(domain.InitialStatus(in.BookedByStaff)),
		Notes:       in.Notes,
		Services:    lines,
	}
	if domain.Status(ap.Status) == domain.StatusConfirmed {
		ap.ConfirmedAt = &now
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		TenantID: in.TenantID,
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
