package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Tenant --------
	GetTenantByID(
		ctx context.Context,
		id uint,
	) (*models.Tenant, error)

	// -------- Catalog / staff --------
	GetService(
		ctx context.Context,
		tenantID uint,
		serviceID uint,
	) (*models.Service, error)

	GetPersonnel(
		ctx context.Context,
		tenantID uint,
		personnelID uint,
	) (*models.Personnel, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		tenantID uint,
		name string,
		phone string,
		email string,
	) (*models.Customer, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	AssertNoTimeConflict(
		ctx context.Context,
		personnelID uint,
		start time.Time,
		end time.Time,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		tenantID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// UpdateAppointmentStatus is a compare-and-set on the stored status.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error

	// -------- Availability --------
	// GetWorkingHours returns nil when the personnel does not work that day.
	GetWorkingHours(
		ctx context.Context,
		personnelID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListBusyAppointments(
		ctx context.Context,
		personnelID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		tenantID uint,
		personnelID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}

// UnitOfWork runs fn inside one store transaction; fn's repositories are
// bound to that transaction.
type UnitOfWork interface {
	Within(
		ctx context.Context,
		fn func(appointments Repository, operations operation.Repository) error,
	) error
}
