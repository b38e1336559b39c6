package operation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is what the deriver needs from the record store. Lookups
// report the package's not-found sentinels.
type Repository interface {
	// GetPersonnel is not tenant scoped: the caller checks the tenant.
	GetPersonnel(ctx context.Context, personnelID uint) (*models.Personnel, error)
	GetService(ctx context.Context, tenantID, serviceID uint) (*models.Service, error)
	GetCustomer(ctx context.Context, tenantID, customerID uint) (*models.Customer, error)

	FindLine(ctx context.Context, appointmentID, serviceID, personnelID uint) (*models.Operation, error)
	UpdateOperation(ctx context.Context, op *models.Operation) error
	// UpsertOperation inserts op or, on a conflicting line key, updates the
	// stored row. op is refreshed with the stored row.
	UpsertOperation(ctx context.Context, op *models.Operation) error
}

type ListFilter struct {
	TenantID      uint
	PersonnelID   *uint
	AppointmentID *uint
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

type Query interface {
	ListOperations(ctx context.Context, f ListFilter) ([]models.Operation, int64, error)
	GetOperation(ctx context.Context, tenantID, operationID uint) (*models.Operation, error)
	SavePhotos(ctx context.Context, op *models.Operation) error
}
