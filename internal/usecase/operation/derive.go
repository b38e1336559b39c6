package operation

import (
	"context"
	"errors"
	"log/slog"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Deriver turns a completed appointment into one operation per service
// line. Running it again for the same appointment updates the existing
// rows in place.
type Deriver struct {
	repo   operation.Repository
	logger *slog.Logger
}

func NewDeriver(repo operation.Repository, logger *slog.Logger) *Deriver {
	return &Deriver{repo: repo, logger: logger}
}

// WithRepository returns a copy of d bound to repo, typically a
// transaction-scoped repository.
func (d *Deriver) WithRepository(repo operation.Repository) *Deriver {
	cp := *d
	cp.repo = repo
	return &cp
}

// Derive writes the operations of ap for tenantID and returns them in line
// order. Missing personnel or services are skipped with a warning; a
// personnel of another tenant aborts before any write.
func (d *Deriver) Derive(
	ctx context.Context,
	tenantID uint,
	ap *models.Appointment,
) ([]models.Operation, error) {

	if domain.Status(ap.Status) != domain.StatusCompleted {
		return nil, operation.ErrNotCompleted
	}

	log := d.logger.With("appointment_id", ap.ID, "tenant_id", tenantID)

	if ap.PersonnelID == nil || *ap.PersonnelID == 0 {
		metrics.DerivationSkipped.WithLabelValues("no_personnel").Inc()
		log.Warn("completed appointment has no personnel, no operations derived")
		return []models.Operation{}, nil
	}

	serviceIDs := ap.ServiceIDs()
	if len(serviceIDs) == 0 {
		metrics.DerivationSkipped.WithLabelValues("no_services").Inc()
		log.Warn("completed appointment has no service lines")
		return []models.Operation{}, nil
	}

	// --------------------------------------------------
	// Personnel + tenant isolation
	// --------------------------------------------------
	personnel, err := d.repo.GetPersonnel(ctx, *ap.PersonnelID)
	if errors.Is(err, operation.ErrPersonnelNotFound) {
		metrics.DerivationSkipped.WithLabelValues("personnel_not_found").Inc()
		log.Warn("personnel not found, no operations derived", "personnel_id", *ap.PersonnelID)
		return []models.Operation{}, nil
	}
	if err != nil {
		return nil, err
	}

	if personnel.TenantID != tenantID {
		metrics.DerivationFailures.WithLabelValues("cross_tenant").Inc()
		log.Error("personnel belongs to another tenant",
			"personnel_id", personnel.ID,
			"personnel_tenant_id", personnel.TenantID,
		)
		return nil, &operation.CrossTenantError{
			AppointmentID:   ap.ID,
			PersonnelID:     personnel.ID,
			ActingTenantID:  tenantID,
			PersonnelTenant: personnel.TenantID,
		}
	}

	customerName, err := d.customerName(ctx, tenantID, ap.CustomerID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Lines
	// --------------------------------------------------
	ops := make([]models.Operation, 0, len(serviceIDs))
	seen := make(map[uint]bool, len(serviceIDs))

	for _, serviceID := range serviceIDs {
		// the line key has no position, repeated services share one row
		if seen[serviceID] {
			continue
		}
		seen[serviceID] = true

		svc, err := d.repo.GetService(ctx, tenantID, serviceID)
		if errors.Is(err, operation.ErrServiceNotFound) {
			metrics.DerivationSkipped.WithLabelValues("service_not_found").Inc()
			log.Warn("service not found, line skipped", "service_id", serviceID)
			continue
		}
		if err != nil {
			return nil, err
		}

		op, err := d.writeLine(ctx, tenantID, ap, personnel, svc, customerName)
		if err != nil {
			metrics.DerivationFailures.WithLabelValues("store_write").Inc()
			return nil, err
		}
		ops = append(ops, *op)
	}

	log.Info("operations derived", "count", len(ops), "personnel_id", personnel.ID)
	return ops, nil
}

func (d *Deriver) writeLine(
	ctx context.Context,
	tenantID uint,
	ap *models.Appointment,
	personnel *models.Personnel,
	svc *models.Service,
	customerName string,
) (*models.Operation, error) {

	line := operation.ComputeLine(svc, personnel.CommissionPercentage)
	description := operation.Describe(svc.Name, customerName, ap.ID)

	existing, err := d.repo.FindLine(ctx, ap.ID, svc.ID, personnel.ID)
	switch {
	case err == nil:
		line.Apply(existing)
		existing.TenantID = tenantID
		existing.CustomerID = ap.CustomerID
		existing.Description = description
		existing.Notes = ap.Notes

		if err := d.repo.UpdateOperation(ctx, existing); err != nil {
			return nil, &operation.StoreWriteError{Op: "update", Err: err}
		}
		metrics.OperationsDerived.WithLabelValues("updated").Inc()
		return existing, nil

	case errors.Is(err, operation.ErrOperationNotFound):
		apID := ap.ID
		op := &models.Operation{
			TenantID:      tenantID,
			AppointmentID: &apID,
			ServiceID:     svc.ID,
			PersonnelID:   personnel.ID,
			CustomerID:    ap.CustomerID,
			Description:   description,
			Notes:         ap.Notes,
		}
		line.Apply(op)

		if err := d.repo.UpsertOperation(ctx, op); err != nil {
			return nil, &operation.StoreWriteError{Op: "insert", Err: err}
		}
		metrics.OperationsDerived.WithLabelValues("inserted").Inc()
		return op, nil

	default:
		return nil, err
	}
}

func (d *Deriver) customerName(ctx context.Context, tenantID uint, customerID *uint) (string, error) {
	if customerID == nil {
		return operation.UnspecifiedCustomer, nil
	}

	c, err := d.repo.GetCustomer(ctx, tenantID, *customerID)
	if errors.Is(err, operation.ErrCustomerNotFound) {
		return operation.UnspecifiedCustomer, nil
	}
	if err != nil {
		return "", err
	}
	if c.Name == "" {
		return operation.UnspecifiedCustomer, nil
	}
	return c.Name, nil
}
