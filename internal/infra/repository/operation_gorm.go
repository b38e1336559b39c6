package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var lineKey = []clause.Column{
	{Name: "appointment_id"},
	{Name: "service_id"},
	{Name: "personnel_id"},
}

var derivedColumns = []string{
	"tenant_id",
	"customer_id",
	"amount",
	"commission_percentage",
	"paid_amount",
	"points",
	"description",
	"notes",
	"updated_at",
}

type OperationGormRepository struct {
	db *gorm.DB
}

func NewOperationGormRepository(db *gorm.DB) *OperationGormRepository {
	return &OperationGormRepository{db: db}
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (r *OperationGormRepository) GetPersonnel(ctx context.Context, personnelID uint) (*models.Personnel, error) {
	var p models.Personnel
	if err := r.db.WithContext(ctx).First(&p, personnelID).Error; err != nil {
		return nil, notFound(err, operation.ErrPersonnelNotFound)
	}
	return &p, nil
}

func (r *OperationGormRepository) GetService(ctx context.Context, tenantID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", serviceID, tenantID).
		First(&svc).Error; err != nil {
		return nil, notFound(err, operation.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *OperationGormRepository) GetCustomer(ctx context.Context, tenantID, customerID uint) (*models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", customerID, tenantID).
		First(&c).Error; err != nil {
		return nil, notFound(err, operation.ErrCustomerNotFound)
	}
	return &c, nil
}

func (r *OperationGormRepository) FindLine(ctx context.Context, appointmentID, serviceID, personnelID uint) (*models.Operation, error) {
	var op models.Operation
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND service_id = ? AND personnel_id = ?", appointmentID, serviceID, personnelID).
		First(&op).Error; err != nil {
		return nil, notFound(err, operation.ErrOperationNotFound)
	}
	return &op, nil
}

func (r *OperationGormRepository) UpdateOperation(ctx context.Context, op *models.Operation) error {
	return r.db.WithContext(ctx).
		Model(op).
		Select(derivedColumns).
		Updates(op).Error
}

// UpsertOperation relies on the ux_operation_line index: a concurrent insert
// of the same line turns into an update instead of a duplicate row.
func (r *OperationGormRepository) UpsertOperation(ctx context.Context, op *models.Operation) error {
	if op.AppointmentID == nil {
		return r.db.WithContext(ctx).Create(op).Error
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   lineKey,
			DoUpdates: clause.AssignmentColumns(derivedColumns),
		}).
		Create(op).Error; err != nil {
		return err
	}

	stored, err := r.FindLine(ctx, *op.AppointmentID, op.ServiceID, op.PersonnelID)
	if err != nil {
		return err
	}
	*op = *stored
	return nil
}

// --------------------------------------------------
// Query
// --------------------------------------------------

func (r *OperationGormRepository) ListOperations(ctx context.Context, f operation.ListFilter) ([]models.Operation, int64, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Operation{}).
		Where("tenant_id = ?", f.TenantID)

	if f.PersonnelID != nil {
		q = q.Where("personnel_id = ?", *f.PersonnelID)
	}
	if f.AppointmentID != nil {
		q = q.Where("appointment_id = ?", *f.AppointmentID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var ops []models.Operation
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(f.Offset).
		Find(&ops).Error; err != nil {
		return nil, 0, err
	}

	return ops, total, nil
}

func (r *OperationGormRepository) GetOperation(ctx context.Context, tenantID, operationID uint) (*models.Operation, error) {
	var op models.Operation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", operationID, tenantID).
		First(&op).Error; err != nil {
		return nil, notFound(err, operation.ErrOperationNotFound)
	}
	return &op, nil
}

func (r *OperationGormRepository) SavePhotos(ctx context.Context, op *models.Operation) error {
	return r.db.WithContext(ctx).
		Model(op).
		Select("photos", "updated_at").
		Updates(op).Error
}

var (
	_ operation.Repository = (*OperationGormRepository)(nil)
	_ operation.Query      = (*OperationGormRepository)(nil)
)
