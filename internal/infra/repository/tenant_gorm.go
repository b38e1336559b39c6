package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/tenant"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type TenantGormRepository struct {
	db *gorm.DB
}

func NewTenantGormRepository(db *gorm.DB) *TenantGormRepository {
	return &TenantGormRepository{db: db}
}

func (r *TenantGormRepository) TenantIDByOwner(ctx context.Context, userID uint) (uint, bool, error) {
	var t models.Tenant
	err := r.db.WithContext(ctx).
		Select("id").
		Where("owner_id = ?", userID).
		Order("id ASC").
		First(&t).Error
	return found(t.ID, err)
}

func (r *TenantGormRepository) TenantIDByPersonnel(ctx context.Context, userID uint) (uint, bool, error) {
	var p models.Personnel
	err := r.db.WithContext(ctx).
		Select("tenant_id").
		Where("user_id = ? AND tenant_id <> 0", userID).
		Order("id ASC").
		First(&p).Error
	return found(p.TenantID, err)
}

func (r *TenantGormRepository) TenantIDByProfile(ctx context.Context, userID uint) (uint, bool, error) {
	var p models.Profile
	err := r.db.WithContext(ctx).
		Select("tenant_id").
		Where("user_id = ? AND tenant_id IS NOT NULL", userID).
		First(&p).Error
	if err != nil || p.TenantID == nil {
		return found(0, err)
	}
	return found(*p.TenantID, nil)
}

func found(id uint, err error) (uint, bool, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return id, id != 0, nil
}

var _ tenant.Lookup = (*TenantGormRepository)(nil)
