package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/stats"
)

type StatisticsGormRepository struct {
	db *gorm.DB
}

func NewStatisticsGormRepository(db *gorm.DB) *StatisticsGormRepository {
	return &StatisticsGormRepository{db: db}
}

func (r *StatisticsGormRepository) CountAppointmentsByStatus(ctx context.Context, tenantID uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *StatisticsGormRepository) SumOperations(ctx context.Context, tenantID uint) (stats.OperationTotals, error) {
	var t stats.OperationTotals
	err := r.db.WithContext(ctx).
		Model(&models.Operation{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(amount), 0.0) AS revenue,
			COALESCE(SUM(paid_amount), 0.0) AS commission,
			COALESCE(SUM(points), 0) AS points`).
		Where("tenant_id = ?", tenantID).
		Scan(&t).Error
	return t, err
}

func (r *StatisticsGormRepository) SaveStatistics(ctx context.Context, s *models.ShopStatistics) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			UpdateAll: true,
		}).
		Create(s).Error
}

func (r *StatisticsGormRepository) GetStatistics(ctx context.Context, tenantID uint) (*models.ShopStatistics, error) {
	var s models.ShopStatistics
	if err := r.db.WithContext(ctx).First(&s, "tenant_id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StatisticsGormRepository) ListActiveTenantIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.Tenant{}).
		Where("active = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}

var _ stats.Store = (*StatisticsGormRepository)(nil)
