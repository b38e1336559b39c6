package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/operation"
)

type GormUnitOfWork struct {
	db *gorm.DB
}

func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

func (u *GormUnitOfWork) Within(
	ctx context.Context,
	fn func(appointments domain.Repository, operations operation.Repository) error,
) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(
			NewAppointmentGormRepository(tx),
			NewOperationGormRepository(tx),
		)
	})
}

var _ domain.UnitOfWork = (*GormUnitOfWork)(nil)
