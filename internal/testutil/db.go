// Package testutil builds migrated in-memory databases and seed data for
// tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// NewDB opens a private in-memory SQLite database with the full schema.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func Ptr[T any](v T) *T { return &v }

// Must fails the test when err is non-nil.
func Must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

type Shop struct {
	Tenant    models.Tenant
	Owner     models.User
	Personnel models.Personnel
	Customer  models.Customer
	Services  []models.Service
}

// SeedShop creates a tenant with an owner, one personnel at the given
// commission, one customer and the given services.
func SeedShop(t testing.TB, gdb *gorm.DB, code string, commission float64, services ...models.Service) Shop {
	t.Helper()

	owner := models.User{Name: "Owner " + code, Email: code + "@salon.test", PasswordHash: "x", Role: models.RoleAdmin}
	Must(t, gdb.Create(&owner).Error)

	tenant := models.Tenant{OwnerID: owner.ID, Code: code, Name: "Shop " + code, Timezone: "UTC", Active: true}
	Must(t, gdb.Create(&tenant).Error)

	personnel := models.Personnel{TenantID: tenant.ID, Name: "Stylist " + code, CommissionPercentage: commission, Active: true}
	Must(t, gdb.Create(&personnel).Error)

	customer := models.Customer{TenantID: tenant.ID, Name: "Ayşe Yılmaz", Phone: "+905550000000"}
	Must(t, gdb.Create(&customer).Error)

	for i := range services {
		services[i].TenantID = tenant.ID
		Must(t, gdb.Create(&services[i]).Error)
	}

	return Shop{
		Tenant:    tenant,
		Owner:     owner,
		Personnel: personnel,
		Customer:  customer,
		Services:  services,
	}
}

// SeedAppointment stores an appointment with its service lines in order.
func SeedAppointment(t testing.TB, gdb *gorm.DB, ap models.Appointment, serviceIDs ...uint) models.Appointment {
	t.Helper()

	if ap.StartTime.IsZero() {
		ap.StartTime = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
		ap.EndTime = ap.StartTime.Add(time.Hour)
	}
	for i, id := range serviceIDs {
		ap.Services = append(ap.Services, models.AppointmentService{ServiceID: id, Position: i})
	}
	Must(t, gdb.Create(&ap).Error)
	return ap
}
