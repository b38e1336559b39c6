package operation

import (
	"errors"
	"fmt"
)

var (
	// ErrCrossTenantViolation aborts a derivation before any write.
	ErrCrossTenantViolation = errors.New("cross-tenant violation")

	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrOperationNotFound = errors.New("operation not found")

	ErrNotCompleted = errors.New("appointment is not completed")
)

type CrossTenantError struct {
	AppointmentID   uint
	PersonnelID     uint
	ActingTenantID  uint
	PersonnelTenant uint
}

func (e *CrossTenantError) Error() string {
	return fmt.Sprintf("appointment %d: personnel %d belongs to tenant %d, acting tenant is %d",
		e.AppointmentID, e.PersonnelID, e.PersonnelTenant, e.ActingTenantID)
}

func (e *CrossTenantError) Unwrap() error {
	return ErrCrossTenantViolation
}

// StoreWriteError wraps a failed insert or update of an operation row.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	return fmt.Sprintf("operation %s failed: %v", e.Op, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}
