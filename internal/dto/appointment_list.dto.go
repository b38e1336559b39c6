package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID            uint      `json:"id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	PersonnelID   *uint     `json:"personnel_id"`
	PersonnelName string    `json:"personnel_name"`
	Services      []string  `json:"services"`
	Notes         string    `json:"notes"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	out := AppointmentListDTO{
		ID:          ap.ID,
		StartTime:   ap.StartTime,
		EndTime:     ap.EndTime,
		Status:      ap.Status,
		PersonnelID: ap.PersonnelID,
		Services:    make([]string, 0, len(ap.Services)),
		Notes:       ap.Notes,
	}
	if ap.Customer != nil {
		out.CustomerName = ap.Customer.Name
	}
	if ap.Personnel != nil {
		out.PersonnelName = ap.Personnel.Name
	}
	for _, line := range ap.Services {
		if line.Service != nil {
			out.Services = append(out.Services, line.Service.Name)
		}
	}
	return out
}
