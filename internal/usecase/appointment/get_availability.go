package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute lists the free slots of a personnel on in.Date for the combined
// duration of the requested services. in.Date carries the shop's location.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	var total time.Duration
	for _, id := range in.ServiceIDs {
		svc, err := uc.repo.GetService(ctx, in.TenantID, id)
		if err != nil {
			return nil, err
		}
		total += time.Duration(svc.DurationMin) * time.Minute
	}
	if total <= 0 {
		return []domain.TimeSlot{}, nil
	}

	if _, err := uc.repo.GetPersonnel(ctx, in.TenantID, in.PersonnelID); err != nil {
		return nil, err
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.PersonnelID, int(in.Date.Weekday()))
	if err != nil {
		return nil, err
	}
	if wh == nil || !wh.Active {
		return []domain.TimeSlot{}, nil
	}

	dayStart := domain.ClockOn(in.Date, wh.StartTime)
	dayEnd := domain.ClockOn(in.Date, wh.EndTime)

	busy, err := uc.repo.ListBusyAppointments(ctx, in.PersonnelID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := []domain.TimeSlot{}
	apIdx := 0

	for cur := dayStart; !cur.Add(total).After(dayEnd); cur = cur.Add(total) {
		slotStart := cur
		slotEnd := cur.Add(total)

		if !domain.WithinWorkingHours(wh, slotStart, slotEnd) {
			continue
		}

		// skip appointments that ended before this slot
		for apIdx < len(busy) && !busy[apIdx].EndTime.After(slotStart) {
			apIdx++
		}

		conflict := false
		for j := apIdx; j < len(busy) && busy[j].StartTime.Before(slotEnd); j++ {
			if slotStart.Before(busy[j].EndTime) && slotEnd.After(busy[j].StartTime) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, domain.TimeSlot{
				Start: slotStart.Format("15:04"),
				End:   slotEnd.Format("15:04"),
			})
		}
	}

	return slots, nil
}
