package appointment_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/retry"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
)

type recordingSink struct {
	mu     sync.Mutex
	events []audit.Event
}

func (s *recordingSink) Dispatch(ev audit.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Action)
	}
	return out
}

type countingRefresher struct {
	calls []uint
}

func (r *countingRefresher) Refresh(_ context.Context, tenantID uint) {
	r.calls = append(r.calls, tenantID)
}

func fastPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:     3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		MaxElapsed:      time.Second,
	}
}

func seedSalon(t *testing.T, gdb *gorm.DB) testutil.Shop {
	return testutil.SeedShop(t, gdb, "salon", 40,
		models.Service{Name: "Haircut", DurationMin: 30, Price: testutil.Ptr(200.0), PointValue: testutil.Ptr(5)},
		models.Service{Name: "Blow dry", DurationMin: 20, Price: testutil.Ptr(100.0), PointValue: testutil.Ptr(2)},
	)
}
