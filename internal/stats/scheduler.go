package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs RecomputeAll on a fixed interval in the background.
type Scheduler struct {
	s      *gocron.Scheduler
	agg    *Aggregator
	logger *slog.Logger
}

func NewScheduler(agg *Aggregator, every time.Duration, logger *slog.Logger) (*Scheduler, error) {
	sch := &Scheduler{
		s:      gocron.NewScheduler(time.UTC),
		agg:    agg,
		logger: logger,
	}

	if _, err := sch.s.Every(every).SingletonMode().Do(sch.sweep); err != nil {
		return nil, err
	}
	return sch, nil
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.agg.RecomputeAll(ctx); err != nil {
		s.logger.Error("statistics sweep finished with errors", "err", err, "duration", time.Since(start))
		return
	}
	s.logger.Info("statistics sweep finished", "duration", time.Since(start))
}

func (s *Scheduler) Start() {
	s.s.StartAsync()
}

func (s *Scheduler) Stop() {
	s.s.Stop()
}
