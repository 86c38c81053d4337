// internal/scheduler/scheduler.go
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/service"
)

// The three recurring sweeps, standard 5-field cron expressions.
const (
	hourlySweepSchedule   = "0 * * * *"
	dailyReminderSchedule = "0 9 * * *"
	expirySweepSchedule   = "0 0 * * *"
)

// Scheduler drives the evaluator's sweeps off a cron timer.
type Scheduler struct {
	cron      *cron.Cron
	evaluator *service.Evaluator
}

// New creates a scheduler for the given evaluator.
func New(evaluator *service.Evaluator) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		evaluator: evaluator,
	}
}

// Start registers the three sweeps and starts the timer. Each sweep runs
// to completion once fired; the store serializes overlapping runs.
func (s *Scheduler) Start() error {
	jobs := []struct {
		schedule string
		name     string
		run      func()
	}{
		{hourlySweepSchedule, "hourly_trigger_sweep", s.evaluator.RunHourlySweep},
		{dailyReminderSchedule, "daily_reminder", s.evaluator.RunDailyReminder},
		{expirySweepSchedule, "expiry_winback_sweep", s.evaluator.RunExpirySweep},
	}

	for _, j := range jobs {
		if _, err := s.cron.AddFunc(j.schedule, j.run); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
		log.Info().Str("job", j.name).Str("schedule", j.schedule).Msg("sweep scheduled")
	}

	s.cron.Start()
	return nil
}

// Stop halts the timer; a running sweep finishes first.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("scheduler stopped")
}
