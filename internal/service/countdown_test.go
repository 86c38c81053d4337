package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cosmos-order/trial-engine/internal/model"
)

func trialEnding(now time.Time, remaining time.Duration) *model.TrialUser {
	return &model.TrialUser{
		InvitationID:      "INV-CD",
		TrialDays:         30,
		TrialStartDate:    now.Add(remaining).AddDate(0, 0, -30),
		TrialEndDate:      now.Add(remaining),
		LastActivity:      now,
		FeaturesActivated: []string{"rooms", "bookings", "housekeeping"},
	}
}

func TestCountdownDecomposition(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := trialEnding(now, 2*24*time.Hour+5*time.Hour+30*time.Minute+45*time.Second)

	cd := ComputeCountdown(trial, now)

	assert.Equal(t, 2, cd.DaysRemaining)
	assert.Equal(t, 5, cd.HoursRemaining)
	assert.Equal(t, 30, cd.MinutesRemaining)
	assert.Equal(t, int64(2*86400+5*3600+30*60+45), cd.TotalSeconds)
}

func TestCountdownClampsAtZero(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := trialEnding(now, -48*time.Hour)

	cd := ComputeCountdown(trial, now)

	assert.Equal(t, int64(0), cd.TotalSeconds)
	assert.Equal(t, 0, cd.DaysRemaining)
	assert.Equal(t, 0, cd.HoursRemaining)
	assert.Equal(t, 0, cd.MinutesRemaining)
	assert.Equal(t, model.UrgencyCritical, cd.UrgencyLevel)
}

func TestCountdownIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := trialEnding(now, 9*24*time.Hour)

	first := ComputeCountdown(trial, now)
	second := ComputeCountdown(trial, now)

	assert.Equal(t, first, second)
}

func TestUrgencyRules(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		remaining time.Duration
		inactive  time.Duration
		features  int
		want      model.UrgencyLevel
	}{
		{"one day left is critical", 24 * time.Hour, 0, 3, model.UrgencyCritical},
		{"three days left is high", 3 * 24 * time.Hour, 0, 3, model.UrgencyHigh},
		{"engaged week out is medium", 6 * 24 * time.Hour, 0, 3, model.UrgencyMedium},
		{"stale week out is high", 6 * 24 * time.Hour, 3 * 24 * time.Hour, 3, model.UrgencyHigh},
		{"few features week out is high", 6 * 24 * time.Hour, 0, 2, model.UrgencyHigh},
		{"two weeks out is medium", 14 * 24 * time.Hour, 0, 3, model.UrgencyMedium},
		{"month out is low", 29 * 24 * time.Hour, 0, 3, model.UrgencyLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trial := trialEnding(now, tc.remaining)
			trial.LastActivity = now.Add(-tc.inactive)
			trial.FeaturesActivated = trial.FeaturesActivated[:tc.features]

			cd := ComputeCountdown(trial, now)
			assert.Equal(t, tc.want, cd.UrgencyLevel)
		})
	}
}

// Exactly one day remaining on a short trial must classify as critical.
func TestShortTrialLastDayIsCritical(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	trial := &model.TrialUser{
		TrialDays:      3,
		TrialStartDate: start,
		TrialEndDate:   start.AddDate(0, 0, 3),
		LastActivity:   start,
	}

	now := start.Add(2 * 24 * time.Hour) // exactly 1 day remains
	cd := ComputeCountdown(trial, now)

	assert.Equal(t, 1, cd.DaysRemaining)
	assert.Equal(t, model.UrgencyCritical, cd.UrgencyLevel)
}

// A stale trial five days out with under three features must hit the
// engagement rule, not fall through to medium.
func TestStaleTrialFiveDaysOutIsHigh(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	trial := trialEnding(now, 5*24*time.Hour)
	trial.LastActivity = now.Add(-3 * 24 * time.Hour)
	trial.FeaturesActivated = []string{"rooms", "bookings"}

	cd := ComputeCountdown(trial, now)

	assert.Equal(t, model.UrgencyHigh, cd.UrgencyLevel)
}

func TestUrgencySeverityNonIncreasingWithMoreDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rank := map[model.UrgencyLevel]int{
		model.UrgencyLow:      0,
		model.UrgencyMedium:   1,
		model.UrgencyHigh:     2,
		model.UrgencyCritical: 3,
	}

	prev := rank[model.UrgencyCritical] + 1
	for days := 0; days <= 30; days++ {
		trial := trialEnding(now, time.Duration(days)*24*time.Hour)
		cd := ComputeCountdown(trial, now)
		cur := rank[cd.UrgencyLevel]
		if cur > prev {
			t.Fatalf("urgency increased from rank %d to %d at %d days remaining", prev, cur, days)
		}
		prev = cur
	}
}
