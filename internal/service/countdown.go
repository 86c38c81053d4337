// internal/service/countdown.go
package service

import (
	"time"

	"github.com/cosmos-order/trial-engine/internal/model"
)

const day = 24 * time.Hour

// ComputeCountdown derives a countdown snapshot from a trial and the
// current time. Pure: same inputs always yield the same snapshot.
func ComputeCountdown(t *model.TrialUser, now time.Time) model.CountdownSnapshot {
	remaining := t.TrialEndDate.Sub(now)
	if remaining < 0 {
		remaining = 0
	}

	days := int(remaining / day)
	hours := int((remaining % day) / time.Hour)
	minutes := int((remaining % time.Hour) / time.Minute)

	return model.CountdownSnapshot{
		TotalSeconds:     int64(remaining / time.Second),
		DaysRemaining:    days,
		HoursRemaining:   hours,
		MinutesRemaining: minutes,
		UrgencyLevel:     classifyUrgency(t, days, now),
		CampaignsSent:    append([]string(nil), t.CampaignsSent...),
	}
}

// classifyUrgency applies the priority-ordered urgency rules, first
// match wins.
func classifyUrgency(t *model.TrialUser, daysRemaining int, now time.Time) model.UrgencyLevel {
	stale := now.Sub(t.LastActivity) > 2*day
	switch {
	case daysRemaining <= 1:
		return model.UrgencyCritical
	case daysRemaining <= 3:
		return model.UrgencyHigh
	case daysRemaining <= 7 && (stale || len(t.FeaturesActivated) < 3):
		return model.UrgencyHigh
	case daysRemaining <= 14:
		return model.UrgencyMedium
	}
	return model.UrgencyLow
}
