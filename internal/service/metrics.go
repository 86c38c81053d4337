// internal/service/metrics.go
package service

import "github.com/cosmos-order/trial-engine/internal/model"

// ConversionMetrics is the aggregate funnel view over all trials.
type ConversionMetrics struct {
	TotalTrials      int     `json:"total_trials"`
	ActiveTrials     int     `json:"active_trials"`
	ExpiredTrials    int     `json:"expired_trials"`
	ConvertedTrials  int     `json:"converted_trials"`
	ConversionRate   float64 `json:"conversion_rate"` // percent
	AvgTrialDays     float64 `json:"avg_trial_days"`
	PotentialRevenue float64 `json:"potential_revenue"`
	ActualRevenue    float64 `json:"actual_revenue"`
}

// GetConversionMetrics scans the trial store and aggregates funnel
// counts and revenue. Read-only; O(n) over the store, which stays small
// for a sales funnel.
func (s *TrialService) GetConversionMetrics() ConversionMetrics {
	now := s.now()
	var m ConversionMetrics
	var totalDays int

	s.Store.ForEach(func(t *model.TrialUser) {
		m.TotalTrials++
		totalDays += t.TrialDays
		m.PotentialRevenue += t.ConversionGoal

		if t.TrialEndDate.After(now) {
			m.ActiveTrials++
		} else {
			m.ExpiredTrials++
		}

		for _, ev := range t.ConversionEvents {
			if ev.Event == "converted" {
				m.ConvertedTrials++
				m.ActualRevenue += ev.Value
				break
			}
		}
	})

	if m.TotalTrials > 0 {
		m.ConversionRate = float64(m.ConvertedTrials) / float64(m.TotalTrials) * 100
		m.AvgTrialDays = float64(totalDays) / float64(m.TotalTrials)
	}
	return m
}
