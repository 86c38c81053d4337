// internal/service/evaluator.go
package service

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/model"
	"github.com/cosmos-order/trial-engine/internal/store"
)

// Evaluator walks the trial store on each timer tick and fires due
// campaigns. A campaign id lands in CampaignsSent only after its
// dispatch round trip succeeded, so a failed send stays eligible for the
// next sweep and a sent one can never fire again.
type Evaluator struct {
	Store      *store.TrialStore
	Catalog    []model.CampaignTemplate
	Dispatcher *Dispatcher
	now        func() time.Time
}

// NewEvaluator wires an evaluator. now may be nil for the wall clock.
func NewEvaluator(s *store.TrialStore, catalog []model.CampaignTemplate, d *Dispatcher, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{
		Store:      s,
		Catalog:    catalog,
		Dispatcher: d,
		now:        now,
	}
}

// campaignDue applies the trigger rules. Due means: unsent, applicable
// to the trial length, within its days-remaining threshold, and all
// guards hold at evaluation time. The threshold is a <= comparison, so
// a missed hourly tick delays a campaign instead of skipping it.
func campaignDue(t *model.TrialUser, c model.CampaignTemplate, cd model.CountdownSnapshot, now time.Time) bool {
	if t.HasCampaign(c.ID) {
		return false
	}
	if c.Trigger.TriggerDays < 0 {
		// Start-of-trial campaigns go out at creation; the sweep only
		// picks one up when that dispatch failed. Win-back entries
		// belong to the expiry sweep.
		return c.Trigger.DaysAfterExpiry == 0
	}
	if c.Trigger.TriggerDays >= t.TrialDays {
		return false
	}
	if cd.DaysRemaining > c.Trigger.TriggerDays {
		return false
	}
	if u := c.Trigger.RequiredUrgency; u != "" && cd.UrgencyLevel != u {
		return false
	}
	if h := c.Trigger.InactivityHours; h > 0 && now.Sub(t.LastActivity) < time.Duration(h)*time.Hour {
		return false
	}
	return true
}

// RunHourlySweep evaluates every active trial against the catalog.
// Converted and expired trials are skipped; expiry is the midnight
// sweep's business.
func (e *Evaluator) RunHourlySweep() {
	now := e.now()
	var dispatched int

	e.Store.ForEach(func(t *model.TrialUser) {
		if t.Converted() {
			return
		}
		cd := ComputeCountdown(t, now)
		if cd.TotalSeconds == 0 {
			return
		}
		t.UrgencyLevel = cd.UrgencyLevel

		for _, c := range e.Catalog {
			if !campaignDue(t, c, cd, now) {
				continue
			}
			if err := e.Dispatcher.Dispatch(t, c, cd); err != nil {
				log.Warn().Err(err).Str("invitation", t.InvitationID).Str("campaign", c.ID).
					Msg("⚠️ dispatch failed, will retry next sweep")
				continue
			}
			t.CampaignsSent = append(t.CampaignsSent, c.ID)
			cd.CampaignsSent = append(cd.CampaignsSent, c.ID)
			dispatched++
		}
	})

	log.Info().Int("dispatched", dispatched).Msg("hourly trigger sweep done")
}

// RunDailyReminder logs the funnel's urgency distribution, the 09:00
// operator heartbeat.
func (e *Evaluator) RunDailyReminder() {
	now := e.now()
	counts := map[model.UrgencyLevel]int{}
	var active int

	e.Store.ForEach(func(t *model.TrialUser) {
		if t.Converted() || !t.TrialEndDate.After(now) {
			return
		}
		active++
		counts[ComputeCountdown(t, now).UrgencyLevel]++
	})

	log.Info().
		Int("active", active).
		Int("critical", counts[model.UrgencyCritical]).
		Int("high", counts[model.UrgencyHigh]).
		Int("medium", counts[model.UrgencyMedium]).
		Int("low", counts[model.UrgencyLow]).
		Msg("daily trial reminder")
}

// RunExpirySweep fires win-back campaigns for expired, unconverted
// trials once their expiry age reaches the campaign threshold.
func (e *Evaluator) RunExpirySweep() {
	now := e.now()
	var dispatched int

	e.Store.ForEach(func(t *model.TrialUser) {
		if t.Converted() || t.TrialEndDate.After(now) {
			return
		}
		age := now.Sub(t.TrialEndDate)

		for _, c := range e.Catalog {
			if c.Trigger.DaysAfterExpiry <= 0 || t.HasCampaign(c.ID) {
				continue
			}
			if age < time.Duration(c.Trigger.DaysAfterExpiry)*day {
				continue
			}
			cd := ComputeCountdown(t, now)
			if err := e.Dispatcher.Dispatch(t, c, cd); err != nil {
				log.Warn().Err(err).Str("invitation", t.InvitationID).Str("campaign", c.ID).
					Msg("⚠️ win-back dispatch failed")
				continue
			}
			t.CampaignsSent = append(t.CampaignsSent, c.ID)
			dispatched++
		}
	})

	log.Info().Int("dispatched", dispatched).Msg("expiration/win-back sweep done")
}
