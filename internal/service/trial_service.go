// internal/service/trial_service.go
package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/model"
	"github.com/cosmos-order/trial-engine/internal/store"
)

// defaultConversionGoal is used when the businessType/tier pair is not
// in the pricing table.
const defaultConversionGoal = 2500

// conversionGoals maps business type and tier to the monthly plan value
// a converted trial is expected to be worth.
var conversionGoals = map[model.BusinessType]map[model.Tier]float64{
	model.BusinessHotel: {
		model.TierFounder:     4990,
		model.TierEarlyAccess: 3990,
		model.TierBeta:        2990,
		model.TierStandard:    1990,
	},
	model.BusinessRealEstate: {
		model.TierFounder:     3490,
		model.TierEarlyAccess: 2790,
		model.TierBeta:        2190,
		model.TierStandard:    1490,
	},
	model.BusinessCompany: {
		model.TierFounder:     2990,
		model.TierEarlyAccess: 2390,
		model.TierBeta:        1890,
		model.TierStandard:    1290,
	},
}

func conversionGoalFor(bt model.BusinessType, tier model.Tier) float64 {
	if tiers, ok := conversionGoals[bt]; ok {
		if goal, ok := tiers[tier]; ok {
			return goal
		}
	}
	return defaultConversionGoal
}

// TrialDetails is the input for starting a trial.
type TrialDetails struct {
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	CompanyName  string             `json:"company_name"`
	BusinessType model.BusinessType `json:"business_type"`
	Tier         model.Tier         `json:"tier"`
	TrialDays    int                `json:"trial_days"`
}

// TrialService exposes the five engine operations consumed by the HTTP
// layer.
type TrialService struct {
	Store      *store.TrialStore
	Catalog    []model.CampaignTemplate
	Dispatcher *Dispatcher
	now        func() time.Time
}

// NewTrialService wires the service. now may be nil for the wall clock.
func NewTrialService(s *store.TrialStore, catalog []model.CampaignTemplate, d *Dispatcher, now func() time.Time) *TrialService {
	if now == nil {
		now = time.Now
	}
	return &TrialService{
		Store:      s,
		Catalog:    catalog,
		Dispatcher: d,
		now:        now,
	}
}

func (s *TrialService) campaign(id string) (model.CampaignTemplate, bool) {
	for _, c := range s.Catalog {
		if c.ID == id {
			return c, true
		}
	}
	return model.CampaignTemplate{}, false
}

// StartTrial creates a trial keyed by invitation id and dispatches the
// welcome campaign synchronously. Duplicate ids return ErrTrialExists.
func (s *TrialService) StartTrial(invitationID string, details TrialDetails) (*model.TrialUser, error) {
	if details.TrialDays <= 0 {
		return nil, fmt.Errorf("trial days must be a positive integer, got %d", details.TrialDays)
	}

	now := s.now()
	t := &model.TrialUser{
		ID:             uuid.NewString(),
		InvitationID:   invitationID,
		Email:          details.Email,
		Phone:          details.Phone,
		CompanyName:    details.CompanyName,
		BusinessType:   details.BusinessType,
		Tier:           details.Tier,
		TrialStartDate: now,
		TrialEndDate:   now.AddDate(0, 0, details.TrialDays),
		TrialDays:      details.TrialDays,
		LastActivity:   now,
		ConversionGoal: conversionGoalFor(details.BusinessType, details.Tier),
		ConversionEvents: []model.ConversionEvent{
			{Event: "trial_started", Timestamp: now},
		},
	}
	t.UrgencyLevel = ComputeCountdown(t, now).UrgencyLevel

	if err := s.Store.Create(t); err != nil {
		return nil, err
	}
	log.Info().Str("invitation", invitationID).Int("trial_days", details.TrialDays).
		Str("tier", string(details.Tier)).Msg("🚀 trial started")

	// Once created the record belongs to the store; dispatch from a
	// snapshot so a concurrent sweep cannot race the render.
	if welcome, ok := s.campaign(WelcomeCampaignID); ok {
		snap := s.Store.Get(invitationID)
		cd := ComputeCountdown(snap, now)
		if err := s.Dispatcher.Dispatch(snap, welcome, cd); err != nil {
			log.Warn().Err(err).Str("invitation", invitationID).Msg("⚠️ welcome dispatch failed")
		} else {
			s.Store.With(invitationID, func(u *model.TrialUser) {
				u.CampaignsSent = append(u.CampaignsSent, welcome.ID)
			})
		}
	}

	return s.Store.Get(invitationID), nil
}

// UpdateActivity records a feature activation. Unknown invitation ids
// are a silent no-op so stale client requests never crash a session.
func (s *TrialService) UpdateActivity(invitationID, activity string) {
	now := s.now()
	ok := s.Store.With(invitationID, func(t *model.TrialUser) {
		t.LastActivity = now
		if activity != "" && !t.HasFeature(activity) {
			t.FeaturesActivated = append(t.FeaturesActivated, activity)
		}
		t.ConversionEvents = append(t.ConversionEvents, model.ConversionEvent{
			Event:     activity,
			Timestamp: now,
		})
		t.UrgencyLevel = ComputeCountdown(t, now).UrgencyLevel
	})
	if !ok {
		log.Debug().Str("invitation", invitationID).Msg("activity update for unknown trial ignored")
	}
}

// ConvertTrial records the terminal converted event with its monetary
// value. Returns whether the trial was known; unknown ids leave the
// store untouched.
func (s *TrialService) ConvertTrial(invitationID string, value float64) bool {
	now := s.now()
	ok := s.Store.With(invitationID, func(t *model.TrialUser) {
		t.ConversionEvents = append(t.ConversionEvents, model.ConversionEvent{
			Event:     "converted",
			Timestamp: now,
			Value:     value,
		})
	})
	if ok {
		log.Info().Str("invitation", invitationID).Float64("value", value).Msg("✅ trial converted")
	}
	return ok
}

// GetTrialCountdown computes the countdown snapshot for a trial, nil
// when the invitation id is unknown. The snapshot is computed under the
// store lock so it never observes a half-applied sweep.
func (s *TrialService) GetTrialCountdown(invitationID string) *model.CountdownSnapshot {
	now := s.now()
	var cd model.CountdownSnapshot
	ok := s.Store.View(invitationID, func(t *model.TrialUser) {
		cd = ComputeCountdown(t, now)
	})
	if !ok {
		return nil
	}
	return &cd
}
