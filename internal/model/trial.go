// internal/model/trial.go
package model

import "time"

type BusinessType string

const (
	BusinessHotel      BusinessType = "hotel"
	BusinessRealEstate BusinessType = "real_estate"
	BusinessCompany    BusinessType = "company"
)

type Tier string

const (
	TierFounder     Tier = "founder"
	TierEarlyAccess Tier = "early_access"
	TierBeta        Tier = "beta"
	TierStandard    Tier = "standard"
)

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// ConversionEvent is one entry in a trial's event log.
type ConversionEvent struct {
	Event     string    `json:"event"`
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value,omitempty"`
}

// TrialUser is one prospective tenant's trial, keyed by invitation id.
// TrialEndDate is fixed at creation: TrialStartDate + TrialDays days.
type TrialUser struct {
	ID                string            `json:"id"`
	InvitationID      string            `json:"invitation_id"`
	Email             string            `json:"email"`
	Phone             string            `json:"phone,omitempty"`
	CompanyName       string            `json:"company_name"`
	BusinessType      BusinessType      `json:"business_type"`
	Tier              Tier              `json:"tier"`
	TrialStartDate    time.Time         `json:"trial_start_date"`
	TrialEndDate      time.Time         `json:"trial_end_date"`
	TrialDays         int               `json:"trial_days"`
	FeaturesActivated []string          `json:"features_activated"`
	LastActivity      time.Time         `json:"last_activity"`
	ConversionGoal    float64           `json:"conversion_goal"`
	UrgencyLevel      UrgencyLevel      `json:"urgency_level"`
	CampaignsSent     []string          `json:"campaigns_sent"`
	ConversionEvents  []ConversionEvent `json:"conversion_events"`
}

// Clone returns a deep copy safe to use outside the store lock.
func (t *TrialUser) Clone() *TrialUser {
	c := *t
	c.FeaturesActivated = append([]string(nil), t.FeaturesActivated...)
	c.CampaignsSent = append([]string(nil), t.CampaignsSent...)
	c.ConversionEvents = append([]ConversionEvent(nil), t.ConversionEvents...)
	return &c
}

// HasCampaign reports whether a campaign id is already in CampaignsSent.
func (t *TrialUser) HasCampaign(campaignID string) bool {
	for _, id := range t.CampaignsSent {
		if id == campaignID {
			return true
		}
	}
	return false
}

// HasFeature reports whether a feature name was already activated.
func (t *TrialUser) HasFeature(feature string) bool {
	for _, f := range t.FeaturesActivated {
		if f == feature {
			return true
		}
	}
	return false
}

// Converted reports whether a terminal "converted" event was recorded.
func (t *TrialUser) Converted() bool {
	for _, ev := range t.ConversionEvents {
		if ev.Event == "converted" {
			return true
		}
	}
	return false
}
