// internal/model/campaign.go
package model

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
	ChannelInApp Channel = "in_app"
	ChannelPush  Channel = "push"
)

// TriggerCondition decides when a campaign becomes due for a trial.
// TriggerDays < 0 means the campaign is never picked up by the lifecycle
// sweep: welcome is dispatched at trial creation, win-back entries only
// by the expiry sweep.
type TriggerCondition struct {
	TriggerDays     int          `json:"trigger_days"`
	RequiredUrgency UrgencyLevel `json:"required_urgency,omitempty"`
	InactivityHours int          `json:"inactivity_hours,omitempty"`
	DaysAfterExpiry int          `json:"days_after_expiry,omitempty"`
}

// CampaignContent holds the raw template strings. Subject, Body and
// UrgencyMessage may contain {TOKEN} placeholders.
type CampaignContent struct {
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	CTAText        string `json:"cta_text"`
	UrgencyMessage string `json:"urgency_message"`
}

// CampaignTemplate is static catalog configuration, immutable after
// process start.
type CampaignTemplate struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Channel Channel          `json:"channel"`
	Trigger TriggerCondition `json:"trigger"`
	Content CampaignContent  `json:"content"`
}
