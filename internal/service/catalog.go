// internal/service/catalog.go
package service

import "github.com/cosmos-order/trial-engine/internal/model"

// WelcomeCampaignID is dispatched synchronously when a trial starts.
const WelcomeCampaignID = "welcome"

// DefaultCatalog returns the built-in campaign catalog. Order matters:
// the sweep evaluates entries top to bottom per trial.
func DefaultCatalog() []model.CampaignTemplate {
	return []model.CampaignTemplate{
		{
			ID:      WelcomeCampaignID,
			Name:    "Welcome aboard",
			Channel: model.ChannelEmail,
			Trigger: model.TriggerCondition{TriggerDays: -1},
			Content: model.CampaignContent{
				Subject: "Welcome to your {TRIAL_DAYS}-day trial, {COMPANY_NAME}",
				Body: "Hi {COMPANY_NAME},\n\nYour {TRIAL_DAYS}-day trial is live. " +
					"Connect your first property today and see bookings flow in.\n\n{CTA_TEXT}",
				CTAText:        "Set up your first property",
				UrgencyMessage: "",
			},
		},
		{
			ID:      "halfway_checkin",
			Name:    "Halfway check-in",
			Channel: model.ChannelEmail,
			Trigger: model.TriggerCondition{TriggerDays: 14},
			Content: model.CampaignContent{
				Subject: "{COMPANY_NAME}, you're halfway through your trial",
				Body: "You have {DAYS_REMAINING} days left. So far our platform has processed " +
					"{BOOKINGS_PROCESSED} bookings across {PROPERTIES_CONNECTED} properties like yours.\n\n{CTA_TEXT}",
				CTAText:        "Explore the analytics dashboard",
				UrgencyMessage: "",
			},
		},
		{
			ID:      "inactivity_nudge",
			Name:    "We miss you",
			Channel: model.ChannelInApp,
			Trigger: model.TriggerCondition{TriggerDays: 10, InactivityHours: 48},
			Content: model.CampaignContent{
				Subject:        "Pick up where you left off",
				Body:           "It's been a while, {COMPANY_NAME}. {DAYS_REMAINING} days remain on your trial.\n\n{CTA_TEXT}",
				CTAText:        "Resume setup",
				UrgencyMessage: "",
			},
		},
		{
			ID:      "week_left",
			Name:    "One week left",
			Channel: model.ChannelEmail,
			Trigger: model.TriggerCondition{TriggerDays: 7},
			Content: model.CampaignContent{
				Subject: "{DAYS_REMAINING} days left on your trial",
				Body: "{URGENCY_MESSAGE}\n\nTeams on your plan generate {INSIGHTS_GENERATED} insights a week. " +
					"Convert before expiry to keep yours.\n\n{CTA_TEXT}",
				CTAText:        "Choose a plan",
				UrgencyMessage: "Your trial ends in {DAYS_REMAINING} days.",
			},
		},
		{
			ID:      "low_engagement_rescue",
			Name:    "Need a hand?",
			Channel: model.ChannelEmail,
			Trigger: model.TriggerCondition{TriggerDays: 7, RequiredUrgency: model.UrgencyHigh, InactivityHours: 48},
			Content: model.CampaignContent{
				Subject:        "{COMPANY_NAME}, let us help you get set up",
				Body:           "Your trial ends in {DAYS_REMAINING} days and it looks like setup stalled. Book a call and we'll do it with you.\n\n{CTA_TEXT}",
				CTAText:        "Book an onboarding call",
				UrgencyMessage: "Only {DAYS_REMAINING} days left.",
			},
		},
		{
			ID:      "final_72h",
			Name:    "Final 72 hours",
			Channel: model.ChannelSMS,
			Trigger: model.TriggerCondition{TriggerDays: 3},
			Content: model.CampaignContent{
				Subject:        "",
				Body:           "{COMPANY_NAME}: your trial ends in {DAYS_REMAINING} days. Convert now and lock in your {CONVERSION_GOAL} plan.",
				CTAText:        "",
				UrgencyMessage: "",
			},
		},
		{
			ID:      "last_day",
			Name:    "Last day",
			Channel: model.ChannelPush,
			Trigger: model.TriggerCondition{TriggerDays: 1, RequiredUrgency: model.UrgencyCritical},
			Content: model.CampaignContent{
				Subject:        "Your trial ends today",
				Body:           "{URGENCY_MESSAGE} Convert now to keep your data and settings.",
				CTAText:        "Convert now",
				UrgencyMessage: "Less than {HOURS_REMAINING} hours remain.",
			},
		},
		{
			ID:      "winback_72h",
			Name:    "Win-back",
			Channel: model.ChannelEmail,
			Trigger: model.TriggerCondition{TriggerDays: -1, DaysAfterExpiry: 3},
			Content: model.CampaignContent{
				Subject: "{COMPANY_NAME}, your trial data is still here",
				Body: "Your trial expired a few days ago but everything you set up is intact. " +
					"Reactivate within 30 days and continue where you stopped.\n\n{CTA_TEXT}",
				CTAText:        "Reactivate my account",
				UrgencyMessage: "",
			},
		},
	}
}
