package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cosmos-order/trial-engine/internal/model"
)

func TestRenderTemplate(t *testing.T) {
	out := RenderTemplate("Hi {NAME}, {NAME} again, {MISSING} stays", map[string]string{
		"NAME": "Aphrodite Suites",
	})
	assert.Equal(t, "Hi Aphrodite Suites, Aphrodite Suites again, {MISSING} stays", out)
}

func TestPersonalize(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := &model.TrialUser{
		InvitationID:   "INV-1",
		CompanyName:    "Aphrodite Suites",
		TrialDays:      30,
		TrialEndDate:   now.Add(5*24*time.Hour + 6*time.Hour),
		LastActivity:   now,
		ConversionGoal: 4990,
	}
	cd := ComputeCountdown(trial, now)

	r := NewRenderer(rand.New(rand.NewSource(42)))
	content := r.Personalize(model.CampaignContent{
		Subject:        "{DAYS_REMAINING} days left, {COMPANY_NAME}",
		Body:           "{URGENCY_MESSAGE} Goal: {CONVERSION_GOAL}. {CTA_TEXT}",
		CTAText:        "Choose a plan",
		UrgencyMessage: "Ends in {HOURS_REMAINING} hours.",
	}, trial, cd)

	assert.Equal(t, "5 days left, Aphrodite Suites", content.Subject)
	assert.Equal(t, "Ends in 126 hours. Goal: €4990. Choose a plan", content.Body)
	assert.Equal(t, "Ends in 126 hours.", content.UrgencyMessage)
}

// The cosmetic counters come from the injected source, so the same seed
// renders the same numbers.
func TestPersonalizeCountersAreDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := &model.TrialUser{
		InvitationID: "INV-1",
		CompanyName:  "Aphrodite Suites",
		TrialDays:    30,
		TrialEndDate: now.Add(10 * 24 * time.Hour),
		LastActivity: now,
	}
	cd := ComputeCountdown(trial, now)
	content := model.CampaignContent{
		Body: "{PROPERTIES_CONNECTED} properties, {BOOKINGS_PROCESSED} bookings, {INSIGHTS_GENERATED} insights",
	}

	first := NewRenderer(rand.New(rand.NewSource(7))).Personalize(content, trial, cd)
	second := NewRenderer(rand.New(rand.NewSource(7))).Personalize(content, trial, cd)

	assert.Equal(t, first.Body, second.Body)
	assert.NotContains(t, first.Body, "{PROPERTIES_CONNECTED}")
}

func TestPersonalizeEmptyCompanyFallback(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	trial := &model.TrialUser{
		InvitationID: "INV-1",
		TrialDays:    30,
		TrialEndDate: now.Add(10 * 24 * time.Hour),
		LastActivity: now,
	}
	cd := ComputeCountdown(trial, now)

	r := NewRenderer(rand.New(rand.NewSource(1)))
	content := r.Personalize(model.CampaignContent{Subject: "Hi {COMPANY_NAME}"}, trial, cd)

	assert.Equal(t, "Hi your team", content.Subject)
}
