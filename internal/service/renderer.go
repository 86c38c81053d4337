// internal/service/renderer.go
package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/cosmos-order/trial-engine/internal/model"
)

// RenderTemplate substitutes {TOKEN} placeholders from data.
func RenderTemplate(template string, data map[string]string) string {
	result := template
	for k, v := range data {
		result = strings.ReplaceAll(result, "{"+k+"}", v)
	}
	return result
}

// Renderer personalizes campaign content for a trial. The cosmetic
// activity counters are drawn from the injected rand source so tests can
// pin them; real usage metrics should replace them before this drives
// production sends.
type Renderer struct {
	rnd *rand.Rand
}

// NewRenderer creates a renderer over the given random source.
func NewRenderer(rnd *rand.Rand) *Renderer {
	return &Renderer{rnd: rnd}
}

// Personalize deep-copies the template content and substitutes the fixed
// token set. The urgency message is rendered first so it can itself
// carry tokens when referenced from the body.
func (r *Renderer) Personalize(content model.CampaignContent, t *model.TrialUser, cd model.CountdownSnapshot) model.CampaignContent {
	company := t.CompanyName
	if company == "" {
		company = "your team"
	}

	tokens := map[string]string{
		"COMPANY_NAME":         company,
		"INVITATION_ID":        t.InvitationID,
		"TRIAL_DAYS":           strconv.Itoa(t.TrialDays),
		"DAYS_REMAINING":       strconv.Itoa(cd.DaysRemaining),
		"HOURS_REMAINING":      strconv.Itoa(cd.DaysRemaining*24 + cd.HoursRemaining),
		"MINUTES_REMAINING":    strconv.Itoa(cd.MinutesRemaining),
		"CONVERSION_GOAL":      fmt.Sprintf("€%.0f", t.ConversionGoal),
		"CTA_TEXT":             content.CTAText,
		"PROPERTIES_CONNECTED": strconv.Itoa(120 + r.rnd.Intn(80)),
		"BOOKINGS_PROCESSED":   strconv.Itoa(2500 + r.rnd.Intn(4000)),
		"INSIGHTS_GENERATED":   strconv.Itoa(12 + r.rnd.Intn(30)),
	}

	urgency := RenderTemplate(content.UrgencyMessage, tokens)
	tokens["URGENCY_MESSAGE"] = urgency

	return model.CampaignContent{
		Subject:        RenderTemplate(content.Subject, tokens),
		Body:           RenderTemplate(content.Body, tokens),
		CTAText:        content.CTAText,
		UrgencyMessage: urgency,
	}
}
