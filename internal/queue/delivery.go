package queue

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Deliver hands a rendered message to the provider for its channel.
// These are stubs standing in for real email/SMS/push integrations: they
// log the send and succeed. SMS requires a recipient phone number; the
// dispatcher records phone-less SMS as skipped before it gets here.
func Deliver(job SendJob) error {
	switch job.Channel {
	case "email":
		log.Info().Str("to", job.Recipient).Str("campaign", job.CampaignID).
			Msgf("📧 email: %s", job.Subject)
	case "sms":
		if job.Recipient == "" {
			return fmt.Errorf("sms delivery requires a phone number")
		}
		log.Info().Str("to", job.Recipient).Str("campaign", job.CampaignID).
			Msgf("📱 sms: %s", job.Body)
	case "in_app":
		log.Info().Str("invitation", job.InvitationID).Str("campaign", job.CampaignID).
			Msgf("🔔 in-app: %s", job.Subject)
	case "push":
		log.Info().Str("invitation", job.InvitationID).Str("campaign", job.CampaignID).
			Msgf("📲 push: %s", job.Subject)
	default:
		return fmt.Errorf("unknown channel %q", job.Channel)
	}
	return nil
}
