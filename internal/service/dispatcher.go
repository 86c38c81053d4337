// internal/service/dispatcher.go
package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/model"
	"github.com/cosmos-order/trial-engine/internal/queue"
	"github.com/cosmos-order/trial-engine/internal/repository"
)

// Dispatcher renders a campaign for a trial, records the attempt in the
// dispatch log and publishes the send job. A nil return means the
// campaign may be marked sent; any error leaves it eligible for the next
// sweep.
type Dispatcher struct {
	Renderer    *Renderer
	Queue       queue.Queue
	DispatchLog repository.DispatchLog
	now         func() time.Time
}

// NewDispatcher wires a dispatcher. now may be nil for the wall clock.
func NewDispatcher(r *Renderer, q queue.Queue, dispatchLog repository.DispatchLog, now func() time.Time) *Dispatcher {
	if now == nil {
		now = time.Now
	}
	return &Dispatcher{
		Renderer:    r,
		Queue:       q,
		DispatchLog: dispatchLog,
		now:         now,
	}
}

// Dispatch runs one campaign send round trip for a trial. SMS without a
// phone number is recorded as skipped and treated as delivered, matching
// the channel contract (senders never fail for expected conditions).
func (d *Dispatcher) Dispatch(t *model.TrialUser, c model.CampaignTemplate, cd model.CountdownSnapshot) error {
	content := d.Renderer.Personalize(c.Content, t, cd)

	rec := &model.DispatchRecord{
		ID:              uuid.NewString(),
		InvitationID:    t.InvitationID,
		CampaignID:      c.ID,
		Channel:         string(c.Channel),
		Status:          "pending",
		RenderedContent: content.Body,
	}

	if c.Channel == model.ChannelSMS && t.Phone == "" {
		rec.Status = "skipped"
		if err := d.DispatchLog.Create(rec); err != nil {
			log.Warn().Err(err).Msg("⚠️ failed to record skipped dispatch")
		}
		log.Info().Str("invitation", t.InvitationID).Str("campaign", c.ID).
			Msg("sms skipped, no phone number on trial")
		return nil
	}

	if err := d.DispatchLog.Create(rec); err != nil {
		// The log is best effort; the send still goes out.
		log.Warn().Err(err).Msg("⚠️ failed to create dispatch record")
	}

	job := queue.SendJob{
		RecordID:     rec.ID,
		InvitationID: t.InvitationID,
		CampaignID:   c.ID,
		Channel:      string(c.Channel),
		Recipient:    d.recipient(t, c.Channel),
		Subject:      content.Subject,
		Body:         content.Body,
	}

	if err := d.Queue.Publish(queue.SendTopic, job); err != nil {
		log.Warn().Err(err).Str("invitation", t.InvitationID).Str("campaign", c.ID).
			Msg("⚠️ failed to enqueue campaign send")
		_ = d.DispatchLog.UpdateStatus(rec.ID, "failed", err.Error())
		return err
	}

	_ = d.DispatchLog.UpdateStatus(rec.ID, "queued", "")
	log.Info().Str("invitation", t.InvitationID).Str("campaign", c.ID).
		Str("channel", string(c.Channel)).Msg("campaign dispatched")
	return nil
}

func (d *Dispatcher) recipient(t *model.TrialUser, ch model.Channel) string {
	switch ch {
	case model.ChannelEmail:
		return t.Email
	case model.ChannelSMS:
		return t.Phone
	}
	// in_app and push are keyed by the trial itself
	return t.InvitationID
}
