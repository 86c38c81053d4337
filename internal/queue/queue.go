package queue

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/repository"
)

// SendTopic is the queue topic between the dispatcher and delivery.
const SendTopic = "campaign_sends"

// SendJob is the payload handed to a channel delivery.
type SendJob struct {
	RecordID     string `json:"record_id"`
	InvitationID string `json:"invitation_id"`
	CampaignID   string `json:"campaign_id"`
	Channel      string `json:"channel"`
	Recipient    string `json:"recipient"`
	Subject      string `json:"subject"`
	Body         string `json:"body"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with bounded retry, used in dev
// and as the default when no broker is configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// JobPayload wraps a message payload with retry info
type JobPayload struct {
	Payload    any
	RetryCount int
	MaxRetries int
}

// Publish sends a message to all subscribers
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := q.handlers[topic]
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	job := JobPayload{
		Payload:    payload,
		RetryCount: 0,
		MaxRetries: 3,
	}

	for _, handler := range handlers {
		go q.processJob(handler, job)
	}

	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(payload any) error, job JobPayload) {
	for job.RetryCount <= job.MaxRetries {
		err := handler(job.Payload)
		if err == nil {
			return // ACK
		}

		job.RetryCount++
		log.Warn().Err(err).Int("attempt", job.RetryCount).Int("max", job.MaxRetries).
			Msg("queue job failed")

		if job.RetryCount > job.MaxRetries {
			log.Error().Int("attempts", job.MaxRetries).
				Msgf("job permanently failed: %+v", job.Payload)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(job.RetryCount*500) * time.Millisecond)
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartDeliverySubscriber wires the in-process delivery path: consume
// queued send jobs, run the channel stub, update the dispatch log. The
// AMQP deployment uses cmd/worker instead.
func StartDeliverySubscriber(q Queue, dispatchLog repository.DispatchLog) {
	err := q.Subscribe(SendTopic, func(payload any) error {
		job, ok := payload.(SendJob)
		if !ok {
			log.Warn().Msgf("invalid payload type on %s, expected SendJob", SendTopic)
			return nil // no retry
		}

		if err := Deliver(job); err != nil {
			log.Warn().Err(err).Str("record_id", job.RecordID).Msg("⚠️ delivery failed")
			_ = dispatchLog.UpdateStatus(job.RecordID, "failed", err.Error())
			return err // triggers retry in queue
		}

		if err := dispatchLog.UpdateStatus(job.RecordID, "sent", ""); err != nil {
			log.Warn().Err(err).Str("record_id", job.RecordID).Msg("⚠️ failed to update dispatch record")
			return err // retry
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msgf("⚠️ failed to start subscriber for %s", SendTopic)
	}
}
