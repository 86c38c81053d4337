package main

import (
	"encoding/json"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"

	"github.com/cosmos-order/trial-engine/internal/config"
	"github.com/cosmos-order/trial-engine/internal/db"
	"github.com/cosmos-order/trial-engine/internal/queue"
	"github.com/cosmos-order/trial-engine/internal/repository"
)

const (
	maxDeliveryRetries = 3
	retryCountHeader   = "x-retry-count"
)

func main() {
	cfg := config.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	var dispatchLog repository.DispatchLog = repository.NoopDispatchLog{}
	if conn, err := db.Connect(); err != nil {
		log.Warn().Err(err).Msg("⚠️ dispatch log disabled")
	} else {
		dispatchLog = &repository.PostgresDispatchLog{DB: conn}
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open a channel")
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		queue.SendTopic, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to declare queue")
	}

	msgs, err := ch.Consume(
		q.Name,
		"",
		false, // autoAck = false for reliability
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register consumer")
	}

	log.Info().Msg("delivery worker running, waiting for campaign sends...")

	for d := range msgs {
		var job queue.SendJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			log.Warn().Err(err).Msg("invalid send job, dropping")
			d.Ack(false)
			continue
		}

		if err := processJob(job, dispatchLog); err != nil {
			log.Warn().Err(err).Str("record_id", job.RecordID).Msg("⚠️ delivery failed")
			// A plain Nack requeue keeps the original headers, so the
			// attempt count would never grow. Republish with the count
			// bumped instead, and fail the record once it runs out.
			if next, ok := nextRetry(d.Headers); ok {
				if err := ch.Publish("", q.Name, false, false, amqp.Publishing{
					ContentType:  "application/json",
					DeliveryMode: amqp.Persistent,
					Headers:      amqp.Table{retryCountHeader: next},
					Body:         d.Body,
				}); err != nil {
					log.Error().Err(err).Str("record_id", job.RecordID).Msg("failed to republish for retry")
					d.Nack(false, true)
					continue
				}
			} else {
				_ = dispatchLog.UpdateStatus(job.RecordID, "failed", err.Error())
			}
		}

		d.Ack(false)
	}
}

// nextRetry reads the attempt count from the delivery headers and
// returns the value for the republished message. ok is false when the
// delivery has exhausted its retries.
func nextRetry(headers amqp.Table) (int32, bool) {
	var count int32
	if v, ok := headers[retryCountHeader].(int32); ok {
		count = v
	}
	if count >= maxDeliveryRetries {
		return count, false
	}
	return count + 1, true
}

func processJob(job queue.SendJob, dispatchLog repository.DispatchLog) error {
	if err := queue.Deliver(job); err != nil {
		return err
	}
	if err := dispatchLog.UpdateStatus(job.RecordID, "sent", ""); err != nil {
		log.Warn().Err(err).Str("record_id", job.RecordID).Msg("⚠️ failed to update dispatch record")
	}
	log.Info().Str("record_id", job.RecordID).Str("campaign", job.CampaignID).Msg("✅ delivered")
	return nil
}
