// cmd/server/main.go
package main

import (
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cosmos-order/trial-engine/internal/config"
	"github.com/cosmos-order/trial-engine/internal/controller"
	"github.com/cosmos-order/trial-engine/internal/db"
	"github.com/cosmos-order/trial-engine/internal/queue"
	"github.com/cosmos-order/trial-engine/internal/repository"
	"github.com/cosmos-order/trial-engine/internal/scheduler"
	"github.com/cosmos-order/trial-engine/internal/service"
	"github.com/cosmos-order/trial-engine/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogger(cfg.LogLevel)

	// Dispatch log is optional: without a database the engine still runs,
	// it just keeps no send history.
	var dispatchLog repository.DispatchLog = repository.NoopDispatchLog{}
	if conn, err := db.Connect(); err != nil {
		log.Warn().Err(err).Msg("⚠️ dispatch log disabled")
	} else {
		dispatchLog = &repository.PostgresDispatchLog{DB: conn}
		log.Info().Msg("✅ connected to dispatch-log database")
	}

	var q queue.Queue
	if cfg.QueueBackend == "amqp" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to broker")
		}
		defer amqpQueue.Close()
		q = amqpQueue
		log.Info().Msg("✅ publishing campaign sends to AMQP, run cmd/worker to deliver")
	} else {
		mem := queue.NewInMemoryQueue()
		queue.StartDeliverySubscriber(mem, dispatchLog)
		q = mem
	}

	trialStore := store.NewTrialStore(time.Now)
	renderer := service.NewRenderer(rand.New(rand.NewSource(time.Now().UnixNano())))
	dispatcher := service.NewDispatcher(renderer, q, dispatchLog, time.Now)
	catalog := service.DefaultCatalog()

	trialService := service.NewTrialService(trialStore, catalog, dispatcher, time.Now)
	evaluator := service.NewEvaluator(trialStore, catalog, dispatcher, time.Now)

	sched := scheduler.New(evaluator)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	trialController := &controller.TrialController{
		TrialService: trialService,
		DispatchLog:  dispatchLog,
	}

	r := chi.NewRouter()

	// Trial routes
	r.Post("/trials", trialController.StartTrial)
	r.Post("/trials/{id}/activity", trialController.UpdateActivity)
	r.Post("/trials/{id}/convert", trialController.ConvertTrial)
	r.Get("/trials/{id}/countdown", trialController.GetCountdown)
	r.Get("/metrics/conversion", trialController.GetConversionMetrics)
	r.Get("/campaigns", trialController.ListCampaigns)
	r.Get("/campaigns/{id}/stats", trialController.GetCampaignStats)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("🚀 trial engine running")
	if err := http.ListenAndServe(cfg.HTTPAddr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}
