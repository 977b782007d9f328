package main

import (
	"context"
	"log"

	"github.com/moazam110/PaaniPlant-sub001/internal/database"
	router "github.com/moazam110/PaaniPlant-sub001/internal/http"
	"github.com/moazam110/PaaniPlant-sub001/internal/logger"
	"github.com/moazam110/PaaniPlant-sub001/internal/services"
	"github.com/moazam110/PaaniPlant-sub001/internal/utils"
)

func main() {
	ctx := context.Background()
	config := NewConfig()

	if err := logger.Initialize(config.logLevel, config.env); err != nil {
		log.Fatalf("Logger wasn't initialized due to %s", err)
	}

	db, err := database.New(ctx, config.dsn)

	if err != nil {
		log.Fatalf("Database wasn't initialized due to %s", err)
	}

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migrations weren't run due to %s", err)
	}

	log.Printf("Running server on %s\n", config.endpoint)

	jobQueueService := services.NewJobQueueService(ctx, 100, 2)

	rateLimiter := services.NewRateLimiterService(config.rateLimitMax, config.rateLimitWindow)
	rateLimiter.StartSweep(jobQueueService, config.sweepInterval)

	admissionService := services.NewAdmissionService(rateLimiter, services.NewActiveRequestIndex())
	deliveryService := services.NewDeliveryService(db, admissionService)

	if err := deliveryService.PrimeActiveIndex(ctx); err != nil {
		log.Fatalf("Active request index wasn't primed due to %s", err)
	}

	utils.HandleTerminationProcess(func() {
		jobQueueService.Shutdown()
		db.Close()
	})

	router.New(
		router.Config{Endpoint: config.endpoint},
		deliveryService,
		services.NewMetricsService(db),
	).Run()
}
