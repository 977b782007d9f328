package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moazam110/PaaniPlant-sub001/internal/logger"
	"github.com/moazam110/PaaniPlant-sub001/internal/middlewares"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
)

type Config struct {
	Endpoint string
}

type Router struct {
	config          Config
	deliveryService models.DeliveryService
	metricsService  models.MetricsService
}

func New(
	config Config,
	deliveryService models.DeliveryService,
	metricsService models.MetricsService,
) *Router {
	return &Router{
		config,
		deliveryService,
		metricsService,
	}
}

func (router *Router) get() chi.Router {
	r := chi.NewRouter()

	r.Use(
		middlewares.ServiceInjectorMiddleware(
			router.deliveryService,
			router.metricsService,
		),
		logger.RequestLogger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Route("/delivery-requests", func(r chi.Router) {
			r.With(middlewares.JSONMiddleware[models.NewDeliveryRequest]).Post("/", CreateDeliveryRequest)
			r.Get("/", GetDeliveryRequests)

			r.With(middlewares.JSONMiddleware[models.StatusUpdate]).Patch("/{requestID}/status", TransitionDeliveryRequest)
		})

		r.Get("/dashboard/metrics", GetDashboardMetrics)

		r.Get("/health", Health)
	})

	return r
}

func (router *Router) Run() {
	log.Fatal(http.ListenAndServe(router.config.Endpoint, router.get()))
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
