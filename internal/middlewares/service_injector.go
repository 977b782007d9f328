package middlewares

import (
	"context"
	"fmt"
	"net/http"

	"github.com/moazam110/PaaniPlant-sub001/internal/models"
)

type key int

const (
	DeliveryServiceKey key = iota
	MetricsServiceKey
)

// ServiceInjectorMiddleware stores the services in the request context so
// handlers stay plain functions; tests inject mocks through the same path.
func ServiceInjectorMiddleware(
	deliveryService models.DeliveryService,
	metricsService models.MetricsService,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), DeliveryServiceKey, deliveryService)
			ctx = context.WithValue(ctx, MetricsServiceKey, metricsService)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetServiceFromContext[Service interface{}](w http.ResponseWriter, r *http.Request, serviceKey key) *Service {
	foundService, ok := r.Context().Value(serviceKey).(Service)

	if !ok {
		http.Error(w, fmt.Sprintf("Service wasn't found in context by key %v", serviceKey), http.StatusInternalServerError)
		return nil
	}

	return &foundService
}
