package models

import (
	"context"
)

//go:generate mockgen -destination=mocks/mock_delivery.go . DeliveryService
type DeliveryService interface {
	CreateDeliveryRequest(ctx context.Context, request NewDeliveryRequest) (*DeliveryRequest, error)

	GetDeliveryRequests(ctx context.Context) ([]DeliveryRequest, error)

	TransitionStatus(ctx context.Context, requestID string, newStatus RequestStatus) (*DeliveryRequest, error)
}

//go:generate mockgen -destination=mocks/mock_metrics.go . MetricsService
type MetricsService interface {
	GetDashboardMetrics(ctx context.Context, query MetricsQuery) (DashboardMetrics, error)
}
