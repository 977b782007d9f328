package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/moazam110/PaaniPlant-sub001/internal/database"
	"github.com/moazam110/PaaniPlant-sub001/internal/logger"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	"github.com/moazam110/PaaniPlant-sub001/internal/utils"
	"go.uber.org/zap"
)

var (
	ErrRequestNotFound   = errors.New("delivery request not found")
	ErrInvalidTransition = errors.New("status transition is not allowed")
)

// DeliveryService owns the lifecycle of delivery requests: admission-guarded
// creation, listing, and status transitions along the request state machine.
type DeliveryService struct {
	storage   deliveryStorage
	admission deliveryAdmission
}

type deliveryStorage interface {
	CreateDeliveryRequest(ctx context.Context, request database.NewDeliveryRequestDB) (*database.DeliveryRequestDB, error)

	FindDeliveryRequest(ctx context.Context, requestID string) (*database.DeliveryRequestDB, error)

	FindAllDeliveryRequests(ctx context.Context) (*[]database.DeliveryRequestDB, error)

	UpdateDeliveryRequestStatus(ctx context.Context, requestID string, from, to database.RequestStatusDB) (*database.DeliveryRequestDB, error)

	FindCustomersWithActiveRequests(ctx context.Context) ([]string, error)
}

type deliveryAdmission interface {
	TryAdmit(customerID string) error

	ReleaseReservation(customerID string)

	PrimeReservations(customerIDs []string)
}

func NewDeliveryService(storage deliveryStorage, admission deliveryAdmission) *DeliveryService {
	return &DeliveryService{storage: storage, admission: admission}
}

// PrimeActiveIndex aligns the in-process reservation index with the requests
// already active in storage. Must run before the service accepts traffic.
func (d *DeliveryService) PrimeActiveIndex(ctx context.Context) error {
	customerIDs, err := d.storage.FindCustomersWithActiveRequests(ctx)
	if err != nil {
		return err
	}

	d.admission.PrimeReservations(customerIDs)
	return nil
}

// CreateDeliveryRequest validates the input, admits the attempt and persists
// the request. When persistence fails after a successful reservation, the
// reservation is released so the customer's slot is not permanently stuck.
func (d *DeliveryService) CreateDeliveryRequest(ctx context.Context, request models.NewDeliveryRequest) (*models.DeliveryRequest, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	customerID := *request.CustomerID

	if err := d.admission.TryAdmit(customerID); err != nil {
		return nil, err
	}

	created, err := d.storage.CreateDeliveryRequest(ctx, toStorageRequest(request))
	if err != nil {
		if errors.Is(err, database.ErrDuplicateActiveRequest) {
			// The constraint found an active request the index did not know
			// about. The reservation is kept: it now mirrors the row in
			// storage and is released by that request's terminal transition.
			logger.Log.Warn("active request index out of sync with storage",
				zap.String("customerID", customerID),
			)
			return nil, ErrDuplicateActiveRequest
		}

		d.admission.ReleaseReservation(customerID)
		return nil, fmt.Errorf("failed to persist delivery request: %w", err)
	}

	result := toModelRequest(created)
	return &result, nil
}

// GetDeliveryRequests returns every request in server insertion order; display
// ordering and filtering are applied by the dashboard client.
func (d *DeliveryService) GetDeliveryRequests(ctx context.Context) ([]models.DeliveryRequest, error) {
	requests, err := d.storage.FindAllDeliveryRequests(ctx)
	if err != nil {
		return []models.DeliveryRequest{}, err
	}

	if requests == nil {
		return []models.DeliveryRequest{}, nil
	}

	result := make([]models.DeliveryRequest, len(*requests))
	for i, request := range *requests {
		result[i] = toModelRequest(&request)
	}

	return result, nil
}

// TransitionStatus moves a request to newStatus if the state machine allows it
// from the request's current status. Terminal transitions release the
// customer's active slot.
func (d *DeliveryService) TransitionStatus(ctx context.Context, requestID string, newStatus models.RequestStatus) (*models.DeliveryRequest, error) {
	if !newStatus.Known() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, newStatus)
	}

	request, err := d.storage.FindDeliveryRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request == nil {
		return nil, ErrRequestNotFound
	}

	current := request.Status.RequestStatus
	if !models.CanTransition(current, newStatus) {
		return nil, fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, current, newStatus)
	}

	updated, err := d.storage.UpdateDeliveryRequestStatus(
		ctx,
		requestID,
		database.RequestStatusDB{RequestStatus: current},
		database.RequestStatusDB{RequestStatus: newStatus},
	)
	if err != nil {
		if errors.Is(err, database.ErrRequestStateChanged) {
			// A concurrent transition won; the observed status is stale.
			return nil, fmt.Errorf("%w: request moved out of %q concurrently", ErrInvalidTransition, current)
		}
		return nil, err
	}

	if newStatus.IsTerminal() {
		d.admission.ReleaseReservation(request.CustomerID)
	}

	result := toModelRequest(updated)
	return &result, nil
}

func toStorageRequest(request models.NewDeliveryRequest) database.NewDeliveryRequestDB {
	var paymentType *string
	if request.PaymentType != nil {
		value := string(*request.PaymentType)
		paymentType = &value
	}

	return database.NewDeliveryRequestDB{
		CustomerID:   *request.CustomerID,
		CustomerName: request.CustomerName,
		Address:      request.Address,
		Status:       string(request.InitialStatus()),
		Priority:     string(request.EffectivePriority()),
		Cans:         *request.Cans,
		PricePerCan:  request.PricePerCan,
		PaymentType:  paymentType,
	}
}

func toModelRequest(request *database.DeliveryRequestDB) models.DeliveryRequest {
	result := models.DeliveryRequest{
		ID:           request.ID,
		CustomerID:   request.CustomerID,
		CustomerName: request.CustomerName,
		Address:      request.Address,
		Status:       request.Status.RequestStatus,
		Priority:     models.Priority(request.Priority),
		Cans:         request.Cans,
		PricePerCan:  request.PricePerCan,
		RequestedAt:  utils.RFC3339Date{Time: request.RequestedAt},
	}

	if request.PaymentType != nil {
		paymentType := models.PaymentType(*request.PaymentType)
		result.PaymentType = &paymentType
	}

	if request.DeliveredAt != nil {
		result.DeliveredAt = &utils.RFC3339Date{Time: *request.DeliveredAt}
	}

	if request.CancelledAt != nil {
		result.CancelledAt = &utils.RFC3339Date{Time: *request.CancelledAt}
	}

	return result
}
