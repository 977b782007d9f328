package models

import (
	"errors"
	"fmt"

	"github.com/moazam110/PaaniPlant-sub001/internal/utils"
)

type RequestStatus string

const (
	StatusPending             RequestStatus = "pending"
	StatusPendingConfirmation RequestStatus = "pending_confirmation"
	StatusProcessing          RequestStatus = "processing"
	StatusDelivered           RequestStatus = "delivered"
	StatusCancelled           RequestStatus = "cancelled"
)

// IsTerminal reports whether no further transitions may leave the status.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether the status counts against the one-active-request-per-customer rule.
func (s RequestStatus) IsActive() bool {
	return s == StatusPending || s == StatusPendingConfirmation || s == StatusProcessing
}

func (s RequestStatus) Known() bool {
	return s.IsActive() || s.IsTerminal()
}

// Rank returns the display ordering rank of the status. Lower ranks are shown first,
// unknown statuses sink to the bottom.
func (s RequestStatus) Rank() int {
	switch s {
	case StatusPendingConfirmation:
		return 0
	case StatusPending:
		return 1
	case StatusProcessing:
		return 2
	case StatusDelivered:
		return 3
	case StatusCancelled:
		return 4
	default:
		return 5
	}
}

// CanTransition reports whether a request may move from one status to another.
// Admins may toggle between pending and pending_confirmation, any active request
// may be cancelled, and delivery is only reachable from processing.
func CanTransition(from, to RequestStatus) bool {
	switch from {
	case StatusPending:
		return to == StatusPendingConfirmation || to == StatusProcessing || to == StatusCancelled
	case StatusPendingConfirmation:
		return to == StatusPending || to == StatusProcessing || to == StatusCancelled
	case StatusProcessing:
		return to == StatusDelivered || to == StatusCancelled
	default:
		return false
	}
}

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityUrgent Priority = "urgent"
)

type PaymentType string

const (
	PaymentCash    PaymentType = "cash"
	PaymentAccount PaymentType = "account"
)

type DeliveryRequest struct {
	ID           string             `json:"id"`
	CustomerID   string             `json:"customerId"`
	CustomerName string             `json:"customerName"`
	Address      string             `json:"address"`
	Status       RequestStatus      `json:"status"`
	Priority     Priority           `json:"priority"`
	Cans         int                `json:"cans"`
	PricePerCan  *float64           `json:"pricePerCan,omitempty"`
	PaymentType  *PaymentType       `json:"paymentType,omitempty"`
	RequestedAt  utils.RFC3339Date  `json:"requestedAt"`
	DeliveredAt  *utils.RFC3339Date `json:"deliveredAt,omitempty"`
	CancelledAt  *utils.RFC3339Date `json:"cancelledAt,omitempty"`
}

var ErrValidation = errors.New("validation failed")

type NewDeliveryRequest struct {
	CustomerID   *string        `json:"customerId"`
	CustomerName string         `json:"customerName"`
	Address      string         `json:"address"`
	Cans         *int           `json:"cans"`
	Priority     Priority       `json:"priority"`
	PricePerCan  *float64       `json:"pricePerCan"`
	PaymentType  *PaymentType   `json:"paymentType"`
	Status       *RequestStatus `json:"status"`
}

func (r NewDeliveryRequest) Validate() error {
	if r.CustomerID == nil || *r.CustomerID == "" {
		return fmt.Errorf("%w: customerId is required", ErrValidation)
	}

	if r.Cans == nil || *r.Cans <= 0 {
		return fmt.Errorf("%w: cans must be a positive integer", ErrValidation)
	}

	if r.PricePerCan != nil && *r.PricePerCan < 0 {
		return fmt.Errorf("%w: pricePerCan must not be negative", ErrValidation)
	}

	if r.Priority != "" && r.Priority != PriorityNormal && r.Priority != PriorityUrgent {
		return fmt.Errorf("%w: priority must be %q or %q", ErrValidation, PriorityNormal, PriorityUrgent)
	}

	if r.PaymentType != nil && *r.PaymentType != PaymentCash && *r.PaymentType != PaymentAccount {
		return fmt.Errorf("%w: paymentType must be %q or %q", ErrValidation, PaymentCash, PaymentAccount)
	}

	if r.Status != nil && *r.Status != StatusPending && *r.Status != StatusPendingConfirmation {
		return fmt.Errorf("%w: initial status must be %q or %q", ErrValidation, StatusPending, StatusPendingConfirmation)
	}

	return nil
}

// InitialStatus returns the requested initial status, defaulting to pending.
func (r NewDeliveryRequest) InitialStatus() RequestStatus {
	if r.Status != nil {
		return *r.Status
	}
	return StatusPending
}

// EffectivePriority returns the requested priority, defaulting to normal.
func (r NewDeliveryRequest) EffectivePriority() Priority {
	if r.Priority == "" {
		return PriorityNormal
	}
	return r.Priority
}

type StatusUpdate struct {
	Status *RequestStatus `json:"status"`
}
