package services

import (
	"errors"
	"time"
)

// Admission errors are ordinary business outcomes, not failures: every rejected
// attempt reaches the caller with a distinguishable reason.
var (
	ErrDuplicateActiveRequest = errors.New("customer already has an active delivery request")
	ErrRateLimited            = errors.New("too many delivery request attempts")
)

// AdmissionService is the single entry point deciding whether a creation
// attempt for a customer may proceed.
type AdmissionService struct {
	rateLimiter admissionRateLimiter
	index       admissionIndex
}

type admissionRateLimiter interface {
	Allow(customerID string, now time.Time) bool
}

type admissionIndex interface {
	TryReserve(customerID string) bool

	Release(customerID string)

	Prime(customerIDs []string)
}

func NewAdmissionService(rateLimiter admissionRateLimiter, index admissionIndex) *AdmissionService {
	return &AdmissionService{rateLimiter: rateLimiter, index: index}
}

// TryAdmit checks the rate limiter first, then reserves the customer's active
// slot. The limiter attempt is not refunded when the reservation fails: a
// rejected duplicate still counts toward the limit, which slows down repeated
// hammering. On success the caller owns the reservation and must either
// persist a request or call ReleaseReservation.
func (a *AdmissionService) TryAdmit(customerID string) error {
	if !a.rateLimiter.Allow(customerID, time.Now()) {
		return ErrRateLimited
	}

	if !a.index.TryReserve(customerID) {
		return ErrDuplicateActiveRequest
	}

	return nil
}

// ReleaseReservation frees a slot obtained through TryAdmit.
func (a *AdmissionService) ReleaseReservation(customerID string) {
	a.index.Release(customerID)
}

// PrimeReservations marks customers with already-active requests as reserved.
func (a *AdmissionService) PrimeReservations(customerIDs []string) {
	a.index.Prime(customerIDs)
}
