package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
)

var (
	// ErrDuplicateActiveRequest is returned when the partial unique index rejects
	// an insert because the customer already has a non-terminal request.
	ErrDuplicateActiveRequest = errors.New("customer already has an active delivery request")

	// ErrRequestStateChanged is returned when a status update finds the row in a
	// different state than the caller observed.
	ErrRequestStateChanged = errors.New("delivery request state changed concurrently")
)

const (
	requestColumns = `
			id,
			customer_id,
			customer_name,
			address,
			status,
			priority,
			cans,
			price_per_can,
			payment_type,
			requested_at,
			delivered_at,
			cancelled_at
	`

	InsertDeliveryRequestQuery = `
		INSERT INTO
			delivery_requests (customer_id, customer_name, address, status, priority, cans, price_per_can, payment_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING` + requestColumns

	SelectDeliveryRequestQuery = `
		SELECT` + requestColumns + `
		FROM
		    delivery_requests
		WHERE
		    id = $1
	`

	SelectAllDeliveryRequestsQuery = `
		SELECT` + requestColumns + `
		FROM
		    delivery_requests
		ORDER BY
		    requested_at ASC
	`

	UpdateDeliveryRequestStatusQuery = `
		UPDATE
			delivery_requests
		SET
			status = $3,
			delivered_at = CASE WHEN $3::text = 'delivered' THEN now() ELSE delivered_at END,
			cancelled_at = CASE WHEN $3::text = 'cancelled' THEN now() ELSE cancelled_at END
		WHERE
		    id = $1 AND status = $2
		RETURNING` + requestColumns

	SelectActiveCustomerIDsQuery = `
		SELECT
			customer_id
		FROM
		    delivery_requests
		WHERE
		    status IN ('pending', 'pending_confirmation', 'processing')
	`
)

type DeliveryRequestDB struct {
	ID           string
	CustomerID   string
	CustomerName string
	Address      string
	Status       RequestStatusDB
	Priority     string
	Cans         int
	PricePerCan  *float64
	PaymentType  *string
	RequestedAt  time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
}

// NewDeliveryRequestDB carries the caller-supplied fields of an insert. The id
// and requested_at columns are assigned by the database.
type NewDeliveryRequestDB struct {
	CustomerID   string
	CustomerName string
	Address      string
	Status       string
	Priority     string
	Cans         int
	PricePerCan  *float64
	PaymentType  *string
}

type RequestStatusDB struct {
	models.RequestStatus
}

func (s *RequestStatusDB) Scan(value interface{}) error {
	strVal, ok := value.(string)
	if !ok {
		return fmt.Errorf("request status must be a string, not %T", value)
	}

	*s = RequestStatusDB{models.RequestStatus(strVal)}
	return nil
}

func (s RequestStatusDB) Value() (driver.Value, error) {
	return string(s.RequestStatus), nil
}

func scanDeliveryRequest(row pgx.Row) (*DeliveryRequestDB, error) {
	request := &DeliveryRequestDB{}

	err := row.Scan(
		&request.ID,
		&request.CustomerID,
		&request.CustomerName,
		&request.Address,
		&request.Status,
		&request.Priority,
		&request.Cans,
		&request.PricePerCan,
		&request.PaymentType,
		&request.RequestedAt,
		&request.DeliveredAt,
		&request.CancelledAt,
	)
	if err != nil {
		return nil, err
	}

	return request, nil
}

// CreateDeliveryRequest inserts a new request. A unique violation on the partial
// index is translated to ErrDuplicateActiveRequest and is never surfaced raw.
func (d *Database) CreateDeliveryRequest(ctx context.Context, request NewDeliveryRequestDB) (*DeliveryRequestDB, error) {
	created, err := scanDeliveryRequest(d.db.QueryRow(
		ctx,
		InsertDeliveryRequestQuery,
		request.CustomerID,
		request.CustomerName,
		request.Address,
		request.Status,
		request.Priority,
		request.Cans,
		request.PricePerCan,
		request.PaymentType,
	))
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.UniqueViolation {
			return nil, ErrDuplicateActiveRequest
		}
		return nil, fmt.Errorf("failed to create delivery request: %w", err)
	}

	return created, nil
}

// FindDeliveryRequest returns the request with the given id, or nil when it does not exist.
func (d *Database) FindDeliveryRequest(ctx context.Context, requestID string) (*DeliveryRequestDB, error) {
	request, err := scanDeliveryRequest(d.db.QueryRow(ctx, SelectDeliveryRequestQuery, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find delivery request: %w", err)
	}

	return request, nil
}

// FindAllDeliveryRequests returns every request in insertion order.
func (d *Database) FindAllDeliveryRequests(ctx context.Context) (*[]DeliveryRequestDB, error) {
	var result []DeliveryRequestDB

	rows, err := d.db.Query(ctx, SelectAllDeliveryRequestsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to find delivery requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item DeliveryRequestDB
		if err := rows.Scan(
			&item.ID,
			&item.CustomerID,
			&item.CustomerName,
			&item.Address,
			&item.Status,
			&item.Priority,
			&item.Cans,
			&item.PricePerCan,
			&item.PaymentType,
			&item.RequestedAt,
			&item.DeliveredAt,
			&item.CancelledAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan delivery request row: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delivery request rows: %w", err)
	}

	return &result, nil
}

// UpdateDeliveryRequestStatus moves a request from an observed status to a new one
// with a compare-and-set on the status column, stamping delivered_at or cancelled_at
// on the matching terminal transition. ErrRequestStateChanged is returned when the
// row no longer holds the observed status.
func (d *Database) UpdateDeliveryRequestStatus(ctx context.Context, requestID string, from, to RequestStatusDB) (*DeliveryRequestDB, error) {
	updated, err := scanDeliveryRequest(d.db.QueryRow(ctx, UpdateDeliveryRequestStatusQuery, requestID, from, to))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRequestStateChanged
		}
		return nil, fmt.Errorf("failed to update delivery request status: %w", err)
	}

	return updated, nil
}

// FindCustomersWithActiveRequests returns the ids of customers holding a
// non-terminal request, used to prime the in-process reservation index at boot.
func (d *Database) FindCustomersWithActiveRequests(ctx context.Context) ([]string, error) {
	var result []string

	rows, err := d.db.Query(ctx, SelectActiveCustomerIDsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to find customers with active requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID string
		if err := rows.Scan(&customerID); err != nil {
			return nil, fmt.Errorf("failed to scan customer id: %w", err)
		}
		result = append(result, customerID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate customer id rows: %w", err)
	}

	return result, nil
}
