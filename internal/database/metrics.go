package database

import (
	"context"
	"fmt"
	"time"
)

const SelectDeliveryStatsQuery = `
	SELECT
		COUNT(*),
		COALESCE(SUM(cans), 0),
		COALESCE(SUM(cans * price_per_can) FILTER (WHERE price_per_can IS NOT NULL), 0),
		COALESCE(SUM(cans * price_per_can) FILTER (WHERE price_per_can IS NOT NULL AND payment_type = 'cash'), 0)
	FROM
	    delivery_requests
	WHERE
	    status = 'delivered'
		AND COALESCE(delivered_at, requested_at) >= $1
		AND COALESCE(delivered_at, requested_at) < $2
`

type DeliveryStatsDB struct {
	Deliveries      int
	TotalCans       int
	TotalAmount     float64
	TotalCashAmount float64
}

// SelectDeliveryStats computes the dashboard rollups over delivered requests
// whose delivery time falls inside the half-open window [from, to).
func (d *Database) SelectDeliveryStats(ctx context.Context, from, to time.Time) (*DeliveryStatsDB, error) {
	stats := &DeliveryStatsDB{}

	err := d.db.QueryRow(ctx, SelectDeliveryStatsQuery, from, to).
		Scan(&stats.Deliveries, &stats.TotalCans, &stats.TotalAmount, &stats.TotalCashAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to select delivery stats: %w", err)
	}

	return stats, nil
}
