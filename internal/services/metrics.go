package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moazam110/PaaniPlant-sub001/internal/database"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
)

var ErrInvalidMetricsQuery = errors.New("invalid metrics query")

// AggregationWindow is the canonical half-open time window [From, To) a partial
// date selection resolves to. Exactly one of the three render modes applies:
// day view (both flags false), month view, or year view.
type AggregationWindow struct {
	From          time.Time
	To            time.Time
	TimeLabel     string
	IsMonthlyView bool
	IsYearView    bool
}

// ResolveWindow turns an optional (day, month, year) selection into a single
// aggregation window, substituting parts of the current date for absent ones:
//
//   - nothing given: today
//   - day given: that day in the current month/year (absent parts substituted)
//   - month given, day absent: that whole month (year substituted when absent)
//   - only year given: that whole year
//
// Pure function of the inputs; now supplies the substitutions and the label.
func ResolveWindow(query models.MetricsQuery, now time.Time) (AggregationWindow, error) {
	if query.Day != nil && (*query.Day < 1 || *query.Day > 31) {
		return AggregationWindow{}, fmt.Errorf("%w: day must be between 1 and 31", ErrInvalidMetricsQuery)
	}
	if query.Month != nil && (*query.Month < 1 || *query.Month > 12) {
		return AggregationWindow{}, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidMetricsQuery)
	}
	if query.Year != nil && (*query.Year < 1000 || *query.Year > 9999) {
		return AggregationWindow{}, fmt.Errorf("%w: year must be a 4-digit number", ErrInvalidMetricsQuery)
	}

	loc := now.Location()

	switch {
	case query.Day == nil && query.Month == nil && query.Year == nil:
		from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		return AggregationWindow{
			From:      from,
			To:        from.AddDate(0, 0, 1),
			TimeLabel: "Today",
		}, nil

	case query.Day != nil:
		month := now.Month()
		if query.Month != nil {
			month = time.Month(*query.Month)
		}
		year := now.Year()
		if query.Year != nil {
			year = *query.Year
		}

		from := time.Date(year, month, *query.Day, 0, 0, 0, 0, loc)
		if from.Day() != *query.Day {
			// time.Date normalized the value, e.g. April 31 to May 1.
			return AggregationWindow{}, fmt.Errorf("%w: day %d does not exist in %s %d", ErrInvalidMetricsQuery, *query.Day, month, year)
		}

		return AggregationWindow{
			From:      from,
			To:        from.AddDate(0, 0, 1),
			TimeLabel: from.Format("January 2, 2006"),
		}, nil

	case query.Month != nil:
		year := now.Year()
		if query.Year != nil {
			year = *query.Year
		}

		from := time.Date(year, time.Month(*query.Month), 1, 0, 0, 0, 0, loc)
		return AggregationWindow{
			From:          from,
			To:            from.AddDate(0, 1, 0),
			TimeLabel:     from.Format("January 2006"),
			IsMonthlyView: true,
		}, nil

	default:
		from := time.Date(*query.Year, time.January, 1, 0, 0, 0, 0, loc)
		return AggregationWindow{
			From:       from,
			To:         from.AddDate(1, 0, 0),
			TimeLabel:  from.Format("2006"),
			IsYearView: true,
		}, nil
	}
}

// MetricsService resolves dashboard metric queries into a window and computes
// the rollups over delivered requests inside it.
type MetricsService struct {
	storage metricsStorage
	now     func() time.Time
}

type metricsStorage interface {
	SelectDeliveryStats(ctx context.Context, from, to time.Time) (*database.DeliveryStatsDB, error)
}

func NewMetricsService(storage metricsStorage) *MetricsService {
	return &MetricsService{storage: storage, now: time.Now}
}

func (m *MetricsService) GetDashboardMetrics(ctx context.Context, query models.MetricsQuery) (models.DashboardMetrics, error) {
	window, err := ResolveWindow(query, m.now())
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	stats, err := m.storage.SelectDeliveryStats(ctx, window.From, window.To)
	if err != nil {
		return models.DashboardMetrics{}, err
	}

	return models.DashboardMetrics{
		Deliveries:               stats.Deliveries,
		TotalCans:                stats.TotalCans,
		TotalAmountGenerated:     stats.TotalAmount,
		TotalCashAmountGenerated: stats.TotalCashAmount,
		TimeLabel:                window.TimeLabel,
		IsMonthlyView:            window.IsMonthlyView,
		IsYearView:               window.IsYearView,
	}, nil
}
