package services

import (
	"context"
	"testing"
	"time"

	"github.com/moazam110/PaaniPlant-sub001/internal/database"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(value int) *int {
	return &value
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		testName string
		query    models.MetricsQuery
		expected AggregationWindow
	}{
		{
			testName: "nothing given resolves to today",
			query:    models.MetricsQuery{},
			expected: AggregationWindow{
				From:      time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				To:        time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
				TimeLabel: "Today",
			},
		},
		{
			testName: "day only substitutes current month and year",
			query:    models.MetricsQuery{Day: intPtr(5)},
			expected: AggregationWindow{
				From:      time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
				To:        time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC),
				TimeLabel: "March 5, 2024",
			},
		},
		{
			testName: "month only substitutes current year",
			query:    models.MetricsQuery{Month: intPtr(1)},
			expected: AggregationWindow{
				From:          time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				To:            time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
				TimeLabel:     "January 2024",
				IsMonthlyView: true,
			},
		},
		{
			testName: "month and year resolve to the whole month",
			query:    models.MetricsQuery{Month: intPtr(3), Year: intPtr(2024)},
			expected: AggregationWindow{
				From:          time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
				To:            time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
				TimeLabel:     "March 2024",
				IsMonthlyView: true,
			},
		},
		{
			testName: "year only resolves to the whole year",
			query:    models.MetricsQuery{Year: intPtr(2023)},
			expected: AggregationWindow{
				From:       time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
				To:         time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
				TimeLabel:  "2023",
				IsYearView: true,
			},
		},
		{
			testName: "full date resolves to that single day",
			query:    models.MetricsQuery{Day: intPtr(15), Month: intPtr(1), Year: intPtr(2024)},
			expected: AggregationWindow{
				From:      time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
				To:        time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC),
				TimeLabel: "January 15, 2024",
			},
		},
		{
			testName: "day and year without month substitute current month",
			query:    models.MetricsQuery{Day: intPtr(20), Year: intPtr(2023)},
			expected: AggregationWindow{
				From:      time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC),
				To:        time.Date(2023, time.March, 21, 0, 0, 0, 0, time.UTC),
				TimeLabel: "March 20, 2023",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			window, err := ResolveWindow(tc.query, now)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, window)
		})
	}
}

func TestResolveWindowYieldsExactlyOneViewMode(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	queries := []models.MetricsQuery{
		{},
		{Day: intPtr(5)},
		{Month: intPtr(1)},
		{Month: intPtr(3), Year: intPtr(2024)},
		{Year: intPtr(2023)},
		{Day: intPtr(15), Month: intPtr(1), Year: intPtr(2024)},
	}

	for _, query := range queries {
		window, err := ResolveWindow(query, now)
		require.NoError(t, err)
		assert.False(t, window.IsMonthlyView && window.IsYearView,
			"month and year view are mutually exclusive")
	}
}

func TestResolveWindowValidation(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		testName string
		query    models.MetricsQuery
	}{
		{"day below range", models.MetricsQuery{Day: intPtr(0)}},
		{"day above range", models.MetricsQuery{Day: intPtr(32)}},
		{"month below range", models.MetricsQuery{Month: intPtr(0)}},
		{"month above range", models.MetricsQuery{Month: intPtr(13)}},
		{"year not 4 digits", models.MetricsQuery{Year: intPtr(99)}},
		{"day missing from month", models.MetricsQuery{Day: intPtr(31), Month: intPtr(4), Year: intPtr(2024)}},
		{"february 30th", models.MetricsQuery{Day: intPtr(30), Month: intPtr(2), Year: intPtr(2024)}},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			_, err := ResolveWindow(tc.query, now)
			assert.ErrorIs(t, err, ErrInvalidMetricsQuery)
		})
	}
}

type stubMetricsStorage struct {
	from  time.Time
	to    time.Time
	stats database.DeliveryStatsDB
}

func (s *stubMetricsStorage) SelectDeliveryStats(_ context.Context, from, to time.Time) (*database.DeliveryStatsDB, error) {
	s.from = from
	s.to = to
	return &s.stats, nil
}

func TestGetDashboardMetrics(t *testing.T) {
	storage := &stubMetricsStorage{
		stats: database.DeliveryStatsDB{
			Deliveries:      7,
			TotalCans:       84,
			TotalAmount:     4200,
			TotalCashAmount: 1500,
		},
	}

	service := NewMetricsService(storage)
	service.now = func() time.Time {
		return time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)
	}

	metrics, err := service.GetDashboardMetrics(context.Background(), models.MetricsQuery{Month: intPtr(3), Year: intPtr(2024)})
	require.NoError(t, err)

	assert.Equal(t, models.DashboardMetrics{
		Deliveries:               7,
		TotalCans:                84,
		TotalAmountGenerated:     4200,
		TotalCashAmountGenerated: 1500,
		TimeLabel:                "March 2024",
		IsMonthlyView:            true,
	}, metrics)

	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), storage.from)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), storage.to)
}

func TestGetDashboardMetricsRejectsInvalidQuery(t *testing.T) {
	service := NewMetricsService(&stubMetricsStorage{})

	_, err := service.GetDashboardMetrics(context.Background(), models.MetricsQuery{Day: intPtr(40)})
	assert.ErrorIs(t, err, ErrInvalidMetricsQuery)
}
