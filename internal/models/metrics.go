package models

// MetricsQuery carries the optional date parts of a dashboard metrics request.
// Any subset may be absent; the aggregator resolves the combination into a
// single day, month or year window.
type MetricsQuery struct {
	Day   *int
	Month *int
	Year  *int
}

type DashboardMetrics struct {
	Deliveries               int     `json:"deliveries"`
	TotalCans                int     `json:"totalCans"`
	TotalAmountGenerated     float64 `json:"totalAmountGenerated"`
	TotalCashAmountGenerated float64 `json:"totalCashAmountGenerated"`
	TimeLabel                string  `json:"timeLabel"`
	IsMonthlyView            bool    `json:"isMonthlyView"`
	IsYearView               bool    `json:"isYearView"`
}
