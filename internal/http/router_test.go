package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	mock_models "github.com/moazam110/PaaniPlant-sub001/internal/models/mocks"
	"github.com/moazam110/PaaniPlant-sub001/internal/services"
	"github.com/moazam110/PaaniPlant-sub001/internal/utils"
	"github.com/stretchr/testify/assert"
)

func sampleCreatedRequest() *models.DeliveryRequest {
	return &models.DeliveryRequest{
		ID:           "req-1",
		CustomerID:   "c-1",
		CustomerName: "Al Karachi",
		Address:      "12 Canal Road",
		Status:       models.StatusPending,
		Priority:     models.PriorityNormal,
		Cans:         3,
		RequestedAt:  utils.RFC3339Date{Time: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)},
	}
}

func TestCreateDeliveryRequestRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryServiceMock := mock_models.NewMockDeliveryService(ctrl)
	metricsServiceMock := mock_models.NewMockMetricsService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, deliveryServiceMock, metricsServiceMock).get(),
	)
	defer testServer.Close()

	CustomerID := "c-1"
	Cans := 3
	newRequest := models.NewDeliveryRequest{
		CustomerID:   &CustomerID,
		CustomerName: "Al Karachi",
		Address:      "12 Canal Road",
		Cans:         &Cans,
	}

	testCases := []struct {
		testName        string
		headers         map[string]string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Should reject a request without the JSON content type",
			headers:         map[string]string{},
			expectedCode:    http.StatusUnsupportedMediaType,
			expectedMessage: "Content-Type is not application/json\n",
		},
		{
			testName:        "Should return a validation error due to missing body",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "Error occurred during unmarshaling data unexpected end of JSON input\n",
		},
		{
			testName: "Should return a validation error for a malformed request",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					CreateDeliveryRequest(gomock.Any(), models.NewDeliveryRequest{CustomerName: "Al Karachi"}).
					Return(nil, fmt.Errorf("%w: customerId is required", models.ErrValidation))
			},
			body: func() io.Reader {
				data, _ := json.Marshal(models.NewDeliveryRequest{CustomerName: "Al Karachi"})
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "{\"error\":\"ValidationError\",\"message\":\"validation failed: customerId is required\"}\n",
		},
		{
			testName: "Should return a conflict when the customer already has an active request",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					CreateDeliveryRequest(gomock.Any(), newRequest).
					Return(nil, services.ErrDuplicateActiveRequest)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(newRequest)
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusConflict,
			expectedMessage: "{\"error\":\"DuplicateActiveRequest\"}\n",
		},
		{
			testName: "Should return too many requests when the rate limit is hit",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					CreateDeliveryRequest(gomock.Any(), newRequest).
					Return(nil, services.ErrRateLimited)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(newRequest)
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusTooManyRequests,
			expectedMessage: "{\"error\":\"RateLimited\"}\n",
		},
		{
			testName: "Should return an internal error when persistence fails",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					CreateDeliveryRequest(gomock.Any(), newRequest).
					Return(nil, fmt.Errorf("connection reset"))
			},
			body: func() io.Reader {
				data, _ := json.Marshal(newRequest)
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "{\"error\":\"InternalError\",\"message\":\"connection reset\"}\n",
		},
		{
			testName: "Should create a delivery request",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					CreateDeliveryRequest(gomock.Any(), newRequest).
					Return(sampleCreatedRequest(), nil)
			},
			body: func() io.Reader {
				data, _ := json.Marshal(newRequest)
				return bytes.NewBuffer(data)
			},
			expectedCode:    http.StatusCreated,
			expectedMessage: "{\"id\":\"req-1\",\"customerId\":\"c-1\",\"customerName\":\"Al Karachi\",\"address\":\"12 Canal Road\",\"status\":\"pending\",\"priority\":\"normal\",\"cans\":3,\"requestedAt\":\"2024-03-01T12:00:00Z\"}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			headers := tc.headers
			if headers == nil {
				headers = map[string]string{"Content-Type": "application/json"}
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				"POST",
				"/api/delivery-requests",
				headers,
				body,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestGetDeliveryRequestsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryServiceMock := mock_models.NewMockDeliveryService(ctrl)
	metricsServiceMock := mock_models.NewMockMetricsService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, deliveryServiceMock, metricsServiceMock).get(),
	)
	defer testServer.Close()

	testCases := []struct {
		testName        string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should return an internal error when the lookup fails",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					GetDeliveryRequests(gomock.Any()).
					Return(nil, fmt.Errorf("connection reset"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "{\"error\":\"InternalError\",\"message\":\"connection reset\"}\n",
		},
		{
			testName: "Should return an empty list when there are no requests",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					GetDeliveryRequests(gomock.Any()).
					Return([]models.DeliveryRequest{}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "[]\n",
		},
		{
			testName: "Should return the stored requests",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					GetDeliveryRequests(gomock.Any()).
					Return([]models.DeliveryRequest{*sampleCreatedRequest()}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "[{\"id\":\"req-1\",\"customerId\":\"c-1\",\"customerName\":\"Al Karachi\",\"address\":\"12 Canal Road\",\"status\":\"pending\",\"priority\":\"normal\",\"cans\":3,\"requestedAt\":\"2024-03-01T12:00:00Z\"}]\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				"GET",
				"/api/delivery-requests",
				nil,
				nil,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestTransitionStatusRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryServiceMock := mock_models.NewMockDeliveryService(ctrl)
	metricsServiceMock := mock_models.NewMockMetricsService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, deliveryServiceMock, metricsServiceMock).get(),
	)
	defer testServer.Close()

	statusBody := func(status models.RequestStatus) func() io.Reader {
		return func() io.Reader {
			data, _ := json.Marshal(models.StatusUpdate{Status: &status})
			return bytes.NewBuffer(data)
		}
	}

	testCases := []struct {
		testName        string
		body            func() io.Reader
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName: "Should return a validation error due to missing status",
			body: func() io.Reader {
				return bytes.NewBufferString("{}")
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "{\"error\":\"ValidationError\",\"message\":\"status is required\"}\n",
		},
		{
			testName: "Should return not found for an unknown request",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					TransitionStatus(gomock.Any(), "req-1", models.StatusProcessing).
					Return(nil, services.ErrRequestNotFound)
			},
			body:            statusBody(models.StatusProcessing),
			expectedCode:    http.StatusNotFound,
			expectedMessage: "{\"error\":\"NotFound\"}\n",
		},
		{
			testName: "Should return a conflict for an illegal transition",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					TransitionStatus(gomock.Any(), "req-1", models.StatusDelivered).
					Return(nil, fmt.Errorf("%w: delivered is not reachable from pending", services.ErrInvalidTransition))
			},
			body:            statusBody(models.StatusDelivered),
			expectedCode:    http.StatusConflict,
			expectedMessage: "{\"error\":\"InvalidTransition\",\"message\":\"status transition is not allowed: delivered is not reachable from pending\"}\n",
		},
		{
			testName: "Should return an internal error when the update fails",
			test: func(t *testing.T) {
				deliveryServiceMock.EXPECT().
					TransitionStatus(gomock.Any(), "req-1", models.StatusProcessing).
					Return(nil, fmt.Errorf("connection reset"))
			},
			body:            statusBody(models.StatusProcessing),
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "{\"error\":\"InternalError\",\"message\":\"connection reset\"}\n",
		},
		{
			testName: "Should transition the request",
			test: func(t *testing.T) {
				updated := sampleCreatedRequest()
				updated.Status = models.StatusProcessing

				deliveryServiceMock.EXPECT().
					TransitionStatus(gomock.Any(), "req-1", models.StatusProcessing).
					Return(updated, nil)
			},
			body:            statusBody(models.StatusProcessing),
			expectedCode:    http.StatusOK,
			expectedMessage: "{\"id\":\"req-1\",\"customerId\":\"c-1\",\"customerName\":\"Al Karachi\",\"address\":\"12 Canal Road\",\"status\":\"processing\",\"priority\":\"normal\",\"cans\":3,\"requestedAt\":\"2024-03-01T12:00:00Z\"}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			var body io.Reader

			if tc.body != nil {
				body = tc.body()
			}

			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				"PATCH",
				"/api/delivery-requests/req-1/status",
				map[string]string{"Content-Type": "application/json"},
				body,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestDashboardMetricsRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	deliveryServiceMock := mock_models.NewMockDeliveryService(ctrl)
	metricsServiceMock := mock_models.NewMockMetricsService(ctrl)

	testServer := httptest.NewServer(
		New(Config{}, deliveryServiceMock, metricsServiceMock).get(),
	)
	defer testServer.Close()

	Month := 3
	Year := 2024

	testCases := []struct {
		testName        string
		targetURL       string
		test            func(t *testing.T)
		expectedCode    int
		expectedMessage string
	}{
		{
			testName:        "Should reject a non-numeric date part without calling the service",
			targetURL:       "/api/dashboard/metrics?day=abc",
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "{\"error\":\"ValidationError\",\"message\":\"day must be an integer\"}\n",
		},
		{
			testName:  "Should reject an out-of-range date part",
			targetURL: "/api/dashboard/metrics?month=13&year=2024",
			test: func(t *testing.T) {
				MonthOutOfRange := 13

				metricsServiceMock.EXPECT().
					GetDashboardMetrics(gomock.Any(), models.MetricsQuery{Month: &MonthOutOfRange, Year: &Year}).
					Return(models.DashboardMetrics{}, fmt.Errorf("%w: month must be between 1 and 12", services.ErrInvalidMetricsQuery))
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "{\"error\":\"ValidationError\",\"message\":\"invalid metrics query: month must be between 1 and 12\"}\n",
		},
		{
			testName:  "Should return an internal error when aggregation fails",
			targetURL: "/api/dashboard/metrics",
			test: func(t *testing.T) {
				metricsServiceMock.EXPECT().
					GetDashboardMetrics(gomock.Any(), models.MetricsQuery{}).
					Return(models.DashboardMetrics{}, fmt.Errorf("connection reset"))
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "{\"error\":\"InternalError\",\"message\":\"connection reset\"}\n",
		},
		{
			testName:  "Should return the monthly metrics",
			targetURL: "/api/dashboard/metrics?month=3&year=2024",
			test: func(t *testing.T) {
				metricsServiceMock.EXPECT().
					GetDashboardMetrics(gomock.Any(), models.MetricsQuery{Month: &Month, Year: &Year}).
					Return(models.DashboardMetrics{
						Deliveries:               12,
						TotalCans:                40,
						TotalAmountGenerated:     2000,
						TotalCashAmountGenerated: 1500,
						TimeLabel:                "March 2024",
						IsMonthlyView:            true,
					}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "{\"deliveries\":12,\"totalCans\":40,\"totalAmountGenerated\":2000,\"totalCashAmountGenerated\":1500,\"timeLabel\":\"March 2024\",\"isMonthlyView\":true,\"isYearView\":false}\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			if tc.test != nil {
				tc.test(t)
			}

			res, mes := utils.TestRequest(
				t,
				testServer,
				"GET",
				tc.targetURL,
				nil,
				nil,
			)
			res.Body.Close()

			assert.Equal(t, tc.expectedCode, res.StatusCode)
			assert.Equal(t, tc.expectedMessage, mes)
		})
	}
}

func TestHealthRoute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	testServer := httptest.NewServer(
		New(
			Config{},
			mock_models.NewMockDeliveryService(ctrl),
			mock_models.NewMockMetricsService(ctrl),
		).get(),
	)
	defer testServer.Close()

	res, mes := utils.TestRequest(t, testServer, "GET", "/api/health", nil, nil)
	res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "{\"status\":\"ok\"}\n", mes)
}
