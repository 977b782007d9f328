package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/moazam110/PaaniPlant-sub001/internal/middlewares"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	"github.com/moazam110/PaaniPlant-sub001/internal/services"
)

func GetDashboardMetrics(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	query := models.MetricsQuery{}
	var err error

	if query.Day, err = parseOptionalInt(params, "day"); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	if query.Month, err = parseOptionalInt(params, "month"); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	if query.Year, err = parseOptionalInt(params, "year"); err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	metricsService := middlewares.GetServiceFromContext[models.MetricsService](w, r, middlewares.MetricsServiceKey)

	metrics, err := (*metricsService).GetDashboardMetrics(r.Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMetricsQuery) {
			writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

func parseOptionalInt(params url.Values, name string) (*int, error) {
	raw := params.Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}

	return &value, nil
}
