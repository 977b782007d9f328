package router

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moazam110/PaaniPlant-sub001/internal/middlewares"
	"github.com/moazam110/PaaniPlant-sub001/internal/models"
	"github.com/moazam110/PaaniPlant-sub001/internal/services"
)

func CreateDeliveryRequest(w http.ResponseWriter, r *http.Request) {
	request := middlewares.GetParsedJSONData[models.NewDeliveryRequest](w, r)

	deliveryService := middlewares.GetServiceFromContext[models.DeliveryService](w, r, middlewares.DeliveryServiceKey)

	created, err := (*deliveryService).CreateDeliveryRequest(r.Context(), request)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
			return
		}

		if errors.Is(err, services.ErrDuplicateActiveRequest) {
			writeError(w, http.StatusConflict, "DuplicateActiveRequest", "")
			return
		}

		if errors.Is(err, services.ErrRateLimited) {
			writeError(w, http.StatusTooManyRequests, "RateLimited", "")
			return
		}

		writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func GetDeliveryRequests(w http.ResponseWriter, r *http.Request) {
	deliveryService := middlewares.GetServiceFromContext[models.DeliveryService](w, r, middlewares.DeliveryServiceKey)

	requests, err := (*deliveryService).GetDeliveryRequests(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, requests)
}

func TransitionDeliveryRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "requestID")

	update := middlewares.GetParsedJSONData[models.StatusUpdate](w, r)

	if update.Status == nil {
		writeError(w, http.StatusBadRequest, "ValidationError", "status is required")
		return
	}

	deliveryService := middlewares.GetServiceFromContext[models.DeliveryService](w, r, middlewares.DeliveryServiceKey)

	updated, err := (*deliveryService).TransitionStatus(r.Context(), requestID, *update.Status)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotFound) {
			writeError(w, http.StatusNotFound, "NotFound", "")
			return
		}

		if errors.Is(err, services.ErrInvalidTransition) {
			writeError(w, http.StatusConflict, "InvalidTransition", err.Error())
			return
		}

		writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
