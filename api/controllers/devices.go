package controllers

import (
	"net/http"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/internal/devices"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

// ListDeviceModels returns the full device model catalog.
func ListDeviceModels(svc devices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		models, err := svc.ListModels(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, models)
	}
}

// GetDeviceModel returns a single device model by id.
func GetDeviceModel(svc devices.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "modelId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		model, err := svc.GetModel(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, model)
	}
}
