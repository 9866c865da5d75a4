package controllers

import (
	"net/http"
	"time"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	tablesvc "github.com/phonedeck/phonedeck-backend/internal/tables"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

const dayLayout = "2006-01-02"

// SellerCreateTable creates a price table with an exposure window.
func SellerCreateTable(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "table service unavailable"))
			return
		}

		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createTableRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.CreateTable(r.Context(), storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, table)
	}
}

// SellerUpdateTable applies partial updates to one of the seller's tables.
func SellerUpdateTable(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tableID, err := pathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTableRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.UpdateTable(r.Context(), storeID, tableID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, table)
	}
}

// SellerDeleteTable soft deletes a table and cascades to its products.
func SellerDeleteTable(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tableID, err := pathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason := r.URL.Query().Get("reason")
		if err := svc.DeleteTable(r.Context(), storeID, tableID, reason); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SellerRestoreTable restores a soft deleted table. Products cascaded by the
// table delete stay deleted and must be restored individually.
func SellerRestoreTable(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tableID, err := pathUUID(r, "tableId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		table, err := svc.RestoreTable(r.Context(), storeID, tableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, table)
	}
}

// SellerListTables lists every table owned by the seller's store.
func SellerListTables(svc tablesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tables, err := svc.ListByStore(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, tables)
	}
}

type createTableRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=120"`
	ExposureStartDate string `json:"exposureStartDate" validate:"required"`
	ExposureEndDate   string `json:"exposureEndDate" validate:"required"`
}

func (p createTableRequest) toInput() (tablesvc.CreateTableInput, error) {
	start, err := time.Parse(dayLayout, p.ExposureStartDate)
	if err != nil {
		return tablesvc.CreateTableInput{}, pkgerrors.New(pkgerrors.CodeValidation, "exposureStartDate must be YYYY-MM-DD")
	}
	end, err := time.Parse(dayLayout, p.ExposureEndDate)
	if err != nil {
		return tablesvc.CreateTableInput{}, pkgerrors.New(pkgerrors.CodeValidation, "exposureEndDate must be YYYY-MM-DD")
	}
	return tablesvc.CreateTableInput{
		Name:              p.Name,
		ExposureStartDate: start,
		ExposureEndDate:   end,
	}, nil
}

type updateTableRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	ExposureStartDate *string `json:"exposureStartDate,omitempty"`
	ExposureEndDate   *string `json:"exposureEndDate,omitempty"`
	IsActive          *bool   `json:"isActive,omitempty"`
}

func (p updateTableRequest) toInput() (tablesvc.UpdateTableInput, error) {
	input := tablesvc.UpdateTableInput{
		Name:     p.Name,
		IsActive: p.IsActive,
	}
	if p.ExposureStartDate != nil {
		start, err := time.Parse(dayLayout, *p.ExposureStartDate)
		if err != nil {
			return tablesvc.UpdateTableInput{}, pkgerrors.New(pkgerrors.CodeValidation, "exposureStartDate must be YYYY-MM-DD")
		}
		input.ExposureStartDate = &start
	}
	if p.ExposureEndDate != nil {
		end, err := time.Parse(dayLayout, *p.ExposureEndDate)
		if err != nil {
			return tablesvc.UpdateTableInput{}, pkgerrors.New(pkgerrors.CodeValidation, "exposureEndDate must be YYYY-MM-DD")
		}
		input.ExposureEndDate = &end
	}
	return input, nil
}
