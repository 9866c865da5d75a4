package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/phonedeck/phonedeck-backend/api/responses"
	"github.com/phonedeck/phonedeck-backend/api/validators"
	productsvc "github.com/phonedeck/phonedeck-backend/internal/products"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	pkgerrors "github.com/phonedeck/phonedeck-backend/pkg/errors"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
)

// SellerCreateProduct handles product creation inside a seller price table.
func SellerCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), storeID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// SellerUpdateProduct applies partial updates to one of the seller's products.
func SellerUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), storeID, productID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SellerDeleteProduct soft deletes a product with an optional reason.
func SellerDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason := r.URL.Query().Get("reason")
		if err := svc.DeleteProduct(r.Context(), storeID, productID, reason); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// SellerRestoreProduct restores a soft deleted product.
func SellerRestoreProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID, err := storeIDFrom(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.RestoreProduct(r.Context(), storeID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// SellerListTableProducts lists every product in one of the seller's tables,
// including soft deleted rows.
func SellerListTableProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		products, err := svc.ListByTable(r.Context(), storeID, tableID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, products)
	}
}

type createProductRequest struct {
	TableID       string   `json:"tableId" validate:"required,uuid"`
	DeviceModelID string   `json:"deviceModelId" validate:"required,uuid"`
	Carrier       string   `json:"carrier" validate:"required"`
	Storage       string   `json:"storage" validate:"required"`
	Price         int      `json:"price" validate:"required,min=1"`
	Conditions    []string `json:"conditions,omitempty" validate:"omitempty,dive,required"`
}

func (p createProductRequest) toInput() (productsvc.CreateProductInput, error) {
	carrier, err := enums.ParseCarrier(p.Carrier)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid carrier")
	}
	storage, err := enums.ParseStorage(p.Storage)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid storage")
	}
	tableID, err := uuid.Parse(p.TableID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid table id")
	}
	modelID, err := uuid.Parse(p.DeviceModelID)
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid device model id")
	}
	return productsvc.CreateProductInput{
		TableID:       tableID,
		DeviceModelID: modelID,
		Carrier:       carrier,
		Storage:       storage,
		Price:         p.Price,
		Conditions:    p.Conditions,
	}, nil
}

type updateProductRequest struct {
	Price      *int      `json:"price,omitempty" validate:"omitempty,min=1"`
	Conditions *[]string `json:"conditions,omitempty"`
	IsActive   *bool     `json:"isActive,omitempty"`
}

func (p updateProductRequest) toInput() productsvc.UpdateProductInput {
	return productsvc.UpdateProductInput{
		Price:      p.Price,
		Conditions: p.Conditions,
		IsActive:   p.IsActive,
	}
}
