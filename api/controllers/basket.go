package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/checkout"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// ItemResolver finds a product listed by a vendor.
type ItemResolver interface {
	Item(vendorID, itemID string) (catalog.Item, bool)
}

type addItemRequest struct {
	VendorID string `json:"vendor_id" validate:"required"`
	ItemID   string `json:"item_id" validate:"required"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func BasketGet(b *basket.Basket, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket unavailable"))
			return
		}
		responses.WriteSuccess(w, b.Snapshot())
	}
}

func BasketClear(b *basket.Basket, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket unavailable"))
			return
		}
		b.Clear()
		responses.WriteSuccess(w, b.Snapshot())
	}
}

// BasketAddItem adds one unit of a vendor's product to the basket.
func BasketAddItem(b *basket.Basket, items ItemResolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b == nil || items == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket unavailable"))
			return
		}
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, ok := items.Item(payload.VendorID, payload.ItemID)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		b.Add(item)
		responses.WriteSuccess(w, b.Snapshot())
	}
}

// BasketSetQuantity sets a line's quantity. Zero or less removes the line.
func BasketSetQuantity(b *basket.Basket, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if b == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "basket unavailable"))
			return
		}
		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		b.SetQuantity(chi.URLParam(r, "itemId"), *payload.Quantity)
		responses.WriteSuccess(w, b.Snapshot())
	}
}

func BasketBill(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.Quote(r.Context()))
	}
}
