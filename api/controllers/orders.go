package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/internal/orders"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// OrderTracker exposes the current order.
type OrderTracker interface {
	Current() (orders.Order, bool)
	ClearOrder(ctx context.Context)
	DismissDelivered(ctx context.Context) error
}

// OrderCurrent is polled by clients to follow the order's status.
func OrderCurrent(svc OrderTracker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}
		order, ok := svc.Current()
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no active order"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}

func OrderClear(svc OrderTracker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}
		svc.ClearOrder(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// OrderDismiss clears the current order once it has been delivered.
func OrderDismiss(svc OrderTracker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders unavailable"))
			return
		}
		if err := svc.DismissDelivered(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "dismissed"})
	}
}
