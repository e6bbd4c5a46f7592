package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/session"
	"github.com/angelmondragon/storefront/internal/vendors"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// SessionManager is the session surface used by the HTTP shell.
type SessionManager interface {
	session.Provider
	SignInGuest(ctx context.Context) session.Identity
	SignInCustomer(ctx context.Context, profile session.Customer) (session.Identity, error)
	SignInVendor(ctx context.Context, mobile string) (session.Identity, error)
	RegisterVendor(ctx context.Context, input vendors.RegisterVendorInput) (session.Identity, error)
	SignOut(ctx context.Context)
	VendorTarget(ctx context.Context) (vendors.Vendor, error)
	RefreshVendor(ctx context.Context, vendor vendors.Vendor)
}

type vendorSignInRequest struct {
	MobileNo string `json:"mobileNo" validate:"required,mobile"`
}

func SessionCurrent(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		responses.WriteSuccess(w, sess.CurrentIdentity(r.Context()))
	}
}

func SessionSignOut(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		sess.SignOut(r.Context())
		responses.WriteSuccess(w, map[string]string{"status": "signed_out"})
	}
}

func SessionGuest(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, sess.SignInGuest(r.Context()))
	}
}

// SessionCustomer signs in a shopper with a phone number or email.
func SessionCustomer(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var payload session.Customer
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		identity, err := sess.SignInCustomer(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, identity)
	}
}

// SessionVendor signs in as the vendor registered with the given mobile.
func SessionVendor(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var payload vendorSignInRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		identity, err := sess.SignInVendor(r.Context(), payload.MobileNo)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, identity)
	}
}
