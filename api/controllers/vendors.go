package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/vendors"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// VendorDirectory is the replica surface the HTTP shell reads and writes.
type VendorDirectory interface {
	Loading() bool
	Err() error
	Vendors() []vendors.Vendor
	Vendor(id string) (vendors.Vendor, bool)
	FetchAll(ctx context.Context) error
	FindByContact(ctx context.Context, mobile string) (vendors.Vendor, bool, error)
	Update(ctx context.Context, input vendors.UpdateVendorInput) (vendors.Vendor, error)
}

type vendorListResponse struct {
	Vendors []vendors.Vendor `json:"vendors"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
}

func newVendorList(dir VendorDirectory) vendorListResponse {
	resp := vendorListResponse{
		Vendors: dir.Vendors(),
		Loading: dir.Loading(),
	}
	if err := dir.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// VendorList returns the replica as currently held, including its load state.
func VendorList(dir VendorDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor directory unavailable"))
			return
		}
		responses.WriteSuccess(w, newVendorList(dir))
	}
}

// VendorRefresh re-fetches the directory. A failed fetch keeps the
// previous vendors and reports the error.
func VendorRefresh(dir VendorDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor directory unavailable"))
			return
		}
		if err := dir.FetchAll(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newVendorList(dir))
	}
}

func VendorGet(dir VendorDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor directory unavailable"))
			return
		}
		vendor, ok := dir.Vendor(chi.URLParam(r, "vendorId"))
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found"))
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// VendorLookup finds a vendor by registered mobile number.
func VendorLookup(dir VendorDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor directory unavailable"))
			return
		}
		mobile, err := validators.RequireQuery(r, "mobile")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		vendor, found, err := dir.FindByContact(r.Context(), mobile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no vendor registered with this mobile number"))
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// VendorRegister onboards a vendor and signs the session in as them.
func VendorRegister(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		var payload vendors.RegisterVendorInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		identity, err := sess.RegisterVendor(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, identity)
	}
}

// VendorProfile returns the signed-in vendor's snapshot.
func VendorProfile(sess SessionManager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session unavailable"))
			return
		}
		vendor, err := sess.VendorTarget(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, vendor)
	}
}

// VendorProfileUpdate applies a partial update to the signed-in vendor.
// The target id always comes from the session, never from the body.
func VendorProfileUpdate(sess SessionManager, dir VendorDirectory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if sess == nil || dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendor directory unavailable"))
			return
		}
		target, err := sess.VendorTarget(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload vendors.UpdateVendorInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		payload.ID = target.ID

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithVendorID(ctx, target.ID)
		}
		updated, err := dir.Update(ctx, payload)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		sess.RefreshVendor(ctx, updated)
		responses.WriteSuccess(w, updated)
	}
}
