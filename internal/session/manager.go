package session

import (
	"context"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/storefront/internal/vendors"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// Provider exposes the identity of the current session.
type Provider interface {
	CurrentIdentity(ctx context.Context) Identity
}

// Directory is the part of the vendor replica the session needs.
type Directory interface {
	FindByContact(ctx context.Context, mobile string) (vendors.Vendor, bool, error)
	Register(ctx context.Context, input vendors.RegisterVendorInput) (vendors.Vendor, error)
}

var customerValidator = newCustomerValidator()

func newCustomerValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Manager holds the single local session.
type Manager struct {
	directory Directory
	logg      *logger.Logger

	mu      sync.Mutex
	current Identity
}

var _ Provider = (*Manager)(nil)

func NewManager(directory Directory, logg *logger.Logger) *Manager {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Manager{directory: directory, logg: logg}
}

func (m *Manager) CurrentIdentity(context.Context) Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current.clone()
}

func (m *Manager) SignInGuest(ctx context.Context) Identity {
	return m.set(ctx, guestIdentity())
}

// SignInCustomer starts a customer session. A phone or an email is required.
func (m *Manager) SignInCustomer(ctx context.Context, profile Customer) (Identity, error) {
	details := map[string]string{}
	if err := customerValidator.Struct(profile); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				details[fe.Field()] = "is invalid"
			}
		}
	}
	if profile.Phone == "" && profile.Email == "" {
		details["phone"] = "phone or email is required"
	}
	if len(details) > 0 {
		return Identity{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer profile").WithDetails(details)
	}
	return m.set(ctx, customerIdentity(profile)), nil
}

// SignInVendor resolves the vendor registered with mobile and signs in as
// that vendor.
func (m *Manager) SignInVendor(ctx context.Context, mobile string) (Identity, error) {
	vendor, found, err := m.directory.FindByContact(ctx, mobile)
	if err != nil {
		return Identity{}, err
	}
	if !found {
		return Identity{}, pkgerrors.New(pkgerrors.CodeNotFound, "no vendor account found with this mobile number")
	}
	return m.set(ctx, vendorIdentity(vendor)), nil
}

// RegisterVendor onboards a new vendor unless the mobile number is already
// taken, then signs in as the new vendor.
func (m *Manager) RegisterVendor(ctx context.Context, input vendors.RegisterVendorInput) (Identity, error) {
	_, exists, err := m.directory.FindByContact(ctx, input.MobileNo)
	if err != nil {
		return Identity{}, err
	}
	if exists {
		return Identity{}, pkgerrors.New(pkgerrors.CodeConflict, "a vendor with this mobile number already exists").
			WithDetails(map[string]string{"mobileNo": "already registered"})
	}
	created, err := m.directory.Register(ctx, input)
	if err != nil {
		return Identity{}, err
	}
	return m.set(ctx, vendorIdentity(created)), nil
}

func (m *Manager) SignOut(ctx context.Context) {
	m.set(ctx, Identity{})
}

// VendorTarget returns the vendor the session may edit.
func (m *Manager) VendorTarget(ctx context.Context) (vendors.Vendor, error) {
	vendor, ok := m.CurrentIdentity(ctx).VendorProfile()
	if !ok {
		return vendors.Vendor{}, pkgerrors.New(pkgerrors.CodeForbidden, "vendor session required")
	}
	return vendor, nil
}

// RefreshVendor swaps in a newer snapshot of the signed-in vendor. Records
// for other vendors are ignored.
func (m *Manager) RefreshVendor(ctx context.Context, vendor vendors.Vendor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Vendor == nil || m.current.Vendor.ID != vendor.ID {
		return
	}
	m.current = vendorIdentity(vendor)
}

func (m *Manager) set(ctx context.Context, identity Identity) Identity {
	m.mu.Lock()
	m.current = identity
	out := identity.clone()
	m.mu.Unlock()

	if identity.SignedIn() {
		m.logg.Info(m.logg.WithIdentityKind(ctx, identity.Kind.String()), "session started")
	} else {
		m.logg.Info(ctx, "session ended")
	}
	return out
}
