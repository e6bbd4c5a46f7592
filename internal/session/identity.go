// Package session tracks who is using the storefront. Credential checks
// happen elsewhere; this package only issues and holds identities.
package session

import (
	"github.com/angelmondragon/storefront/internal/vendors"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Customer is the profile of a signed-in shopper.
type Customer struct {
	Phone     string `json:"phone,omitempty" validate:"omitempty,len=10,number"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty" validate:"max=60"`
	LastName  string `json:"lastName,omitempty" validate:"max=60"`
}

// Identity is a tagged union over guest, customer and vendor. The zero
// value means nobody is signed in.
type Identity struct {
	Kind     enums.IdentityKind `json:"kind,omitempty"`
	Customer *Customer          `json:"customer,omitempty"`
	Vendor   *vendors.Vendor    `json:"vendor,omitempty"`
}

func guestIdentity() Identity {
	return Identity{Kind: enums.IdentityKindGuest}
}

func customerIdentity(c Customer) Identity {
	return Identity{Kind: enums.IdentityKindCustomer, Customer: &c}
}

func vendorIdentity(v vendors.Vendor) Identity {
	clone := v.Clone()
	return Identity{Kind: enums.IdentityKindVendor, Vendor: &clone}
}

// SignedIn reports whether the identity is any of the three kinds.
func (i Identity) SignedIn() bool {
	return i.Kind.IsValid()
}

// VendorProfile returns the embedded vendor snapshot.
func (i Identity) VendorProfile() (vendors.Vendor, bool) {
	if i.Kind != enums.IdentityKindVendor || i.Vendor == nil {
		return vendors.Vendor{}, false
	}
	return i.Vendor.Clone(), true
}

func (i Identity) clone() Identity {
	out := Identity{Kind: i.Kind}
	if i.Customer != nil {
		c := *i.Customer
		out.Customer = &c
	}
	if i.Vendor != nil {
		v := i.Vendor.Clone()
		out.Vendor = &v
	}
	return out
}
