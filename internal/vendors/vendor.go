// Package vendors holds the vendor directory: the simulated remote record
// store, its durable snapshot format, and the local replica the storefront
// reads from.
package vendors

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Vendor is one storefront record. Values handed out by this package are
// always independent copies.
type Vendor struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Rating         float64            `json:"rating"`
	ImageURL       string             `json:"imageUrl"`
	Products       []catalog.Item     `json:"products"`
	MobileNo       string             `json:"mobileNo,omitempty"`
	Email          string             `json:"email,omitempty"`
	OperatingHours string             `json:"operatingHours,omitempty"`
	Description    string             `json:"description,omitempty"`
	Status         enums.VendorStatus `json:"status"`
	AccountNo      string             `json:"accountNo,omitempty"`
	IFSCCode       string             `json:"ifscCode,omitempty"`
	BankName       string             `json:"bankName,omitempty"`
	Version        int64              `json:"version"`
}

// Clone returns a deep copy.
func (v Vendor) Clone() Vendor {
	out := v
	out.Products = catalog.CloneItems(v.Products)
	return out
}

// Item looks up one of the vendor's products.
func (v Vendor) Item(itemID string) (catalog.Item, bool) {
	return catalog.FindItem(v.Products, itemID)
}

// HasPayout reports whether payout details are on file.
func (v Vendor) HasPayout() bool {
	return v.AccountNo != "" && v.IFSCCode != "" && v.BankName != ""
}

func cloneAll(vendors []Vendor) []Vendor {
	out := make([]Vendor, len(vendors))
	for i, v := range vendors {
		out[i] = v.Clone()
	}
	return out
}

func indexOf(vendors []Vendor, id string) int {
	for i, v := range vendors {
		if v.ID == id {
			return i
		}
	}
	return -1
}
