package vendors

import (
	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// UpdateVendorInput is a partial update. Nil fields are left untouched.
// When ExpectedVersion is set the update only applies if the stored record
// still carries that version.
type UpdateVendorInput struct {
	ID              string              `json:"-"`
	Name            *string             `json:"name,omitempty" validate:"omitnil,min=1,max=120"`
	Rating          *float64            `json:"rating,omitempty" validate:"omitnil,gte=0,lte=5"`
	ImageURL        *string             `json:"imageUrl,omitempty" validate:"omitnil,url"`
	Products        *[]catalog.Item     `json:"products,omitempty"`
	MobileNo        *string             `json:"mobileNo,omitempty" validate:"omitnil,mobile"`
	Email           *string             `json:"email,omitempty" validate:"omitnil,email"`
	OperatingHours  *string             `json:"operatingHours,omitempty" validate:"omitnil,max=120"`
	Description     *string             `json:"description,omitempty" validate:"omitnil,max=1000"`
	Status          *enums.VendorStatus `json:"status,omitempty" validate:"omitnil,vendor_status"`
	AccountNo       *string             `json:"accountNo,omitempty" validate:"omitnil,number,min=6,max=18"`
	IFSCCode        *string             `json:"ifscCode,omitempty" validate:"omitnil,ifsc"`
	BankName        *string             `json:"bankName,omitempty" validate:"omitnil,max=120"`
	ExpectedVersion *int64              `json:"expectedVersion,omitempty" validate:"omitnil,gte=0"`
}

func (in UpdateVendorInput) apply(v Vendor) Vendor {
	out := v.Clone()
	if in.Name != nil {
		out.Name = *in.Name
	}
	if in.Rating != nil {
		out.Rating = *in.Rating
	}
	if in.ImageURL != nil {
		out.ImageURL = *in.ImageURL
	}
	if in.Products != nil {
		out.Products = catalog.CloneItems(*in.Products)
		if out.Products == nil {
			out.Products = []catalog.Item{}
		}
	}
	if in.MobileNo != nil {
		out.MobileNo = *in.MobileNo
	}
	if in.Email != nil {
		out.Email = *in.Email
	}
	if in.OperatingHours != nil {
		out.OperatingHours = *in.OperatingHours
	}
	if in.Description != nil {
		out.Description = *in.Description
	}
	if in.Status != nil {
		out.Status = *in.Status
	}
	if in.AccountNo != nil {
		out.AccountNo = *in.AccountNo
	}
	if in.IFSCCode != nil {
		out.IFSCCode = *in.IFSCCode
	}
	if in.BankName != nil {
		out.BankName = *in.BankName
	}
	return out
}

// RegisterVendorInput carries the onboarding form. Payout details are
// optional but must be given together.
type RegisterVendorInput struct {
	Name      string `json:"name" validate:"required,min=1,max=120"`
	MobileNo  string `json:"mobileNo" validate:"required,mobile"`
	Email     string `json:"email" validate:"required,email"`
	ImageURL  string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	AccountNo string `json:"accountNo,omitempty" validate:"omitempty,number,min=6,max=18"`
	IFSCCode  string `json:"ifscCode,omitempty" validate:"omitempty,ifsc"`
	BankName  string `json:"bankName,omitempty" validate:"max=120"`
}

const (
	defaultBannerURL      = "https://picsum.photos/seed/newstore/400/200"
	defaultOperatingHours = "Not set"
	defaultDescription    = "Welcome to our new store!"
)

func (in RegisterVendorInput) build(id string) Vendor {
	banner := in.ImageURL
	if banner == "" {
		banner = defaultBannerURL
	}
	return Vendor{
		ID:             id,
		Name:           in.Name,
		Rating:         0,
		ImageURL:       banner,
		Products:       []catalog.Item{},
		MobileNo:       in.MobileNo,
		Email:          in.Email,
		OperatingHours: defaultOperatingHours,
		Description:    defaultDescription,
		Status:         enums.VendorStatusPending,
		AccountNo:      in.AccountNo,
		IFSCCode:       in.IFSCCode,
		BankName:       in.BankName,
	}
}

// StringPtr is a small helper for building partial updates.
func StringPtr(value string) *string {
	return &value
}
