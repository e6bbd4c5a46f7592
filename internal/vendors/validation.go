package vendors

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

var (
	mobilePattern = regexp.MustCompile(`^[0-9]{10}$`)
	ifscPattern   = regexp.MustCompile(`^[A-Za-z]{4}0[A-Za-z0-9]{6}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	if err := RegisterValidations(v); err != nil {
		panic(fmt.Sprintf("registering vendor validations: %v", err))
	}
	return v
}

// RegisterValidations installs the vendor field tags and payout rules on v
// so that HTTP decoding can reject bad input with the same rules.
func RegisterValidations(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"mobile":        func(fl validator.FieldLevel) bool { return mobilePattern.MatchString(fl.Field().String()) },
		"ifsc":          func(fl validator.FieldLevel) bool { return ifscPattern.MatchString(fl.Field().String()) },
		"vendor_status": func(fl validator.FieldLevel) bool { return enums.VendorStatus(fl.Field().String()).IsValid() },
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	v.RegisterStructValidation(updatePayoutRule, UpdateVendorInput{})
	v.RegisterStructValidation(registerPayoutRule, RegisterVendorInput{})
	return nil
}

// ValidationMessage renders a field error for API details.
func ValidationMessage(fe validator.FieldError) string {
	return messageFor(fe.Tag(), fe.Param())
}

func messageFor(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", param)
	case "max":
		return fmt.Sprintf("must be at most %s", param)
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", param)
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", param)
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid url"
	case "number":
		return "must contain digits only"
	case "mobile":
		return "must be a 10-digit mobile number"
	case "ifsc":
		return "must be a valid IFSC code"
	case "vendor_status":
		return "must be pending or active"
	case "payout":
		return "payout details must be provided together"
	}
	return "is invalid"
}

func validateMobile(mobile string) error {
	if !mobilePattern.MatchString(mobile) {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid mobile number").
			WithDetails(map[string]string{"mobileNo": messageFor("mobile", "")})
	}
	return nil
}

func validateUpdate(in UpdateVendorInput) error {
	details := map[string]string{}
	if strings.TrimSpace(in.ID) == "" {
		details["id"] = "is required"
	}
	collect(details, validate.Struct(in))
	if in.Products != nil {
		for field, msg := range productProblems(*in.Products) {
			details[field] = msg
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor update").WithDetails(details)
	}
	return nil
}

func validateRegister(in RegisterVendorInput) error {
	details := map[string]string{}
	collect(details, validate.Struct(in))
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor registration").WithDetails(details)
	}
	return nil
}

func collect(details map[string]string, err error) {
	if err == nil {
		return
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		details["_"] = err.Error()
		return
	}
	for _, fe := range errs {
		details[fe.Field()] = ValidationMessage(fe)
	}
}

func productProblems(items []catalog.Item) map[string]string {
	problems := map[string]string{}
	seen := map[string]struct{}{}
	for i, item := range items {
		key := fmt.Sprintf("products[%d]", i)
		switch {
		case strings.TrimSpace(item.ID) == "":
			problems[key+".id"] = "is required"
		case item.Price.IsNegative():
			problems[key+".price"] = "must not be negative"
		}
		if _, dup := seen[item.ID]; dup && item.ID != "" {
			problems[key+".id"] = "must be unique"
		}
		seen[item.ID] = struct{}{}
	}
	return problems
}

func updatePayoutRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(UpdateVendorInput)
	fields := []struct {
		name  string
		field string
		value *string
	}{
		{"accountNo", "AccountNo", in.AccountNo},
		{"ifscCode", "IFSCCode", in.IFSCCode},
		{"bankName", "BankName", in.BankName},
	}
	touched := false
	for _, f := range fields {
		if f.value != nil {
			touched = true
		}
	}
	if !touched {
		return
	}
	// Any payout field in an update replaces the whole payout block.
	for _, f := range fields {
		if f.value == nil || *f.value == "" {
			sl.ReportError(f.value, f.name, f.field, "payout", "")
		}
	}
}

// checkPayout rejects a record whose payout details are only partly filled.
func checkPayout(v Vendor) error {
	if v.HasPayout() || (v.AccountNo == "" && v.IFSCCode == "" && v.BankName == "") {
		return nil
	}
	details := map[string]string{}
	for name, value := range map[string]string{"accountNo": v.AccountNo, "ifscCode": v.IFSCCode, "bankName": v.BankName} {
		if value == "" {
			details[name] = messageFor("payout", "")
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor update").WithDetails(details)
}

func registerPayoutRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(RegisterVendorInput)
	fields := []struct {
		name  string
		field string
		value string
	}{
		{"accountNo", "AccountNo", in.AccountNo},
		{"ifscCode", "IFSCCode", in.IFSCCode},
		{"bankName", "BankName", in.BankName},
	}
	provided := 0
	for _, f := range fields {
		if f.value != "" {
			provided++
		}
	}
	if provided == 0 || provided == len(fields) {
		return
	}
	for _, f := range fields {
		if f.value == "" {
			sl.ReportError(f.value, f.name, f.field, "payout", "")
		}
	}
}

func jsonName(f reflect.StructField) string {
	tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if tag == "" || tag == "-" {
		return f.Name
	}
	return tag
}
