package enums

import (
	"fmt"
	"strings"
)

// PaymentMethod describes how a customer settles an order at checkout.
type PaymentMethod string

const (
	PaymentMethodPaytm   PaymentMethod = "paytm"
	PaymentMethodPhonePe PaymentMethod = "phonepe"
	PaymentMethodGPay    PaymentMethod = "gpay"
	PaymentMethodUPI     PaymentMethod = "upi"
)

var validPaymentMethods = []PaymentMethod{
	PaymentMethodPaytm,
	PaymentMethodPhonePe,
	PaymentMethodGPay,
	PaymentMethodUPI,
}

// String implements fmt.Stringer.
func (p PaymentMethod) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentMethod.
func (p PaymentMethod) IsValid() bool {
	for _, candidate := range validPaymentMethods {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentMethod converts raw input into a PaymentMethod.
func ParsePaymentMethod(value string) (PaymentMethod, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validPaymentMethods {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment method %q", value)
}
