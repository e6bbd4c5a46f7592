package enums

import "fmt"

// OrderStatus tracks the delivery lifecycle of a storefront order.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
)

// Ordered from entry to terminal state; the index is the rank.
var orderStatusSequence = []OrderStatus{
	OrderStatusPlaced,
	OrderStatusProcessing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

// OrderStatuses returns the lifecycle in forward order.
func OrderStatuses() []OrderStatus {
	out := make([]OrderStatus, len(orderStatusSequence))
	copy(out, orderStatusSequence)
	return out
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	return s.Rank() >= 0
}

// Rank returns the position in the lifecycle, or -1 for unknown values.
func (s OrderStatus) Rank() int {
	for i, candidate := range orderStatusSequence {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Next returns the status that directly follows s. The second value is false
// for the terminal state and for unknown values.
func (s OrderStatus) Next() (OrderStatus, bool) {
	rank := s.Rank()
	if rank < 0 || rank == len(orderStatusSequence)-1 {
		return "", false
	}
	return orderStatusSequence[rank+1], true
}

// IsTerminal reports whether no further transitions exist.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range orderStatusSequence {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
