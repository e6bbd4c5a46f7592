package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Order is the tracked result of a checkout. Only Status changes after
// creation.
type Order struct {
	ID                string            `json:"id"`
	Items             []basket.LineItem `json:"items"`
	TotalPrice        decimal.Decimal   `json:"total_price"`
	TotalItems        int               `json:"total_items"`
	Status            enums.OrderStatus `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
	EstimatedDelivery string            `json:"estimated_delivery"`
}

func (o Order) clone() Order {
	out := o
	if o.Items != nil {
		out.Items = make([]basket.LineItem, len(o.Items))
		copy(out.Items, o.Items)
	}
	return out
}

type stage struct {
	status enums.OrderStatus
	after  time.Duration
}
