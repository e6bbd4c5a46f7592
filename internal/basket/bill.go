package basket

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront/pkg/config"
)

// Bill is the price breakdown shown before payment.
type Bill struct {
	ItemTotal       decimal.Decimal `json:"item_total"`
	DeliveryFee     decimal.Decimal `json:"delivery_fee"`
	TaxesAndCharges decimal.Decimal `json:"taxes_and_charges"`
	Payable         decimal.Decimal `json:"payable"`
	FreeDelivery    bool            `json:"free_delivery"`
}

// Quote prices a basket snapshot. Delivery is free once the item total
// reaches the configured threshold. An empty basket quotes to zero.
func Quote(snapshot Snapshot, cfg config.BillingConfig) Bill {
	if snapshot.IsEmpty() {
		return Bill{
			ItemTotal:       decimal.Zero,
			DeliveryFee:     decimal.Zero,
			TaxesAndCharges: decimal.Zero,
			Payable:         decimal.Zero,
		}
	}
	bill := Bill{
		ItemTotal:       snapshot.TotalPrice,
		DeliveryFee:     cfg.DeliveryFee,
		TaxesAndCharges: cfg.TaxesAndCharges,
	}
	if snapshot.TotalPrice.GreaterThanOrEqual(cfg.FreeDeliveryThreshold) {
		bill.DeliveryFee = decimal.Zero
		bill.FreeDelivery = true
	}
	bill.Payable = bill.ItemTotal.Add(bill.DeliveryFee).Add(bill.TaxesAndCharges)
	return bill
}
