package checkout

import (
	"context"
	"fmt"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type orderPlacer interface {
	PlaceOrder(ctx context.Context, snapshot basket.Snapshot) (orders.Order, error)
}

// Result is what a successful checkout produced.
type Result struct {
	Order   orders.Order `json:"order"`
	Bill    basket.Bill  `json:"bill"`
	Receipt Receipt      `json:"receipt"`
}

// Service prices the basket and turns it into an order.
type Service interface {
	Quote(ctx context.Context) basket.Bill
	Checkout(ctx context.Context, method string) (Result, error)
}

type service struct {
	basket   *basket.Basket
	orders   orderPlacer
	payments PaymentGateway
	billing  config.BillingConfig
	logg     *logger.Logger
}

// NewService builds the checkout service.
func NewService(b *basket.Basket, placer orderPlacer, payments PaymentGateway, billing config.BillingConfig, logg *logger.Logger) (Service, error) {
	if b == nil {
		return nil, fmt.Errorf("basket required")
	}
	if placer == nil {
		return nil, fmt.Errorf("order placer required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if err := billing.Validate(); err != nil {
		return nil, err
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		basket:   b,
		orders:   placer,
		payments: payments,
		billing:  billing,
		logg:     logg,
	}, nil
}

func (s *service) Quote(context.Context) basket.Bill {
	return basket.Quote(s.basket.Snapshot(), s.billing)
}

// Checkout charges the bill and places the order. The ordered lines leave
// the basket only once the order exists; items added meanwhile stay.
func (s *service) Checkout(ctx context.Context, method string) (Result, error) {
	payment, err := enums.ParsePaymentMethod(method)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unsupported payment method").
			WithDetails(map[string]string{"method": "must be one of paytm, phonepe, gpay, upi"})
	}

	snapshot := s.basket.Snapshot()
	if snapshot.IsEmpty() {
		return Result{}, pkgerrors.New(pkgerrors.CodeEmptyOrder, "cannot check out an empty basket")
	}
	bill := basket.Quote(snapshot, s.billing)

	receipt, err := s.payments.Charge(ctx, payment, bill.Payable)
	if err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment failed")
	}

	order, err := s.orders.PlaceOrder(ctx, snapshot)
	if err != nil {
		return Result{}, err
	}
	s.basket.RemoveOrdered(snapshot)

	ctx = s.logg.WithFields(s.logg.WithOrderID(ctx, order.ID), map[string]any{
		"payment_method": payment.String(),
		"payable":        bill.Payable.String(),
	})
	s.logg.Info(ctx, "checkout completed")
	return Result{Order: order, Bill: bill, Receipt: receipt}, nil
}
