// Package orders tracks the single current order and advances it through
// placed, processing, out_for_delivery and delivered on a timer.
package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// ChangeFunc is notified after an order is placed and after every
// transition. Calls are made one at a time in the order the changes
// happened, and only while the order is still current: a transition of a
// cleared or replaced order is never delivered after its successor. The
// callback must not place or clear orders.
type ChangeFunc func(ctx context.Context, order Order)

// ServiceParams groups the dependencies of the order service.
type ServiceParams struct {
	Clock    clockwork.Clock
	Config   config.OrdersConfig
	Logger   *logger.Logger
	Metrics  *metrics.OrderMetrics
	OnChange ChangeFunc
}

// Service owns the current order. Each placed order gets one runner
// goroutine that waits out the dwell times in sequence. A runner only
// applies a transition while its order id and generation are still
// current, so transitions of a cleared or replaced order are dropped.
type Service struct {
	clock    clockwork.Clock
	stages   []stage
	eta      string
	logg     *logger.Logger
	metrics  *metrics.OrderMetrics
	onChange ChangeFunc

	// notifyMu serializes OnChange calls; it is taken before mu.
	notifyMu sync.Mutex

	mu         sync.Mutex
	current    *Order
	generation uint64
	stop       chan struct{}
	lastID     int64
	runners    sync.WaitGroup
}

// NewService validates the dwell configuration and builds the service.
func NewService(params ServiceParams) (*Service, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}
	clock := params.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Service{
		clock: clock,
		stages: []stage{
			{status: enums.OrderStatusProcessing, after: params.Config.ProcessingAfter},
			{status: enums.OrderStatusOutForDelivery, after: params.Config.OutForDeliveryAfter},
			{status: enums.OrderStatusDelivered, after: params.Config.DeliveredAfter},
		},
		eta:      params.Config.EstimatedDelivery,
		logg:     logg,
		metrics:  params.Metrics,
		onChange: params.OnChange,
	}, nil
}

// PlaceOrder creates an order from the snapshot and makes it current,
// disarming any pending transitions of the previous order.
func (s *Service) PlaceOrder(ctx context.Context, snapshot basket.Snapshot) (Order, error) {
	if snapshot.IsEmpty() {
		return Order{}, pkgerrors.New(pkgerrors.CodeEmptyOrder, "cannot place an order for an empty basket")
	}

	s.mu.Lock()
	s.disarmLocked()
	now := s.clock.Now()
	order := Order{
		ID:                s.nextIDLocked(now.UnixMilli()),
		Items:             append([]basket.LineItem(nil), snapshot.Items...),
		TotalPrice:        snapshot.TotalPrice,
		TotalItems:        snapshot.TotalItems,
		Status:            enums.OrderStatusPlaced,
		CreatedAt:         now,
		EstimatedDelivery: s.eta,
	}
	s.current = &order
	stop := make(chan struct{})
	s.stop = stop
	gen := s.generation
	placed := order.clone()
	s.runners.Add(1)
	s.mu.Unlock()

	runCtx := s.logg.WithOrderID(context.WithoutCancel(ctx), placed.ID)
	s.metrics.IncPlaced()
	s.logg.Info(runCtx, "order placed")
	s.notify(runCtx, placed, gen)

	go s.run(runCtx, placed, gen, stop)
	return placed, nil
}

// ClearOrder drops the current order, if any.
func (s *Service) ClearOrder(ctx context.Context) {
	s.mu.Lock()
	cleared := s.current
	s.disarmLocked()
	s.current = nil
	s.mu.Unlock()

	if cleared != nil {
		s.logg.Info(s.logg.WithOrderID(ctx, cleared.ID), "order cleared")
	}
}

// DismissDelivered clears the current order once it has been delivered.
func (s *Service) DismissDelivered(ctx context.Context) error {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeNotFound, "no current order")
	}
	if s.current.Status != enums.OrderStatusDelivered {
		status := s.current.Status
		s.mu.Unlock()
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order has not been delivered").
			WithDetails(map[string]any{"status": status})
	}
	id := s.current.ID
	s.disarmLocked()
	s.current = nil
	s.mu.Unlock()

	s.logg.Info(s.logg.WithOrderID(ctx, id), "delivered order dismissed")
	return nil
}

// Current returns a copy of the current order.
func (s *Service) Current() (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Order{}, false
	}
	return s.current.clone(), true
}

// Close disarms the pending transitions and waits for the runner to exit.
// The current order stays readable.
func (s *Service) Close() {
	s.mu.Lock()
	s.disarmLocked()
	s.mu.Unlock()
	s.runners.Wait()
}

func (s *Service) run(ctx context.Context, placed Order, gen uint64, stop <-chan struct{}) {
	defer s.runners.Done()

	for _, st := range s.stages {
		wait := placed.CreatedAt.Add(st.after).Sub(s.clock.Now())
		if wait > 0 {
			timer := s.clock.NewTimer(wait)
			select {
			case <-stop:
				timer.Stop()
				s.metrics.IncStale()
				return
			case <-timer.Chan():
			}
		}

		updated, ok := s.advance(placed.ID, gen, st.status)
		if !ok {
			s.metrics.IncStale()
			s.logg.Debug(ctx, "stale order transition dropped")
			return
		}
		s.metrics.IncTransition(st.status.String())
		s.logg.Info(s.logg.WithField(ctx, "status", st.status.String()), "order status advanced")
		s.notify(ctx, updated, gen)
	}
}

func (s *Service) advance(id string, gen uint64, status enums.OrderStatus) (Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != id || s.generation != gen {
		return Order{}, false
	}
	if status.Rank() > s.current.Status.Rank() {
		s.current.Status = status
	}
	return s.current.clone(), true
}

func (s *Service) disarmLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	s.generation++
}

func (s *Service) nextIDLocked(millis int64) string {
	if millis <= s.lastID {
		millis = s.lastID + 1
	}
	s.lastID = millis
	return fmt.Sprintf("order_%d", millis)
}

func (s *Service) notify(ctx context.Context, order Order, gen uint64) {
	if s.onChange == nil {
		return
	}
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	live := s.generation == gen && s.current != nil && s.current.ID == order.ID
	s.mu.Unlock()
	if !live {
		s.logg.Debug(ctx, "stale order notification dropped")
		return
	}
	s.onChange(ctx, order)
}
