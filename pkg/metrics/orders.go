package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics records order lifecycle activity.
type OrderMetrics struct {
	placed      prometheus.Counter
	transitions *prometheus.CounterVec
	stale       prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	placed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_placed_total",
		Help: "Orders created at checkout.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Autonomous order status transitions by target status.",
	}, []string{"status"})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_stale_transitions_total",
		Help: "Scheduled transitions discarded because their order was cleared or replaced.",
	})
	reg.MustRegister(placed, transitions, stale)
	return &OrderMetrics{
		placed:      placed,
		transitions: transitions,
		stale:       stale,
	}
}

// IncPlaced counts a new order.
func (o *OrderMetrics) IncPlaced() {
	if o == nil || o.placed == nil {
		return
	}
	o.placed.Inc()
}

// IncTransition counts a transition into status.
func (o *OrderMetrics) IncTransition(status string) {
	if o == nil || o.transitions == nil {
		return
	}
	o.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncStale counts a discarded transition.
func (o *OrderMetrics) IncStale() {
	if o == nil || o.stale == nil {
		return
	}
	o.stale.Inc()
}
