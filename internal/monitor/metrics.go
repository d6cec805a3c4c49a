package monitor

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the domain counters. A nil *Metrics is valid and records nothing,
// which keeps services usable in tests without a registry.
type Metrics struct {
	ordersPlaced     prometheus.Counter
	orderTransitions *prometheus.CounterVec
	magicLinksSent   *prometheus.CounterVec
	cacheLookups     *prometheus.CounterVec
}

// NewMetrics creates the domain counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		ordersPlaced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of orders created.",
		}),
		orderTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "order_transitions_total",
			Help: "Total number of order status changes.",
		}, []string{"from", "to"}),
		magicLinksSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "magic_links_sent_total",
			Help: "Total number of magic link emails sent.",
		}, []string{"purpose"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Cache lookups by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{m.ordersPlaced, m.orderTransitions, m.magicLinksSent, m.cacheLookups} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) OrdersPlaced(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ordersPlaced.Add(float64(n))
}

func (m *Metrics) OrderTransition(from, to string) {
	if m == nil {
		return
	}
	m.orderTransitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) MagicLinkSent(purpose string) {
	if m == nil {
		return
	}
	m.magicLinksSent.WithLabelValues(purpose).Inc()
}

// CacheLookup matches cache.Observer so it can be installed on the cache manager.
func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
