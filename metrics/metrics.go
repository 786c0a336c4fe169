package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StoreMetrics struct {
	OrdersCreated  prometheus.Counter
	OrderFailures  *prometheus.CounterVec
	OrphanedOrders prometheus.Counter
}

// NewStoreMetrics registers the order counters on the given registerer.
// Tests pass a throwaway prometheus.NewRegistry().
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "acestore",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of orders successfully placed.",
	})
	failures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "acestore",
		Subsystem: "orders",
		Name:      "failures_total",
		Help:      "Total number of failed order submissions.",
	}, []string{"kind"})
	orphaned := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "acestore",
		Subsystem: "orders",
		Name:      "orphaned_total",
		Help:      "Total number of pending orders flagged with zero line items.",
	})

	reg.MustRegister(created, failures, orphaned)
	return &StoreMetrics{
		OrdersCreated:  created,
		OrderFailures:  failures,
		OrphanedOrders: orphaned,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
