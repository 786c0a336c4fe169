package orders

import (
	"context"
	"time"

	"github.com/acestore/acestore-api/logger"
	"github.com/acestore/acestore-api/metrics"
)

// Reconciler periodically flags pending orders that were created before the
// grace period elapsed and still have zero line items. Those orders are the
// visible residue of a line-item insert failing after the order insert
// succeeded; they are flagged for the operator, never deleted.
type Reconciler struct {
	repo     *Repository
	interval time.Duration
	grace    time.Duration
	metrics  *metrics.StoreMetrics
	log      *logger.Logger
}

func NewReconciler(repo *Repository, interval, grace time.Duration, m *metrics.StoreMetrics, log *logger.Logger) *Reconciler {
	return &Reconciler{
		repo:     repo,
		interval: interval,
		grace:    grace,
		metrics:  m,
		log:      log,
	}
}

// Run sweeps on every tick until the context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (r *Reconciler) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-r.grace)
	flagged, err := r.repo.FlagOrphans(ctx, cutoff)
	if err != nil {
		r.log.Error("orphan sweep failed", "error", err)
		return
	}
	if flagged > 0 {
		r.metrics.OrphanedOrders.Add(float64(flagged))
		r.log.Warn("flagged orphaned pending orders", "count", flagged)
	}
}
