// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for the two money-moving operations. Registered on the default
// registry and exposed via /metrics.
var (
	BetsPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sportsbook_bets_placed_total",
		Help: "Number of bets successfully placed.",
	})

	BetsSettled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_bets_settled_total",
		Help: "Number of bets settled, by result.",
	}, []string{"result"})

	PlacementRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sportsbook_placements_rejected_total",
		Help: "Number of bet placements rejected, by reason.",
	}, []string{"reason"})
)
