package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NearbySearchesTotal  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rueating", Name: "nearby_searches_total", Help: "Total proximity searches served"})
	CuisineSearchesTotal = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rueating", Name: "cuisine_searches_total", Help: "Total by-cuisine searches served"})
	OrdersPlacedTotal    = promauto.NewCounter(prometheus.CounterOpts{Namespace: "rueating", Name: "orders_placed_total", Help: "Total orders committed"})
	OrderTotalDollars    = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "rueating",
		Name:      "order_total_dollars",
		Help:      "Distribution of committed order totals",
		Buckets:   []float64{5, 10, 20, 40, 80, 160},
	})
	OrderFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "rueating", Name: "order_failures_total", Help: "Orders rejected or rolled back, by reason"},
		[]string{"reason"},
	)
)
