package po2zone

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zonekit/po2zone/pkg/zoned"
)

var (
	routerPrometheusMetrics sync.Once

	routerOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "po2zone",
			Subsystem: "router",
			Name:      "outcomes_total",
			Help:      "Number of routed requests, partitioned by operation and terminal state.",
		},
		[]string{"operation", "outcome"})
)

type metricsRouter struct {
	base Router
}

// NewMetricsRouter creates a decorator for Router that exposes
// Prometheus metrics on how submitted requests were routed.
func NewMetricsRouter(base Router) Router {
	routerPrometheusMetrics.Do(func() {
		prometheus.MustRegister(routerOutcomes)
	})

	return &metricsRouter{
		base: base,
	}
}

func (r *metricsRouter) Submit(req *zoned.Request) (RouterOutcome, error) {
	outcome, err := r.base.Submit(req)
	routerOutcomes.WithLabelValues(req.Operation.String(), outcomeLabel(outcome, err)).Inc()
	return outcome, err
}

func outcomeLabel(outcome RouterOutcome, err error) string {
	if err != nil {
		return "rejected"
	}
	switch outcome.Kind {
	case OutcomeSplit:
		return "split"
	case OutcomeZeroFilled:
		return "zero_filled"
	default:
		return "remapped"
	}
}
