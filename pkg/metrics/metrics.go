package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formkit/pkg/form"
)

const namespace = "formkit"

// Collector records async validation activity as Prometheus metrics and
// satisfies form.Metrics.
type Collector struct {
	scheduled  *prometheus.CounterVec
	superseded *prometheus.CounterVec
	applied    *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	faults     *prometheus.CounterVec
}

var _ form.Metrics = (*Collector)(nil)

// New creates a Collector and registers it with reg.
// It returns an error when the metrics are already registered.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		scheduled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "async_checks_scheduled_total",
			Help:      "Async validator checks scheduled.",
		}, []string{"validator"}),
		superseded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "async_checks_superseded_total",
			Help:      "Async validator checks dropped before their result was applied.",
		}, []string{"validator"}),
		applied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "async_checks_applied_total",
			Help:      "Async validator results applied to a control.",
		}, []string{"validator", "failed"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "async_check_duration_seconds",
			Help:      "Time from scheduling an async check to applying its result.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"validator"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validator_faults_total",
			Help:      "Validators that panicked or async checks that errored.",
		}, []string{"validator"}),
	}
	for _, col := range []prometheus.Collector{c.scheduled, c.superseded, c.applied, c.duration, c.faults} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) CheckScheduled(id string) {
	c.scheduled.WithLabelValues(id).Inc()
}

func (c *Collector) CheckSuperseded(id string) {
	c.superseded.WithLabelValues(id).Inc()
}

func (c *Collector) CheckApplied(id string, failed bool, d time.Duration) {
	c.applied.WithLabelValues(id, strconv.FormatBool(failed)).Inc()
	c.duration.WithLabelValues(id).Observe(d.Seconds())
}

func (c *Collector) ValidatorFault(id string) {
	c.faults.WithLabelValues(id).Inc()
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
