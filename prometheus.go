package tcodec

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusConfig is a config of the Prometheus metrics reported by the
// driving loop.
//
// An instance can be created only by the [Prometheus] function. The zero
// value is invalid.
type PrometheusConfig struct {
	// Namespace of the metrics.
	Namespace string
	// Subsystem of the metrics.
	Subsystem string
	// Options for the steps counter, labelled by direction and outcome.
	Steps prometheus.CounterOpts
	// Options for the consumed units counter, labelled by direction.
	UnitsConsumed prometheus.CounterOpts
	// Options for the produced units counter, labelled by direction.
	UnitsProduced prometheus.CounterOpts
	// Options for the recoveries counter, labelled by direction.
	Recoveries prometheus.CounterOpts
	// Options for the histogram of units consumed per step.
	StepUnits prometheus.HistogramOpts

	registerer prometheus.Registerer
}

// Prometheus returns a [PrometheusConfig] with the provided registerer. If
// registerer is nil, metrics will not be registered. Many default parameters
// can be configured by passing configuration functions.
func Prometheus(
	registerer prometheus.Registerer,
	configFuncs ...func(c *PrometheusConfig),
) *PrometheusConfig {
	const (
		namespace = "tcodec"
		subsystem = ""
	)

	c := PrometheusConfig{
		registerer: registerer,
		Namespace:  namespace,
		Subsystem:  subsystem,
		Steps: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "steps",
			Help:      "Number of transcoding steps by direction and outcome",
		},
		UnitsConsumed: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "units_consumed",
			Help:      "Number of input units consumed by transcoding steps",
		},
		UnitsProduced: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "units_produced",
			Help:      "Number of output units produced by transcoding steps",
		},
		Recoveries: prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "recoveries",
			Help:      "Number of recoveries from invalid sequences",
		},
		StepUnits: prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "step_units",
			Help:      "Input units consumed per transcoding step",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
	}

	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}

	return &c
}

func (c *PrometheusConfig) metrics() *metrics {
	m := metrics{
		steps:         prometheus.NewCounterVec(c.Steps, []string{"direction", "outcome"}),
		unitsConsumed: prometheus.NewCounterVec(c.UnitsConsumed, []string{"direction"}),
		unitsProduced: prometheus.NewCounterVec(c.UnitsProduced, []string{"direction"}),
		recoveries:    prometheus.NewCounterVec(c.Recoveries, []string{"direction"}),
		stepUnits:     prometheus.NewHistogram(c.StepUnits),
	}

	if c.registerer != nil {
		c.registerer.MustRegister(
			m.steps,
			m.unitsConsumed,
			m.unitsProduced,
			m.recoveries,
			m.stepUnits,
		)
	}

	return &m
}

type metrics struct {
	steps         *prometheus.CounterVec
	unitsConsumed *prometheus.CounterVec
	unitsProduced *prometheus.CounterVec
	recoveries    *prometheus.CounterVec
	stepUnits     prometheus.Histogram
}

func (m *metrics) step(direction string, progress Progress, consumed, produced int) {
	if m == nil {
		return
	}
	m.steps.WithLabelValues(direction, progress.String()).Inc()
	m.unitsConsumed.WithLabelValues(direction).Add(float64(consumed))
	m.unitsProduced.WithLabelValues(direction).Add(float64(produced))
	m.stepUnits.Observe(float64(consumed))
}

func (m *metrics) recovery(direction string) {
	if m == nil {
		return
	}
	m.recoveries.WithLabelValues(direction).Inc()
}
