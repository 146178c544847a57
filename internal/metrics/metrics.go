package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/san-kum/brim/internal/core"
	"github.com/san-kum/brim/internal/mechanics"
)

// Config configures the build metrics.
type Config struct {
	Namespace string
	Buckets   []float64
	Registry  prometheus.Registerer
}

type Option func(*Config)

func WithNamespace(ns string) Option {
	return func(c *Config) { c.Namespace = ns }
}

func WithBuckets(b []float64) Option {
	return func(c *Config) { c.Buckets = b }
}

// WithRegistry sets the registerer. Defaults to prometheus.DefaultRegisterer.
func WithRegistry(r prometheus.Registerer) Option {
	return func(c *Config) { c.Registry = r }
}

// Recorder records build phases and the size of built systems. It
// implements core.Recorder.
type Recorder struct {
	phaseDuration *prometheus.HistogramVec
	phaseErrors   *prometheus.CounterVec
	components    *prometheus.GaugeVec
	system        *prometheus.GaugeVec
	builds        prometheus.Counter
}

var _ core.Recorder = (*Recorder)(nil)

func New(opts ...Option) *Recorder {
	cfg := Config{
		Namespace: "brim",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Recorder{
		phaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of a build phase over the whole model tree.",
			Buckets:   cfg.Buckets,
		}, []string{"phase"}),
		phaseErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "phase_errors_total",
			Help:      "Build phases that failed.",
		}, []string{"phase"}),
		components: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "components",
			Help:      "Components in the last built tree by kind.",
		}, []string{"kind"}),
		system: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "system_size",
			Help:      "Size of the last assembled system by quantity.",
		}, []string{"quantity"}),
		builds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "systems_total",
			Help:      "Systems assembled.",
		}),
	}
}

func (r *Recorder) ObservePhase(phase string, d time.Duration, err error) {
	r.phaseDuration.WithLabelValues(phase).Observe(d.Seconds())
	if err != nil {
		r.phaseErrors.WithLabelValues(phase).Inc()
	}
}

func (r *Recorder) ObserveComponents(kind string, n int) {
	r.components.WithLabelValues(kind).Set(float64(n))
}

// ObserveSystem records the number of bodies, coordinates, speeds,
// constraints and loads of an assembled system.
func (r *Recorder) ObserveSystem(s *mechanics.System) {
	if s == nil {
		return
	}
	r.builds.Inc()
	for quantity, n := range map[string]int{
		"bodies":       len(s.Bodies()),
		"coordinates":  len(s.Q()),
		"speeds":       len(s.U()),
		"holonomic":    len(s.Holonomic()),
		"nonholonomic": len(s.Nonholonomic()),
		"loads":        len(s.Loads()),
	} {
		r.system.WithLabelValues(quantity).Set(float64(n))
	}
}
