// Package metrics exposes Prometheus instrumentation for the block pipeline.
//
// A nil *Collector is valid and records nothing, so library code can call its
// methods unconditionally.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "haplo"

// Collector groups the pipeline collectors registered on one registry.
type Collector struct {
	readsIngested    prometheus.Counter
	sitesClassified  *prometheus.CounterVec
	splittableSites  prometheus.Gauge
	subblocksMerged  prometheus.Counter
	classifyDuration prometheus.Histogram
	mecScore         prometheus.Gauge
}

// NewCollector creates the pipeline collectors and registers them on reg. A nil reg yields a
// nil collector.
//
// Collectors already registered on reg by an earlier call are reused, so several blocks may
// report into one registry. The registry holds the only reference; nothing is cached here.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		return nil
	}

	return &Collector{
		readsIngested: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reads_ingested_total",
			Help:      "Number of reads ingested into blocks.",
		})),
		sitesClassified: register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sites_classified_total",
			Help:      "Number of sites classified, by class.",
		}, []string{"type"})),
		splittableSites: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "splittable_sites",
			Help:      "Usable sub-block boundaries of the last classified block.",
		})),
		subblocksMerged: register(reg, prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subblocks_merged_total",
			Help:      "Number of sub-block solutions merged into global haplotypes.",
		})),
		classifyDuration: register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "classify_duration_seconds",
			Help:      "Wall time of the parallel site classification pass.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 16),
		})),
		mecScore: register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mec_score",
			Help:      "Minimum error correction score of the last scored haplotype pair.",
		})),
	}
}

// register adds c to reg and returns it, or returns the equal collector reg already holds.
// Any other registration error is a programming error and panics, as with promauto.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	err := reg.Register(c)
	if err == nil {
		return c
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(T); ok {
			return existing
		}
	}
	panic(err)
}

// ReadsIngested adds n ingested reads.
func (c *Collector) ReadsIngested(n int) {
	if c == nil {
		return
	}
	c.readsIngested.Add(float64(n))
}

// SitesClassified adds n sites of the given class ("monotone", "ih", "nih").
func (c *Collector) SitesClassified(class string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.sitesClassified.WithLabelValues(class).Add(float64(n))
}

// SplittableSites records the number of usable boundaries.
func (c *Collector) SplittableSites(n int) {
	if c == nil {
		return
	}
	c.splittableSites.Set(float64(n))
}

// SubblockMerged counts one merged sub-block.
func (c *Collector) SubblockMerged() {
	if c == nil {
		return
	}
	c.subblocksMerged.Inc()
}

// ObserveClassify records the duration of a classification pass.
func (c *Collector) ObserveClassify(d time.Duration) {
	if c == nil {
		return
	}
	c.classifyDuration.Observe(d.Seconds())
}

// MECScore records the last computed score.
func (c *Collector) MECScore(score uint64) {
	if c == nil {
		return
	}
	c.mecScore.Set(float64(score))
}
