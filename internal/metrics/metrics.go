package metrics

import (
	"sync/atomic"
	"time"
)

// MetricID identifies a counter or histogram slot.
type MetricID int

const (
	MetricLoginSuccess MetricID = iota
	MetricLoginFailure
	MetricLoginRateLimited
	MetricRefreshSuccess
	MetricRefreshFailure
	MetricReplayDetected
	MetricRefreshRateLimited
	MetricLogout
	MetricTokenRevoked
	MetricIntrospectValid
	MetricIntrospectInvalid
	MetricIntrospectLatency

	MetricIDCount
)

// HistogramBuckets is the fixed bucket count for latency histograms.
const HistogramBuckets = 8

// histogramBounds are the upper bounds of the first seven buckets; the
// eighth is +Inf.
var histogramBounds = [HistogramBuckets - 1]time.Duration{
	5 * time.Millisecond,
	10 * time.Millisecond,
	25 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	250 * time.Millisecond,
	500 * time.Millisecond,
}

// paddedCounter keeps each slot on its own cache line to avoid false
// sharing between hot counters.
type paddedCounter struct {
	value uint64
	_     [56]byte
}

// Config controls which metric families are recorded.
type Config struct {
	Enabled       bool
	EnableLatency bool
}

// Metrics holds atomic counters and optional latency histograms.
// The zero value of a nil *Metrics is a no-op recorder.
type Metrics struct {
	cfg        Config
	counters   [MetricIDCount]paddedCounter
	histograms [MetricIDCount][HistogramBuckets]paddedCounter
}

// Snapshot is a point-in-time deep copy of all recorded metrics.
type Snapshot struct {
	Counters   map[MetricID]uint64
	Histograms map[MetricID][]uint64
}

// New creates a [Metrics] instance. When cfg.Enabled is false, all
// operations are no-ops and New returns nil.
func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{cfg: cfg}
}

// Inc atomically increments a counter.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id < 0 || id >= MetricIDCount {
		return
	}
	atomic.AddUint64(&m.counters[id].value, 1)
}

// Observe records a latency sample into the histogram for id.
func (m *Metrics) Observe(id MetricID, d time.Duration) {
	if m == nil || !m.cfg.EnableLatency || id < 0 || id >= MetricIDCount {
		return
	}
	bucket := HistogramBuckets - 1
	for i, bound := range histogramBounds {
		if d <= bound {
			bucket = i
			break
		}
	}
	atomic.AddUint64(&m.histograms[id][bucket].value, 1)
}

// Snapshot returns a deep copy of every non-zero counter and histogram.
func (m *Metrics) Snapshot() Snapshot {
	snapshot := Snapshot{
		Counters:   make(map[MetricID]uint64),
		Histograms: make(map[MetricID][]uint64),
	}
	if m == nil {
		return snapshot
	}

	for id := MetricID(0); id < MetricIDCount; id++ {
		if v := atomic.LoadUint64(&m.counters[id].value); v > 0 {
			snapshot.Counters[id] = v
		}
	}

	if m.cfg.EnableLatency {
		for id := MetricID(0); id < MetricIDCount; id++ {
			var buckets []uint64
			for b := 0; b < HistogramBuckets; b++ {
				v := atomic.LoadUint64(&m.histograms[id][b].value)
				if v > 0 && buckets == nil {
					buckets = make([]uint64, HistogramBuckets)
				}
				if buckets != nil {
					buckets[b] = v
				}
			}
			if buckets != nil {
				snapshot.Histograms[id] = buckets
			}
		}
	}

	return snapshot
}
