// Package perf records per-function call counts and latency histograms.
//
// Tracking is off by default and costs one atomic load per call. Enable it with
// EnableTracking (the --perf flag or perf.enabled in tfmatrix.yaml).
package perf

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"

	"github.com/cloudposse/tfmatrix/pkg/schema"
)

const (
	// Histogram bounds in microseconds: 1µs to 10 minutes, 3 significant figures.
	minTrackableMicros = 1
	maxTrackableMicros = int64(10 * time.Minute / time.Microsecond)
	significantFigures = 3
)

var (
	enabled  atomic.Bool
	registry = newRegistry()
)

// Metric is the recorded timing of one tracked function.
type Metric struct {
	Name  string
	Count int64
	Total time.Duration
	Max   time.Duration
	P50   time.Duration
	P95   time.Duration
}

type entry struct {
	count int64
	total time.Duration
	hist  *hdrhistogram.Histogram
}

type registryT struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func newRegistry() *registryT {
	return &registryT{entries: map[string]*entry{}}
}

// EnableTracking turns tracking on or off for the rest of the process.
func EnableTracking(on bool) {
	enabled.Store(on)
}

// IsTrackingEnabled reports whether calls are being recorded.
func IsTrackingEnabled() bool {
	return enabled.Load()
}

// Track starts timing name and returns the function that stops it.
// Use it as `defer perf.Track(cfg, "pkg.Func")()`.
// A non-nil cfg with perf.enabled set turns tracking on.
func Track(cfg *schema.Configuration, name string) func() {
	if cfg != nil && cfg.Perf.Enabled {
		enabled.Store(true)
	}
	if !enabled.Load() {
		return func() {}
	}

	start := time.Now()
	return func() {
		registry.record(name, time.Since(start))
	}
}

func (r *registryT) record(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[name]
	if !ok {
		e = &entry{hist: hdrhistogram.New(minTrackableMicros, maxTrackableMicros, significantFigures)}
		r.entries[name] = e
	}

	e.count++
	e.total += d

	micros := d.Microseconds()
	if micros < minTrackableMicros {
		micros = minTrackableMicros
	}
	if micros > maxTrackableMicros {
		micros = maxTrackableMicros
	}
	// Values are clamped into range, so RecordValue cannot fail.
	_ = e.hist.RecordValue(micros)
}

// Snapshot returns the recorded metrics, slowest total first.
func Snapshot() []Metric {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	metrics := make([]Metric, 0, len(registry.entries))
	for name, e := range registry.entries {
		metrics = append(metrics, Metric{
			Name:  name,
			Count: e.count,
			Total: e.total,
			Max:   micros(e.hist.Max()),
			P50:   micros(e.hist.ValueAtQuantile(50)),
			P95:   micros(e.hist.ValueAtQuantile(95)),
		})
	}

	slices.SortFunc(metrics, func(a, b Metric) int {
		if a.Total != b.Total {
			if a.Total > b.Total {
				return -1
			}
			return 1
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return metrics
}

// Reset discards everything recorded so far.
func Reset() {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.entries = map[string]*entry{}
}

func micros(v int64) time.Duration {
	return time.Duration(v) * time.Microsecond
}
