package telemetry

import (
	"github.com/outpost-go/flightcore/internal/dataproc"
	"github.com/outpost-go/flightcore/internal/membuf"
	"github.com/outpost-go/flightcore/internal/swbus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RegisterPoolMetrics exposes a buffer pool's free-frame count as a gauge,
// sampled on every scrape rather than pushed, since allocate/release happen
// far more often than a scrape interval warrants tracking eagerly.
func RegisterPoolMetrics(reg prometheus.Registerer, name string, pool *membuf.Pool) {
	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "outpost",
		Subsystem: "membuf",
		Name:      "free_frames",
		ConstLabels: prometheus.Labels{
			"pool": name,
		},
	}, func() float64 {
		return float64(pool.NumberOfFreeElements())
	})

	promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "outpost",
		Subsystem: "membuf",
		Name:      "total_frames",
		ConstLabels: prometheus.Labels{
			"pool": name,
		},
	}, func() float64 {
		return float64(pool.NumFrames())
	})
}

// RegisterBusMetrics exposes a software bus's Counters as Prometheus
// gauges, polled from the live atomic counters at scrape time.
func RegisterBusMetrics(reg prometheus.Registerer, name string, bus *swbus.Bus) {
	fields := []struct {
		metric string
		value  func(swbus.Snapshot) float64
	}{
		{"accepted_total", func(s swbus.Snapshot) float64 { return float64(s.Accepted) }},
		{"declined_total", func(s swbus.Snapshot) float64 { return float64(s.Declined) }},
		{"handled_total", func(s swbus.Snapshot) float64 { return float64(s.Handled) }},
		{"forwarded_total", func(s swbus.Snapshot) float64 { return float64(s.Forwarded) }},
		{"lost_total", func(s swbus.Snapshot) float64 { return float64(s.Lost) }},
		{"failed_copy_total", func(s swbus.Snapshot) float64 { return float64(s.FailedCopy) }},
		{"failed_send_total", func(s swbus.Snapshot) float64 { return float64(s.FailedSend) }},
	}

	for _, f := range fields {
		f := f
		promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "outpost",
			Subsystem: "swbus",
			Name:      f.metric,
			ConstLabels: prometheus.Labels{
				"bus": name,
			},
		}, func() float64 {
			return f.value(bus.Counters.Snapshot())
		})
	}
}

// RegisterProcessorMetrics exposes a data processor's Counters as
// Prometheus gauges.
func RegisterProcessorMetrics(reg prometheus.Registerer, name string, proc *dataproc.Processor) {
	fields := []struct {
		metric string
		value  func(dataproc.Snapshot) float64
	}{
		{"received_total", func(s dataproc.Snapshot) float64 { return float64(s.Received) }},
		{"processed_total", func(s dataproc.Snapshot) float64 { return float64(s.Processed) }},
		{"dropped_invalid_total", func(s dataproc.Snapshot) float64 { return float64(s.DroppedInvalid) }},
		{"dropped_pool_exhausted_total", func(s dataproc.Snapshot) float64 { return float64(s.DroppedPoolExhausted) }},
		{"forwarded_total", func(s dataproc.Snapshot) float64 { return float64(s.Forwarded) }},
		{"lost_total", func(s dataproc.Snapshot) float64 { return float64(s.Lost) }},
	}

	for _, f := range fields {
		f := f
		promauto.With(reg).NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "outpost",
			Subsystem: "dataproc",
			Name:      f.metric,
			ConstLabels: prometheus.Labels{
				"processor": name,
			},
		}, func() float64 {
			return f.value(proc.Counters.Snapshot())
		})
	}
}
