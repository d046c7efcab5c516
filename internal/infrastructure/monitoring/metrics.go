package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics of the gateway.
type Metrics struct {
	TxSubmitted    *prometheus.CounterVec
	TxLatency      *prometheus.HistogramVec
	BlobWrites     *prometheus.CounterVec
	BlobRefLookups *prometheus.CounterVec
	CheckIns       *prometheus.CounterVec
	IndexedEvents  *prometheus.CounterVec
}

// NewMetrics creates and registers the Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		TxSubmitted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mosaic_tx_submitted_total",
				Help: "Total number of submitted transactions.",
			},
			[]string{"kind", "result"},
		),
		TxLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mosaic_tx_latency_seconds",
				Help:    "End-to-end latency from submission to settled effects.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind"},
		),
		BlobWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mosaic_blob_writes_total",
				Help: "Total number of blob store writes.",
			},
			[]string{"result"},
		),
		BlobRefLookups: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mosaic_blobref_lookups_total",
				Help: "Blob reference cache lookups by outcome.",
			},
			[]string{"kind", "outcome"},
		),
		CheckIns: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mosaic_check_ins_total",
				Help: "Total number of check-in token verifications.",
			},
			[]string{"result"},
		),
		IndexedEvents: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mosaic_indexed_events_total",
				Help: "Total number of chain events folded into the marketplace index.",
			},
			[]string{"type"},
		),
	}
}

// RecordTx records the outcome and latency of one transaction flow.
func (m *Metrics) RecordTx(kind, result string, duration time.Duration) {
	m.TxSubmitted.WithLabelValues(kind, result).Inc()
	m.TxLatency.WithLabelValues(kind).Observe(duration.Seconds())
}

// RecordBlobWrite records one blob store write.
func (m *Metrics) RecordBlobWrite(result string) {
	m.BlobWrites.WithLabelValues(result).Inc()
}

// RecordBlobRefLookup records one blob reference cache lookup.
func (m *Metrics) RecordBlobRefLookup(kind, outcome string) {
	m.BlobRefLookups.WithLabelValues(kind, outcome).Inc()
}

// RecordCheckIn records one check-in verification.
func (m *Metrics) RecordCheckIn(result string) {
	m.CheckIns.WithLabelValues(result).Inc()
}

// RecordIndexed records one chain event folded into the index.
func (m *Metrics) RecordIndexed(eventType string) {
	m.IndexedEvents.WithLabelValues(eventType).Inc()
}
