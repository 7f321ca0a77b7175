package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDocumentMetrics() {
	r.DocumentNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphdoc_nodes",
			Help: "Number of nodes in the document",
		},
	)

	r.DocumentLinks = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "graphdoc_links",
			Help: "Number of links in the document",
		},
	)

	r.JournalEntriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphdoc_journal_entries_total",
			Help: "Committed journal entries, by kind",
		},
		[]string{"kind"},
	)

	r.ClipboardBytes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphdoc_clipboard_payload_bytes",
			Help:    "Size of compressed clipboard payloads",
			Buckets: []float64{64, 256, 1024, 4096, 16384, 65536},
		},
	)

	r.SceneLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphdoc_scene_loads_total",
			Help: "Scene file loads, by status",
		},
		[]string{"status"},
	)
}
