package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initEditorMetrics() {
	r.FramesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "grapheditor_frames_total",
			Help: "Total number of editor frames processed",
		},
	)

	r.FrameDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "grapheditor_frame_duration_seconds",
			Help:    "Time spent interpreting input and building the draw list for one frame",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		},
	)

	r.MutationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "grapheditor_mutations_total",
			Help: "Mutation requests issued to the graph owner",
		},
		[]string{"op"},
	)

	r.TransactionsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "grapheditor_transactions_total",
			Help: "Transactions opened around editor mutations",
		},
	)

	r.LinkRejectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "grapheditor_link_rejections_total",
			Help: "Link gestures declined, by reason",
		},
		[]string{"reason"},
	)

	r.ContractViolations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "grapheditor_contract_violations_total",
			Help: "Out-of-range indices reported by the graph owner",
		},
		[]string{"op"},
	)

	r.Zoom = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "grapheditor_zoom",
			Help: "Current zoom factor",
		},
	)

	r.SelectedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "grapheditor_selected_nodes",
			Help: "Number of selected nodes",
		},
	)

	r.InteractionMode = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "grapheditor_mode",
			Help: "Current interaction mode (1 for the active mode)",
		},
		[]string{"mode"},
	)

	r.ClipboardCommands = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "grapheditor_clipboard_commands_total",
			Help: "Clipboard keyboard commands, by command",
		},
		[]string{"command"},
	)
}
