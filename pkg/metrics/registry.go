package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the editor and the document behind it. A nil
// *Registry is valid and records nothing, so embedders can leave it unset.
type Registry struct {
	// Editor metrics
	FramesTotal         prometheus.Counter
	FrameDuration       prometheus.Histogram
	MutationsTotal      *prometheus.CounterVec
	TransactionsTotal   prometheus.Counter
	LinkRejectionsTotal *prometheus.CounterVec
	ContractViolations  *prometheus.CounterVec
	Zoom                prometheus.Gauge
	SelectedNodes       prometheus.Gauge
	InteractionMode     *prometheus.GaugeVec
	ClipboardCommands   *prometheus.CounterVec

	// Document metrics
	DocumentNodes       prometheus.Gauge
	DocumentLinks       prometheus.Gauge
	JournalEntriesTotal *prometheus.CounterVec
	ClipboardBytes      prometheus.Histogram
	SceneLoadsTotal     *prometheus.CounterVec

	registry *prometheus.Registry
	modes    []string
	mu       sync.Mutex
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.initEditorMetrics()
	r.initDocumentMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
