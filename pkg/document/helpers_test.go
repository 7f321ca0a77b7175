package document

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
)

func rect(x, y float64) *SceneRect {
	return &SceneRect{X: x, Y: y, W: 100, H: 80}
}

// fourNodes is A, B, C and D in a row, each with one input and one output.
func fourNodes() *Scene {
	s := &Scene{Name: "test"}
	for i, name := range []string{"A", "B", "C", "D"} {
		s.Nodes = append(s.Nodes, SceneNode{
			Name:    name,
			Rect:    rect(float64(100+200*i), 100),
			Inputs:  []string{"in"},
			Outputs: []string{"out"},
		})
	}
	return s
}

func link(from, to grapheditor.NodeIndex) grapheditor.Link {
	return grapheditor.Link{SourceNode: from, DestNode: to}
}

// newTestDoc loads s into a document wired to a fresh metrics registry.
func newTestDoc(t *testing.T, s *Scene) (*Document, *metrics.Registry) {
	t.Helper()
	reg := metrics.NewRegistry()
	cfg := DefaultConfig()
	cfg.Metrics = reg
	cfg.NodeSize = geom.V(100, 80)
	doc, err := FromScene(s, cfg)
	require.NoError(t, err)
	return doc, reg
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.Counter.GetValue()
}

func opKinds(e *Entry) []OpKind {
	kinds := make([]OpKind, len(e.Ops))
	for i, op := range e.Ops {
		kinds[i] = op.Kind
	}
	return kinds
}
