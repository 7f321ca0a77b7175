package grapheditor

import (
	"time"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
)

// Editor carries the interaction state of one graph view between frames.
// It is not safe for concurrent use; drive it from the UI goroutine.
type Editor struct {
	cfg     Config
	state   State
	logger  logging.Logger
	metrics *metrics.Registry
}

// New creates an editor. logger and reg may be nil.
func New(cfg Config, logger logging.Logger, reg *metrics.Registry) *Editor {
	return &Editor{
		cfg:     cfg.normalized(),
		state:   NewState(),
		logger:  logging.OrNop(logger).With(logging.Component("grapheditor")),
		metrics: reg,
	}
}

// Frame interprets one frame of input against the delegate's graph, issues
// the resulting mutation requests and returns what to draw. When enabled is
// false only the grid is drawn and input is ignored.
func (e *Editor) Frame(d Delegate, in Input, enabled bool) *DrawList {
	start := time.Now()
	dl := NewDrawList()

	nodes, links := d.Nodes(), d.Links()
	e.sanitize(nodes)
	e.state.Viewport = e.state.Viewport.Scroll(in, enabled && e.state.Mode == ModeIdle, e.cfg)

	if !enabled {
		r := newRenderer(dl, e.state, Picking{Hovered: NoNode}, nodes, links, d, in, e.cfg.Style)
		dl.PushClip(in.Region)
		r.grid()
		dl.PopClip()
		e.finishFrame(start)
		return dl
	}

	prev := e.state.Mode
	out := Transition(e.state, FrameContext{
		Input:  in,
		Nodes:  nodes,
		Links:  links,
		Pick:   Pick(nodes, e.state, in),
		Config: e.cfg,
	}, d)
	e.report(out)
	e.state = out.State

	if len(out.Intents) > 0 {
		pasted := e.execute(d, out.Intents)
		nodes, links = d.Nodes(), d.Links()
		if out.SelectPasted {
			e.state.Selection.Replace(pasted)
		}
		e.state.Selection.Prune(len(nodes))
	}
	if e.state.Mode != prev {
		e.logger.Debug("mode changed", logging.String("from", prev.String()), logging.Mode(e.state.Mode.String()))
	}

	// Hit-test again: the graph or the mode may have changed this frame.
	pick := Pick(nodes, e.state, in)
	r := newRenderer(dl, e.state, pick, nodes, links, d, in, e.cfg.Style)
	r.draw()
	for _, err := range r.violations {
		e.logger.Debug("skipping link", logging.Error(err))
		e.metrics.RecordContractViolation("render")
	}

	if int(e.state.Menu.Node) >= len(nodes) {
		e.state.Menu.Node = NoNode
	}
	d.ContextMenu(ContextMenuRequest{
		Anchor: e.state.Menu.Anchor,
		Mouse:  e.state.Viewport.ScreenToLogical(in.Mouse, in.Region),
		Node:   e.state.Menu.Node,
		Open:   out.MenuOpened,
	})

	e.finishFrame(start)
	return dl
}

// execute runs the intents in order, one transaction per mutating group, and
// returns the indices produced by a paste.
func (e *Editor) execute(d Delegate, intents []Intent) []NodeIndex {
	guard := &txGuard{tx: d, metrics: e.metrics}
	defer guard.end()

	var pasted []NodeIndex
	group := intents[0].Group
	for _, it := range intents {
		if it.Group != group {
			guard.end()
			group = it.Group
		}
		if it.Kind.mutates() {
			guard.begin()
		}

		switch it.Kind {
		case IntentAddLink:
			d.AddLink(it.Link)
		case IntentDeleteLink:
			d.DeleteLink(it.LinkIndex)
		case IntentMoveNodes:
			d.MoveNodes(it.Nodes, it.Delta)
		case IntentCopyNodes:
			d.CopyNodes(it.Nodes)
		case IntentDeleteNodes:
			d.DeleteNodes(it.Nodes)
		case IntentPasteNodes:
			pasted = e.checkPasted(d.PasteNodes(it.Delta), len(d.Nodes()))
		}
		e.metrics.RecordMutation(it.Kind.String())
		e.logger.Debug("request", logging.Op(it.Kind.String()), logging.Count(len(it.Nodes)))
	}
	return pasted
}

func (e *Editor) checkPasted(indices []NodeIndex, count int) []NodeIndex {
	valid := make([]NodeIndex, 0, len(indices))
	for _, i := range indices {
		if int(i) < 0 || int(i) >= count {
			e.logger.Warn("paste returned unknown node", logging.Error(nodeRangeError("paste", int(i), count)))
			e.metrics.RecordContractViolation("paste")
			continue
		}
		valid = append(valid, i)
	}
	return valid
}

// sanitize reconciles carried state with a node list that may have changed
// outside the editor since the last frame.
func (e *Editor) sanitize(nodes []Node) {
	if n := e.state.Selection.Prune(len(nodes)); n > 0 {
		e.logger.Debug("pruned stale selection", logging.Count(n))
	}

	switch {
	case e.state.Mode.editingLink():
		edit := e.state.Link
		var err error
		if int(edit.Node) < 0 || int(edit.Node) >= len(nodes) {
			err = nodeRangeError("gesture", int(edit.Node), len(nodes))
		} else if count := len(nodes[edit.Node].Slots(edit.Column)); int(edit.Slot) < 0 || int(edit.Slot) >= count {
			err = slotRangeError("gesture", int(edit.Slot), count)
		}
		if err != nil {
			e.abort(err)
		}
	case e.state.Mode == ModeMovingNodes && e.state.Selection.Len() == 0:
		e.abort(nodeRangeError("gesture", -1, len(nodes)))
	}
}

func (e *Editor) abort(err error) {
	e.logger.Warn("gesture aborted", logging.Mode(e.state.Mode.String()), logging.Error(err))
	e.metrics.RecordContractViolation("gesture")
	e.state.Mode = ModeIdle
	e.state.MoveOffset = geom.Vec2{}
	e.state.Dragging = false
}

func (e *Editor) report(out Outcome) {
	for _, rj := range out.Rejections {
		e.logger.Info("link rejected",
			logging.Reason(rj.Reason),
			logging.Int("source", int(rj.Link.SourceNode)),
			logging.Int("dest", int(rj.Link.DestNode)),
		)
		e.metrics.RecordLinkRejection(rj.Reason)
	}
	for _, err := range out.Violations {
		e.logger.Warn("gesture declined", logging.Error(err))
		e.metrics.RecordContractViolation("gesture")
	}
	if out.Command != "" {
		e.logger.Info("clipboard command", logging.Op(out.Command))
		e.metrics.RecordClipboardCommand(out.Command)
	}
}

func (e *Editor) finishFrame(start time.Time) {
	e.metrics.RecordFrame(time.Since(start), e.state.Viewport.Zoom, e.state.Selection.Len())
	e.metrics.SetMode(e.state.Mode.String())
}

// Clear returns the editor to idle, resets the view to zoom 1 at the origin
// and empties the selection.
func (e *Editor) Clear() {
	e.state = NewState()
}

// FitToContent pans so the top-left-most node sits at the configured margin.
func (e *Editor) FitToContent(g GraphReader) {
	e.state.Viewport = e.state.Viewport.FitTo(g.Nodes(), e.cfg.FitMargin)
	e.logger.Debug("fit to content",
		logging.Float64("pan_x", e.state.Viewport.Pan.X), logging.Float64("pan_y", e.state.Viewport.Pan.Y))
}

// Mode returns the current interaction mode.
func (e *Editor) Mode() Mode { return e.state.Mode }

// Selected returns the selected node indices in ascending order.
func (e *Editor) Selected() []NodeIndex { return e.state.Selection.Indices() }

// Select replaces the selection.
func (e *Editor) Select(indices ...NodeIndex) { e.state.Selection.Replace(indices) }

// Viewport returns the current view transform.
func (e *Editor) Viewport() Viewport { return e.state.Viewport }

// SetViewport replaces the view transform; the zoom is clamped to the
// configured range.
func (e *Editor) SetViewport(v Viewport) {
	v.Zoom = geom.Clamp(v.Zoom, e.cfg.ZoomMin, e.cfg.ZoomMax)
	v.TargetZoom = geom.Clamp(v.TargetZoom, e.cfg.ZoomMin, e.cfg.ZoomMax)
	e.state.Viewport = v
}

// State returns a copy of the carried state.
func (e *Editor) State() State { return e.state.Clone() }

// Config returns the effective configuration.
func (e *Editor) Config() Config { return e.cfg }
