package grapheditor

import (
	"testing"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
)

var testRegion = geom.R(0, 0, 800, 600)

// testNode builds a node with one input and one output. At zoom 1 and no pan
// its input sits at (x, y+48) and its output at (x+100, y+48).
func testNode(name string, x, y float64) Node {
	return Node{
		Name:            name,
		Rect:            geom.R(x, y, 100, 80),
		HeaderColor:     RGBA(60, 120, 200, 255),
		BackgroundColor: RGBA(50, 50, 50, 255),
		Inputs:          []string{"in"},
		Outputs:         []string{"out"},
	}
}

// threeNodes returns A, B and C side by side.
func threeNodes() *recordingDelegate {
	return newRecordingDelegate(
		testNode("A", 100, 100),
		testNode("B", 300, 100),
		testNode("C", 500, 100),
	)
}

func inSlot(x float64) geom.Vec2  { return geom.V(x, 148) }
func outSlot(x float64) geom.Vec2 { return geom.V(x+100, 148) }

// driver feeds frames to an editor the way a host would.
type driver struct {
	t       *testing.T
	ed      *Editor
	d       *recordingDelegate
	reg     *metrics.Registry
	mouse   geom.Vec2
	down    [mouseButtonCount]bool
	ctrl    bool
	shift   bool
	keys    KeySet
	enabled bool
	last    *DrawList
}

func newDriver(t *testing.T, d *recordingDelegate) *driver {
	t.Helper()
	reg := metrics.NewRegistry()
	return &driver{t: t, ed: New(DefaultConfig(), nil, reg), d: d, reg: reg, enabled: true}
}

func (dr *driver) frame(in Input) *DrawList {
	in.Region = testRegion
	in.MouseValid = true
	in.Ctrl, in.Shift = dr.ctrl, dr.shift
	in.KeysDown = dr.keys
	in.MouseDown = dr.down
	dr.last = dr.ed.Frame(dr.d, in, dr.enabled)
	return dr.last
}

// moveTo moves the pointer, reporting the delta.
func (dr *driver) moveTo(p geom.Vec2) *DrawList {
	delta := p.Sub(dr.mouse)
	dr.mouse = p
	return dr.frame(Input{Mouse: p, MouseDelta: delta})
}

func (dr *driver) press(b MouseButton) *DrawList {
	dr.down[b] = true
	in := Input{Mouse: dr.mouse}
	in.MouseClicked[b] = true
	return dr.frame(in)
}

func (dr *driver) release(b MouseButton) *DrawList {
	dr.down[b] = false
	return dr.frame(Input{Mouse: dr.mouse})
}

func (dr *driver) idle() *DrawList {
	return dr.frame(Input{Mouse: dr.mouse})
}

// drag performs press at from, move to to, release.
func (dr *driver) drag(b MouseButton, from, to geom.Vec2) {
	dr.moveTo(from)
	dr.press(b)
	dr.moveTo(to)
	dr.release(b)
}

func (dr *driver) withKeys(ctrl bool, keys KeySet) *DrawList {
	dr.ctrl, dr.keys = ctrl, keys
	return dr.idle()
}
