package grapheditor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

func TestDrawListChannelsPaintInOrder(t *testing.T) {
	dl := NewDrawList()
	dl.SetChannel(ChannelForeground)
	dl.AddCircleFilled(geom.V(1, 1), 2, colorSlot)
	dl.SetChannel(ChannelBackground)
	dl.AddLine(geom.V(0, 0), geom.V(1, 1), colorGrid, 1)
	dl.SetChannel(ChannelNodes)
	dl.AddRectFilled(geom.V(0, 0), geom.V(5, 5), colorBlack, 0)

	kinds := []CommandKind{}
	for _, c := range dl.Commands() {
		kinds = append(kinds, c.Kind)
	}
	assert.Equal(t, []CommandKind{CmdLine, CmdRectFilled, CmdCircleFilled}, kinds)
	assert.Equal(t, 3, dl.Len())

	dl.SetChannel(Channel(7))
	assert.Equal(t, ChannelNodes, dl.CurrentChannel())
	assert.Nil(t, dl.Channel(Channel(-1)))
}

func TestDrawListClipStack(t *testing.T) {
	dl := NewDrawList()
	assert.Equal(t, unbounded, dl.ClipRect())

	dl.PushClip(geom.R(0, 0, 100, 100))
	dl.PushClip(geom.R(50, 50, 100, 100))
	assert.Equal(t, geom.R(50, 50, 50, 50), dl.ClipRect())

	dl.AddText(geom.V(60, 60), colorLabel, 14, "x")
	require.Len(t, dl.Commands(), 1)
	assert.Equal(t, geom.R(50, 50, 50, 50), dl.Commands()[0].Clip)

	dl.PopClip()
	assert.Equal(t, geom.R(0, 0, 100, 100), dl.ClipRect())
	dl.PopClip()
	dl.PopClip()
	assert.Equal(t, unbounded, dl.ClipRect())
}

func TestDrawListSkipsInvisibleCommands(t *testing.T) {
	dl := NewDrawList()
	dl.AddLine(geom.V(0, 0), geom.V(1, 1), RGBA(255, 255, 255, 0), 1)
	dl.AddText(geom.V(0, 0), colorLabel, 14, "")
	dl.AddPolyline([]geom.Vec2{geom.V(1, 1)}, colorBlack, 1)

	dl.PushClip(geom.R(0, 0, 10, 10))
	dl.PushClip(geom.R(20, 20, 10, 10))
	dl.AddRectFilled(geom.V(0, 0), geom.V(5, 5), colorBlack, 0)

	assert.Zero(t, dl.Len())
}

func TestDrawListPolylineCopiesPoints(t *testing.T) {
	dl := NewDrawList()
	pts := []geom.Vec2{geom.V(0, 0), geom.V(10, 0)}
	dl.AddPolyline(pts, colorBlack, 1)
	pts[0] = geom.V(99, 99)

	assert.Equal(t, geom.V(0, 0), dl.Commands()[0].Points[0])
}
