package grapheditor

import (
	"math"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Channel is a depth layer of the draw list. Channels are emitted in order,
// so later channels paint over earlier ones.
type Channel int

const (
	ChannelBackground Channel = iota // grid and links
	ChannelNodes                     // node bodies, headers, thumbnails
	ChannelForeground                // slots, labels, drag feedback
	channelCount
)

// CommandKind identifies a draw primitive.
type CommandKind int

const (
	CmdLine CommandKind = iota
	CmdPolyline
	CmdRect
	CmdRectFilled
	CmdCircleFilled
	CmdText
)

func (k CommandKind) String() string {
	switch k {
	case CmdLine:
		return "line"
	case CmdPolyline:
		return "polyline"
	case CmdRect:
		return "rect"
	case CmdRectFilled:
		return "rect_filled"
	case CmdCircleFilled:
		return "circle_filled"
	case CmdText:
		return "text"
	default:
		return "unknown"
	}
}

// Command is one draw primitive in screen coordinates.
//
//	line, polyline: Points are the vertices
//	rect, rect_filled: Points[0] is Min, Points[1] is Max
//	circle_filled: Points[0] is the centre
//	text: Points[0] is the top-left corner
type Command struct {
	Kind      CommandKind
	Points    []geom.Vec2
	Color     Color
	Thickness float64
	Rounding  float64
	Radius    float64
	FontSize  float64
	Text      string
	// Clip is the clip rectangle in effect when the command was recorded.
	Clip geom.Rect
}

// DrawList records primitives into three channels with a clip stack.
type DrawList struct {
	channels [channelCount][]Command
	current  Channel
	clip     []geom.Rect
}

// unbounded is the clip rectangle of a list with an empty clip stack.
var unbounded = geom.Rect{
	Min: geom.V(-math.MaxFloat64, -math.MaxFloat64),
	Max: geom.V(math.MaxFloat64, math.MaxFloat64),
}

// NewDrawList returns an empty list drawing into the background channel.
func NewDrawList() *DrawList {
	return &DrawList{}
}

// SetChannel selects the channel subsequent commands go to.
func (dl *DrawList) SetChannel(c Channel) {
	if c < 0 || c >= channelCount {
		return
	}
	dl.current = c
}

// CurrentChannel returns the channel commands are recorded into.
func (dl *DrawList) CurrentChannel() Channel { return dl.current }

// PushClip intersects r with the current clip rectangle and makes it current.
func (dl *DrawList) PushClip(r geom.Rect) {
	dl.clip = append(dl.clip, dl.ClipRect().Intersect(r))
}

// PopClip restores the previous clip rectangle.
func (dl *DrawList) PopClip() {
	if len(dl.clip) > 0 {
		dl.clip = dl.clip[:len(dl.clip)-1]
	}
}

// ClipRect returns the clip rectangle in effect.
func (dl *DrawList) ClipRect() geom.Rect {
	if len(dl.clip) == 0 {
		return unbounded
	}
	return dl.clip[len(dl.clip)-1]
}

func (dl *DrawList) add(c Command) {
	if c.Color.Alpha() == 0 {
		return
	}
	c.Clip = dl.ClipRect()
	if c.Clip.IsEmpty() {
		return
	}
	dl.channels[dl.current] = append(dl.channels[dl.current], c)
}

func (dl *DrawList) AddLine(a, b geom.Vec2, col Color, thickness float64) {
	dl.add(Command{Kind: CmdLine, Points: []geom.Vec2{a, b}, Color: col, Thickness: thickness})
}

func (dl *DrawList) AddPolyline(points []geom.Vec2, col Color, thickness float64) {
	if len(points) < 2 {
		return
	}
	pts := make([]geom.Vec2, len(points))
	copy(pts, points)
	dl.add(Command{Kind: CmdPolyline, Points: pts, Color: col, Thickness: thickness})
}

func (dl *DrawList) AddRect(pMin, pMax geom.Vec2, col Color, rounding, thickness float64) {
	dl.add(Command{Kind: CmdRect, Points: []geom.Vec2{pMin, pMax}, Color: col, Rounding: rounding, Thickness: thickness})
}

func (dl *DrawList) AddRectFilled(pMin, pMax geom.Vec2, col Color, rounding float64) {
	dl.add(Command{Kind: CmdRectFilled, Points: []geom.Vec2{pMin, pMax}, Color: col, Rounding: rounding})
}

func (dl *DrawList) AddCircleFilled(center geom.Vec2, radius float64, col Color) {
	dl.add(Command{Kind: CmdCircleFilled, Points: []geom.Vec2{center}, Color: col, Radius: radius})
}

func (dl *DrawList) AddText(pos geom.Vec2, col Color, size float64, text string) {
	if text == "" {
		return
	}
	dl.add(Command{Kind: CmdText, Points: []geom.Vec2{pos}, Color: col, FontSize: size, Text: text})
}

// Channel returns the commands recorded into c.
func (dl *DrawList) Channel(c Channel) []Command {
	if c < 0 || c >= channelCount {
		return nil
	}
	return dl.channels[c]
}

// Commands merges the channels for submission, in paint order: background,
// nodes, foreground.
func (dl *DrawList) Commands() []Command {
	n := 0
	for _, ch := range dl.channels {
		n += len(ch)
	}
	out := make([]Command, 0, n)
	for _, ch := range dl.channels {
		out = append(out, ch...)
	}
	return out
}

// Len returns the number of recorded commands.
func (dl *DrawList) Len() int {
	n := 0
	for _, ch := range dl.channels {
		n += len(ch)
	}
	return n
}
