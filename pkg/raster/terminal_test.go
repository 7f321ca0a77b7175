package raster

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

var (
	white = grapheditor.RGBA(255, 255, 255, 255)
	red   = grapheditor.RGBA(255, 0, 0, 255)
	open  = geom.R(-1e6, -1e6, 2e6, 2e6)
)

func cmd(kind grapheditor.CommandKind, c grapheditor.Color, pts ...geom.Vec2) grapheditor.Command {
	return grapheditor.Command{Kind: kind, Points: pts, Color: c, Thickness: 1, Clip: open}
}

func rows(t *Terminal) []string {
	return strings.Split(t.Plain(), "\n")
}

func TestCellMapping(t *testing.T) {
	term := NewTerminal(10, 5, 8, 16)

	col, row := term.PixelToCell(geom.V(17, 40))
	assert.Equal(t, 2, col)
	assert.Equal(t, 2, row)
	assert.Equal(t, geom.V(20, 40), term.CellCenter(2, 2))
	assert.Equal(t, geom.R(0, 0, 80, 80), term.Region())

	col, row = term.PixelToCell(geom.V(-1, -1))
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)
}

func TestLines(t *testing.T) {
	term := NewTerminal(10, 5, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(4, 8), geom.V(76, 8)),
		cmd(grapheditor.CmdLine, white, geom.V(36, 8), geom.V(36, 72)),
		cmd(grapheditor.CmdPolyline, white, geom.V(4, 72), geom.V(20, 72), geom.V(20, 40)),
	})

	got := rows(term)
	assert.Equal(t, "────┼─────", got[0])
	assert.Equal(t, "    │     ", got[1])
	assert.Equal(t, "  │ │     ", got[2])
	assert.Equal(t, "──┼ │     ", got[4])
	assert.Equal(t, white, term.At(0, 0).FG)
	assert.Equal(t, DefaultBackground, term.At(0, 0).BG)
}

func TestDiagonalLines(t *testing.T) {
	term := NewTerminal(4, 4, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(4, 8), geom.V(28, 56)),
	})
	assert.Equal(t, '╲', term.At(0, 0).Rune)
	assert.Equal(t, '╲', term.At(3, 3).Rune)

	term.Clear()
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(4, 56), geom.V(28, 8)),
	})
	assert.Equal(t, '╱', term.At(0, 3).Rune)
	assert.Equal(t, '╱', term.At(3, 0).Rune)
}

func TestRectOutline(t *testing.T) {
	term := NewTerminal(12, 4, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdRect, red, geom.V(0, 0), geom.V(80, 48)),
	})

	got := rows(term)
	assert.Equal(t, "┌────────┐  ", got[0])
	assert.Equal(t, "│        │  ", got[1])
	assert.Equal(t, "└────────┘  ", got[2])
	assert.Equal(t, red, term.At(9, 2).FG)
}

func TestFilledRectHidesWhatIsBelow(t *testing.T) {
	term := NewTerminal(10, 3, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(0, 24), geom.V(80, 24)),
		cmd(grapheditor.CmdRectFilled, red, geom.V(16, 0), geom.V(48, 48)),
	})

	assert.Equal(t, "──    ────", rows(term)[1])
	assert.Equal(t, red, term.At(2, 0).BG)
	assert.Equal(t, DefaultBackground, term.At(6, 0).BG)
}

func TestTranslucentFillTints(t *testing.T) {
	term := NewTerminal(4, 1, 8, 16)
	term.Background = grapheditor.RGBA(0, 0, 0, 255)
	term.Clear()
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(0, 8), geom.V(32, 8)),
		cmd(grapheditor.CmdRectFilled, grapheditor.RGBA(255, 0, 0, 128), geom.V(0, 0), geom.V(16, 16)),
	})

	assert.Equal(t, "────", term.Plain())
	assert.Equal(t, grapheditor.RGBA(128, 0, 0, 255), term.At(0, 0).BG)
	assert.Equal(t, grapheditor.RGBA(0, 0, 0, 255), term.At(2, 0).BG)
}

func TestCircleAndText(t *testing.T) {
	term := NewTerminal(10, 2, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdCircleFilled, red, geom.V(20, 24)),
		{Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(33, 0)}, Color: white, FontSize: 16, Text: "abc", Clip: open},
		// too small to read
		{Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(0, 0)}, Color: white, FontSize: 4, Text: "zz", Clip: open},
	})

	got := rows(term)
	assert.Equal(t, "    abc   ", got[0])
	assert.Equal(t, "  ●       ", got[1])
	assert.Equal(t, red, term.At(2, 1).FG)
}

func TestTextShadowCollapses(t *testing.T) {
	term := NewTerminal(10, 2, 8, 16)
	black := grapheditor.RGBA(0, 0, 0, 255)
	term.Draw([]grapheditor.Command{
		{Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(14, 9)}, Color: black, FontSize: 14, Text: "out", Clip: open},
		{Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(12, 7)}, Color: white, FontSize: 14, Text: "out", Clip: open},
	})

	got := rows(term)
	assert.Equal(t, "  out     ", got[0])
	assert.Equal(t, "          ", got[1])
	assert.Equal(t, white, term.At(2, 0).FG)
}

func TestWideRunes(t *testing.T) {
	term := NewTerminal(6, 1, 8, 16)
	term.Draw([]grapheditor.Command{
		{Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(0, 0)}, Color: white, FontSize: 16, Text: "日本語", Clip: open},
	})

	assert.Equal(t, "日本語", term.Plain())
	assert.Equal(t, geom.V(48, 12), term.MeasureText("日本語", 12))
}

func TestClipIsHonoured(t *testing.T) {
	term := NewTerminal(10, 1, 8, 16)
	line := cmd(grapheditor.CmdLine, white, geom.V(0, 8), geom.V(80, 8))
	line.Clip = geom.R(0, 0, 40, 16)
	text := grapheditor.Command{
		Kind: grapheditor.CmdText, Points: []geom.Vec2{geom.V(56, 0)}, Color: white, FontSize: 16,
		Text: "clipped", Clip: geom.R(56, 0, 16, 16),
	}
	term.Draw([]grapheditor.Command{line, text})

	assert.Equal(t, "─────  cl ", term.Plain())
}

func TestDrawingOutsideTheGridIsIgnored(t *testing.T) {
	term := NewTerminal(3, 2, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(-100, -100), geom.V(200, 300)),
		cmd(grapheditor.CmdRectFilled, red, geom.V(-50, -50), geom.V(-10, -10)),
		cmd(grapheditor.CmdCircleFilled, red, geom.V(500, 8)),
	})
	assert.Equal(t, "   \n   ", term.Plain())
}

func TestLongLinesAreCutToTheGrid(t *testing.T) {
	term := NewTerminal(10, 5, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdLine, white, geom.V(-1e9, 8), geom.V(1e9, 8)),
		cmd(grapheditor.CmdLine, white, geom.V(36, -1e9), geom.V(36, 1e9)),
	})

	got := rows(term)
	assert.Equal(t, "────┼─────", got[0])
	assert.Equal(t, "    │     ", got[4])
}

func TestClipSegment(t *testing.T) {
	box := geom.R(0, 0, 10, 10)

	a, b, ok := clipSegment(geom.V(-10, 5), geom.V(30, 5), box)
	require.True(t, ok)
	assert.Equal(t, geom.V(0, 5), a)
	assert.Equal(t, geom.V(10, 5), b)

	a, b, ok = clipSegment(geom.V(2, 2), geom.V(8, 3), box)
	require.True(t, ok)
	assert.Equal(t, geom.V(2, 2), a)
	assert.Equal(t, geom.V(8, 3), b)

	_, _, ok = clipSegment(geom.V(-5, -5), geom.V(-1, 20), box)
	assert.False(t, ok)
	_, _, ok = clipSegment(geom.V(-5, 12), geom.V(20, 12), box)
	assert.False(t, ok)
}

func TestStringUsesEveryCell(t *testing.T) {
	term := NewTerminal(5, 2, 8, 16)
	term.Draw([]grapheditor.Command{
		cmd(grapheditor.CmdRectFilled, red, geom.V(0, 0), geom.V(16, 16)),
		cmd(grapheditor.CmdCircleFilled, white, geom.V(28, 24)),
	})

	out := term.String()
	require.Len(t, strings.Split(out, "\n"), 2)
	assert.Contains(t, out, "●")
}

func TestRenderEditorFrame(t *testing.T) {
	nodes := []grapheditor.Node{
		{Name: "A", Rect: geom.R(20, 20, 120, 80), HeaderColor: red, BackgroundColor: grapheditor.RGBA(50, 50, 50, 255), Outputs: []string{"out"}},
		{Name: "B", Rect: geom.R(240, 60, 120, 80), HeaderColor: red, BackgroundColor: grapheditor.RGBA(50, 50, 50, 255), Inputs: []string{"in"}},
	}
	g := &staticGraph{nodes: nodes, links: []grapheditor.Link{{SourceNode: 0, DestNode: 1}}}

	term := NewTerminal(60, 12, 8, 16)
	cfg := grapheditor.DefaultConfig()
	cfg.Style.MeasureText = term.MeasureText
	cfg.Style.FontSize = 16
	ed := grapheditor.New(cfg, nil, nil)
	dl := ed.Frame(g, grapheditor.Input{Region: term.Region()}, true)
	term.Draw(dl.Commands())

	plain := term.Plain()
	assert.Contains(t, plain, "●")
	assert.Contains(t, plain, "A")
	assert.Contains(t, plain, "B")
}
