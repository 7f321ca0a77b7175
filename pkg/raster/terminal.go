package raster

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// Box-drawing runes used for strokes.
const (
	runeHorizontal = '─'
	runeVertical   = '│'
	runeCross      = '┼'
	runeFalling    = '╲'
	runeRising     = '╱'
	runeDot        = '●'

	// continuation marks the second cell of a double-width rune.
	continuation rune = 0
)

var (
	DefaultBackground = grapheditor.RGBA(24, 24, 24, 255)
	DefaultForeground = grapheditor.RGBA(200, 200, 200, 255)
)

// Cell is one terminal character with opaque colours.
type Cell struct {
	Rune rune
	FG   grapheditor.Color
	BG   grapheditor.Color
}

type textRun struct {
	text     string
	row, col int
	width    int
}

// Terminal is a grid of cells standing for a pixel canvas of
// cols*CellWidth by rows*CellHeight.
type Terminal struct {
	cols, rows   int
	cellW, cellH float64
	cells        []Cell
	runs         []textRun

	Background grapheditor.Color
	Foreground grapheditor.Color
}

// NewTerminal creates a cleared canvas. Non-positive cell sizes default to
// 8x16 pixels.
func NewTerminal(cols, rows int, cellW, cellH float64) *Terminal {
	if cellW <= 0 {
		cellW = 8
	}
	if cellH <= 0 {
		cellH = 16
	}
	t := &Terminal{cellW: cellW, cellH: cellH, Background: DefaultBackground, Foreground: DefaultForeground}
	t.Resize(cols, rows)
	return t
}

// Resize changes the grid size and clears it.
func (t *Terminal) Resize(cols, rows int) {
	t.cols, t.rows = max(cols, 0), max(rows, 0)
	t.cells = make([]Cell, t.cols*t.rows)
	t.Clear()
}

// Clear resets every cell to a blank in the canvas colours.
func (t *Terminal) Clear() {
	for i := range t.cells {
		t.cells[i] = Cell{Rune: ' ', FG: t.Foreground, BG: t.Background}
	}
	t.runs = t.runs[:0]
}

// Size returns the grid size in cells.
func (t *Terminal) Size() (cols, rows int) { return t.cols, t.rows }

// CellSize returns the pixel size of one cell.
func (t *Terminal) CellSize() geom.Vec2 { return geom.V(t.cellW, t.cellH) }

// Region is the pixel rectangle the grid covers.
func (t *Terminal) Region() geom.Rect {
	return geom.R(0, 0, float64(t.cols)*t.cellW, float64(t.rows)*t.cellH)
}

// CellCenter returns the pixel position at the centre of a cell.
func (t *Terminal) CellCenter(col, row int) geom.Vec2 {
	return geom.V((float64(col)+0.5)*t.cellW, (float64(row)+0.5)*t.cellH)
}

// PixelToCell returns the cell containing p. The result may lie outside the
// grid.
func (t *Terminal) PixelToCell(p geom.Vec2) (col, row int) {
	return int(math.Floor(p.X / t.cellW)), int(math.Floor(p.Y / t.cellH))
}

// At returns the cell at (col, row); cells outside the grid are blank.
func (t *Terminal) At(col, row int) Cell {
	if !t.inside(col, row) {
		return Cell{Rune: ' ', FG: t.Foreground, BG: t.Background}
	}
	return t.cells[row*t.cols+col]
}

// MeasureText reports the pixel extent of text drawn on this canvas, where
// every rune takes whole cells whatever the font size.
func (t *Terminal) MeasureText(text string, size float64) geom.Vec2 {
	return geom.V(float64(runewidth.StringWidth(text))*t.cellW, size)
}

func (t *Terminal) inside(col, row int) bool {
	return col >= 0 && row >= 0 && col < t.cols && row < t.rows
}

// cell returns the cell at (col, row) if it exists and its centre is inside
// clip.
func (t *Terminal) cell(col, row int, clip geom.Rect) *Cell {
	if !t.inside(col, row) || !clip.Contains(t.CellCenter(col, row)) {
		return nil
	}
	return &t.cells[row*t.cols+col]
}

// Draw rasterises cmds in order over the current content.
func (t *Terminal) Draw(cmds []grapheditor.Command) {
	for _, c := range cmds {
		switch c.Kind {
		case grapheditor.CmdLine, grapheditor.CmdPolyline:
			for i := 1; i < len(c.Points); i++ {
				t.segment(c.Points[i-1], c.Points[i], c.Color, c.Clip)
			}
		case grapheditor.CmdRect:
			t.outline(c.Points[0], c.Points[1], c.Color, c.Clip)
		case grapheditor.CmdRectFilled:
			t.fill(c.Points[0], c.Points[1], c.Color, c.Clip)
		case grapheditor.CmdCircleFilled:
			col, row := t.PixelToCell(c.Points[0])
			if cl := t.cell(col, row, c.Clip); cl != nil {
				cl.Rune, cl.FG = runeDot, blend(cl.BG, c.Color)
			}
		case grapheditor.CmdText:
			t.text(c.Points[0], c.FontSize, c.Text, c.Color, c.Clip)
		}
	}
}

func lineRune(d geom.Vec2) rune {
	ax, ay := math.Abs(d.X), math.Abs(d.Y)
	switch {
	case ay*2 <= ax:
		return runeHorizontal
	case ax*2 <= ay:
		return runeVertical
	case d.X*d.Y > 0:
		return runeFalling
	default:
		return runeRising
	}
}

func (t *Terminal) stroke(col, row int, r rune, c grapheditor.Color, clip geom.Rect) {
	cl := t.cell(col, row, clip)
	if cl == nil {
		return
	}
	if (cl.Rune == runeHorizontal && r == runeVertical) ||
		(cl.Rune == runeVertical && r == runeHorizontal) ||
		(cl.Rune == runeCross && (r == runeHorizontal || r == runeVertical)) {
		r = runeCross
	}
	cl.Rune, cl.FG = r, blend(cl.BG, c)
}

// segment steps through the cells between a and b, one cell per step along
// the major axis. The part outside the grid is cut off first, so the step
// count is bounded by the grid size.
func (t *Terminal) segment(a, b geom.Vec2, c grapheditor.Color, clip geom.Rect) {
	ca := geom.V(a.X/t.cellW, a.Y/t.cellH)
	cb := geom.V(b.X/t.cellW, b.Y/t.cellH)
	r := lineRune(cb.Sub(ca))

	bounds := geom.R(-0.5, -0.5, float64(t.cols)+1, float64(t.rows)+1)
	ca, cb, ok := clipSegment(ca, cb, bounds)
	if !ok {
		return
	}
	d := cb.Sub(ca)

	steps := int(math.Ceil(math.Max(math.Abs(d.X), math.Abs(d.Y))))
	if steps == 0 {
		t.stroke(int(math.Floor(ca.X)), int(math.Floor(ca.Y)), r, c, clip)
		return
	}
	for i := 0; i <= steps; i++ {
		p := geom.LerpVec(ca, cb, float64(i)/float64(steps))
		t.stroke(int(math.Floor(p.X)), int(math.Floor(p.Y)), r, c, clip)
	}
}

// clipSegment cuts a-b to r (Liang-Barsky). ok is false when nothing is left.
func clipSegment(a, b geom.Vec2, r geom.Rect) (geom.Vec2, geom.Vec2, bool) {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	edges := [...]struct{ p, q float64 }{
		{-d.X, a.X - r.Min.X},
		{d.X, r.Max.X - a.X},
		{-d.Y, a.Y - r.Min.Y},
		{d.Y, r.Max.Y - a.Y},
	}
	for _, e := range edges {
		if e.p == 0 {
			if e.q < 0 {
				return a, b, false
			}
			continue
		}
		u := e.q / e.p
		if e.p < 0 {
			t0 = max(t0, u)
		} else {
			t1 = min(t1, u)
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	ca, cb := a, b
	if t0 > 0 {
		ca = geom.LerpVec(a, b, t0)
	}
	if t1 < 1 {
		cb = geom.LerpVec(a, b, t1)
	}
	return ca, cb, true
}

// span returns the cells covered by [lo, hi) in pixels.
func (t *Terminal) span(lo, hi geom.Vec2) (c0, r0, c1, r1 int) {
	c0, r0 = t.PixelToCell(lo)
	c1 = int(math.Ceil(hi.X/t.cellW)) - 1
	r1 = int(math.Ceil(hi.Y/t.cellH)) - 1
	return c0, r0, c1, r1
}

func (t *Terminal) outline(lo, hi geom.Vec2, c grapheditor.Color, clip geom.Rect) {
	c0, r0, c1, r1 := t.span(lo, hi)
	if c1 < c0 || r1 < r0 {
		return
	}
	if c0 == c1 || r0 == r1 {
		t.segment(t.CellCenter(c0, r0), t.CellCenter(c1, r1), c, clip)
		return
	}
	put := func(col, row int, r rune) {
		if cl := t.cell(col, row, clip); cl != nil {
			cl.Rune, cl.FG = r, blend(cl.BG, c)
		}
	}
	for col := c0 + 1; col < c1; col++ {
		put(col, r0, runeHorizontal)
		put(col, r1, runeHorizontal)
	}
	for row := r0 + 1; row < r1; row++ {
		put(c0, row, runeVertical)
		put(c1, row, runeVertical)
	}
	put(c0, r0, '┌')
	put(c1, r0, '┐')
	put(c0, r1, '└')
	put(c1, r1, '┘')
}

// fill paints the cells whose centre lies in [lo, hi). Opaque fills hide
// what was drawn before; translucent ones only tint the background.
func (t *Terminal) fill(lo, hi geom.Vec2, c grapheditor.Color, clip geom.Rect) {
	area := geom.Rect{Min: lo, Max: hi}.Intersect(clip)
	if area.IsEmpty() {
		return
	}
	c0, r0, c1, r1 := t.span(area.Min, area.Max)
	opaque := c.Alpha() == 255
	for row := max(r0, 0); row <= min(r1, t.rows-1); row++ {
		for col := max(c0, 0); col <= min(c1, t.cols-1); col++ {
			if !area.Contains(t.CellCenter(col, row)) {
				continue
			}
			cl := &t.cells[row*t.cols+col]
			if opaque {
				*cl = Cell{Rune: ' ', FG: t.Foreground, BG: c}
				continue
			}
			cl.BG = blend(cl.BG, c)
		}
	}
}

// text writes runes left to right from the cell nearest pos. Text smaller
// than half a cell is unreadable and skipped. A run that repeats the text
// of a run within one cell replaces it, which collapses drop shadows.
func (t *Terminal) text(pos geom.Vec2, size float64, s string, c grapheditor.Color, clip geom.Rect) {
	if size < t.cellH*0.5 {
		return
	}
	row := int(math.Floor((pos.Y + size*0.5) / t.cellH))
	col := int(math.Round(pos.X / t.cellW))

	for i := len(t.runs) - 1; i >= 0; i-- {
		prev := t.runs[i]
		if prev.text == s && abs(prev.row-row) <= 1 && abs(prev.col-col) <= 1 {
			t.erase(prev)
			t.runs = append(t.runs[:i], t.runs[i+1:]...)
			break
		}
	}

	start := col
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > t.cols {
			break
		}
		if cl := t.cell(col, row, clip); cl != nil {
			cl.Rune, cl.FG = r, blend(cl.BG, c)
			if w == 2 {
				if next := t.cell(col+1, row, clip); next != nil {
					next.Rune = continuation
				}
			}
		}
		col += w
	}
	t.runs = append(t.runs, textRun{text: s, row: row, col: start, width: col - start})
}

func (t *Terminal) erase(run textRun) {
	for col := run.col; col < run.col+run.width; col++ {
		if t.inside(col, run.row) {
			cl := &t.cells[run.row*t.cols+col]
			cl.Rune = ' '
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Plain returns the runes of the grid, one line per row, without colour.
func (t *Terminal) Plain() string {
	var sb strings.Builder
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < t.cols; col++ {
			if r := t.cells[row*t.cols+col].Rune; r != continuation {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// String renders the grid with lipgloss, grouping cells of equal colours
// into one styled run.
func (t *Terminal) String() string {
	var sb strings.Builder
	var run []rune
	for row := 0; row < t.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		var fg, bg grapheditor.Color
		for col := 0; col < t.cols; col++ {
			cl := t.cells[row*t.cols+col]
			if len(run) > 0 && (cl.FG != fg || cl.BG != bg) {
				sb.WriteString(cellStyle(fg, bg).Render(string(run)))
				run = run[:0]
			}
			fg, bg = cl.FG, cl.BG
			if cl.Rune != continuation {
				run = append(run, cl.Rune)
			}
		}
		if len(run) > 0 {
			sb.WriteString(cellStyle(fg, bg).Render(string(run)))
			run = run[:0]
		}
	}
	return sb.String()
}

func cellStyle(fg, bg grapheditor.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex6(fg))).
		Background(lipgloss.Color(hex6(bg)))
}
