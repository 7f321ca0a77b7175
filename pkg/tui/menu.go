package tui

import (
	"github.com/mattn/go-runewidth"

	"github.com/dd0wney/cluso-grapheditor/pkg/document"
	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/raster"
)

type menuAction int

const (
	actionAddNode menuAction = iota
	actionDeleteNode
	actionFit
	actionArrange
)

type menuItem struct {
	label    string
	action   menuAction
	template int
}

var (
	menuBackground = grapheditor.RGBA(45, 45, 60, 255)
	menuCursor     = grapheditor.RGBA(90, 70, 140, 255)
	menuText       = grapheditor.RGBA(230, 230, 230, 255)
)

// contextMenu is the popup opened by the editor's context menu request. It
// lives in cell coordinates on top of the canvas.
type contextMenu struct {
	open bool
	// pending is set by the document hook during a frame and consumed
	// after it.
	pending *grapheditor.ContextMenuRequest

	anchor   geom.Vec2
	node     grapheditor.NodeIndex
	col, row int
	width    int
	items    []menuItem
	cursor   int
}

// request records an open request; other requests are ignored.
func (cm *contextMenu) request(req grapheditor.ContextMenuRequest) {
	if req.Open {
		cm.pending = &req
	}
}

// show opens the menu at cell (col, row), kept inside a cols x rows grid.
func (cm *contextMenu) show(req grapheditor.ContextMenuRequest, nodes []grapheditor.Node, templates []document.NodeTemplate, col, row, cols, rows int) {
	cm.items = cm.items[:0]
	for i, t := range templates {
		cm.items = append(cm.items, menuItem{label: "Add " + t.Name, action: actionAddNode, template: i})
	}
	if req.Node != grapheditor.NoNode && int(req.Node) < len(nodes) {
		cm.items = append(cm.items, menuItem{label: "Delete " + nodes[req.Node].Name, action: actionDeleteNode})
	}
	cm.items = append(cm.items,
		menuItem{label: "Fit view", action: actionFit},
		menuItem{label: "Arrange", action: actionArrange},
	)

	cm.width = 0
	for _, it := range cm.items {
		cm.width = max(cm.width, runewidth.StringWidth(it.label)+2)
	}
	cm.anchor, cm.node = req.Anchor, req.Node
	cm.col = max(0, min(col, cols-cm.width))
	cm.row = max(0, min(row, rows-len(cm.items)))
	cm.cursor = 0
	cm.open = true
}

func (cm *contextMenu) close() {
	cm.open = false
	cm.pending = nil
}

func (cm *contextMenu) move(delta int) {
	if len(cm.items) == 0 {
		return
	}
	cm.cursor = (cm.cursor + delta + len(cm.items)) % len(cm.items)
}

// itemAt returns the item index under a cell, or -1.
func (cm *contextMenu) itemAt(col, row int) int {
	if !cm.open || col < cm.col || col >= cm.col+cm.width {
		return -1
	}
	i := row - cm.row
	if i < 0 || i >= len(cm.items) {
		return -1
	}
	return i
}

// draw paints the menu over the canvas.
func (cm *contextMenu) draw(term *raster.Terminal) {
	if !cm.open {
		return
	}
	cell := term.CellSize()
	px := func(col, row int) geom.Vec2 {
		return geom.V(float64(col)*cell.X, float64(row)*cell.Y)
	}

	dl := grapheditor.NewDrawList()
	dl.PushClip(term.Region())
	dl.AddRectFilled(px(cm.col, cm.row), px(cm.col+cm.width, cm.row+len(cm.items)), menuBackground, 0)
	for i, it := range cm.items {
		row := cm.row + i
		if i == cm.cursor {
			dl.AddRectFilled(px(cm.col, row), px(cm.col+cm.width, row+1), menuCursor, 0)
		}
		dl.AddText(px(cm.col+1, row), menuText, cell.Y, it.label)
	}
	dl.PopClip()
	term.Draw(dl.Commands())
}
