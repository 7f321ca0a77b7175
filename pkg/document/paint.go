package document

import (
	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// checkerCells is the number of checkerboard cells per side of a thumbnail.
const checkerCells = 4

// DrawNodeImage paints a checkerboard placeholder in the node's header
// colour. Nodes are not evaluated here, so there is no real image to show.
func (d *Document) DrawNodeImage(dl *grapheditor.DrawList, rc geom.Rect, margin geom.Vec2, n grapheditor.NodeIndex) {
	d.mu.RLock()
	if !d.validNode(n) {
		d.mu.RUnlock()
		return
	}
	light := d.nodes[n].HeaderColor
	d.mu.RUnlock()
	dark := darken(light)

	inner := geom.Rect{Min: rc.Min.Add(margin), Max: rc.Max.Sub(margin)}
	if inner.IsEmpty() {
		return
	}
	cell := inner.Size().Div(checkerCells)
	for row := 0; row < checkerCells; row++ {
		for col := 0; col < checkerCells; col++ {
			c := light
			if (row+col)%2 == 1 {
				c = dark
			}
			lo := inner.Min.Add(geom.V(float64(col)*cell.X, float64(row)*cell.Y))
			dl.AddRectFilled(lo, lo.Add(cell), c, 0)
		}
	}
}

func darken(c grapheditor.Color) grapheditor.Color {
	r, g, b, a := c.Components()
	return grapheditor.RGBA(r/2, g/2, b/2, a)
}

// SetContextMenuHook installs fn to receive every context menu request.
func (d *Document) SetContextMenuHook(fn func(grapheditor.ContextMenuRequest)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.menuHook = fn
}

// ContextMenu records the request and forwards it to the hook, if any.
func (d *Document) ContextMenu(req grapheditor.ContextMenuRequest) {
	d.mu.Lock()
	d.lastMenu = req
	hook := d.menuHook
	d.mu.Unlock()

	if hook != nil {
		hook(req)
	}
}

// LastContextMenu returns the most recent context menu request.
func (d *Document) LastContextMenu() grapheditor.ContextMenuRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastMenu
}
