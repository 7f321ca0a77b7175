package raster

import (
	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// staticGraph is a read-only delegate for rendering tests.
type staticGraph struct {
	nodes []grapheditor.Node
	links []grapheditor.Link
}

func (g *staticGraph) Nodes() []grapheditor.Node                    { return g.nodes }
func (g *staticGraph) Links() []grapheditor.Link                    { return g.links }
func (g *staticGraph) EvaluationSize(grapheditor.NodeIndex) geom.Vec2 { return geom.Vec2{} }
func (g *staticGraph) NodeProgress(grapheditor.NodeIndex) float64     { return 0 }
func (g *staticGraph) Reachable(from, to grapheditor.NodeIndex) bool  { return from == to }

func (g *staticGraph) AddLink(grapheditor.Link)                           {}
func (g *staticGraph) DeleteLink(int)                                     {}
func (g *staticGraph) MoveNodes([]grapheditor.NodeIndex, geom.Vec2)       {}
func (g *staticGraph) CopyNodes([]grapheditor.NodeIndex)                  {}
func (g *staticGraph) DeleteNodes([]grapheditor.NodeIndex)                {}
func (g *staticGraph) PasteNodes(geom.Vec2) []grapheditor.NodeIndex       { return nil }
func (g *staticGraph) BeginTransaction(bool)                              {}
func (g *staticGraph) EndTransaction()                                    {}
func (g *staticGraph) ContextMenu(grapheditor.ContextMenuRequest)         {}
func (g *staticGraph) DrawNodeImage(*grapheditor.DrawList, geom.Rect, geom.Vec2, grapheditor.NodeIndex) {
}
