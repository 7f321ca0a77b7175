package grapheditor

import (
	"fmt"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// recordingDelegate is an in-memory graph owner that applies mutations and
// records every call in order.
type recordingDelegate struct {
	nodes    []Node
	links    []Link
	progress map[NodeIndex]float64
	evalSize map[NodeIndex]geom.Vec2

	calls     []string
	added     []Link
	deleted   []int
	moves     []moveCall
	copies    [][]NodeIndex
	removals  [][]NodeIndex
	pastes    []geom.Vec2
	menus     []ContextMenuRequest
	images    []geom.Rect
	clipboard []Node
	depth     int
	nested    bool
}

type moveCall struct {
	nodes []NodeIndex
	delta geom.Vec2
}

func newRecordingDelegate(nodes ...Node) *recordingDelegate {
	return &recordingDelegate{
		nodes:    nodes,
		progress: map[NodeIndex]float64{},
		evalSize: map[NodeIndex]geom.Vec2{},
	}
}

func (d *recordingDelegate) Nodes() []Node { return d.nodes }
func (d *recordingDelegate) Links() []Link { return d.links }

func (d *recordingDelegate) EvaluationSize(n NodeIndex) geom.Vec2 { return d.evalSize[n] }
func (d *recordingDelegate) NodeProgress(n NodeIndex) float64     { return d.progress[n] }

func (d *recordingDelegate) Reachable(from, to NodeIndex) bool {
	seen := map[NodeIndex]bool{from: true}
	stack := []NodeIndex{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		for _, l := range d.links {
			if l.SourceNode == n && !seen[l.DestNode] {
				seen[l.DestNode] = true
				stack = append(stack, l.DestNode)
			}
		}
	}
	return false
}

func (d *recordingDelegate) BeginTransaction(undoable bool) {
	if d.depth > 0 {
		d.nested = true
	}
	d.depth++
	d.calls = append(d.calls, "begin")
}

func (d *recordingDelegate) EndTransaction() {
	d.depth--
	d.calls = append(d.calls, "end")
}

func (d *recordingDelegate) AddLink(l Link) {
	d.calls = append(d.calls, "add_link")
	d.added = append(d.added, l)
	d.links = append(d.links, l)
}

func (d *recordingDelegate) DeleteLink(index int) {
	d.calls = append(d.calls, fmt.Sprintf("delete_link:%d", index))
	d.deleted = append(d.deleted, index)
	d.links = append(d.links[:index:index], d.links[index+1:]...)
}

func (d *recordingDelegate) MoveNodes(nodes []NodeIndex, delta geom.Vec2) {
	d.calls = append(d.calls, "move_nodes")
	d.moves = append(d.moves, moveCall{nodes: nodes, delta: delta})
	for _, i := range nodes {
		d.nodes[i].Rect = d.nodes[i].Rect.Translate(delta)
	}
}

func (d *recordingDelegate) CopyNodes(nodes []NodeIndex) {
	d.calls = append(d.calls, "copy_nodes")
	d.copies = append(d.copies, nodes)
	d.clipboard = d.clipboard[:0]
	for _, i := range nodes {
		d.clipboard = append(d.clipboard, d.nodes[i])
	}
}

func (d *recordingDelegate) DeleteNodes(nodes []NodeIndex) {
	d.calls = append(d.calls, "delete_nodes")
	d.removals = append(d.removals, nodes)
	drop := map[NodeIndex]bool{}
	for _, i := range nodes {
		drop[i] = true
	}
	var kept []Node
	remap := map[NodeIndex]NodeIndex{}
	for i, n := range d.nodes {
		if drop[NodeIndex(i)] {
			continue
		}
		remap[NodeIndex(i)] = NodeIndex(len(kept))
		kept = append(kept, n)
	}
	var links []Link
	for _, l := range d.links {
		s, okS := remap[l.SourceNode]
		t, okT := remap[l.DestNode]
		if okS && okT {
			l.SourceNode, l.DestNode = s, t
			links = append(links, l)
		}
	}
	d.nodes, d.links = kept, links
}

func (d *recordingDelegate) PasteNodes(offset geom.Vec2) []NodeIndex {
	d.calls = append(d.calls, "paste_nodes")
	d.pastes = append(d.pastes, offset)
	var out []NodeIndex
	for _, n := range d.clipboard {
		n.Rect = n.Rect.Translate(offset)
		out = append(out, NodeIndex(len(d.nodes)))
		d.nodes = append(d.nodes, n)
	}
	return out
}

func (d *recordingDelegate) DrawNodeImage(dl *DrawList, rc geom.Rect, margin geom.Vec2, n NodeIndex) {
	d.images = append(d.images, rc)
	dl.AddRectFilled(rc.Min.Add(margin), rc.Max.Sub(margin), RGBA(255, 255, 255, 255), 0)
}

func (d *recordingDelegate) ContextMenu(req ContextMenuRequest) {
	d.menus = append(d.menus, req)
}

func (d *recordingDelegate) resetCalls() {
	d.calls = nil
}
