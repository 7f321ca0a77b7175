package document

import (
	"slices"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
)

// AddLink adds l, or logs and drops it when it would break an invariant.
func (d *Document) AddLink(l grapheditor.Link) {
	if err := d.Connect(l); err != nil {
		d.logger.Warn("link refused", logging.Error(err))
		d.metrics.RecordContractViolation("document")
	}
}

// Connect adds l after checking that both ends exist, the destination input
// is free, the link is new and it closes no cycle.
func (d *Document) Connect(l grapheditor.Link) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.checkLink(l); err != nil {
		return err
	}
	d.links = append(d.links, l)
	d.record(Op{Kind: OpAddLink, Link: &l, Index: len(d.links) - 1})
	return nil
}

func (d *Document) checkLink(l grapheditor.Link) error {
	const op = "AddLink"
	if !d.validNode(l.SourceNode) {
		return newError(op, "node", int(l.SourceNode), ErrNodeNotFound)
	}
	if !d.validNode(l.DestNode) {
		return newError(op, "node", int(l.DestNode), ErrNodeNotFound)
	}
	if l.SourceNode == l.DestNode {
		return newError(op, "node", int(l.SourceNode), ErrSelfLink)
	}
	if l.SourceSlot < 0 || int(l.SourceSlot) >= d.nodes[l.SourceNode].OutputCount() {
		return &DocumentError{Op: op, Entity: "slot", Index: int(l.SourceSlot), Cause: ErrSlotNotFound, Context: "output"}
	}
	if l.DestSlot < 0 || int(l.DestSlot) >= d.nodes[l.DestNode].InputCount() {
		return &DocumentError{Op: op, Entity: "slot", Index: int(l.DestSlot), Cause: ErrSlotNotFound, Context: "input"}
	}
	for i, existing := range d.links {
		if existing == l {
			return newError(op, "link", i, ErrDuplicateLink)
		}
		if existing.DestNode == l.DestNode && existing.DestSlot == l.DestSlot {
			return newError(op, "link", i, ErrSlotOccupied)
		}
	}
	if reachable(adjacency(len(d.nodes), d.links), int(l.DestNode), int(l.SourceNode)) {
		return newError(op, "node", int(l.DestNode), ErrCycle)
	}
	return nil
}

// DeleteLink removes the link at index.
func (d *Document) DeleteLink(index int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.links) {
		d.violation(newError("DeleteLink", "link", index, ErrLinkNotFound))
		return
	}
	l := d.links[index]
	d.links = slices.Delete(d.links, index, index+1)
	d.record(Op{Kind: OpDeleteLink, Link: &l, Index: index})
}

// MoveNodes translates the given nodes. Unknown indices are skipped.
func (d *Document) MoveNodes(nodes []grapheditor.NodeIndex, delta geom.Vec2) {
	d.mu.Lock()
	defer d.mu.Unlock()

	moved := d.known("MoveNodes", nodes)
	if len(moved) == 0 {
		return
	}
	for _, n := range moved {
		d.nodes[n].Rect = d.nodes[n].Rect.Translate(delta)
	}
	d.record(Op{Kind: OpMoveNodes, Nodes: ints(moved), Delta: delta})
}

// DeleteNodes removes the given nodes and every link touching them. The
// remaining nodes keep their order; indices above a removed node shift down.
func (d *Document) DeleteNodes(nodes []grapheditor.NodeIndex) {
	d.mu.Lock()
	defer d.mu.Unlock()

	removed := d.known("DeleteNodes", nodes)
	if len(removed) == 0 {
		return
	}
	d.removeLocked(removed)
	d.record(Op{Kind: OpDeleteNodes, Nodes: ints(removed)})
}

func (d *Document) removeLocked(removed []grapheditor.NodeIndex) {
	drop := make([]bool, len(d.nodes))
	for _, n := range removed {
		drop[n] = true
	}

	remap := make([]grapheditor.NodeIndex, len(d.nodes))
	nodes := d.nodes[:0]
	meta := d.meta[:0]
	for i := range d.nodes {
		if drop[i] {
			remap[i] = grapheditor.NoNode
			continue
		}
		remap[i] = grapheditor.NodeIndex(len(nodes))
		nodes = append(nodes, d.nodes[i])
		meta = append(meta, d.meta[i])
	}
	// clear the tail so dropped slot slices can be collected
	clear(d.nodes[len(nodes):])
	d.nodes, d.meta = nodes, meta

	links := d.links[:0]
	for _, l := range d.links {
		if remap[l.SourceNode] == grapheditor.NoNode || remap[l.DestNode] == grapheditor.NoNode {
			continue
		}
		l.SourceNode, l.DestNode = remap[l.SourceNode], remap[l.DestNode]
		links = append(links, l)
	}
	d.links = links
}

// CopyNodes writes the given nodes, and the links running between them, to
// the clipboard.
func (d *Document) CopyNodes(nodes []grapheditor.NodeIndex) {
	d.mu.RLock()
	copied := d.known("CopyNodes", nodes)
	p := payload{Nodes: make([]SceneNode, 0, len(copied))}
	position := make(map[grapheditor.NodeIndex]grapheditor.NodeIndex, len(copied))
	for _, n := range copied {
		position[n] = grapheditor.NodeIndex(len(p.Nodes))
		p.Nodes = append(p.Nodes, sceneNode(d.nodes[n], d.meta[n]))
	}
	for _, l := range d.links {
		src, okSrc := position[l.SourceNode]
		dst, okDst := position[l.DestNode]
		if okSrc && okDst {
			l.SourceNode, l.DestNode = src, dst
			p.Links = append(p.Links, l)
		}
	}
	d.mu.RUnlock()

	if len(p.Nodes) == 0 {
		return
	}
	data, err := encodePayload(p)
	if err == nil {
		err = d.clipboard.Write(data)
	}
	if err != nil {
		d.logger.Error("copy failed", logging.Error(err))
		return
	}
	d.metrics.RecordClipboardPayload(len(data))
	d.logger.Debug("nodes copied", logging.Count(len(p.Nodes)), logging.Int("bytes", len(data)))
}

// PasteNodes appends the clipboard nodes translated by offset, re-creates
// the links between them and returns their indices.
func (d *Document) PasteNodes(offset geom.Vec2) []grapheditor.NodeIndex {
	data, err := d.clipboard.Read()
	var p payload
	if err == nil {
		p, err = decodePayload(data)
	}
	if err != nil {
		d.logger.Info("nothing to paste", logging.Error(err))
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	base := len(d.nodes)
	pasted := make([]grapheditor.NodeIndex, 0, len(p.Nodes))
	for _, sn := range p.Nodes {
		n, m, err := documentNode(sn, d.cfg.NodeSize)
		if err != nil {
			d.logger.Warn("skipping pasted node", logging.Error(err))
			continue
		}
		n.Rect = n.Rect.Translate(offset)
		pasted = append(pasted, grapheditor.NodeIndex(len(d.nodes)))
		d.nodes = append(d.nodes, n)
		d.meta = append(d.meta, m)
	}
	if len(pasted) == 0 {
		return nil
	}
	if len(pasted) != len(p.Nodes) {
		// positions shifted; internal links can no longer be mapped
		p.Links = nil
	}
	for _, l := range p.Links {
		l.SourceNode += grapheditor.NodeIndex(base)
		l.DestNode += grapheditor.NodeIndex(base)
		if err := d.checkLink(l); err != nil {
			d.logger.Warn("skipping pasted link", logging.Error(err))
			continue
		}
		d.links = append(d.links, l)
	}
	d.record(Op{Kind: OpPasteNodes, Nodes: ints(pasted), Delta: offset})
	return pasted
}

// NodeTemplate describes a node the shell can create from its context menu.
type NodeTemplate struct {
	Name       string
	Kind       string
	Inputs     []string
	Outputs    []string
	Header     grapheditor.Color
	Background grapheditor.Color
	Size       geom.Vec2
}

// DefaultTemplates returns the stock node palette.
func DefaultTemplates() []NodeTemplate {
	bg := grapheditor.RGBA(50, 50, 50, 255)
	return []NodeTemplate{
		{Name: "Source", Kind: "source", Outputs: []string{"out"}, Header: grapheditor.RGBA(60, 160, 90, 255), Background: bg},
		{Name: "Filter", Kind: "filter", Inputs: []string{"in"}, Outputs: []string{"out"}, Header: grapheditor.RGBA(60, 120, 200, 255), Background: bg},
		{Name: "Blend", Kind: "blend", Inputs: []string{"a", "b"}, Outputs: []string{"out"}, Header: grapheditor.RGBA(170, 110, 200, 255), Background: bg},
		{Name: "Output", Kind: "sink", Inputs: []string{"in"}, Header: grapheditor.RGBA(200, 90, 60, 255), Background: bg},
	}
}

// AddNode creates a node from t with its top-left corner at at.
func (d *Document) AddNode(t NodeTemplate, at geom.Vec2) grapheditor.NodeIndex {
	size := t.Size
	if size.X <= 0 || size.Y <= 0 {
		size = d.cfg.NodeSize
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.nodes = append(d.nodes, grapheditor.Node{
		Name:            t.Name,
		Rect:            geom.Rect{Min: at, Max: at.Add(size)},
		HeaderColor:     t.Header,
		BackgroundColor: t.Background,
		Inputs:          slices.Clone(t.Inputs),
		Outputs:         slices.Clone(t.Outputs),
	})
	d.meta = append(d.meta, NodeMeta{Kind: t.Kind})
	n := grapheditor.NodeIndex(len(d.nodes) - 1)
	d.record(Op{Kind: OpAddNode, Nodes: []int{int(n)}})
	return n
}

// Arrange moves every node to the position computed by l.
func (d *Document) Arrange(l layout.Layout) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.nodes) == 0 {
		return nil
	}
	pos, err := l.Compute(layoutGraph(d.nodes, d.links))
	if err != nil {
		return err
	}
	all := make([]int, len(d.nodes))
	for i := range d.nodes {
		d.nodes[i].Rect = d.nodes[i].Rect.Translate(pos[i].Sub(d.nodes[i].Rect.Min))
		all[i] = i
	}
	d.record(Op{Kind: OpArrange, Nodes: all})
	return nil
}

// known returns the valid, distinct indices of nodes in ascending order,
// reporting the rest.
func (d *Document) known(op string, nodes []grapheditor.NodeIndex) []grapheditor.NodeIndex {
	out := make([]grapheditor.NodeIndex, 0, len(nodes))
	for _, n := range nodes {
		if !d.validNode(n) {
			d.violation(newError(op, "node", int(n), ErrNodeNotFound))
			continue
		}
		out = append(out, n)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func ints(nodes []grapheditor.NodeIndex) []int {
	out := make([]int, len(nodes))
	for i, n := range nodes {
		out[i] = int(n)
	}
	return out
}
