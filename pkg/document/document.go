// Package document is an in-memory graph owner for the editor core. It
// implements grapheditor.Delegate, journals committed transactions, copies
// nodes through a pluggable clipboard and reads and writes YAML scenes.
package document

import (
	"slices"
	"sync"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/logging"
	"github.com/dd0wney/cluso-grapheditor/pkg/metrics"
)

// NodeMeta is per-node data the editor reads but does not draw itself.
type NodeMeta struct {
	Kind           string
	Progress       float64
	EvaluationSize geom.Vec2
}

// Config configures a Document.
type Config struct {
	// JournalSize bounds the number of retained journal entries.
	JournalSize int
	// Clipboard receives copies; nil means a private MemoryClipboard.
	Clipboard ClipboardStore
	// NodeSize is the size of nodes created without a rectangle.
	NodeSize geom.Vec2
	Layout   layout.Config
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

// DefaultConfig returns the stock document configuration.
func DefaultConfig() Config {
	return Config{
		JournalSize: 256,
		NodeSize:    geom.V(160, 100),
		Layout:      layout.DefaultConfig(),
	}
}

// Document is a directed acyclic graph of nodes with typed input and output
// slots. It is safe for concurrent use.
type Document struct {
	mu    sync.RWMutex
	nodes []grapheditor.Node
	meta  []NodeMeta
	links []grapheditor.Link

	// open is the transaction in progress; depth counts unmatched begins.
	open  *Entry
	depth int

	journal   *Journal
	clipboard ClipboardStore
	menuHook  func(grapheditor.ContextMenuRequest)
	lastMenu  grapheditor.ContextMenuRequest

	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
}

var _ grapheditor.Delegate = (*Document)(nil)

// New creates an empty document.
func New(cfg Config) *Document {
	d := DefaultConfig()
	if cfg.JournalSize <= 0 {
		cfg.JournalSize = d.JournalSize
	}
	if cfg.NodeSize.X <= 0 || cfg.NodeSize.Y <= 0 {
		cfg.NodeSize = d.NodeSize
	}
	if cfg.Clipboard == nil {
		cfg.Clipboard = NewMemoryClipboard()
	}
	return &Document{
		journal:   NewJournal(cfg.JournalSize),
		clipboard: cfg.Clipboard,
		cfg:       cfg,
		logger:    logging.OrNop(cfg.Logger).With(logging.Component("document")),
		metrics:   cfg.Metrics,
	}
}

// FromScene builds a document from a validated scene. Nodes without a rect
// are placed by the scene's layout.
func FromScene(s *Scene, cfg Config) (*Document, error) {
	doc := New(cfg)
	if err := s.Validate(); err != nil {
		doc.metrics.RecordSceneLoad("invalid")
		return nil, err
	}

	nodes := make([]grapheditor.Node, len(s.Nodes))
	meta := make([]NodeMeta, len(s.Nodes))
	for i, sn := range s.Nodes {
		n, m, err := documentNode(sn, doc.cfg.NodeSize)
		if err != nil {
			doc.metrics.RecordSceneLoad("invalid")
			return nil, &DocumentError{Op: "FromScene", Entity: "node", Index: i, Cause: err}
		}
		nodes[i], meta[i] = n, m
	}
	if err := placeMissing(s, nodes, doc.cfg.Layout); err != nil {
		doc.metrics.RecordSceneLoad("invalid")
		return nil, err
	}

	doc.nodes, doc.meta, doc.links = nodes, meta, slices.Clone(s.Links)
	doc.metrics.RecordSceneLoad("success")
	doc.metrics.UpdateDocument(len(nodes), len(doc.links))
	doc.logger.Info("scene loaded",
		logging.String("scene", s.Name),
		logging.Int("nodes", len(nodes)),
		logging.Int("links", len(doc.links)),
	)
	return doc, nil
}

// Scene snapshots the document in its on-disk form.
func (d *Document) Scene(name string) *Scene {
	d.mu.RLock()
	defer d.mu.RUnlock()

	s := &Scene{Name: name, Nodes: make([]SceneNode, len(d.nodes)), Links: slices.Clone(d.links)}
	for i, n := range d.nodes {
		s.Nodes[i] = sceneNode(n, d.meta[i])
	}
	return s
}

// Nodes returns a snapshot of the node list.
func (d *Document) Nodes() []grapheditor.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.nodes)
}

// Links returns a snapshot of the link list.
func (d *Document) Links() []grapheditor.Link {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.links)
}

func (d *Document) EvaluationSize(n grapheditor.NodeIndex) geom.Vec2 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.validNode(n) {
		return geom.Vec2{}
	}
	return d.meta[n].EvaluationSize
}

func (d *Document) NodeProgress(n grapheditor.NodeIndex) float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.validNode(n) {
		return 0
	}
	return d.meta[n].Progress
}

// Reachable reports whether to can be reached from from following links
// from source to destination. A node reaches itself.
func (d *Document) Reachable(from, to grapheditor.NodeIndex) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return reachable(adjacency(len(d.nodes), d.links), int(from), int(to))
}

// DetectCycles reports every cycle in the graph. A document only mutated
// through the editor never has one.
func (d *Document) DetectCycles() []Cycle {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return detectCycles(adjacency(len(d.nodes), d.links))
}

// Meta returns the metadata of node n.
func (d *Document) Meta(n grapheditor.NodeIndex) (NodeMeta, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.validNode(n) {
		return NodeMeta{}, false
	}
	return d.meta[n], true
}

// SetProgress sets the evaluation progress of node n, clamped to [0,1].
func (d *Document) SetProgress(n grapheditor.NodeIndex, p float64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.validNode(n) {
		return newError("SetProgress", "node", int(n), ErrNodeNotFound)
	}
	d.meta[n].Progress = geom.Clamp(p, 0, 1)
	return nil
}

// SetEvaluationSize sets the natural thumbnail size of node n.
func (d *Document) SetEvaluationSize(n grapheditor.NodeIndex, size geom.Vec2) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.validNode(n) {
		return newError("SetEvaluationSize", "node", int(n), ErrNodeNotFound)
	}
	d.meta[n].EvaluationSize = size
	return nil
}

// Journal returns the transaction journal.
func (d *Document) Journal() *Journal { return d.journal }

// Len returns the number of nodes and links.
func (d *Document) Len() (nodes, links int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.nodes), len(d.links)
}

func (d *Document) validNode(n grapheditor.NodeIndex) bool {
	return n >= 0 && int(n) < len(d.nodes)
}

// BeginTransaction opens a transaction. Begins nested inside an open
// transaction are reported and folded into it.
func (d *Document) BeginTransaction(undoable bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.depth > 0 {
		d.depth++
		d.violation(newError("BeginTransaction", "transaction", -1, ErrNestedTransaction))
		return
	}
	d.depth = 1
	d.open = &Entry{ID: newID(), Undoable: undoable}
	d.logger.Debug("transaction opened", logging.TxID(d.open.ID), logging.Bool("undoable", undoable))
}

// EndTransaction commits the open transaction to the journal. Empty
// transactions are dropped.
func (d *Document) EndTransaction() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.depth == 0 {
		d.violation(newError("EndTransaction", "transaction", -1, ErrNoTransaction))
		return
	}
	d.depth--
	if d.depth > 0 {
		return
	}

	entry := d.open
	d.open = nil
	if len(entry.Ops) == 0 {
		d.logger.Debug("empty transaction dropped", logging.TxID(entry.ID))
		return
	}
	d.commit(entry)
}

// record journals op, inside the open transaction or as an implicit entry.
func (d *Document) record(op Op) {
	d.metrics.RecordMutation(string(op.Kind))
	d.metrics.UpdateDocument(len(d.nodes), len(d.links))
	if d.open != nil {
		d.open.Ops = append(d.open.Ops, op)
		return
	}
	d.commit(&Entry{ID: newID(), Implicit: true, Ops: []Op{op}})
}

func (d *Document) commit(e *Entry) {
	d.journal.Append(e)
	d.metrics.RecordJournalEntry(e.Kind())
	d.logger.Info("transaction committed",
		logging.TxID(e.ID),
		logging.Count(len(e.Ops)),
		logging.Bool("implicit", e.Implicit),
	)
}

// violation logs and counts a request the document refused.
func (d *Document) violation(err *DocumentError) {
	d.logger.Warn("request refused", logging.Op(err.Op), logging.Error(err))
	d.metrics.RecordContractViolation("document")
}
