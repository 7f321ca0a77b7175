package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
	"github.com/dd0wney/cluso-grapheditor/pkg/layout"
	"github.com/dd0wney/cluso-grapheditor/pkg/validation"
)

// Scene is the on-disk form of a document.
type Scene struct {
	Name   string             `yaml:"name,omitempty" json:"name,omitempty"`
	Layout string             `yaml:"layout,omitempty" json:"layout,omitempty" validate:"omitempty,oneof=hierarchical circular grid force"`
	Nodes  []SceneNode        `yaml:"nodes" json:"nodes" validate:"max=10000,dive"`
	Links  []grapheditor.Link `yaml:"links,omitempty" json:"links,omitempty"`
}

// SceneNode describes one node. A node without a rect is placed by the
// scene's layout when loaded.
type SceneNode struct {
	Name       string     `yaml:"name" json:"name" validate:"required,max=64"`
	Kind       string     `yaml:"kind,omitempty" json:"kind,omitempty" validate:"max=64"`
	Rect       *SceneRect `yaml:"rect,omitempty" json:"rect,omitempty"`
	Header     string     `yaml:"header,omitempty" json:"header,omitempty" validate:"omitempty,color"`
	Background string     `yaml:"background,omitempty" json:"background,omitempty" validate:"omitempty,color"`
	Inputs     []string   `yaml:"inputs,omitempty" json:"inputs,omitempty" validate:"max=32,dive,max=32,slotname"`
	Outputs    []string   `yaml:"outputs,omitempty" json:"outputs,omitempty" validate:"max=32,dive,max=32,slotname"`
	Progress   float64    `yaml:"progress,omitempty" json:"progress,omitempty" validate:"gte=0,lte=1"`
	Evaluation *geom.Vec2 `yaml:"evaluation,omitempty" json:"evaluation,omitempty"`
}

// SceneRect is a node rectangle in logical units.
type SceneRect struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	W float64 `yaml:"w" json:"w" validate:"gt=0"`
	H float64 `yaml:"h" json:"h" validate:"gt=0"`
}

const (
	defaultHeader     = "#3c78c8"
	defaultBackground = "#323232"
)

// Validate checks field constraints and the link invariants: every link
// joins an output to an input of two different existing nodes, no input
// takes two links, no link repeats, and the graph stays acyclic.
func (s *Scene) Validate() error {
	var errs []error
	if err := validation.Struct(s); err != nil {
		errs = append(errs, err)
	}

	occupied := make(map[[2]int]int)
	seen := make(map[grapheditor.Link]bool)
	for i, l := range s.Links {
		if err := s.checkLink(l); err != nil {
			errs = append(errs, &DocumentError{Op: "Validate", Entity: "link", Index: i, Cause: err})
			continue
		}
		if seen[l] {
			errs = append(errs, newError("Validate", "link", i, ErrDuplicateLink))
			continue
		}
		seen[l] = true
		key := [2]int{int(l.DestNode), int(l.DestSlot)}
		if prev, ok := occupied[key]; ok {
			errs = append(errs, &DocumentError{
				Op: "Validate", Entity: "link", Index: i, Cause: ErrSlotOccupied,
				Context: fmt.Sprintf("also fed by link %d", prev),
			})
			continue
		}
		occupied[key] = i
	}

	if len(errs) == 0 {
		adj := adjacency(len(s.Nodes), s.Links)
		for _, c := range detectCycles(adj) {
			errs = append(errs, &DocumentError{
				Op: "Validate", Entity: "node", Index: int(c[0]), Cause: ErrCycle,
				Context: fmt.Sprintf("cycle %v", c),
			})
		}
	}
	return errors.Join(errs...)
}

func (s *Scene) checkLink(l grapheditor.Link) error {
	n := len(s.Nodes)
	if int(l.SourceNode) < 0 || int(l.SourceNode) >= n || int(l.DestNode) < 0 || int(l.DestNode) >= n {
		return ErrNodeNotFound
	}
	if l.SourceNode == l.DestNode {
		return ErrSelfLink
	}
	if int(l.SourceSlot) < 0 || int(l.SourceSlot) >= len(s.Nodes[l.SourceNode].Outputs) ||
		int(l.DestSlot) < 0 || int(l.DestSlot) >= len(s.Nodes[l.DestNode].Inputs) {
		return ErrSlotNotFound
	}
	return nil
}

// DecodeScene reads a YAML scene. Unknown fields are rejected.
func DecodeScene(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scene
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return &s, nil
}

// EncodeScene writes s as YAML.
func EncodeScene(w io.Writer, s *Scene) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return enc.Close()
}

// LoadScene reads a scene file.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeScene(f)
}

// SaveScene writes a scene file through a temporary file in the same
// directory, so a failed write leaves the old file intact.
func SaveScene(path string, s *Scene) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := EncodeScene(f, s); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// sceneNode converts a document node to its scene form.
func sceneNode(n grapheditor.Node, m NodeMeta) SceneNode {
	sn := SceneNode{
		Name:       n.Name,
		Kind:       m.Kind,
		Rect:       &SceneRect{X: n.Rect.Min.X, Y: n.Rect.Min.Y, W: n.Rect.Width(), H: n.Rect.Height()},
		Header:     n.HeaderColor.Hex(),
		Background: n.BackgroundColor.Hex(),
		Inputs:     slices.Clone(n.Inputs),
		Outputs:    slices.Clone(n.Outputs),
		Progress:   m.Progress,
	}
	if !m.EvaluationSize.IsZero() {
		eval := m.EvaluationSize
		sn.Evaluation = &eval
	}
	return sn
}

// documentNode converts a scene node. A missing rect yields a node of the
// given size at the origin.
func documentNode(sn SceneNode, size geom.Vec2) (grapheditor.Node, NodeMeta, error) {
	header, err := grapheditor.ParseColor(validation.DefaultOr(sn.Header, defaultHeader))
	if err != nil {
		return grapheditor.Node{}, NodeMeta{}, err
	}
	background, err := grapheditor.ParseColor(validation.DefaultOr(sn.Background, defaultBackground))
	if err != nil {
		return grapheditor.Node{}, NodeMeta{}, err
	}

	rect := geom.R(0, 0, size.X, size.Y)
	if sn.Rect != nil {
		rect = geom.R(sn.Rect.X, sn.Rect.Y, sn.Rect.W, sn.Rect.H)
	}
	n := grapheditor.Node{
		Name:            sn.Name,
		Rect:            rect,
		HeaderColor:     header,
		BackgroundColor: background,
		Inputs:          slices.Clone(sn.Inputs),
		Outputs:         slices.Clone(sn.Outputs),
	}
	m := NodeMeta{Kind: sn.Kind, Progress: sn.Progress}
	if sn.Evaluation != nil {
		m.EvaluationSize = *sn.Evaluation
	}
	return n, m, nil
}

// placeMissing lays out the whole graph with the scene's layout and moves
// only the nodes that came without a rect.
func placeMissing(s *Scene, nodes []grapheditor.Node, cfg layout.Config) error {
	var missing []int
	for i, sn := range s.Nodes {
		if sn.Rect == nil {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	l, err := layout.ByName(s.Layout, cfg)
	if err != nil {
		return err
	}
	pos, err := l.Compute(layoutGraph(nodes, s.Links))
	if err != nil {
		return err
	}
	for _, i := range missing {
		nodes[i].Rect = nodes[i].Rect.Translate(pos[i].Sub(nodes[i].Rect.Min))
	}
	return nil
}

func layoutGraph(nodes []grapheditor.Node, links []grapheditor.Link) layout.Graph {
	g := layout.Graph{Sizes: make([]geom.Vec2, len(nodes))}
	for i, n := range nodes {
		g.Sizes[i] = n.Rect.Size()
	}
	for _, l := range links {
		g.Edges = append(g.Edges, layout.Edge{From: int(l.SourceNode), To: int(l.DestNode)})
	}
	return g
}
