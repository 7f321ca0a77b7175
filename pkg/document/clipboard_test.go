package document

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/snappy"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

func TestCopyPasteKeepsInternalLinks(t *testing.T) {
	doc, reg := newTestDoc(t, fourNodes())
	require.NoError(t, doc.Connect(link(0, 1)))
	require.NoError(t, doc.Connect(link(1, 2)))
	require.NoError(t, doc.SetProgress(2, 0.25))

	doc.CopyNodes([]grapheditor.NodeIndex{2, 1})
	pasted := doc.PasteNodes(geom.V(40, 40))

	require.Equal(t, []grapheditor.NodeIndex{4, 5}, pasted)
	nodes := doc.Nodes()
	require.Len(t, nodes, 6)
	assert.Equal(t, "B", nodes[4].Name)
	assert.Equal(t, "C", nodes[5].Name)
	assert.Equal(t, nodes[1].Rect.Translate(geom.V(40, 40)), nodes[4].Rect)
	assert.Equal(t, nodes[2].Rect.Translate(geom.V(40, 40)), nodes[5].Rect)
	assert.Equal(t, nodes[1].HeaderColor, nodes[4].HeaderColor)
	assert.Equal(t, 0.25, doc.NodeProgress(5))

	// only the link running between copied nodes comes along
	assert.Equal(t, []grapheditor.Link{link(0, 1), link(1, 2), link(4, 5)}, doc.Links())

	last := doc.Journal().Recent(1)[0]
	assert.Equal(t, []OpKind{OpPasteNodes}, opKinds(last))
	assert.Equal(t, []int{4, 5}, last.Ops[0].Nodes)

	var m dto.Metric
	require.NoError(t, reg.ClipboardBytes.Write(&m))
	assert.Equal(t, uint64(1), m.Histogram.GetSampleCount())
}

func TestPasteTwice(t *testing.T) {
	doc, _ := newTestDoc(t, fourNodes())

	doc.CopyNodes([]grapheditor.NodeIndex{0})
	first := doc.PasteNodes(geom.V(40, 40))
	second := doc.PasteNodes(geom.V(80, 80))

	assert.Equal(t, []grapheditor.NodeIndex{4}, first)
	assert.Equal(t, []grapheditor.NodeIndex{5}, second)
	assert.Equal(t, geom.V(180, 180), doc.Nodes()[5].Rect.Min)
}

func TestPasteBetweenDocuments(t *testing.T) {
	shared := NewMemoryClipboard()
	cfg := DefaultConfig()
	cfg.Clipboard = shared

	src, err := FromScene(fourNodes(), cfg)
	require.NoError(t, err)
	dst := New(cfg)

	src.CopyNodes([]grapheditor.NodeIndex{3})
	assert.Equal(t, []grapheditor.NodeIndex{0}, dst.PasteNodes(geom.Vec2{}))
	assert.Equal(t, "D", dst.Nodes()[0].Name)
}

func TestPasteEmptyClipboard(t *testing.T) {
	doc, _ := newTestDoc(t, fourNodes())

	assert.Nil(t, doc.PasteNodes(geom.V(40, 40)))

	doc.CopyNodes(nil)
	doc.CopyNodes([]grapheditor.NodeIndex{42})
	assert.Nil(t, doc.PasteNodes(geom.V(40, 40)))

	n, _ := doc.Len()
	assert.Equal(t, 4, n)
	assert.Zero(t, doc.Journal().Len())
}

func TestPasteTranslatesByOffset(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	coord := gen.Float64Range(-5000, 5000)

	properties.Property("pasted rect is the copied rect moved by the offset", prop.ForAll(
		func(dx, dy float64) bool {
			doc := New(DefaultConfig())
			src := doc.AddNode(DefaultTemplates()[1], geom.V(12.5, -7))
			doc.CopyNodes([]grapheditor.NodeIndex{src})
			offset := geom.V(dx, dy)
			pasted := doc.PasteNodes(offset)
			if len(pasted) != 1 {
				return false
			}
			nodes := doc.Nodes()
			return nodes[pasted[0]].Rect == nodes[src].Rect.Translate(offset)
		},
		coord, coord,
	))

	properties.TestingRun(t)
}

func TestDecodePayloadRejects(t *testing.T) {
	encode := func(v any) []byte {
		raw, err := json.Marshal(v)
		require.NoError(t, err)
		return snappy.Encode(nil, raw)
	}
	node := SceneNode{Name: "n", Outputs: []string{"out"}}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"not snappy", []byte("plain text"), ErrInvalidPayload},
		{"not json", snappy.Encode(nil, []byte("{")), ErrInvalidPayload},
		{"wrong version", encode(payload{Version: 7, Nodes: []SceneNode{node}}), ErrInvalidPayload},
		{"link leaves payload", encode(payload{
			Version: payloadVersion,
			Nodes:   []SceneNode{node},
			Links:   []grapheditor.Link{link(0, 3)},
		}), ErrInvalidPayload},
		{"no nodes", encode(payload{Version: payloadVersion}), ErrEmptyClipboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodePayload(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMemoryClipboardCopiesData(t *testing.T) {
	c := NewMemoryClipboard()
	_, err := c.Read()
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	data := []byte{1, 2, 3}
	require.NoError(t, c.Write(data))
	data[0] = 9

	got, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
}

func TestSystemClipboard(t *testing.T) {
	var text string
	readErr := error(nil)
	c := &SystemClipboard{
		readAll:  func() (string, error) { return text, readErr },
		writeAll: func(s string) error { text = s; return nil },
	}

	require.NoError(t, c.Write([]byte("payload")))
	assert.Equal(t, systemPrefix+base64.StdEncoding.EncodeToString([]byte("payload")), text)
	got, err := c.Read()
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)

	text = "some text copied from elsewhere"
	_, err = c.Read()
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	text = systemPrefix + "%%%"
	_, err = c.Read()
	assert.ErrorIs(t, err, ErrInvalidPayload)

	readErr = errors.New("xclip missing")
	_, err = c.Read()
	assert.ErrorIs(t, err, readErr)
}

func TestDocumentOverSystemClipboard(t *testing.T) {
	var text string
	cfg := DefaultConfig()
	cfg.Clipboard = &SystemClipboard{
		readAll:  func() (string, error) { return text, nil },
		writeAll: func(s string) error { text = s; return nil },
	}
	doc, err := FromScene(fourNodes(), cfg)
	require.NoError(t, err)

	doc.CopyNodes([]grapheditor.NodeIndex{0, 1})
	assert.Equal(t, []grapheditor.NodeIndex{4, 5}, doc.PasteNodes(geom.V(40, 40)))
}
