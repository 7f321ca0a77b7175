package document

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// ClipboardStore holds the bytes of the last copy.
type ClipboardStore interface {
	Write(data []byte) error
	// Read returns ErrEmptyClipboard when nothing usable has been written.
	Read() ([]byte, error)
}

// MemoryClipboard is a process-local clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

func (c *MemoryClipboard) Write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = append(c.data[:0], data...)
	return nil
}

func (c *MemoryClipboard) Read() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.data) == 0 {
		return nil, ErrEmptyClipboard
	}
	return append([]byte(nil), c.data...), nil
}

// systemPrefix marks clipboard text written by the editor, so unrelated text
// on the system clipboard is not mistaken for nodes.
const systemPrefix = "grapheditor/v1:"

// ErrClipboardUnsupported is returned when the platform has no clipboard
// utility (xclip, xsel, pbcopy, ...).
var ErrClipboardUnsupported = errors.New("system clipboard unsupported")

// SystemClipboard stores payloads as base64 text on the desktop clipboard,
// so nodes can be pasted between editor processes.
type SystemClipboard struct {
	readAll  func() (string, error)
	writeAll func(string) error
}

// NewSystemClipboard returns a store backed by the desktop clipboard.
func NewSystemClipboard() (*SystemClipboard, error) {
	if clipboard.Unsupported {
		return nil, ErrClipboardUnsupported
	}
	return &SystemClipboard{readAll: clipboard.ReadAll, writeAll: clipboard.WriteAll}, nil
}

func (c *SystemClipboard) Write(data []byte) error {
	return c.writeAll(systemPrefix + base64.StdEncoding.EncodeToString(data))
}

func (c *SystemClipboard) Read() ([]byte, error) {
	text, err := c.readAll()
	if err != nil {
		return nil, fmt.Errorf("read system clipboard: %w", err)
	}
	encoded, ok := strings.CutPrefix(strings.TrimSpace(text), systemPrefix)
	if !ok {
		return nil, ErrEmptyClipboard
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

const payloadVersion = 1

// payload is what a copy puts on the clipboard: the nodes and the links
// running between them, re-indexed to positions in Nodes.
type payload struct {
	Version int                `json:"version"`
	Nodes   []SceneNode        `json:"nodes"`
	Links   []grapheditor.Link `json:"links,omitempty"`
}

// encodePayload serialises to JSON and compresses with snappy.
func encodePayload(p payload) ([]byte, error) {
	p.Version = payloadVersion
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal clipboard payload: %w", err)
	}
	return snappy.Encode(nil, raw), nil
}

func decodePayload(data []byte) (payload, error) {
	var p payload
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.Version != payloadVersion {
		return p, fmt.Errorf("%w: version %d", ErrInvalidPayload, p.Version)
	}
	for i, l := range p.Links {
		if int(l.SourceNode) < 0 || int(l.SourceNode) >= len(p.Nodes) ||
			int(l.DestNode) < 0 || int(l.DestNode) >= len(p.Nodes) {
			return p, fmt.Errorf("%w: link %d leaves the payload", ErrInvalidPayload, i)
		}
	}
	if len(p.Nodes) == 0 {
		return p, ErrEmptyClipboard
	}
	return p, nil
}
