package grapheditor

import "github.com/dd0wney/cluso-grapheditor/pkg/geom"

// MouseButton indexes the button arrays of Input.
type MouseButton int

const (
	MousePrimary MouseButton = iota
	MouseSecondary
	MouseMiddle
	mouseButtonCount
)

// Key is one of the keys the editor reacts to.
type Key uint8

const (
	KeyC Key = 1 << iota
	KeyV
	KeyX
	KeyDelete
	KeyTab
)

// KeySet is a bit set of keys.
type KeySet uint8

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool { return s&KeySet(k) != 0 }

// With returns the set with k added.
func (s KeySet) With(k Key) KeySet { return s | KeySet(k) }

// clipboardKeys are the keys gated by the clipboard latch.
const clipboardKeys = KeySet(KeyC | KeyV | KeyX | KeyDelete)

// Input is the per-frame snapshot the host feeds to Editor.Frame. All
// positions are in screen pixels.
type Input struct {
	// Region is the canvas rectangle on screen.
	Region geom.Rect

	Mouse      geom.Vec2
	MouseValid bool
	// MouseDelta is the pointer movement since the previous frame.
	MouseDelta geom.Vec2
	// MouseDown is the held state; MouseClicked is true only on the frame a
	// button went down.
	MouseDown    [mouseButtonCount]bool
	MouseClicked [mouseButtonCount]bool
	// Wheel is the vertical wheel movement this frame; only the sign is used.
	Wheel float64

	Ctrl  bool
	Shift bool
	// KeysDown is the held state of the keys; KeysPressed holds only fresh presses.
	KeysDown    KeySet
	KeysPressed KeySet

	// Captured is set when another widget owns the pointer this frame.
	Captured bool
}

// Down reports whether button b is held.
func (in Input) Down(b MouseButton) bool { return in.MouseDown[b] }

// Clicked reports whether button b went down this frame.
func (in Input) Clicked(b MouseButton) bool { return in.MouseClicked[b] }

// InRegion reports whether the pointer is valid and over the canvas.
func (in Input) InRegion() bool {
	return in.MouseValid && in.Region.Contains(in.Mouse)
}
