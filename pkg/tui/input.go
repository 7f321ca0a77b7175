package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

const buttonCount = 3

// inputFolder accumulates the terminal events received between two frames
// into one editor Input. Terminals report no key releases, so keys are held
// for exactly one frame.
type inputFolder struct {
	mouse geom.Vec2
	last  geom.Vec2
	valid bool

	down    [buttonCount]bool
	clicked [buttonCount]bool
	// release defers a release that arrived before its press was seen by
	// a frame, so quick clicks still register.
	release [buttonCount]bool
	wheel   float64

	shift     bool
	mouseCtrl bool
	keyCtrl   bool
	keys      grapheditor.KeySet
}

func button(b tea.MouseButton) (grapheditor.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return grapheditor.MousePrimary, true
	case tea.MouseButtonRight:
		return grapheditor.MouseSecondary, true
	case tea.MouseButtonMiddle:
		return grapheditor.MouseMiddle, true
	}
	return 0, false
}

// mouseEvent folds one mouse event; pos is its pixel position.
func (f *inputFolder) mouseEvent(msg tea.MouseMsg, pos geom.Vec2) {
	if !f.valid {
		f.last = pos
	}
	f.mouse, f.valid = pos, true
	f.shift, f.mouseCtrl = msg.Shift, msg.Ctrl

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		f.wheel++
		return
	case tea.MouseButtonWheelDown:
		f.wheel--
		return
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if b, ok := button(msg.Button); ok {
			f.down[b], f.clicked[b], f.release[b] = true, true, false
		}
	case tea.MouseActionRelease:
		b, ok := button(msg.Button)
		if !ok {
			// Some encodings do not say which button was released.
			for i := range f.down {
				f.up(i)
			}
			return
		}
		f.up(int(b))
	}
}

func (f *inputFolder) up(b int) {
	if f.clicked[b] {
		f.release[b] = true
		return
	}
	f.down[b] = false
}

// key holds k down for the next frame.
func (f *inputFolder) key(k grapheditor.Key, ctrl bool) {
	f.keys = f.keys.With(k)
	f.keyCtrl = f.keyCtrl || ctrl
}

// next returns the Input for a frame over region and resets the one-frame
// state.
func (f *inputFolder) next(region geom.Rect) grapheditor.Input {
	in := grapheditor.Input{
		Region:       region,
		Mouse:        f.mouse,
		MouseValid:   f.valid,
		MouseDelta:   f.mouse.Sub(f.last),
		MouseDown:    f.down,
		MouseClicked: f.clicked,
		Wheel:        f.wheel,
		Ctrl:         f.keyCtrl || f.mouseCtrl,
		Shift:        f.shift,
		KeysDown:     f.keys,
		KeysPressed:  f.keys,
	}

	f.last = f.mouse
	f.clicked = [buttonCount]bool{}
	for b, pending := range f.release {
		if pending {
			f.down[b], f.release[b] = false, false
		}
	}
	f.wheel = 0
	f.keys, f.keyCtrl = 0, false
	return in
}

// clear drops every held button, used when another widget takes the
// pointer.
func (f *inputFolder) clear() {
	f.down = [buttonCount]bool{}
	f.clicked = [buttonCount]bool{}
	f.release = [buttonCount]bool{}
	f.wheel = 0
}
