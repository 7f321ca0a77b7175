package grapheditor

import (
	"unicode/utf8"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
)

// Config tunes the editor. The zero value is not useful; start from
// DefaultConfig.
type Config struct {
	ZoomMin float64
	ZoomMax float64
	// ZoomStep is the fractional target change per wheel notch.
	ZoomStep float64
	// ZoomEase is the fraction of the remaining distance to the target zoom
	// covered each frame.
	ZoomEase float64
	// PasteOffset is the logical displacement applied to pasted nodes.
	PasteOffset geom.Vec2
	// FitMargin is where FitToContent puts the top-left-most node corner.
	FitMargin geom.Vec2
	// DragThreshold is the pointer travel, in pixels, before a node drag
	// starts accumulating.
	DragThreshold float64
	// MoveEpsilon is the smallest pending move committed on release.
	MoveEpsilon float64

	Style Style
}

// Style holds the visual constants that do not take part in hit-testing.
type Style struct {
	GridSpacing float64
	FontSize    float64
	// MeasureText returns the extent of text at the given font size.
	MeasureText func(text string, size float64) geom.Vec2
}

// DefaultConfig returns the stock editor tuning.
func DefaultConfig() Config {
	return Config{
		ZoomMin:       0.2,
		ZoomMax:       3.0,
		ZoomStep:      0.1,
		ZoomEase:      0.15,
		PasteOffset:   geom.V(40, 40),
		FitMargin:     geom.V(40, 40),
		DragThreshold: 1,
		MoveEpsilon:   1e-3,
		Style:         DefaultStyle(),
	}
}

// DefaultStyle returns the stock style with a monospace text estimate.
func DefaultStyle() Style {
	return Style{
		GridSpacing: 64,
		FontSize:    14,
		MeasureText: MonospaceMeasure,
	}
}

// MonospaceMeasure estimates text extents for a monospace font whose glyphs
// are half as wide as they are tall.
func MonospaceMeasure(text string, size float64) geom.Vec2 {
	return geom.V(float64(utf8.RuneCountInString(text))*size*0.5, size)
}

func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.ZoomMin <= 0 {
		c.ZoomMin = d.ZoomMin
	}
	if c.ZoomMax < c.ZoomMin {
		c.ZoomMax = c.ZoomMin
	}
	if c.ZoomStep <= 0 || c.ZoomStep >= 1 {
		c.ZoomStep = d.ZoomStep
	}
	if c.ZoomEase <= 0 || c.ZoomEase > 1 {
		c.ZoomEase = d.ZoomEase
	}
	if c.MoveEpsilon <= 0 {
		c.MoveEpsilon = d.MoveEpsilon
	}
	if c.Style.GridSpacing <= 0 {
		c.Style.GridSpacing = d.Style.GridSpacing
	}
	if c.Style.FontSize <= 0 {
		c.Style.FontSize = d.Style.FontSize
	}
	if c.Style.MeasureText == nil {
		c.Style.MeasureText = MonospaceMeasure
	}
	return c
}
