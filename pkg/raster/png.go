package raster

import (
	"fmt"
	"image"
	"io"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/dd0wney/cluso-grapheditor/pkg/geom"
	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// monoAdvance is the advance width of Go Mono glyphs in ems.
const monoAdvance = 0.6

// MeasureMono reports the extent of text set in Go Mono, the face the PNG
// canvas draws with.
func MeasureMono(text string, size float64) geom.Vec2 {
	return geom.V(float64(utf8.RuneCountInString(text))*size*monoAdvance, size)
}

// Canvas rasterises draw commands into an RGBA image.
type Canvas struct {
	dc     *gg.Context
	font   *truetype.Font
	faces  map[float64]font.Face
	bounds geom.Rect
	clip   geom.Rect
}

// NewCanvas creates a canvas filled with bg.
func NewCanvas(width, height int, bg grapheditor.Color) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(toNRGBA(bg))
	dc.Clear()
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	bounds := geom.R(0, 0, float64(width), float64(height))
	return &Canvas{
		dc:     dc,
		font:   f,
		faces:  make(map[float64]font.Face),
		bounds: bounds,
		clip:   bounds,
	}, nil
}

func (c *Canvas) face(size float64) font.Face {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = f
	return f
}

// setClip restricts drawing to r intersected with the canvas. It reports
// false when nothing would be visible.
func (c *Canvas) setClip(r geom.Rect) bool {
	r = r.Intersect(c.bounds)
	if r.IsEmpty() {
		return false
	}
	if r == c.clip {
		return true
	}
	c.dc.ResetClip()
	if r != c.bounds {
		c.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Width(), r.Height())
		c.dc.Clip()
	}
	c.clip = r
	return true
}

// Draw rasterises cmds in order.
func (c *Canvas) Draw(cmds []grapheditor.Command) {
	dc := c.dc
	for _, cmd := range cmds {
		if !c.setClip(cmd.Clip) {
			continue
		}
		dc.SetColor(toNRGBA(cmd.Color))
		switch cmd.Kind {
		case grapheditor.CmdLine, grapheditor.CmdPolyline:
			dc.SetLineWidth(cmd.Thickness)
			dc.MoveTo(cmd.Points[0].X, cmd.Points[0].Y)
			for _, p := range cmd.Points[1:] {
				dc.LineTo(p.X, p.Y)
			}
			dc.Stroke()
		case grapheditor.CmdRect:
			c.rect(cmd)
			dc.SetLineWidth(cmd.Thickness)
			dc.Stroke()
		case grapheditor.CmdRectFilled:
			c.rect(cmd)
			dc.Fill()
		case grapheditor.CmdCircleFilled:
			dc.DrawCircle(cmd.Points[0].X, cmd.Points[0].Y, cmd.Radius)
			dc.Fill()
		case grapheditor.CmdText:
			dc.SetFontFace(c.face(cmd.FontSize))
			dc.DrawStringAnchored(cmd.Text, cmd.Points[0].X, cmd.Points[0].Y, 0, 1)
		}
	}
}

func (c *Canvas) rect(cmd grapheditor.Command) {
	lo, hi := cmd.Points[0], cmd.Points[1]
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if cmd.Rounding > 0 {
		c.dc.DrawRoundedRectangle(lo.X, lo.Y, w, h, cmd.Rounding)
		return
	}
	c.dc.DrawRectangle(lo.X, lo.Y, w, h)
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// EncodePNG writes the image as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// SavePNG writes the image to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

// RenderPNG draws cmds on a fresh canvas and writes it as PNG.
func RenderPNG(w io.Writer, cmds []grapheditor.Command, width, height int, bg grapheditor.Color) error {
	c, err := NewCanvas(width, height, bg)
	if err != nil {
		return err
	}
	c.Draw(cmds)
	return c.EncodePNG(w)
}
