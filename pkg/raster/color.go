// Package raster turns editor draw lists into pixels: a cell canvas for
// terminals and a PNG backend for headless rendering.
package raster

import (
	"fmt"
	"image/color"

	"github.com/dd0wney/cluso-grapheditor/pkg/grapheditor"
)

// blend composites c over an opaque base and returns an opaque colour.
func blend(base, c grapheditor.Color) grapheditor.Color {
	r0, g0, b0, _ := base.Components()
	r1, g1, b1, a := c.Components()
	mix := func(x, y uint8) uint8 {
		return uint8((int(y)*int(a) + int(x)*(255-int(a)) + 127) / 255)
	}
	return grapheditor.RGBA(mix(r0, r1), mix(g0, g1), mix(b0, b1), 255)
}

// hex6 formats the colour as #rrggbb, dropping alpha.
func hex6(c grapheditor.Color) string {
	r, g, b, _ := c.Components()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

func toNRGBA(c grapheditor.Color) color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
