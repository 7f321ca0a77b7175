package grapheditor

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a packed 32-bit colour, 0xAABBGGRR (red in the low byte).
type Color uint32

// RGBA packs four channels into a Color.
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r))
}

// Components unpacks the colour.
func (c Color) Components() (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 { return uint8(c >> 24) }

// Brighten adds d to each colour channel, saturating at 255. Alpha is kept.
func (c Color) Brighten(d uint8) Color {
	r, g, b, a := c.Components()
	add := func(v uint8) uint8 {
		if int(v)+int(d) > 255 {
			return 255
		}
		return v + d
	}
	return RGBA(add(r), add(g), add(b), a)
}

// Hex formats the colour as #RRGGBBAA.
func (c Color) Hex() string {
	r, g, b, a := c.Components()
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, a)
}

// ParseColor accepts #RRGGBB or #RRGGBBAA. Missing alpha means opaque.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return 0, fmt.Errorf("color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}

var (
	colorBlack       = RGBA(0, 0, 0, 255)
	colorSelected    = RGBA(255, 130, 30, 255)
	colorGrid        = RGBA(100, 100, 100, 40)
	colorEditingLink = RGBA(200, 200, 200, 255)
	colorSlotOutline = RGBA(0, 0, 0, 200)
	colorSlot        = RGBA(160, 160, 160, 200)
	colorSlotHot     = RGBA(200, 200, 200, 200)
	colorLabel       = RGBA(150, 150, 150, 150)
	colorLabelHot    = RGBA(250, 250, 250, 250)
	colorQuadFill    = Color(0x40FF2020)
	colorQuadBorder  = Color(0xFFFF2020)
	colorProgressBg  = Color(0xFF400000)
	colorProgress    = Color(0xFFFF0000)
)

// linkHighlight is OR-ed into a link's colour when either end is hovered.
const linkHighlight Color = 0xF0F0F0

// hoverTint is added to a hovered node's background.
const hoverTint = 0x19
