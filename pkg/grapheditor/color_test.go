package grapheditor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorPacking(t *testing.T) {
	c := RGBA(0x11, 0x22, 0x33, 0x44)
	assert.Equal(t, Color(0x44332211), c)

	r, g, b, a := c.Components()
	assert.Equal(t, [4]uint8{0x11, 0x22, 0x33, 0x44}, [4]uint8{r, g, b, a})
	assert.Equal(t, uint8(0x44), c.Alpha())
	assert.Equal(t, "#11223344", c.Hex())
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#3c78c8", want: RGBA(0x3c, 0x78, 0xc8, 0xff)},
		{in: "3C78C880", want: RGBA(0x3c, 0x78, 0xc8, 0x80)},
		{in: "  #000000 ", want: RGBA(0, 0, 0, 255)},
		{in: "#fff", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	c := RGBA(1, 2, 254, 9)
	back, err := ParseColor(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, back)
}

func TestBrightenSaturates(t *testing.T) {
	c := RGBA(10, 240, 255, 77).Brighten(hoverTint)
	assert.Equal(t, RGBA(35, 255, 255, 77), c)
}

func TestLinkHighlightKeepsAlpha(t *testing.T) {
	c := RGBA(0x3c, 0x78, 0xc8, 0xff) | linkHighlight
	assert.Equal(t, RGBA(0xfc, 0xf8, 0xf8, 0xff), c)
}
