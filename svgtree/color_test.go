package svgtree

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSVGColor(t *testing.T) {
	for _, test := range []struct {
		in    string
		color Color
		alpha float64
	}{
		{"red", Color{255, 0, 0}, 1},
		{"  Navy ", Color{0, 0, 128}, 1},
		{"#fff", Color{255, 255, 255}, 1},
		{"#FBD9BD", Color{0xfb, 0xd9, 0xbd}, 1},
		{"#ff000080", Color{255, 0, 0}, float64(0x80) / 0xff},
		{"#f008", Color{255, 0, 0}, float64(0x88) / 0xff},
		{"rgb(10, 20, 30)", Color{10, 20, 30}, 1},
		{"rgb(100%, 0%, 50%)", Color{255, 0, 128}, 1},
		{"rgba(10,20,30,0.5)", Color{10, 20, 30}, 0.5},
		{"rgb(10 20 30 / 50%)", Color{10, 20, 30}, 0.5},
		{"rgb(300, -5, 0)", Color{255, 0, 0}, 1},
		{"transparent", Color{}, 0},
	} {
		c, alpha, err := parseSVGColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.color, c, test.in)
		assert.InDelta(t, test.alpha, alpha, 1e-9, test.in)
	}

	for _, in := range []string{"", "#12", "#ggg", "rgb(1,2)", "hsl(0, 0%, 0%)", "notacolor"} {
		_, _, err := parseSVGColor(in)
		assert.Error(t, err, in)
	}
}

func TestNRGBA(t *testing.T) {
	c := Color{1, 2, 3}.NRGBA(0x80)
	assert.Equal(t, uint8(1), c.R)
	assert.Equal(t, uint8(0x80), c.A)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff000080")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0x80}, c)

	c, err = ParseColor("white")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, c)

	_, err = ParseColor("none")
	assert.Error(t, err)
}
