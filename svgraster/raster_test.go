package svgraster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toPngBytes(t *testing.T, m image.Image) []byte {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, png.Encode(&b, m))
	return b.Bytes()
}

func rgba(img *image.RGBA, x, y int) color.RGBA {
	return img.RGBAAt(x, y)
}

func TestRender(t *testing.T) {
	v, err := svgdraw.New([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="20" height="10">
		<rect width="10" height="10" fill="red"/>
		<rect x="10" width="10" height="10" fill="blue"/>
	</svg>`))
	require.NoError(t, err)

	img, err := Render(v)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, rgba(img, 5, 5))
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, rgba(img, 15, 5))

	img, err = Render(v.WithScale(2))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, rgba(img, 30, 10))
}

func TestRenderStrokeOnly(t *testing.T) {
	v, err := svgdraw.New([]byte(`<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">
		<rect x="2" y="2" width="16" height="16" fill="none" stroke="red" stroke-width="2"/>
	</svg>`))
	require.NoError(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	require.NoError(t, v.Render(NewRenderer(img)))
	// the border is painted, the center is left transparent
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, rgba(img, 10, 2))
	assert.Equal(t, color.RGBA{}, rgba(img, 10, 10))
}

func TestRenderTestdata(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "svgtree", "testdata", "*.svg"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		data, err := os.ReadFile(file)
		require.NoError(t, err)
		v, err := svgdraw.New(data)
		require.NoError(t, err, file)

		img, _ := Render(v.WithErrorMode(svgdraw.IgnoreErrorMode))
		assert.NotEmpty(t, toPngBytes(t, img), file)
	}
}

func TestAddEmptyShape(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	rd := NewRenderer(img)
	rd.Add(svgdraw.Shape{Fill: color.NRGBA{R: 0xff, A: 0xff}})
	assert.Equal(t, color.RGBA{}, rgba(img, 1, 1))
}
