package colorspace

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniformImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestAverageRegionUniformBlock(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{R: 196, G: 30, B: 58, A: 255})

	r, g, b := AverageRegion(img, image.Rect(0, 0, 10, 10))
	assert.Equal(t, uint8(196), r)
	assert.Equal(t, uint8(30), g)
	assert.Equal(t, uint8(58), b)
}

func TestAverageRegionMixedBlock(t *testing.T) {
	// Half black, half white: mean is mid gray.
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	r, g, b := AverageRegion(img, image.Rect(0, 0, 2, 1))
	assert.Equal(t, uint8(127), r)
	assert.Equal(t, uint8(127), g)
	assert.Equal(t, uint8(127), b)
}

func TestAverageRegionClipsToBounds(t *testing.T) {
	img := uniformImage(4, 4, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	r, g, b := AverageRegion(img, image.Rect(-5, -5, 50, 50))
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), b)

	r, g, b = AverageRegion(img, image.Rect(100, 100, 110, 110))
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)
}

func TestAverageRegionRGBAMatchesImagePath(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(40 * x), G: uint8(60 * y), B: uint8(10 * x * y), A: 255})
		}
	}

	rect := image.Rect(1, 1, 5, 3)
	r, g, b := AverageRegion(img, rect)
	rr, rg, rb := AverageRegionRGBA(img.Pix, img.Stride, rect)
	assert.Equal(t, r, rr)
	assert.Equal(t, g, rg)
	assert.Equal(t, b, rb)
}

func TestAverageRegionRGBABuffer(t *testing.T) {
	// 2x1 buffer, half red, half blue.
	pix := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}

	r, g, b := AverageRegionRGBA(pix, 8, image.Rect(0, 0, 2, 1))
	assert.Equal(t, uint8(127), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(127), b)

	r, g, b = AverageRegionRGBA(pix, 8, image.Rect(-3, -3, 1, 5))
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)

	r, g, b = AverageRegionRGBA(pix, 8, image.Rect(10, 10, 20, 20))
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)

	r, g, b = AverageRegionRGBA(nil, 0, image.Rect(0, 0, 1, 1))
	assert.Equal(t, uint8(0), r)
	assert.Equal(t, uint8(0), g)
	assert.Equal(t, uint8(0), b)
}

func TestSampleFaceUniformFace(t *testing.T) {
	img := uniformImage(120, 120, color.RGBA{R: 0, G: 81, B: 186, A: 255})

	grid := SampleFace(img, img.Bounds())
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, Blue, grid[row][col].Label)
			assert.InDelta(t, 0.0, grid[row][col].DeltaE, 1e-9)
		}
	}
}

func TestSampleFacePerCellColors(t *testing.T) {
	// Paint each 40x40 cell of a 120x120 face with a different sticker color.
	layout := [3][3]color.RGBA{
		{{255, 255, 255, 255}, {255, 215, 0, 255}, {196, 30, 58, 255}},
		{{255, 88, 0, 255}, {0, 81, 186, 255}, {0, 158, 96, 255}},
		{{255, 255, 255, 255}, {0, 158, 96, 255}, {255, 215, 0, 255}},
	}
	want := [3][3]ColorLabel{
		{White, Yellow, Red},
		{Orange, Blue, Green},
		{White, Green, Yellow},
	}

	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	for y := 0; y < 120; y++ {
		for x := 0; x < 120; x++ {
			img.SetRGBA(x, y, layout[y/40][x/40])
		}
	}

	grid := SampleFace(img, img.Bounds())
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			assert.Equal(t, want[row][col], grid[row][col].Label, "cell %d,%d", row, col)
		}
	}
}
