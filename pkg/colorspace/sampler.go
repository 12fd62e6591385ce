package colorspace

import (
	"image"
)

// SampleWindow is the side length of the square window averaged around
// each grid cell center.
const SampleWindow = 10

// GridCell is the classification result for one cell of a scanned face.
type GridCell struct {
	Label  ColorLabel `json:"label"`
	DeltaE float64    `json:"delta_e"`
}

// AverageRegion returns the channel-wise arithmetic mean of the pixels of
// img inside rect. Rect is clipped to the image bounds; an empty
// intersection yields black.
func AverageRegion(img image.Image, rect image.Rectangle) (uint8, uint8, uint8) {
	rect = rect.Intersect(img.Bounds())
	if rect.Empty() {
		return 0, 0, 0
	}

	if rgba, ok := img.(*image.RGBA); ok {
		return AverageRegionRGBA(rgba.Pix, rgba.Stride, rect.Sub(rgba.Rect.Min))
	}

	var sumR, sumG, sumB uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += uint64(r >> 8)
			sumG += uint64(g >> 8)
			sumB += uint64(b >> 8)
		}
	}

	n := uint64(rect.Dx() * rect.Dy())
	return uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)
}

// AverageRegionRGBA is the raw-buffer variant of AverageRegion for callers
// holding interleaved RGBA pixel data directly, such as decoded camera
// frames. The buffer's first pixel is (0,0) and rows start every stride
// bytes. Rect is clipped to the buffer; an empty intersection yields black.
func AverageRegionRGBA(pix []byte, stride int, rect image.Rectangle) (uint8, uint8, uint8) {
	if stride <= 0 {
		return 0, 0, 0
	}
	rect = rect.Intersect(image.Rect(0, 0, stride/4, len(pix)/stride))
	if rect.Empty() {
		return 0, 0, 0
	}

	var sumR, sumG, sumB uint64
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		row := y * stride
		for x := rect.Min.X; x < rect.Max.X; x++ {
			off := row + x*4
			sumR += uint64(pix[off])
			sumG += uint64(pix[off+1])
			sumB += uint64(pix[off+2])
		}
	}

	n := uint64(rect.Dx() * rect.Dy())
	return uint8(sumR / n), uint8(sumG / n), uint8(sumB / n)
}

// SampleFace classifies a face region of img as a 3x3 sticker grid. The
// region is split into nine cells and a SampleWindow square around each
// cell center is averaged, converted to Lab and classified independently.
func SampleFace(img image.Image, region image.Rectangle) [3][3]GridCell {
	var grid [3][3]GridCell

	cellW := region.Dx() / 3
	cellH := region.Dy() / 3
	half := SampleWindow / 2

	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			cx := region.Min.X + col*cellW + cellW/2
			cy := region.Min.Y + row*cellH + cellH/2

			window := image.Rect(cx-half, cy-half, cx+half, cy+half)
			r, g, b := AverageRegion(img, window)
			label, dist := ClassifyRGB(r, g, b)
			grid[row][col] = GridCell{Label: label, DeltaE: dist}
		}
	}

	return grid
}
