package colorspace

import (
	"math"
)

// Lab is a point in the CIE L*a*b* color space (D65 illuminant).
// L is lightness in [0, 100]; A and B are the two chroma axes.
type Lab struct {
	L float64
	A float64
	B float64
}

// D65 reference white point.
const (
	refWhiteX = 95.047
	refWhiteY = 100.0
	refWhiteZ = 108.883
)

// RGBToLab converts 8-bit sRGB channel intensities to CIE L*a*b*.
// The conversion is deterministic and total: every (r, g, b) triple
// maps to a valid Lab point with L in [0, 100].
func RGBToLab(r, g, b uint8) Lab {
	rl := gammaExpand(float64(r) / 255.0)
	gl := gammaExpand(float64(g) / 255.0)
	bl := gammaExpand(float64(b) / 255.0)

	// sRGB to XYZ, scaled to the reference white.
	x := (rl*0.4124564 + gl*0.3575761 + bl*0.1804375) * 100.0
	y := (rl*0.2126729 + gl*0.7151522 + bl*0.0721750) * 100.0
	z := (rl*0.0193339 + gl*0.1191920 + bl*0.9503041) * 100.0

	fx := labF(x / refWhiteX)
	fy := labF(y / refWhiteY)
	fz := labF(z / refWhiteZ)

	return Lab{
		L: 116.0*fy - 16.0,
		A: 500.0 * (fx - fy),
		B: 200.0 * (fy - fz),
	}
}

// gammaExpand linearizes one sRGB channel normalized to [0, 1].
func gammaExpand(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// labF is the piecewise cube-root used by the XYZ to Lab step.
func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// Distance returns the Euclidean distance (delta E) between two Lab points.
func (l Lab) Distance(other Lab) float64 {
	dl := l.L - other.L
	da := l.A - other.A
	db := l.B - other.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
