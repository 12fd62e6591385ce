package colorspace

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToLabLightnessRange(t *testing.T) {
	// Sweep a coarse grid over the full 8-bit cube; L must stay in [0, 100].
	for r := 0; r <= 255; r += 15 {
		for g := 0; g <= 255; g += 15 {
			for b := 0; b <= 255; b += 15 {
				lab := RGBToLab(uint8(r), uint8(g), uint8(b))
				require.GreaterOrEqual(t, lab.L, 0.0, "L below range for rgb(%d,%d,%d)", r, g, b)
				require.LessOrEqual(t, lab.L, 100.0, "L above range for rgb(%d,%d,%d)", r, g, b)
			}
		}
	}
}

func TestRGBToLabKnownValues(t *testing.T) {
	white := RGBToLab(255, 255, 255)
	assert.InDelta(t, 100.0, white.L, 0.01)
	assert.InDelta(t, 0.0, white.A, 0.02)
	assert.InDelta(t, 0.0, white.B, 0.02)

	black := RGBToLab(0, 0, 0)
	assert.InDelta(t, 0.0, black.L, 0.01)
}

func TestRGBToLabMatchesColorful(t *testing.T) {
	// go-colorful reports Lab on a 0..1 lightness scale; ours is 0..100.
	cases := [][3]uint8{
		{255, 255, 255}, {0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255},
		{255, 215, 0}, {196, 30, 58}, {255, 88, 0}, {0, 81, 186}, {0, 158, 96},
		{127, 127, 127}, {10, 200, 30},
	}

	for _, c := range cases {
		got := RGBToLab(c[0], c[1], c[2])
		ref := colorful.Color{
			R: float64(c[0]) / 255.0,
			G: float64(c[1]) / 255.0,
			B: float64(c[2]) / 255.0,
		}
		l, a, b := ref.Lab()

		assert.InDelta(t, l*100.0, got.L, 0.5, "L mismatch for %v", c)
		assert.InDelta(t, a*100.0, got.A, 0.5, "A mismatch for %v", c)
		assert.InDelta(t, b*100.0, got.B, 0.5, "B mismatch for %v", c)
	}
}

func TestDistanceSymmetricAndNonNegative(t *testing.T) {
	points := []Lab{
		{L: 0, A: 0, B: 0},
		{L: 100, A: 0, B: 0},
		{L: 53.2, A: 80.1, B: 67.2},
		{L: 32.3, A: 79.2, B: -107.9},
		{L: 87.7, A: -86.2, B: 83.2},
	}

	for i, p := range points {
		for j, q := range points {
			d1 := p.Distance(q)
			d2 := q.Distance(p)
			assert.GreaterOrEqual(t, d1, 0.0)
			assert.InDelta(t, d1, d2, 1e-12, "asymmetric distance between %d and %d", i, j)
			if i == j {
				assert.Zero(t, d1)
			}
		}
	}
}
