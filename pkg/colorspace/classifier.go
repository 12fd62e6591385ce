package colorspace

// ColorLabel is one of the six sticker colors of a cube face.
type ColorLabel string

const (
	White  ColorLabel = "white"
	Yellow ColorLabel = "yellow"
	Red    ColorLabel = "red"
	Orange ColorLabel = "orange"
	Blue   ColorLabel = "blue"
	Green  ColorLabel = "green"
)

// Labels lists the six labels in classification order. Ties during
// classification resolve to the earlier entry.
var Labels = []ColorLabel{White, Yellow, Red, Orange, Blue, Green}

// referenceRGB holds the canonical sticker colors the centroids are
// derived from. These values are heuristic, not measured calibration
// data, and may be re-tuned against real captures.
var referenceRGB = map[ColorLabel][3]uint8{
	White:  {255, 255, 255},
	Yellow: {255, 215, 0},
	Red:    {196, 30, 58},
	Orange: {255, 88, 0},
	Blue:   {0, 81, 186},
	Green:  {0, 158, 96},
}

// centroids is the fixed reference table, one Lab point per label,
// computed once at startup from referenceRGB.
var centroids = buildCentroids()

func buildCentroids() map[ColorLabel]Lab {
	table := make(map[ColorLabel]Lab, len(referenceRGB))
	for label, rgb := range referenceRGB {
		table[label] = RGBToLab(rgb[0], rgb[1], rgb[2])
	}
	return table
}

// Centroid returns the reference Lab point for a label.
func Centroid(label ColorLabel) Lab {
	return centroids[label]
}

// Classify returns the label whose centroid is nearest to p by delta E,
// along with that distance. Classification is total: any Lab point maps
// to one of the six labels.
func Classify(p Lab) (ColorLabel, float64) {
	best := Labels[0]
	bestDist := p.Distance(centroids[best])

	for _, label := range Labels[1:] {
		if d := p.Distance(centroids[label]); d < bestDist {
			best = label
			bestDist = d
		}
	}

	return best, bestDist
}

// ClassifyRGB converts an averaged RGB triple and classifies it in one step.
func ClassifyRGB(r, g, b uint8) (ColorLabel, float64) {
	return Classify(RGBToLab(r, g, b))
}
