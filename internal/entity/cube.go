package entity

import (
	"ProjectCube/pkg/colorspace"
	"fmt"
	"strings"
)

type FaceID string

const (
	FaceUp    FaceID = "U"
	FaceRight FaceID = "R"
	FaceFront FaceID = "F"
	FaceDown  FaceID = "D"
	FaceLeft  FaceID = "L"
	FaceBack  FaceID = "B"
)

// FaceOrder is the canonical face sequence used for facelet strings.
var FaceOrder = []FaceID{FaceUp, FaceRight, FaceFront, FaceDown, FaceLeft, FaceBack}

func ValidFaceID(id FaceID) bool {
	switch id {
	case FaceUp, FaceRight, FaceFront, FaceDown, FaceLeft, FaceBack:
		return true
	}
	return false
}

// Face is a scanned 3x3 sticker grid, row-major from the top-left.
// Immutable once produced by a scan.
type Face [3][3]colorspace.ColorLabel

// Center returns the fixed middle sticker of the face.
func (f Face) Center() colorspace.ColorLabel {
	return f[1][1]
}

// CubeState maps the six face identifiers to their scanned faces.
type CubeState map[FaceID]Face

// Complete reports whether all six faces have been scanned.
func (c CubeState) Complete() bool {
	for _, id := range FaceOrder {
		if _, ok := c[id]; !ok {
			return false
		}
	}
	return true
}

// MissingFaces lists the face identifiers not yet scanned, in canonical order.
func (c CubeState) MissingFaces() []FaceID {
	var missing []FaceID
	for _, id := range FaceOrder {
		if _, ok := c[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// Validate checks that the state describes a physically plausible cube:
// six faces, exactly nine stickers of each color, and six distinct centers.
func (c CubeState) Validate() error {
	if !c.Complete() {
		return fmt.Errorf("cube state incomplete, missing faces: %v", c.MissingFaces())
	}

	counts := make(map[colorspace.ColorLabel]int, 6)
	centers := make(map[colorspace.ColorLabel]FaceID, 6)

	for _, id := range FaceOrder {
		face := c[id]
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				counts[face[row][col]]++
			}
		}

		center := face.Center()
		if prev, dup := centers[center]; dup {
			return fmt.Errorf("faces %s and %s share the center color %s", prev, id, center)
		}
		centers[center] = id
	}

	for _, label := range colorspace.Labels {
		if counts[label] != 9 {
			return fmt.Errorf("expected 9 %s stickers, found %d", label, counts[label])
		}
	}

	return nil
}

// Facelets renders the cube as a 54-character string in FaceOrder, each
// sticker written as the face letter owning that color's center.
func (c CubeState) Facelets() (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	letterFor := make(map[colorspace.ColorLabel]string, 6)
	for _, id := range FaceOrder {
		letterFor[c[id].Center()] = string(id)
	}

	var sb strings.Builder
	sb.Grow(54)
	for _, id := range FaceOrder {
		face := c[id]
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				sb.WriteString(letterFor[face[row][col]])
			}
		}
	}

	return sb.String(), nil
}
