package faceswap

import (
	"math"

	"github.com/pkg/errors"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// The detector collaborator produces the full MediaPipe FaceMesh point
// set; the engine works on a reduced, fixed-order subset of it that
// stays stable between frames.
const (
	RawLandmarkCount    = 478
	StableLandmarkCount = 56
)

// stableIndices selects the stable landmarks from the raw FaceMesh
// sequence: the 36-point face oval, 6 points per eye ring, 4 nose and
// 4 mouth anchors. The order is part of the engine contract: index i of
// any two stable sets must denote the same anatomical point.
var stableIndices = [StableLandmarkCount]int{
	// Face oval, clockwise from the forehead.
	10, 338, 297, 332, 284, 251, 389, 356, 454, 323, 361, 288,
	397, 365, 379, 378, 400, 377, 152, 148, 176, 149, 150, 136,
	172, 58, 132, 93, 234, 127, 162, 21, 54, 103, 67, 109,
	// Left eye ring.
	33, 160, 158, 133, 153, 144,
	// Right eye ring.
	362, 385, 387, 263, 373, 380,
	// Nose bridge and wings.
	1, 2, 98, 327,
	// Mouth corners, top and bottom lip.
	61, 291, 0, 17,
}

// StableLandmarks maps a raw detector landmark sequence onto the
// engine's stable ordering. The raw set must contain at least the full
// FaceMesh point count.
func StableLandmarks(raw []mesh.Point) ([]mesh.Point, error) {
	if len(raw) < RawLandmarkCount {
		return nil, errors.Errorf("faceswap: expected %d raw landmarks, got %d", RawLandmarkCount, len(raw))
	}
	out := make([]mesh.Point, StableLandmarkCount)
	for i, idx := range stableIndices {
		out[i] = raw[idx]
	}
	return out, nil
}

// DenormalizeLandmarks scales [0,1] image-relative landmark coordinates
// to pixel coordinates for a w x h image.
func DenormalizeLandmarks(pts []mesh.Point, w, h int) []mesh.Point {
	out := make([]mesh.Point, len(pts))
	for i, p := range pts {
		out[i] = mesh.Point{X: p.X * float64(w), Y: p.Y * float64(h), Z: p.Z}
	}
	return out
}

// PixelLandmarks returns the landmark set in pixel coordinates,
// denormalizing only when the coordinates look image-relative.
// Detectors emit either convention; normalized sets never exceed 1 by
// more than rounding noise, so a small threshold separates the two.
func PixelLandmarks(pts []mesh.Point, w, h int) []mesh.Point {
	var max float64
	for _, p := range pts {
		max = math.Max(max, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	if max <= 1.5 {
		return DenormalizeLandmarks(pts, w, h)
	}
	return append([]mesh.Point(nil), pts...)
}
