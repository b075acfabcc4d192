// Package mesh builds the geometry used to warp one face onto another:
// the convex hull of a landmark set, its padded bounding box and a
// Delaunay triangulation over the landmark indices.
package mesh

import (
	"github.com/pkg/errors"
)

// Point is a 2-D landmark coordinate. Z carries the detector's depth
// estimate and is ignored by every geometric operation in this package.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Triangle references three distinct points of a landmark set by index.
type Triangle [3]int

// Valid reports whether the triangle indices are distinct and address
// a point sequence of length n.
func (t Triangle) Valid(n int) bool {
	if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
		return false
	}
	for _, i := range t {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

// Mesh bundles everything derived once per landmark set: the hull and
// triangulation over the points and the padded bounding box inside the
// image. A mesh is immutable after Build; derive a new one whenever the
// underlying photo or its landmarks change.
type Mesh struct {
	Points    []Point
	Hull      []int
	Triangles []Triangle
	Box       Rect
}

// Build derives the full mesh for a landmark set inside an imgW x imgH
// image. At least 3 points are required.
func Build(pts []Point, imgW, imgH int) (*Mesh, error) {
	if len(pts) < 3 {
		return nil, errors.Errorf("mesh: need at least 3 points to build a mesh, got %d", len(pts))
	}

	m := &Mesh{
		Points:    append([]Point(nil), pts...),
		Hull:      ConvexHull(pts),
		Triangles: Delaunay(pts),
		Box:       BoundingBox(pts, imgW, imgH),
	}
	if len(m.Triangles) == 0 {
		return nil, errors.New("mesh: landmark set is degenerate, no triangulation produced")
	}
	return m, nil
}
