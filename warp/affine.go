// Package warp maps a source face image onto destination landmark
// geometry, either piecewise per Delaunay triangle (closed-form affine)
// or globally with a thin-plate spline.
package warp

import (
	"math"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// minTriangleArea is the signed-area threshold (half a pixel) below
// which a triangle is considered degenerate and skipped. Empirical
// constant, tuned together with circumcircleEps in the mesh package.
const minTriangleArea = 0.5

// Affine is the 2-D transform (x,y) -> (A*x + C*y + E, B*x + D*y + F).
type Affine struct {
	A, B, C, D, E, F float64
}

// signedArea returns the signed area of triangle abc. Positive when the
// vertices wind counter-clockwise.
func signedArea(a, b, c mesh.Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)) / 2
}

// AffineFromTriangles computes the unique affine map sending the three
// source vertices exactly onto the three destination vertices, using
// Cramer's rule over the triangle edge vectors. It reports false when
// either triangle is degenerate (absolute area below half a pixel).
func AffineFromTriangles(s0, s1, s2, d0, d1, d2 mesh.Point) (Affine, bool) {
	if math.Abs(signedArea(s0, s1, s2)) < minTriangleArea ||
		math.Abs(signedArea(d0, d1, d2)) < minTriangleArea {
		return Affine{}, false
	}

	u1x, u1y := s1.X-s0.X, s1.Y-s0.Y
	u2x, u2y := s2.X-s0.X, s2.Y-s0.Y
	v1x, v1y := d1.X-d0.X, d1.Y-d0.Y
	v2x, v2y := d2.X-d0.X, d2.Y-d0.Y

	det := u1x*u2y - u2x*u1y
	if det == 0 {
		return Affine{}, false
	}

	t := Affine{
		A: (v1x*u2y - v2x*u1y) / det,
		C: (u1x*v2x - u2x*v1x) / det,
		B: (v1y*u2y - v2y*u1y) / det,
		D: (u1x*v2y - u2x*v1y) / det,
	}
	t.E = d0.X - t.A*s0.X - t.C*s0.Y
	t.F = d0.Y - t.B*s0.X - t.D*s0.Y
	return t, true
}

// Apply transforms a single coordinate.
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Invert returns the inverse transform. It reports false when the
// linear part is singular.
func (t Affine) Invert() (Affine, bool) {
	det := t.A*t.D - t.B*t.C
	if det == 0 {
		return Affine{}, false
	}
	inv := Affine{
		A: t.D / det,
		C: -t.C / det,
		B: -t.B / det,
		D: t.A / det,
	}
	inv.E = -(inv.A*t.E + inv.C*t.F)
	inv.F = -(inv.B*t.E + inv.D*t.F)
	return inv, true
}
