package warp

import (
	"image"
	"math"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// WarpTriangles maps each source triangle onto the matching destination
// triangle and returns the warped face as a w x h buffer, transparent
// everywhere outside the destination triangulation. Triangles that are
// degenerate on either side are skipped silently, leaving a transparent
// gap no larger than half a pixel of area.
func WarpTriangles(src *image.NRGBA, srcPts, dstPts []mesh.Point, tris []mesh.Triangle, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if src == nil || len(srcPts) != len(dstPts) {
		return out
	}

	for _, t := range tris {
		if !t.Valid(len(srcPts)) {
			continue
		}
		s0, s1, s2 := srcPts[t[0]], srcPts[t[1]], srcPts[t[2]]
		d0, d1, d2 := dstPts[t[0]], dstPts[t[1]], dstPts[t[2]]

		fwd, ok := AffineFromTriangles(s0, s1, s2, d0, d1, d2)
		if !ok {
			continue
		}
		inv, ok := fwd.Invert()
		if !ok {
			continue
		}
		rasterTriangle(out, src, inv, d0, d1, d2)
	}
	return out
}

// edgeOwned decides which of the two triangles sharing an edge owns the
// pixels whose centers fall exactly on it. The tie-break depends only
// on the edge direction, so adjacent triangles (which traverse the
// shared edge in opposite directions) never both claim a pixel.
func edgeOwned(a, b mesh.Point) bool {
	if a.Y != b.Y {
		return b.Y > a.Y
	}
	return b.X < a.X
}

// rasterTriangle writes every pixel whose center lies inside triangle
// d0 d1 d2, sampling src under the inverse mapping with bilinear
// interpolation. Writes are clipped exactly to the triangle interior.
func rasterTriangle(dst *image.NRGBA, src *image.NRGBA, inv Affine, d0, d1, d2 mesh.Point) {
	// Normalize winding so the edge functions are non-negative inside.
	if signedArea(d0, d1, d2) < 0 {
		d1, d2 = d2, d1
	}

	b := dst.Bounds()
	x0 := int(math.Floor(math.Min(d0.X, math.Min(d1.X, d2.X))))
	y0 := int(math.Floor(math.Min(d0.Y, math.Min(d1.Y, d2.Y))))
	x1 := int(math.Ceil(math.Max(d0.X, math.Max(d1.X, d2.X))))
	y1 := int(math.Ceil(math.Max(d0.Y, math.Max(d1.Y, d2.Y))))
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}

	edges := [3][2]mesh.Point{{d0, d1}, {d1, d2}, {d2, d0}}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			inside := true
			for _, e := range edges {
				ef := (e[1].X-e[0].X)*(py-e[0].Y) - (e[1].Y-e[0].Y)*(px-e[0].X)
				if ef < 0 || (ef == 0 && !edgeOwned(e[0], e[1])) {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}

			sx, sy := inv.Apply(px, py)
			if c, ok := bilinearNRGBA(src, sx, sy); ok {
				dst.SetNRGBA(x, y, c)
			}
		}
	}
}
