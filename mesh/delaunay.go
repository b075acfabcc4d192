package mesh

import "math"

// circumcircleEps is the orientation determinant threshold below which
// a triangle is treated as degenerate and excluded from circumcircle
// containment tests. Empirical, see also minTriangleArea in the warp
// package.
const circumcircleEps = 1e-10

// Containment regimes of a tracked triangle. Triangles touching a
// super-triangle vertex act as if that vertex sat at infinity: their
// circumdisk is the open half-plane limit, not the finite circle, so
// hull-adjacent cavities are never cut short by the enclosure.
const (
	triFinite = iota
	triHalfPlane
	triEverything
	triDegenerate
)

// circumTri is a triangle tracked during the incremental insertion,
// with its circumdisk test precomputed.
type circumTri struct {
	a, b, c int
	kind    int

	// Finite circumcircle.
	cx, cy, r2 float64

	// Half-plane functional for super-incident triangles: the disk is
	// {p : hx*p.X + hy*p.Y + hc > 0}.
	hx, hy, hc float64
}

// newCircumTri classifies the triangle by the number of super-triangle
// vertices (indices >= n) it touches and precomputes the matching
// circumdisk test.
func newCircumTri(pts []Point, n, a, b, c int) circumTri {
	t := circumTri{a: a, b: b, c: c}

	var reals, supers []Point
	for _, idx := range [3]int{a, b, c} {
		if idx < n {
			reals = append(reals, pts[idx])
		} else {
			supers = append(supers, pts[idx])
		}
	}

	switch len(supers) {
	case 0:
		pa, pb, pc := pts[a], pts[b], pts[c]
		d := 2 * (pa.X*(pb.Y-pc.Y) + pb.X*(pc.Y-pa.Y) + pc.X*(pa.Y-pb.Y))
		if math.Abs(d) < circumcircleEps {
			t.kind = triDegenerate
			return t
		}
		sa := pa.X*pa.X + pa.Y*pa.Y
		sb := pb.X*pb.X + pb.Y*pb.Y
		sc := pc.X*pc.X + pc.Y*pc.Y
		t.cx = (sa*(pb.Y-pc.Y) + sb*(pc.Y-pa.Y) + sc*(pa.Y-pb.Y)) / d
		t.cy = (sa*(pc.X-pb.X) + sb*(pa.X-pc.X) + sc*(pb.X-pa.X)) / d
		dx, dy := pa.X-t.cx, pa.Y-t.cy
		t.r2 = dx*dx + dy*dy

	case 1:
		// One vertex at infinity: the circumdisk degenerates to the
		// open half-plane beyond the real edge, on the super side.
		u, v, s := reals[0], reals[1], supers[0]
		t.setHalfPlane(v.X-u.X, v.Y-u.Y, u, s)

	case 2:
		// Two vertices at infinity: the disk limit is the half-plane
		// bounded by the line through the real vertex parallel to the
		// chord between the two super vertices.
		w, s1, s2 := reals[0], supers[0], supers[1]
		t.setHalfPlane(s2.X-s1.X, s2.Y-s1.Y, w, s1)

	default:
		t.kind = triEverything
	}
	return t
}

// setHalfPlane stores the functional for the line through origin with
// direction (dx, dy), oriented so the reference point is on the
// positive side.
func (t *circumTri) setHalfPlane(dx, dy float64, origin, ref Point) {
	hx, hy := -dy, dx
	hc := dy*origin.X - dx*origin.Y
	side := hx*ref.X + hy*ref.Y + hc
	if side == 0 {
		t.kind = triDegenerate
		return
	}
	if side < 0 {
		hx, hy, hc = -hx, -hy, -hc
	}
	t.kind = triHalfPlane
	t.hx, t.hy, t.hc = hx, hy, hc
}

// circumdiskContains reports whether p lies strictly inside the
// triangle's circumdisk. Degenerate triangles contain nothing.
func (t circumTri) circumdiskContains(p Point) bool {
	switch t.kind {
	case triFinite:
		dx, dy := p.X-t.cx, p.Y-t.cy
		return dx*dx+dy*dy < t.r2
	case triHalfPlane:
		return t.hx*p.X+t.hy*p.Y+t.hc > 0
	case triEverything:
		return true
	default:
		return false
	}
}

type edge struct {
	a, b int
}

func normalizeEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// Delaunay triangulates a point set with the incremental Bowyer-Watson
// algorithm and returns triangles over the original point indices.
// Fewer than 3 points produce no triangles. The implementation is
// O(n^2): every insertion scans the whole triangle list, which is fine
// for the ~56 point landmark sets this engine works with.
func Delaunay(pts []Point) []Triangle {
	n := len(pts)
	if n < 3 {
		return nil
	}

	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	// Super triangle around the extent midpoint. The vertices stand in
	// for points at infinity: only their directions matter (they orient
	// the half-plane circumdisks), the chords between them stay clear
	// of the data box.
	dMax := math.Max(maxX-minX, maxY-minY)
	if dMax == 0 {
		dMax = 1
	}
	midX, midY := (minX+maxX)/2, (minY+maxY)/2

	all := make([]Point, n, n+3)
	copy(all, pts)
	all = append(all,
		Point{X: midX - 20*dMax, Y: midY - dMax},
		Point{X: midX, Y: midY + 20*dMax},
		Point{X: midX + 20*dMax, Y: midY - dMax},
	)

	tris := []circumTri{newCircumTri(all, n, n, n+1, n+2)}

	for i := 0; i < n; i++ {
		p := all[i]

		// Partition into triangles whose circumdisk contains the new
		// point and those untouched. The list is rebuilt each insertion
		// instead of mutated in place.
		var bad, keep []circumTri
		for _, t := range tris {
			if t.circumdiskContains(p) {
				bad = append(bad, t)
			} else {
				keep = append(keep, t)
			}
		}

		// The closure polygon is formed by the edges of the cavity that
		// are not shared between two removed triangles.
		counts := make(map[edge]int, len(bad)*3)
		for _, t := range bad {
			counts[normalizeEdge(t.a, t.b)]++
			counts[normalizeEdge(t.b, t.c)]++
			counts[normalizeEdge(t.c, t.a)]++
		}

		tris = keep
		for e, c := range counts {
			if c == 1 {
				tris = append(tris, newCircumTri(all, n, e.a, e.b, i))
			}
		}
	}

	// Drop every triangle touching a super-triangle vertex, and the
	// near-zero-area slivers that collinear input produces.
	out := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		if t.a < n && t.b < n && t.c < n && t.kind != triDegenerate {
			out = append(out, Triangle{t.a, t.b, t.c})
		}
	}
	return out
}
