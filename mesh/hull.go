package mesh

import (
	"math"
	"sort"
)

// cross returns the z component of (a-o) x (b-o). Positive means the
// three points make a counter-clockwise turn.
func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// ConvexHull computes the convex hull of a point set using a Graham
// scan and returns the hull as indices into pts, ordered
// counter-clockwise. Sets with fewer than 3 points are returned
// unchanged (their indices in input order).
func ConvexHull(pts []Point) []int {
	n := len(pts)
	if n < 3 {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	// Pivot: largest Y, ties broken by smallest X.
	pivot := 0
	for i := 1; i < n; i++ {
		if pts[i].Y > pts[pivot].Y ||
			(pts[i].Y == pts[pivot].Y && pts[i].X < pts[pivot].X) {
			pivot = i
		}
	}

	rest := make([]int, 0, n-1)
	for i := 0; i < n; i++ {
		if i != pivot {
			rest = append(rest, i)
		}
	}

	// Sort the remaining points by polar angle around the pivot.
	// Collinear points are ordered by distance so the sweep keeps the
	// farthest one.
	sort.Slice(rest, func(i, j int) bool {
		ai := math.Atan2(pts[rest[i]].Y-pts[pivot].Y, pts[rest[i]].X-pts[pivot].X)
		aj := math.Atan2(pts[rest[j]].Y-pts[pivot].Y, pts[rest[j]].X-pts[pivot].X)
		if ai != aj {
			return ai < aj
		}
		return distSq(pts[pivot], pts[rest[i]]) < distSq(pts[pivot], pts[rest[j]])
	})

	hull := []int{pivot, rest[0]}
	for _, idx := range rest[1:] {
		// Pop until the new point makes a strictly counter-clockwise turn.
		for len(hull) >= 2 && cross(pts[hull[len(hull)-2]], pts[hull[len(hull)-1]], pts[idx]) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, idx)
	}
	return hull
}

// HullPoints resolves hull indices back to their point coordinates.
func HullPoints(pts []Point, hull []int) []Point {
	out := make([]Point, len(hull))
	for i, idx := range hull {
		out[i] = pts[idx]
	}
	return out
}

// Centroid returns the arithmetic mean of a point set.
func Centroid(pts []Point) Point {
	var c Point
	if len(pts) == 0 {
		return c
	}
	for _, p := range pts {
		c.X += p.X
		c.Y += p.Y
	}
	c.X /= float64(len(pts))
	c.Y /= float64(len(pts))
	return c
}

// PolygonArea returns the signed shoelace area of the polygon described
// by hull indices over pts. Counter-clockwise polygons have positive area.
func PolygonArea(pts []Point, hull []int) float64 {
	var sum float64
	for i, idx := range hull {
		next := pts[hull[(i+1)%len(hull)]]
		cur := pts[idx]
		sum += cur.X*next.Y - next.X*cur.Y
	}
	return sum / 2
}

func distSq(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}
