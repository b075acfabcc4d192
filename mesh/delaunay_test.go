package mesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDelaunay_ThreePointsSingleTriangle(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 5, Y: 8},
	}
	tris := Delaunay(pts)
	assert.Len(tris, 1)
	assert.ElementsMatch([]int{0, 1, 2}, tris[0][:])
}

func TestDelaunay_SquareSplitsInTwo(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
	}
	tris := Delaunay(pts)
	assert.Len(tris, 2)
	for _, tri := range tris {
		for _, idx := range tri {
			assert.GreaterOrEqual(idx, 0)
			assert.Less(idx, len(pts), "super-triangle vertex leaked into the result")
		}
	}
}

func TestDelaunay_SquareWithCenter(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{
		{X: 0, Y: 0},
		{X: 10, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
		{X: 5, Y: 5},
	}
	tris := Delaunay(pts)
	assert.Len(tris, 4)

	// Every triangle must include the center point.
	for _, tri := range tris {
		assert.Contains(tri[:], 4)
	}
}

func TestDelaunay_TriangleCountMatchesEuler(t *testing.T) {
	assert := assert.New(t)

	// For a Delaunay triangulation: triangles = 2n - 2 - k, with k hull
	// vertices.
	pts := []Point{
		{X: 0, Y: 0},
		{X: 20, Y: 3},
		{X: 40, Y: 0},
		{X: 43, Y: 22},
		{X: 39, Y: 41},
		{X: 18, Y: 44},
		{X: -2, Y: 38},
		{X: 11, Y: 17},
		{X: 27, Y: 14},
		{X: 22, Y: 29},
	}
	tris := Delaunay(pts)
	hull := ConvexHull(pts)
	assert.Len(tris, 2*len(pts)-2-len(hull))
}

func TestDelaunay_DegenerateInputsYieldNothing(t *testing.T) {
	assert := assert.New(t)

	assert.Empty(Delaunay([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}))

	collinear := []Point{
		{X: 0, Y: 0},
		{X: 5, Y: 5},
		{X: 10, Y: 10},
	}
	assert.Empty(Delaunay(collinear))
}

func TestDelaunay_EmptyCircumcircles(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{
		{X: 3, Y: 1},
		{X: 17, Y: 4},
		{X: 12, Y: 15},
		{X: 1, Y: 12},
		{X: 9, Y: 7},
	}
	tris := Delaunay(pts)
	assertEmptyCircumcircles(assert, pts, tris)
}

func assertEmptyCircumcircles(assert *assert.Assertions, pts []Point, tris []Triangle) {
	for _, tri := range tris {
		ct := newCircumTri(pts, len(pts), tri[0], tri[1], tri[2])
		for i, p := range pts {
			if i == tri[0] || i == tri[1] || i == tri[2] {
				continue
			}
			assert.False(ct.circumdiskContains(p),
				"point %d lies strictly inside the circumcircle of %v", i, tri)
		}
	}
}

// triangulationArea sums the unsigned triangle areas; for a hole-free
// triangulation it equals the hull area.
func triangulationArea(pts []Point, tris []Triangle) float64 {
	var sum float64
	for _, t := range tris {
		a, b, c := pts[t[0]], pts[t[1]], pts[t[2]]
		sum += math.Abs((b.X-a.X)*(c.Y-a.Y)-(b.Y-a.Y)*(c.X-a.X)) / 2
	}
	return sum
}

func TestDelaunay_RandomSetsCoverTheHull(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		n := 10 + rng.Intn(51)
		pts := make([]Point, n)
		for i := range pts {
			pts[i] = Point{X: rng.Float64() * 500, Y: rng.Float64() * 500}
		}

		tris := Delaunay(pts)
		hull := ConvexHull(pts)

		assert.Len(tris, 2*n-2-len(hull), "trial %d, n=%d", trial, n)
		assert.InDelta(math.Abs(PolygonArea(pts, hull)), triangulationArea(pts, tris), 1e-6,
			"trial %d left a hole in the hull", trial)
		assertEmptyCircumcircles(assert, pts, tris)
	}
}

func TestDelaunay_FaceLikeLandmarksCoverTheHull(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		jitter := func(s float64) float64 { return (rng.Float64() - 0.5) * s }

		// Oval + two eye rings + nose and mouth anchors, the way a
		// landmark detector lays a face out.
		var pts []Point
		for i := 0; i < 36; i++ {
			a := 2 * math.Pi * float64(i) / 36
			pts = append(pts, Point{
				X: 320 + 120*math.Cos(a) + jitter(6),
				Y: 240 + 150*math.Sin(a) + jitter(6),
			})
		}
		for _, ex := range []float64{270, 370} {
			for i := 0; i < 6; i++ {
				a := 2 * math.Pi * float64(i) / 6
				pts = append(pts, Point{
					X: ex + 22*math.Cos(a) + jitter(3),
					Y: 200 + 13*math.Sin(a) + jitter(3),
				})
			}
		}
		pts = append(pts,
			Point{X: 320 + jitter(4), Y: 230 + jitter(4)},
			Point{X: 320 + jitter(4), Y: 265 + jitter(4)},
			Point{X: 300 + jitter(4), Y: 260 + jitter(4)},
			Point{X: 340 + jitter(4), Y: 260 + jitter(4)},
			Point{X: 285 + jitter(4), Y: 310 + jitter(4)},
			Point{X: 355 + jitter(4), Y: 310 + jitter(4)},
			Point{X: 320 + jitter(4), Y: 300 + jitter(4)},
			Point{X: 320 + jitter(4), Y: 320 + jitter(4)},
		)

		tris := Delaunay(pts)
		hull := ConvexHull(pts)

		assert.Len(tris, 2*len(pts)-2-len(hull), "trial %d", trial)
		assert.InDelta(math.Abs(PolygonArea(pts, hull)), triangulationArea(pts, tris), 1e-6,
			"trial %d left a hole in the hull", trial)
	}
}
