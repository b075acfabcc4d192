package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild_TooFewPoints(t *testing.T) {
	assert := assert.New(t)

	_, err := Build([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, 100, 100)
	assert.Error(err)
}

func TestBuild_DegenerateLandmarks(t *testing.T) {
	assert := assert.New(t)

	collinear := []Point{
		{X: 0, Y: 0},
		{X: 5, Y: 5},
		{X: 10, Y: 10},
	}
	_, err := Build(collinear, 100, 100)
	assert.Error(err)
}

func TestBuild_FullMesh(t *testing.T) {
	assert := assert.New(t)

	pts := []Point{
		{X: 20, Y: 20},
		{X: 80, Y: 25},
		{X: 75, Y: 70},
		{X: 25, Y: 75},
		{X: 50, Y: 45},
	}
	m, err := Build(pts, 100, 100)
	assert.NoError(err)
	assert.Len(m.Points, len(pts))
	assert.NotEmpty(m.Hull)
	assert.NotEmpty(m.Triangles)
	assert.Greater(m.Box.Width, 0.0)
	assert.Greater(m.Box.Height, 0.0)

	for _, tri := range m.Triangles {
		assert.True(tri.Valid(len(pts)))
	}

	// The input slice must not be aliased by the mesh.
	pts[0] = Point{X: -1, Y: -1}
	assert.Equal(Point{X: 20, Y: 20}, m.Points[0])
}

func TestTriangle_Valid(t *testing.T) {
	assert := assert.New(t)

	assert.True(Triangle{0, 1, 2}.Valid(3))
	assert.False(Triangle{0, 1, 1}.Valid(3))
	assert.False(Triangle{0, 1, 3}.Valid(3))
	assert.False(Triangle{-1, 1, 2}.Valid(3))
}
