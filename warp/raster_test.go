package warp

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestWarpTriangles_IdentityCopiesInterior(t *testing.T) {
	assert := assert.New(t)

	src := solidNRGBA(40, 40, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
	pts := []mesh.Point{
		{X: 5, Y: 5},
		{X: 35, Y: 5},
		{X: 35, Y: 35},
		{X: 5, Y: 35},
	}
	tris := mesh.Delaunay(pts)
	assert.Len(tris, 2)

	out := WarpTriangles(src, pts, pts, tris, 40, 40)

	assert.Equal(color.NRGBA{R: 200, G: 100, B: 50, A: 255}, out.NRGBAAt(20, 20))
	// Outside the triangulation the buffer stays transparent.
	assert.Equal(color.NRGBA{}, out.NRGBAAt(1, 1))
	assert.Equal(color.NRGBA{}, out.NRGBAAt(38, 38))
}

func TestWarpTriangles_SharedEdgeSingleCovered(t *testing.T) {
	assert := assert.New(t)

	src := solidNRGBA(40, 40, color.NRGBA{R: 255, A: 255})
	pts := []mesh.Point{
		{X: 5, Y: 5},
		{X: 35, Y: 5},
		{X: 35, Y: 35},
		{X: 5, Y: 35},
	}
	tris := mesh.Delaunay(pts)
	assert.Len(tris, 2)

	full := coverage(WarpTriangles(src, pts, pts, tris, 40, 40))
	first := coverage(WarpTriangles(src, pts, pts, tris[:1], 40, 40))
	second := coverage(WarpTriangles(src, pts, pts, tris[1:], 40, 40))

	for i := range full {
		assert.Equal(full[i], first[i] || second[i], "coverage gap at pixel %d", i)
		assert.False(first[i] && second[i], "pixel %d claimed by both triangles", i)
	}
}

func coverage(img *image.NRGBA) []bool {
	b := img.Bounds()
	out := make([]bool, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out[y*b.Dx()+x] = img.NRGBAAt(x, y).A != 0
		}
	}
	return out
}

func TestWarpTriangles_DegenerateTriangleSkipped(t *testing.T) {
	assert := assert.New(t)

	src := solidNRGBA(20, 20, color.NRGBA{R: 255, A: 255})
	srcPts := []mesh.Point{
		{X: 2, Y: 2},
		{X: 10, Y: 10},
		{X: 18, Y: 18},
	}
	dstPts := []mesh.Point{
		{X: 2, Y: 2},
		{X: 18, Y: 2},
		{X: 10, Y: 18},
	}
	// Source triangle collapsed to a line; nothing must be written.
	out := WarpTriangles(src, srcPts, dstPts, []mesh.Triangle{{0, 1, 2}}, 20, 20)
	for _, c := range coverage(out) {
		assert.False(c)
	}
}

func TestWarpTriangles_ShapeMismatchYieldsTransparent(t *testing.T) {
	assert := assert.New(t)

	src := solidNRGBA(10, 10, color.NRGBA{R: 255, A: 255})
	out := WarpTriangles(src,
		[]mesh.Point{{X: 1, Y: 1}},
		[]mesh.Point{{X: 1, Y: 1}, {X: 2, Y: 2}},
		[]mesh.Triangle{{0, 1, 2}}, 10, 10)
	for _, c := range coverage(out) {
		assert.False(c)
	}
}
