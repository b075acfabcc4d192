package blend

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

func squareHull() ([]mesh.Point, []int) {
	pts := []mesh.Point{
		{X: 20, Y: 20},
		{X: 80, Y: 20},
		{X: 80, Y: 80},
		{X: 20, Y: 80},
	}
	return pts, mesh.ConvexHull(pts)
}

func TestHullMask_InsideOutside(t *testing.T) {
	assert := assert.New(t)

	pts, hull := squareHull()
	mask := HullMask(pts, hull, 100, 100)

	assert.Equal(uint8(255), mask.AlphaAt(50, 50).A)
	assert.Equal(uint8(0), mask.AlphaAt(5, 5).A)
	assert.Equal(uint8(0), mask.AlphaAt(95, 95).A)
}

func TestHullMask_DegenerateHullIsEmpty(t *testing.T) {
	assert := assert.New(t)

	mask := HullMask([]mesh.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}, []int{0, 1}, 10, 10)
	for _, p := range mask.Pix {
		assert.Equal(uint8(0), p)
	}
}

func TestFeatherMask_AbruptFalloffStaysSolid(t *testing.T) {
	assert := assert.New(t)

	pts, hull := squareHull()
	// falloff 100, no blur: solid to 85% of the centroid-corner radius.
	mask := FeatherMask(pts, hull, 100, 100, 100, 0)

	assert.Equal(uint8(255), mask.AlphaAt(50, 50).A)
	// 30px from the centroid is 0.707 of the max radius, inside solid.
	assert.Equal(uint8(255), mask.AlphaAt(80-1, 50).A)
}

func TestFeatherMask_GradualFalloffFades(t *testing.T) {
	assert := assert.New(t)

	pts, hull := squareHull()
	mask := FeatherMask(pts, hull, 100, 100, 0, 0)

	center := mask.AlphaAt(50, 50).A
	mid := mask.AlphaAt(70, 50).A
	edge := mask.AlphaAt(79, 50).A

	assert.Equal(uint8(255), center)
	assert.Less(mid, center)
	assert.Less(edge, mid)
}

func TestFeatherMask_ZeroOutsideHull(t *testing.T) {
	assert := assert.New(t)

	pts, hull := squareHull()
	mask := FeatherMask(pts, hull, 100, 100, 50, 0)
	assert.Equal(uint8(0), mask.AlphaAt(5, 50).A)
	assert.Equal(uint8(0), mask.AlphaAt(50, 95).A)
}

func TestFeatherMask_BlurSoftensEdge(t *testing.T) {
	assert := assert.New(t)

	pts, hull := squareHull()
	sharp := FeatherMask(pts, hull, 100, 100, 100, 0)
	soft := FeatherMask(pts, hull, 100, 100, 100, 20)

	// Blur moves coverage across the hull edge: just outside gains,
	// just inside loses.
	assert.Greater(soft.AlphaAt(18, 50).A, sharp.AlphaAt(18, 50).A)
	assert.Less(soft.AlphaAt(22, 50).A, sharp.AlphaAt(22, 50).A)

	// The center stays opaque regardless of blur.
	assert.Equal(uint8(255), soft.AlphaAt(50, 50).A)
}

func TestBlurAlpha_PreservesFlatRegions(t *testing.T) {
	assert := assert.New(t)

	img := image.NewAlpha(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	blurAlpha(img, 4)
	for _, p := range img.Pix {
		assert.InDelta(200, float64(p), 1)
	}
}
