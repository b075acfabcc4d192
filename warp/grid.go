package warp

import (
	"image"

	"github.com/doctorjana/FunnyFaceSwap/mesh"
)

// DefaultGridSize is the number of cells per axis used when no grid
// resolution is configured. The grid trades a bounded interpolation
// error for an O(pixels) instead of O(pixels x control points) cost.
const DefaultGridSize = 20

// WarpTPS warps the source image onto the destination landmark
// geometry with a thin-plate spline and returns a w x h buffer.
//
// The spline has no closed-form inverse, so the control point roles are
// swapped when solving: the fitted mapping goes destination -> source
// and every destination pixel looks up its source coordinate directly.
// The mapping is evaluated only at the corners of a gridSize x gridSize
// cell grid over bounds (the padded destination box); pixels inside a
// cell bilinearly interpolate the corner coordinates, then bilinearly
// sample the source image. Out-of-bounds lookups stay transparent.
func WarpTPS(src *image.NRGBA, srcPts, dstPts []mesh.Point, bounds mesh.Rect, gridSize, w, h int) (*image.NRGBA, error) {
	inv, err := SolveTPS(dstPts, srcPts)
	if err != nil {
		return nil, err
	}

	if gridSize <= 0 {
		gridSize = DefaultGridSize
	}

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	if src == nil || bounds.Width <= 0 || bounds.Height <= 0 {
		return out, nil
	}

	cellW := bounds.Width / float64(gridSize)
	cellH := bounds.Height / float64(gridSize)

	// Source coordinates at every grid corner.
	stride := gridSize + 1
	gx := make([]float64, stride*stride)
	gy := make([]float64, stride*stride)
	for gyIdx := 0; gyIdx <= gridSize; gyIdx++ {
		for gxIdx := 0; gxIdx <= gridSize; gxIdx++ {
			x := bounds.X + float64(gxIdx)*cellW
			y := bounds.Y + float64(gyIdx)*cellH
			sx, sy := inv.Transform(x, y)
			gx[gyIdx*stride+gxIdx] = sx
			gy[gyIdx*stride+gxIdx] = sy
		}
	}

	x0, y0 := int(bounds.X), int(bounds.Y)
	x1, y1 := int(bounds.X+bounds.Width), int(bounds.Y+bounds.Height)
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}

	for y := y0; y < y1; y++ {
		fy := (float64(y) - bounds.Y) / cellH
		cy := int(fy)
		if cy > gridSize-1 {
			cy = gridSize - 1
		}
		ty := fy - float64(cy)

		for x := x0; x < x1; x++ {
			fx := (float64(x) - bounds.X) / cellW
			cx := int(fx)
			if cx > gridSize-1 {
				cx = gridSize - 1
			}
			tx := fx - float64(cx)

			i00 := cy*stride + cx
			i10 := i00 + 1
			i01 := i00 + stride
			i11 := i01 + 1

			topX := gx[i00] + (gx[i10]-gx[i00])*tx
			botX := gx[i01] + (gx[i11]-gx[i01])*tx
			sx := topX + (botX-topX)*ty

			topY := gy[i00] + (gy[i10]-gy[i00])*tx
			botY := gy[i01] + (gy[i11]-gy[i01])*tx
			sy := topY + (botY-topY)*ty

			if c, ok := bilinearNRGBA(src, sx, sy); ok {
				out.SetNRGBA(x, y, c)
			}
		}
	}
	return out, nil
}
